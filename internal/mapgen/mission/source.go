// Package mission turns campaign mission identifiers into per-mission terrain
// configurations.
package mission

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

// ErrNoMissions is returned when a mission source yields no identifiers.
var ErrNoMissions = errors.New("no mission ids found")

var (
	campaignBlockRe = regexp.MustCompile(`(?s)export\s+const\s+CAMPAIGN_MISSIONS\s*=\s*\[(.*?)\n\];`)
	missionIDRe     = regexp.MustCompile(`\bid:\s*"([^"]+)"`)
)

// ParseIDs extracts mission identifiers from a mission source. JSON sources
// may be an array of ids, an array of objects with an "id" field, or an
// object with a "missions" array of either form. Anything else is scanned as
// JavaScript for the CAMPAIGN_MISSIONS block. Duplicates are dropped, order is
// kept.
func ParseIDs(data []byte) ([]string, error) {
	var ids []string
	var err error

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') && json.Valid(trimmed) {
		ids, err = parseJSON(trimmed)
	} else {
		ids, err = parseScript(data)
	}
	if err != nil {
		return nil, err
	}

	ids = dedupe(ids)
	if len(ids) == 0 {
		return nil, ErrNoMissions
	}
	return ids, nil
}

func parseScript(data []byte) ([]string, error) {
	m := campaignBlockRe.FindSubmatch(data)
	if m == nil {
		return nil, fmt.Errorf("%w: CAMPAIGN_MISSIONS block not found", ErrNoMissions)
	}
	var ids []string
	for _, sub := range missionIDRe.FindAllSubmatch(m[1], -1) {
		ids = append(ids, string(sub[1]))
	}
	return ids, nil
}

type missionEntry struct {
	ID string `json:"id"`
}

func parseJSON(data []byte) ([]string, error) {
	if data[0] == '{' {
		var doc struct {
			Missions json.RawMessage `json:"missions"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse mission json: %w", err)
		}
		if len(doc.Missions) == 0 {
			return nil, fmt.Errorf("%w: no \"missions\" array", ErrNoMissions)
		}
		data = doc.Missions
	}

	var plain []string
	if err := json.Unmarshal(data, &plain); err == nil {
		return plain, nil
	}

	var entries []missionEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse mission json: %w", err)
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.ID != "" {
			ids = append(ids, e.ID)
		}
	}
	return ids, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

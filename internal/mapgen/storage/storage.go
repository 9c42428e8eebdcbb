package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/OCharnyshevich/terrain-mapgen/pkg/terrain"
)

// GeneratorName identifies this generator in written artifacts.
const GeneratorName = "terrain-mapgen/pkg/terrain"

// ConfigRecord is the generation input recorded next to a map.
type ConfigRecord struct {
	Width                   int     `json:"width"`
	Height                  int     `json:"height"`
	Seed                    uint32  `json:"seed"`
	TargetLandFraction      float64 `json:"target_land_fraction"`
	MountaintopPercentile   float64 `json:"mountaintop_percentile"`
	MountainSlopePercentile float64 `json:"mountain_slope_percentile"`
	HillshadeStrength       float64 `json:"hillshade_strength"`
	NoisePhaseX             float64 `json:"noise_phase_x"`
	NoisePhaseY             float64 `json:"noise_phase_y"`
}

// StatsRecord is the stats file written for one map.
type StatsRecord struct {
	Generator string        `json:"generator"`
	Config    ConfigRecord  `json:"config"`
	Stats     terrain.Stats `json:"stats"`
	PNG       string        `json:"png"`
}

// NewStatsRecord builds the stats file contents for a generated map.
func NewStatsRecord(res *terrain.Result, png string) StatsRecord {
	c := res.Config
	return StatsRecord{
		Generator: GeneratorName,
		Config: ConfigRecord{
			Width:                   c.Width,
			Height:                  c.Height,
			Seed:                    c.Seed,
			TargetLandFraction:      c.TargetLandFraction,
			MountaintopPercentile:   c.MountaintopPercentile,
			MountainSlopePercentile: c.MountainSlopePercentile,
			HillshadeStrength:       c.HillshadeStrength,
			NoisePhaseX:             c.NoisePhaseX,
			NoisePhaseY:             c.NoisePhaseY,
		},
		Stats: res.Stats,
		PNG:   png,
	}
}

// Manifest indexes the maps of a mission batch.
type Manifest struct {
	Generator       string         `json:"generator"`
	OutputDirectory string         `json:"output_directory"`
	Image           ImageSize      `json:"image"`
	Missions        []MissionEntry `json:"missions"`
}

// ImageSize is the pixel size shared by every map in a manifest.
type ImageSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// MissionEntry is one mission map listed in a manifest.
type MissionEntry struct {
	MissionID string `json:"mission_id"`
	MapPNG    string `json:"map_png"`
	Seed      uint32 `json:"seed"`
	StatsJSON string `json:"stats_json,omitempty"`
}

// WriteStats writes a stats record to path.
func WriteStats(path string, rec StatsRecord) error {
	return atomicWriteJSON(path, rec)
}

// WriteManifest writes a batch manifest to path.
func WriteManifest(path string, m *Manifest) error {
	return atomicWriteJSON(path, m)
}

// ReadManifest reads a manifest written by WriteManifest.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

// atomicWriteJSON marshals v to JSON and writes it atomically using a temp file + rename.
func atomicWriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

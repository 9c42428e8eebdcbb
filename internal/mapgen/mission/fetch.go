package mission

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	getter "github.com/hashicorp/go-getter"
)

// Fetch returns the contents of a mission source. Existing local files are read
// directly; anything else is handed to go-getter, so git, http and s3 URLs work
// ("git::https://example.com/game.git//src/data.js").
func Fetch(ctx context.Context, src string) ([]byte, error) {
	if fi, err := os.Stat(src); err == nil && !fi.IsDir() {
		data, err := os.ReadFile(src)
		if err != nil {
			return nil, fmt.Errorf("read mission source: %w", err)
		}
		return data, nil
	}

	dir, err := os.MkdirTemp("", "mission-source-*")
	if err != nil {
		return nil, fmt.Errorf("create download dir: %w", err)
	}
	defer os.RemoveAll(dir)

	pwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	dst := filepath.Join(dir, "source")
	client := &getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dst,
		Pwd:  pwd,
		Mode: getter.ClientModeFile,
	}
	if err := client.Get(); err != nil {
		return nil, fmt.Errorf("download mission source %s: %w", src, err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		return nil, fmt.Errorf("read downloaded mission source: %w", err)
	}
	return data, nil
}

// Load fetches src and derives one Mission per id, in source order.
func Load(ctx context.Context, src string, seedOffset uint32) ([]Mission, error) {
	data, err := Fetch(ctx, src)
	if err != nil {
		return nil, err
	}
	ids, err := ParseIDs(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", src, err)
	}
	missions := make([]Mission, len(ids))
	for i, id := range ids {
		missions[i] = New(id, seedOffset)
	}
	return missions, nil
}

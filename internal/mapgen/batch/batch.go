// Package batch generates one terrain map per campaign mission.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/OCharnyshevich/terrain-mapgen/internal/mapgen/mission"
	"github.com/OCharnyshevich/terrain-mapgen/internal/mapgen/storage"
	"github.com/OCharnyshevich/terrain-mapgen/pkg/raster"
	"github.com/OCharnyshevich/terrain-mapgen/pkg/terrain"
)

// ManifestName is the file name of the batch manifest inside the output directory.
const ManifestName = "index.json"

// ErrNameCollision is returned when two missions would write the same files.
var ErrNameCollision = errors.New("mission file names collide")

// Options configures a batch run.
type Options struct {
	// Base is the configuration shared by every mission; seed and noise
	// phase are replaced per mission.
	Base       terrain.Config
	OutDir     string
	Workers    int
	WriteStats bool
}

// Run generates a map for each mission, then writes the manifest. Each map is
// generated on a single goroutine; up to opts.Workers maps run at once. The
// manifest lists missions in input order.
func Run(ctx context.Context, log *slog.Logger, missions []mission.Mission, opts Options) (*storage.Manifest, error) {
	if len(missions) == 0 {
		return nil, mission.ErrNoMissions
	}
	// Fail on bad dimensions before touching the disk.
	base, err := opts.Base.Normalize()
	if err != nil {
		return nil, err
	}
	names, err := fileNames(missions)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	if prev, err := storage.ReadManifest(filepath.Join(opts.OutDir, ManifestName)); err == nil {
		log.Info("replacing existing manifest", "dir", opts.OutDir, "missions", len(prev.Missions))
	} else if !errors.Is(err, os.ErrNotExist) {
		log.Warn("existing manifest is unreadable, replacing it", "dir", opts.OutDir, "error", err)
	}

	entries := make([]storage.MissionEntry, len(missions))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, opts.Workers))
	for i, m := range missions {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			mlog := log.With("mission", m.ID, "index", i+1, "total", len(missions))
			entry, err := generateOne(mlog, m, names[i], base, opts)
			if err != nil {
				return fmt.Errorf("mission %s: %w", m.ID, err)
			}
			entries[i] = entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	manifest := &storage.Manifest{
		Generator:       storage.GeneratorName,
		OutputDirectory: opts.OutDir,
		Image:           storage.ImageSize{Width: base.Width, Height: base.Height},
		Missions:        entries,
	}
	path := filepath.Join(opts.OutDir, ManifestName)
	if err := storage.WriteManifest(path, manifest); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}
	log.Info("wrote manifest", "path", path, "missions", len(entries))
	return manifest, nil
}

// fileNames returns the base file name of every mission. Ids that sanitise to
// the same name, compared case-insensitively, get their seed appended in hex.
func fileNames(missions []mission.Mission) ([]string, error) {
	names := make([]string, len(missions))
	count := make(map[string]int, len(missions))
	for i, m := range missions {
		names[i] = m.FileName()
		count[strings.ToLower(names[i])]++
	}
	for i, m := range missions {
		if count[strings.ToLower(names[i])] > 1 {
			names[i] = fmt.Sprintf("%s-%08x", names[i], m.Seed)
		}
	}

	owner := make(map[string]string, len(names))
	for i, name := range names {
		key := strings.ToLower(name)
		if other, ok := owner[key]; ok {
			return nil, fmt.Errorf("%w: %q and %q both map to %s.png", ErrNameCollision, other, missions[i].ID, name)
		}
		owner[key] = missions[i].ID
	}
	return names, nil
}

func generateOne(log *slog.Logger, m mission.Mission, name string, base terrain.Config, opts Options) (storage.MissionEntry, error) {
	start := time.Now()
	log.Debug("generating", "seed", m.Seed, "phaseX", m.NoisePhaseX, "phaseY", m.NoisePhaseY)

	res, err := terrain.Generate(m.Apply(base))
	if err != nil {
		return storage.MissionEntry{}, err
	}

	entry := storage.MissionEntry{MissionID: m.ID, MapPNG: name + ".png", Seed: m.Seed}

	if err := raster.SavePNG(filepath.Join(opts.OutDir, entry.MapPNG), res.Width, res.Height, res.Pixels); err != nil {
		return storage.MissionEntry{}, err
	}
	if opts.WriteStats {
		entry.StatsJSON = name + ".stats.json"
		rec := storage.NewStatsRecord(res, entry.MapPNG)
		if err := storage.WriteStats(filepath.Join(opts.OutDir, entry.StatsJSON), rec); err != nil {
			return storage.MissionEntry{}, err
		}
	}

	log.Info("generated map",
		"file", entry.MapPNG,
		"land", res.Stats.ActualLandFraction,
		"seaLevel", res.Stats.SeaLevel,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return entry, nil
}

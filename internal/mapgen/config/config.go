package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/OCharnyshevich/terrain-mapgen/pkg/terrain"
)

// Config holds the settings shared by the map generation commands.
type Config struct {
	Terrain terrain.Config `json:"terrain"`

	Out          string `json:"out"`           // single map output path
	StatsJSON    string `json:"stats_json"`    // optional stats output path
	PreviewPath  string `json:"preview"`       // optional downscaled preview path
	PreviewWidth int    `json:"preview_width"` // preview width in pixels

	Missions   string `json:"missions"`    // mission source: path or go-getter URL
	OutDir     string `json:"out_dir"`     // batch output directory
	SeedOffset uint32 `json:"seed_offset"` // added to every mission seed
	Workers    int    `json:"workers"`     // concurrent mission maps
	WriteStats bool   `json:"write_stats"` // write <id>.stats.json per mission
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Terrain:      terrain.DefaultConfig(),
		Out:          "assets/maps/terrain/mockup-terrain-map.png",
		PreviewWidth: 360,
		Missions:     "src/data.js",
		OutDir:       "assets/maps/terrain/mission-terrain-maps",
		Workers:      runtime.NumCPU(),
	}
}

// BindTerrainFlags registers the terrain tuning flags on fs.
func BindTerrainFlags(fs *flag.FlagSet, cfg *Config) {
	t := &cfg.Terrain
	fs.IntVar(&t.Width, "width", t.Width, "map width in pixels")
	fs.IntVar(&t.Height, "height", t.Height, "map height in pixels")
	fs.Float64Var(&t.TargetLandFraction, "target-land-fraction", t.TargetLandFraction, "target fraction of pixels above sea level (0..1)")
	fs.Float64Var(&t.MountaintopPercentile, "mountaintop-percentile", t.MountaintopPercentile, "height percentile classified as mountaintop")
	fs.Float64Var(&t.MountainSlopePercentile, "mountain-slope-percentile", t.MountainSlopePercentile, "land slope percentile classified as mountain")
	fs.Float64Var(&t.HillshadeStrength, "hillshade-strength", t.HillshadeStrength, "hillshade intensity multiplier")
}

// BindSeedFlag registers a 32-bit unsigned seed flag named name.
func BindSeedFlag(fs *flag.FlagSet, name string, p *uint32, usage string) {
	fs.Func(name, fmt.Sprintf("%s (default %d)", usage, *p), func(s string) error {
		v, err := strconv.ParseUint(s, 0, 32)
		if err != nil {
			return fmt.Errorf("invalid seed %q: %w", s, err)
		}
		*p = uint32(v)
		return nil
	})
}

// Load reads a JSON config file. Fields missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ExplicitFlags returns the names of the flags set on the command line.
func ExplicitFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	t, ft := &cfg.Terrain, &fromFile.Terrain
	if !explicitFlags["width"] {
		t.Width = ft.Width
	}
	if !explicitFlags["height"] {
		t.Height = ft.Height
	}
	if !explicitFlags["seed"] {
		t.Seed = ft.Seed
	}
	if !explicitFlags["target-land-fraction"] {
		t.TargetLandFraction = ft.TargetLandFraction
	}
	if !explicitFlags["mountaintop-percentile"] {
		t.MountaintopPercentile = ft.MountaintopPercentile
	}
	if !explicitFlags["mountain-slope-percentile"] {
		t.MountainSlopePercentile = ft.MountainSlopePercentile
	}
	if !explicitFlags["hillshade-strength"] {
		t.HillshadeStrength = ft.HillshadeStrength
	}
	// Not exposed as flags.
	t.NoisePhaseX = ft.NoisePhaseX
	t.NoisePhaseY = ft.NoisePhaseY
	t.Light = ft.Light
	t.ShadeSteepness = ft.ShadeSteepness

	if !explicitFlags["out"] {
		cfg.Out = fromFile.Out
	}
	if !explicitFlags["stats-json"] {
		cfg.StatsJSON = fromFile.StatsJSON
	}
	if !explicitFlags["preview"] {
		cfg.PreviewPath = fromFile.PreviewPath
	}
	if !explicitFlags["preview-width"] {
		cfg.PreviewWidth = fromFile.PreviewWidth
	}
	if !explicitFlags["missions"] {
		cfg.Missions = fromFile.Missions
	}
	if !explicitFlags["out-dir"] {
		cfg.OutDir = fromFile.OutDir
	}
	if !explicitFlags["seed-offset"] {
		cfg.SeedOffset = fromFile.SeedOffset
	}
	if !explicitFlags["workers"] && fromFile.Workers > 0 {
		cfg.Workers = fromFile.Workers
	}
	if !explicitFlags["stats"] {
		cfg.WriteStats = fromFile.WriteStats
	}
}

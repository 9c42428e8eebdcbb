package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/OCharnyshevich/terrain-mapgen/internal/mapgen/config"
	"github.com/OCharnyshevich/terrain-mapgen/internal/mapgen/storage"
	"github.com/OCharnyshevich/terrain-mapgen/pkg/raster"
	"github.com/OCharnyshevich/terrain-mapgen/pkg/terrain"
)

func main() {
	cfg := config.DefaultConfig()

	fs := flag.CommandLine
	configPath := fs.String("config", "", "optional JSON config file; explicit flags override it")
	verbose := fs.Bool("v", false, "enable debug logging")
	fs.StringVar(&cfg.Out, "out", cfg.Out, "output PNG path")
	fs.StringVar(&cfg.StatsJSON, "stats-json", cfg.StatsJSON, "optional output path for generation stats JSON")
	fs.StringVar(&cfg.PreviewPath, "preview", cfg.PreviewPath, "optional output path for a downscaled preview PNG")
	fs.IntVar(&cfg.PreviewWidth, "preview-width", cfg.PreviewWidth, "preview width in pixels")
	config.BindSeedFlag(fs, "seed", &cfg.Terrain.Seed, "deterministic generator seed")
	config.BindTerrainFlags(fs, cfg)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	if *configPath != "" {
		fromFile, err := config.Load(*configPath)
		if err != nil {
			log.Error("load config", "error", err)
			os.Exit(1)
		}
		config.Merge(cfg, fromFile, config.ExplicitFlags(fs))
		log.Info("loaded config from file", "path", *configPath)
	}

	if err := run(cfg, log); err != nil {
		log.Error("generate terrain map", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	log.Debug("generating", "width", cfg.Terrain.Width, "height", cfg.Terrain.Height, "seed", cfg.Terrain.Seed)

	res, err := terrain.Generate(cfg.Terrain)
	if err != nil {
		return err
	}

	if err := writePNG(cfg.Out, res.Width, res.Height, res.Pixels); err != nil {
		return err
	}
	log.Info("wrote map", "path", cfg.Out)

	s := res.Stats
	fmt.Printf("terrain stats: land=%.3f, water=%.3f, sea_level=%.4f, mountaintops=%.3f\n",
		s.ActualLandFraction, s.WaterFraction, s.SeaLevel, s.MountaintopFraction)

	if cfg.PreviewPath != "" {
		w, h, pix, err := raster.Downscale(res.Width, res.Height, res.Pixels, cfg.PreviewWidth)
		if err != nil {
			return fmt.Errorf("downscale preview: %w", err)
		}
		if err := writePNG(cfg.PreviewPath, w, h, pix); err != nil {
			return err
		}
		log.Info("wrote preview", "path", cfg.PreviewPath, "width", w, "height", h)
	}

	if cfg.StatsJSON != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.StatsJSON), 0o755); err != nil {
			return fmt.Errorf("create stats dir: %w", err)
		}
		if err := storage.WriteStats(cfg.StatsJSON, storage.NewStatsRecord(res, cfg.Out)); err != nil {
			return fmt.Errorf("write stats: %w", err)
		}
		log.Info("wrote stats", "path", cfg.StatsJSON)
	}
	return nil
}

func writePNG(path string, w, h int, pix []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := raster.SavePNG(path, w, h, pix); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

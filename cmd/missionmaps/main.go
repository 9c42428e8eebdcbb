package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/OCharnyshevich/terrain-mapgen/internal/mapgen/batch"
	"github.com/OCharnyshevich/terrain-mapgen/internal/mapgen/config"
	"github.com/OCharnyshevich/terrain-mapgen/internal/mapgen/mission"
)

func main() {
	cfg := config.DefaultConfig()

	fs := flag.CommandLine
	configPath := fs.String("config", "", "optional JSON config file; explicit flags override it")
	verbose := fs.Bool("v", false, "enable debug logging")
	fs.StringVar(&cfg.Missions, "missions", cfg.Missions, "mission source: local path or go-getter URL (JS with CAMPAIGN_MISSIONS, or JSON)")
	fs.StringVar(&cfg.OutDir, "out-dir", cfg.OutDir, "output directory for mission maps and index.json")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "maps generated concurrently")
	fs.BoolVar(&cfg.WriteStats, "stats", cfg.WriteStats, "write <mission>.stats.json next to each map")
	config.BindSeedFlag(fs, "seed-offset", &cfg.SeedOffset, "added to every mission seed")
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

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	missions, err := mission.Load(ctx, cfg.Missions, cfg.SeedOffset)
	if err != nil {
		log.Error("load missions", "source", cfg.Missions, "error", err)
		os.Exit(1)
	}
	log.Info("loaded missions", "source", cfg.Missions, "count", len(missions))

	opts := batch.Options{
		Base:       cfg.Terrain,
		OutDir:     cfg.OutDir,
		Workers:    cfg.Workers,
		WriteStats: cfg.WriteStats,
	}
	if _, err := batch.Run(ctx, log, missions, opts); err != nil {
		log.Error("generate mission maps", "error", err)
		os.Exit(1)
	}
}

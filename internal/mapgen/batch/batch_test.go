package batch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OCharnyshevich/terrain-mapgen/internal/mapgen/mission"
	"github.com/OCharnyshevich/terrain-mapgen/internal/mapgen/storage"
	"github.com/OCharnyshevich/terrain-mapgen/pkg/terrain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testOptions(dir string, workers int) Options {
	base := terrain.DefaultConfig()
	base.Width = 48
	base.Height = 32
	return Options{Base: base, OutDir: dir, Workers: workers, WriteStats: true}
}

func testMissions() []mission.Mission {
	ids := []string{"m01-first-light", "m02-windward", "m03-gas-fields"}
	out := make([]mission.Mission, len(ids))
	for i, id := range ids {
		out[i] = mission.New(id, 0)
	}
	return out
}

func TestRunWritesMapsAndManifest(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "maps")
	missions := testMissions()

	m, err := Run(context.Background(), testLogger(), missions, testOptions(dir, 2))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if m.Image.Width != 48 || m.Image.Height != 32 {
		t.Errorf("manifest image = %+v", m.Image)
	}
	if len(m.Missions) != len(missions) {
		t.Fatalf("manifest has %d missions, want %d", len(m.Missions), len(missions))
	}
	for i, e := range m.Missions {
		if e.MissionID != missions[i].ID || e.Seed != missions[i].Seed {
			t.Errorf("entry %d = %+v, want mission %+v", i, e, missions[i])
		}

		f, err := os.Open(filepath.Join(dir, e.MapPNG))
		if err != nil {
			t.Fatalf("open map: %v", err)
		}
		cfg, err := png.DecodeConfig(f)
		f.Close()
		if err != nil {
			t.Fatalf("decode %s: %v", e.MapPNG, err)
		}
		if cfg.Width != 48 || cfg.Height != 32 {
			t.Errorf("%s size = %dx%d", e.MapPNG, cfg.Width, cfg.Height)
		}
		if _, err := os.Stat(filepath.Join(dir, e.StatsJSON)); err != nil {
			t.Errorf("stats file missing: %v", err)
		}
	}

	onDisk, err := storage.ReadManifest(filepath.Join(dir, ManifestName))
	if err != nil {
		t.Fatalf("ReadManifest failed: %v", err)
	}
	if len(onDisk.Missions) != len(missions) || onDisk.Missions[2].MissionID != "m03-gas-fields" {
		t.Errorf("manifest on disk = %+v", onDisk)
	}
}

func TestRunWorkerCountDoesNotChangeOutput(t *testing.T) {
	root := t.TempDir()
	serial := filepath.Join(root, "serial")
	parallel := filepath.Join(root, "parallel")

	if _, err := Run(context.Background(), testLogger(), testMissions(), testOptions(serial, 1)); err != nil {
		t.Fatalf("serial Run failed: %v", err)
	}
	if _, err := Run(context.Background(), testLogger(), testMissions(), testOptions(parallel, 3)); err != nil {
		t.Fatalf("parallel Run failed: %v", err)
	}

	for _, m := range testMissions() {
		a, err := os.ReadFile(filepath.Join(serial, m.FileName()+".png"))
		if err != nil {
			t.Fatal(err)
		}
		b, err := os.ReadFile(filepath.Join(parallel, m.FileName()+".png"))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(a, b) {
			t.Errorf("%s differs between worker counts", m.ID)
		}
	}
}

func TestRunMissionsDiffer(t *testing.T) {
	dir := t.TempDir()
	if _, err := Run(context.Background(), testLogger(), testMissions(), testOptions(dir, 1)); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	a, _ := os.ReadFile(filepath.Join(dir, "m01-first-light.png"))
	b, _ := os.ReadFile(filepath.Join(dir, "m02-windward.png"))
	if bytes.Equal(a, b) {
		t.Error("different missions produced identical maps")
	}
}

func TestRunRejectsBadDimensionsBeforeWriting(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	opts := testOptions(dir, 1)
	opts.Base.Width = 8

	_, err := Run(context.Background(), testLogger(), testMissions(), opts)
	if !errors.Is(err, terrain.ErrInvalidDimensions) {
		t.Fatalf("err = %v, want ErrInvalidDimensions", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("output directory created despite invalid config")
	}
}

func TestRunNoMissions(t *testing.T) {
	_, err := Run(context.Background(), testLogger(), nil, testOptions(t.TempDir(), 1))
	if !errors.Is(err, mission.ErrNoMissions) {
		t.Errorf("err = %v, want ErrNoMissions", err)
	}
}

func TestRunCollidingFileNames(t *testing.T) {
	dir := t.TempDir()
	missions := []mission.Mission{
		mission.New("a b", 0),
		mission.New("a/b", 0),
		mission.New("m01-first-light", 0),
	}

	m, err := Run(context.Background(), testLogger(), missions, testOptions(dir, 3))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := []string{
		fmt.Sprintf("a-b-%08x.png", missions[0].Seed),
		fmt.Sprintf("a-b-%08x.png", missions[1].Seed),
		"m01-first-light.png",
	}
	for i, e := range m.Missions {
		if e.MapPNG != want[i] {
			t.Errorf("entry %d MapPNG = %q, want %q", i, e.MapPNG, want[i])
		}
		if _, err := os.Stat(filepath.Join(dir, e.MapPNG)); err != nil {
			t.Errorf("map for %q missing: %v", e.MissionID, err)
		}
		if _, err := os.Stat(filepath.Join(dir, e.StatsJSON)); err != nil {
			t.Errorf("stats for %q missing: %v", e.MissionID, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "a-b.png")); !os.IsNotExist(err) {
		t.Error("unsuffixed a-b.png written for colliding ids")
	}
}

func TestRunCaseOnlyDifferenceCollides(t *testing.T) {
	dir := t.TempDir()
	missions := []mission.Mission{mission.New("Ridge", 0), mission.New("ridge", 0)}

	m, err := Run(context.Background(), testLogger(), missions, testOptions(dir, 2))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if m.Missions[0].MapPNG == "Ridge.png" || m.Missions[1].MapPNG == "ridge.png" {
		t.Errorf("case-only ids not disambiguated: %q, %q", m.Missions[0].MapPNG, m.Missions[1].MapPNG)
	}
}

func TestRunUnresolvableCollisionWritesNothing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	missions := []mission.Mission{{ID: "a b", Seed: 7}, {ID: "a/b", Seed: 7}}

	_, err := Run(context.Background(), testLogger(), missions, testOptions(dir, 1))
	if !errors.Is(err, ErrNameCollision) {
		t.Fatalf("err = %v, want ErrNameCollision", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("output directory created despite colliding names")
	}
}

func TestRunReportsExistingManifest(t *testing.T) {
	dir := t.TempDir()
	if _, err := Run(context.Background(), testLogger(), testMissions(), testOptions(dir, 1)); err != nil {
		t.Fatalf("first Run failed: %v", err)
	}

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	if _, err := Run(context.Background(), log, testMissions()[:1], testOptions(dir, 1)); err != nil {
		t.Fatalf("second Run failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "replacing existing manifest") || !strings.Contains(out, "missions=3") {
		t.Errorf("log does not report the previous manifest:\n%s", out)
	}

	onDisk, err := storage.ReadManifest(filepath.Join(dir, ManifestName))
	if err != nil {
		t.Fatal(err)
	}
	if len(onDisk.Missions) != 1 {
		t.Errorf("manifest has %d missions after rerun, want 1", len(onDisk.Missions))
	}
}

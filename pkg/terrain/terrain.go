// Package terrain synthesizes seeded heightfields and rasterizes them into
// classified biome maps (water, plains, mountain, mountaintop).
//
// Generation is a single synchronous pass: heightfield, slope field, level
// calibration, then classification and shading. The output depends only on
// the Config.
package terrain

// Result is the output of one generation run.
type Result struct {
	Width  int
	Height int
	// Pixels is the packed RGB buffer, len Width*Height*3.
	Pixels []byte
	Stats  Stats
	// Config is the normalized configuration the map was generated with.
	Config Config
}

// Generate produces the classified, hillshaded map described by cfg.
func Generate(cfg Config) (*Result, error) {
	cfg, err := cfg.Normalize()
	if err != nil {
		return nil, err
	}

	hf := BuildHeightfield(cfg)
	slopes := BuildSlopeField(hf)
	lv := Calibrate(hf, slopes, cfg)
	pix, counts := Rasterize(hf, slopes, lv, NewShader(cfg))

	return &Result{
		Width:  cfg.Width,
		Height: cfg.Height,
		Pixels: pix,
		Stats:  newStats(lv, cfg.TargetLandFraction, counts),
		Config: cfg,
	}, nil
}

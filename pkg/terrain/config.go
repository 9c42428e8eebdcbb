package terrain

import (
	"errors"
	"fmt"
	"math"
)

// MinDimension is the smallest accepted map width or height in pixels.
const MinDimension = 16

// ErrInvalidDimensions is returned when a map is narrower or shorter than MinDimension.
var ErrInvalidDimensions = errors.New("terrain dimensions are too small")

// Vec3 is a direction in map space: +x right, +y down, +z towards the viewer.
type Vec3 struct {
	X, Y, Z float64
}

// Config describes one terrain generation run.
type Config struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Seed   uint32 `json:"seed"`

	// TargetLandFraction is the share of cells that end up at or above sea level.
	TargetLandFraction      float64 `json:"target_land_fraction"`
	// MountaintopPercentile is the height quantile above which land is mountaintop.
	MountaintopPercentile   float64 `json:"mountaintop_percentile"`
	// MountainSlopePercentile is the land slope quantile above which land is mountain.
	MountainSlopePercentile float64 `json:"mountain_slope_percentile"`
	HillshadeStrength       float64 `json:"hillshade_strength"`

	// NoisePhaseX and NoisePhaseY shift every noise lookup of the synthesizer,
	// giving a different landscape for the same seed.
	NoisePhaseX float64 `json:"noise_phase_x,omitempty"`
	NoisePhaseY float64 `json:"noise_phase_y,omitempty"`

	Light          Vec3    `json:"light"`
	ShadeSteepness float64 `json:"shade_steepness"`
}

// DefaultLight is the light direction used for hillshading: from the upper left,
// above the map.
var DefaultLight = Vec3{X: -0.58, Y: -0.42, Z: 0.69}

// DefaultShadeSteepness scales the gradient when building surface normals.
const DefaultShadeSteepness = 2.6

// DefaultConfig returns a Config with the reference map settings.
func DefaultConfig() Config {
	return Config{
		Width:                   1800,
		Height:                  1080,
		Seed:                    1337,
		TargetLandFraction:      0.42,
		MountaintopPercentile:   0.95,
		MountainSlopePercentile: 0.83,
		HillshadeStrength:       0.22,
		Light:                   DefaultLight,
		ShadeSteepness:          DefaultShadeSteepness,
	}
}

// Normalize validates the dimensions and clamps every tuning parameter into
// its accepted range. Only undersized dimensions are an error.
func (c Config) Normalize() (Config, error) {
	if c.Width < MinDimension || c.Height < MinDimension {
		return Config{}, fmt.Errorf("%w: %dx%d, minimum is %dx%d",
			ErrInvalidDimensions, c.Width, c.Height, MinDimension, MinDimension)
	}

	def := DefaultConfig()
	c.TargetLandFraction = clampOr(c.TargetLandFraction, 0.05, 0.95, def.TargetLandFraction)
	c.MountaintopPercentile = clampOr(c.MountaintopPercentile, 0.50, 0.999, def.MountaintopPercentile)
	c.MountainSlopePercentile = clampOr(c.MountainSlopePercentile, 0.50, 0.999, def.MountainSlopePercentile)
	c.HillshadeStrength = clampOr(c.HillshadeStrength, 0, 4, def.HillshadeStrength)
	c.ShadeSteepness = clampOr(c.ShadeSteepness, 0, 100, def.ShadeSteepness)

	if !finite(c.NoisePhaseX) {
		c.NoisePhaseX = 0
	}
	if !finite(c.NoisePhaseY) {
		c.NoisePhaseY = 0
	}

	// The light is used as given; DefaultLight is only approximately unit length
	// and the shading factor is clamped anyway.
	if l := c.Light; !finite(l.X) || !finite(l.Y) || !finite(l.Z) {
		c.Light = def.Light
	}
	return c, nil
}

// clampOr clamps v into [lo, hi], substituting fallback for NaN.
func clampOr(v, lo, hi, fallback float64) float64 {
	if math.IsNaN(v) {
		return fallback
	}
	return clamp(v, lo, hi)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

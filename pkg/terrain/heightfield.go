package terrain

import (
	"math"

	"github.com/OCharnyshevich/terrain-mapgen/pkg/terrain/noise"
)

// Seed salts for the independent noise layers.
const (
	warpXSalt     uint32 = 0x0F0F0F0F
	warpYSalt     uint32 = 0xABCDEF01
	continentSalt uint32 = 0x001F1F1F
	macroSalt     uint32 = 0x001A2B3C
	detailSalt    uint32 = 0x004D5E6F
	ridgeSalt     uint32 = 0x00778899
)

// Elevation weights. Tuned by eye; changing them changes every map.
const (
	baseElevation   = 0.52
	continentWeight = 0.33
	macroWeight     = 0.24
	detailWeight    = 0.13
	ridgeWeight     = 0.14

	warpAmount = 0.11

	// Continent anchor and radii in normalized map coordinates.
	anchorX   = 0.52
	anchorY   = 0.53
	radiusX   = 0.80
	radiusY   = 0.66
	sinWaveA  = 0.19
	sinWaveB  = 0.14
	contNoise = 0.11
)

// BuildHeightfield synthesizes the elevation grid for cfg. cfg is expected to
// be normalized; see Config.Normalize.
func BuildHeightfield(cfg Config) *Heightfield {
	hf := NewGrid(cfg.Width, cfg.Height)
	s := sampler{seed: cfg.Seed, px: cfg.NoisePhaseX, py: cfg.NoisePhaseY}

	xDen := float64(max(1, cfg.Width-1))
	yDen := float64(max(1, cfg.Height-1))

	for y := 0; y < cfg.Height; y++ {
		ny := float64(y) / yDen
		row := y * cfg.Width
		for x := 0; x < cfg.Width; x++ {
			nx := float64(x) / xDen
			hf.Values[row+x] = s.elevation(nx, ny)
		}
	}
	return hf
}

// sampler evaluates the layered noise for one seed and noise phase.
type sampler struct {
	seed   uint32
	px, py float64
}

func (s sampler) fractal(x, y float64, salt uint32, octaves int) float64 {
	return noise.Fractal(x+s.px, y+s.py, s.seed^salt, octaves)
}

// elevation returns the height in [0, 1] at normalized coordinates (nx, ny).
func (s sampler) elevation(nx, ny float64) float64 {
	// Domain warp breaks up axis-aligned artifacts.
	wx := nx + warpAmount*s.fractal(nx*2.1+5.17, ny*2.1-3.47, warpXSalt, 4)
	wy := ny + warpAmount*s.fractal(nx*2.2-8.91, ny*2.0+6.13, warpYSalt, 4)

	dx := (wx - anchorX) / radiusX
	dy := (wy - anchorY) / radiusY
	continent := 1.0 - math.Sqrt(dx*dx+dy*dy)
	continent += sinWaveA * math.Sin(wx*4.6+wy*2.3)
	continent += sinWaveB * math.Sin(wx*2.1-wy*3.9)
	continent += contNoise * s.fractal(wx*1.8, wy*1.8, continentSalt, 3)
	continent = clamp(continent, -1, 1)

	macro := s.fractal(wx*3.7, wy*3.7, macroSalt, 5)
	detail := s.fractal(wx*8.8, wy*8.8, detailSalt, 4)
	ridge := 1.0 - math.Abs(s.fractal(wx*11.6, wy*11.6, ridgeSalt, 3))

	h := baseElevation
	h += continent * continentWeight
	h += macro * macroWeight
	h += detail * detailWeight
	h += (ridge - 0.5) * ridgeWeight
	return clamp(h, 0, 1)
}

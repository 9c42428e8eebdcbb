package terrain

import "math"

// Hillshade factor bounds.
const (
	MinShade = 0.75
	MaxShade = 1.25
)

// BuildSlopeField computes the slope magnitude of every cell: half the length
// of the clamped central-difference gradient.
func BuildSlopeField(hf *Heightfield) *SlopeField {
	sf := NewGrid(hf.Width, hf.Height)
	for y := 0; y < hf.Height; y++ {
		for x := 0; x < hf.Width; x++ {
			gx, gy := hf.Gradient(x, y)
			sf.Values[sf.Index(x, y)] = math.Sqrt(gx*gx+gy*gy) * 0.5
		}
	}
	return sf
}

// Shader turns the local gradient into a multiplicative brightness factor.
type Shader struct {
	Light     Vec3
	Steepness float64
	Strength  float64
}

// NewShader returns the shader configured by cfg.
func NewShader(cfg Config) Shader {
	return Shader{Light: cfg.Light, Steepness: cfg.ShadeSteepness, Strength: cfg.HillshadeStrength}
}

// Factor returns the shading factor at (x, y), within [MinShade, MaxShade].
func (s Shader) Factor(hf *Heightfield, x, y int) float64 {
	gx, gy := hf.Gradient(x, y)

	nx := -gx * s.Steepness
	ny := -gy * s.Steepness
	nz := 1.0
	inv := 1.0 / math.Sqrt(nx*nx+ny*ny+nz*nz)
	nx *= inv
	ny *= inv
	nz *= inv

	dot := clamp(nx*s.Light.X+ny*s.Light.Y+nz*s.Light.Z, -1, 1)
	return clamp(1.0+dot*s.Strength, MinShade, MaxShade)
}

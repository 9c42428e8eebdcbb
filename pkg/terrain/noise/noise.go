// Package noise implements seeded lattice value noise and its fractal sum.
// Every function is a pure function of its arguments: the same coordinates
// and seed give the same value on every run and platform.
package noise

import "math"

const (
	// DefaultLacunarity is the frequency multiplier between octaves.
	DefaultLacunarity = 2.02
	// DefaultGain is the amplitude multiplier between octaves.
	DefaultGain = 0.5

	octaveSeedStep = 911
)

// Hash2 maps an integer lattice point and a seed to a value in [0, 1].
func Hash2(ix, iy int, seed uint32) float64 {
	return hash(int64(ix), int64(iy), int64(seed))
}

// hash mixes the weighted sum at full width: the first shift is arithmetic and
// sees bits above 32 before the result is cut to a 32-bit word. The remaining
// steps wrap at 32 bits.
func hash(ix, iy, seed int64) float64 {
	n := ix*374761393 + iy*668265263 + seed*73856093
	u := uint32(n ^ n>>13)
	u *= 1274126177
	u ^= u >> 16
	return float64(u) / 4294967295.0
}

// Value returns smoothed value noise at (x, y) in the range [-1, 1].
func Value(x, y float64, seed uint32) float64 {
	return value(x, y, int64(seed))
}

// value takes a widened seed so octave seeds past the uint32 range keep
// their high bits.
func value(x, y float64, seed int64) float64 {
	fx0 := math.Floor(x)
	fy0 := math.Floor(y)
	ix := int64(fx0)
	iy := int64(fy0)

	sx := smoothstep(x - fx0)
	sy := smoothstep(y - fy0)

	v00 := hash(ix, iy, seed)
	v10 := hash(ix+1, iy, seed)
	v01 := hash(ix, iy+1, seed)
	v11 := hash(ix+1, iy+1, seed)

	i0 := lerp(v00, v10, sx)
	i1 := lerp(v01, v11, sx)
	return lerp(i0, i1, sy)*2.0 - 1.0
}

// Fractal layers octaves of value noise using the default lacunarity and gain.
func Fractal(x, y float64, seed uint32, octaves int) float64 {
	return FractalWith(x, y, seed, octaves, DefaultLacunarity, DefaultGain)
}

// FractalWith layers octaves of value noise. Each octave samples a distinct
// derived seed so the layers are decorrelated. Derived seeds do not wrap at
// 32 bits. The sum is divided by the total
// amplitude, keeping the result within [-1, 1] for any octave count.
func FractalWith(x, y float64, seed uint32, octaves int, lacunarity, gain float64) float64 {
	var total, maxVal float64
	amplitude := 1.0
	frequency := 1.0

	for octave := range octaves {
		octaveSeed := int64(seed) + int64(octave)*octaveSeedStep
		total += value(x*frequency, y*frequency, octaveSeed) * amplitude
		maxVal += amplitude
		amplitude *= gain
		frequency *= lacunarity
	}
	if maxVal <= 0 {
		return 0
	}
	return total / maxVal
}

func smoothstep(t float64) float64 {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t * t * (3.0 - 2.0*t)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

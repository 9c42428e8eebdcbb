package terrain

import (
	"math"
	"slices"
)

// Levels are the calibrated classification thresholds of one map.
type Levels struct {
	Sea           float64
	Mountaintop   float64
	MountainSlope float64
}

// Quantile returns the q-quantile of values using linear interpolation between
// order statistics at position q*(n-1). q is clamped to [0, 1]. An empty slice
// yields 0. values is not modified.
func Quantile(values []float64, q float64) float64 {
	switch len(values) {
	case 0:
		return 0
	case 1:
		return values[0]
	}
	if math.IsNaN(q) {
		q = 0.5
	}
	q = clamp(q, 0, 1)

	ordered := slices.Clone(values)
	slices.Sort(ordered)

	pos := q * float64(len(ordered)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return ordered[lo]
	}
	t := pos - float64(lo)
	return ordered[lo] + (ordered[hi]-ordered[lo])*t
}

// Calibrate derives the sea, mountaintop and mountain-slope levels from the
// height and slope fields. cfg is expected to be normalized.
func Calibrate(hf *Heightfield, slopes *SlopeField, cfg Config) Levels {
	sea := Quantile(hf.Values, 1.0-cfg.TargetLandFraction)
	top := Quantile(hf.Values, cfg.MountaintopPercentile)
	if top < sea {
		top = sea
	}

	// Only land slopes count, so sea-floor relief does not shift the threshold.
	land := make([]float64, 0, len(hf.Values))
	for i, h := range hf.Values {
		if h >= sea {
			land = append(land, slopes.Values[i])
		}
	}

	return Levels{
		Sea:           sea,
		Mountaintop:   top,
		MountainSlope: Quantile(land, cfg.MountainSlopePercentile),
	}
}

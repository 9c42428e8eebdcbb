package terrain

import (
	"math"
	"testing"
)

func TestQuantile(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		q      float64
		want   float64
	}{
		{"median even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"median unsorted", []float64{4, 1, 3, 2}, 0.5, 2.5},
		{"min", []float64{3, 1, 2}, 0, 1},
		{"max", []float64{3, 1, 2}, 1, 3},
		{"exact order statistic", []float64{10, 20, 30, 40, 50}, 0.25, 20},
		{"interpolated", []float64{0, 10}, 0.3, 3},
		{"single low q", []float64{5}, 0, 5},
		{"single high q", []float64{5}, 0.99, 5},
		{"single out of range q", []float64{5}, 7, 5},
		{"empty", nil, 0.5, 0},
		{"q below range clamps", []float64{1, 2, 3}, -1, 1},
		{"q above range clamps", []float64{1, 2, 3}, 2, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Quantile(tt.values, tt.q)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Quantile(%v, %v) = %v, want %v", tt.values, tt.q, got, tt.want)
			}
		})
	}
}

func TestQuantileDoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Quantile(values, 0.5)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input was modified: %v", values)
	}
}

func TestCalibrateUsesLandSlopesOnly(t *testing.T) {
	hf := &Heightfield{Width: 4, Height: 1, Values: []float64{0.1, 0.2, 0.8, 0.9}}
	// Water cells carry huge slopes that must not affect the threshold.
	slopes := &SlopeField{Width: 4, Height: 1, Values: []float64{100, 100, 0.2, 0.4}}
	cfg := Config{TargetLandFraction: 0.5, MountaintopPercentile: 0.999, MountainSlopePercentile: 0.5}

	lv := Calibrate(hf, slopes, cfg)
	if math.Abs(lv.Sea-0.5) > 1e-12 {
		t.Errorf("sea level = %v, want 0.5", lv.Sea)
	}
	if math.Abs(lv.MountainSlope-0.3) > 1e-12 {
		t.Errorf("mountain slope level = %v, want 0.3", lv.MountainSlope)
	}
}

func TestCalibrateMountaintopNotBelowSea(t *testing.T) {
	hf := &Heightfield{Width: 4, Height: 1, Values: []float64{0.1, 0.2, 0.3, 0.4}}
	slopes := &SlopeField{Width: 4, Height: 1, Values: make([]float64, 4)}
	// Land fraction and percentile chosen so the raw quantiles cross.
	cfg := Config{TargetLandFraction: 0.05, MountaintopPercentile: 0.5, MountainSlopePercentile: 0.5}

	lv := Calibrate(hf, slopes, cfg)
	if lv.Mountaintop < lv.Sea {
		t.Errorf("mountaintop level %v below sea level %v", lv.Mountaintop, lv.Sea)
	}
}

package terrain

import "image/color"

// Biome is the terrain class of one cell.
type Biome uint8

const (
	Water Biome = iota
	Plains
	Mountain
	Mountaintop
)

func (b Biome) String() string {
	switch b {
	case Water:
		return "water"
	case Plains:
		return "plains"
	case Mountain:
		return "mountain"
	case Mountaintop:
		return "mountaintop"
	}
	return "unknown"
}

// Palette holds the base colour of each biome, indexed by Biome.
var Palette = [...]color.RGBA{
	Water:       {R: 68, G: 134, B: 195, A: 255},
	Plains:      {R: 132, G: 190, B: 116, A: 255},
	Mountain:    {R: 204, G: 175, B: 136, A: 255},
	Mountaintop: {R: 246, G: 246, B: 244, A: 255},
}

// Classify maps a cell's height and slope to a biome. Mountaintop wins over
// mountain when both thresholds are reached.
func Classify(h, slope float64, lv Levels) Biome {
	if h < lv.Sea {
		return Water
	}
	if h >= lv.Mountaintop {
		return Mountaintop
	}
	if slope >= lv.MountainSlope {
		return Mountain
	}
	return Plains
}

// Stats summarizes a generated map.
type Stats struct {
	SeaLevel            float64 `json:"sea_level"`
	MountaintopLevel    float64 `json:"mountaintop_level"`
	MountainSlopeLevel  float64 `json:"mountain_slope_level"`
	TargetLandFraction  float64 `json:"target_land_fraction"`
	ActualLandFraction  float64 `json:"actual_land_fraction"`
	WaterFraction       float64 `json:"water_fraction"`
	PlainsFraction      float64 `json:"plains_fraction"`
	MountainFraction    float64 `json:"mountain_fraction"`
	MountaintopFraction float64 `json:"mountaintop_fraction"`
}

// Rasterize classifies every cell and writes its shaded colour into a packed
// RGB buffer of len w*h*3. Land colours are multiplied by the hillshade
// factor; water is left flat.
func Rasterize(hf *Heightfield, slopes *SlopeField, lv Levels, shader Shader) ([]byte, [4]int) {
	pix := make([]byte, len(hf.Values)*3)
	var counts [4]int

	for y := 0; y < hf.Height; y++ {
		row := y * hf.Width
		for x := 0; x < hf.Width; x++ {
			idx := row + x
			b := Classify(hf.Values[idx], slopes.Values[idx], lv)
			counts[b]++

			c := Palette[b]
			p := idx * 3
			if b == Water {
				pix[p], pix[p+1], pix[p+2] = c.R, c.G, c.B
				continue
			}
			f := shader.Factor(hf, x, y)
			pix[p] = shade(c.R, f)
			pix[p+1] = shade(c.G, f)
			pix[p+2] = shade(c.B, f)
		}
	}
	return pix, counts
}

func shade(v uint8, f float64) uint8 {
	return uint8(clamp(float64(v)*f, 0, 255))
}

func newStats(lv Levels, target float64, counts [4]int) Stats {
	total := 0
	for _, n := range counts {
		total += n
	}
	frac := func(n int) float64 {
		if total == 0 {
			return 0
		}
		return float64(n) / float64(total)
	}
	return Stats{
		SeaLevel:            lv.Sea,
		MountaintopLevel:    lv.Mountaintop,
		MountainSlopeLevel:  lv.MountainSlope,
		TargetLandFraction:  target,
		ActualLandFraction:  frac(counts[Plains] + counts[Mountain] + counts[Mountaintop]),
		WaterFraction:       frac(counts[Water]),
		PlainsFraction:      frac(counts[Plains]),
		MountainFraction:    frac(counts[Mountain]),
		MountaintopFraction: frac(counts[Mountaintop]),
	}
}

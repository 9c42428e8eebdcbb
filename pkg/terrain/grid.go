package terrain

// Grid stores a 2D field of float64 values in row-major order.
type Grid struct {
	Width, Height int
	Values        []float64
}

// Heightfield holds elevations in [0, 1], one per pixel.
type Heightfield = Grid

// SlopeField holds non-negative slope magnitudes, one per pixel.
type SlopeField = Grid

// NewGrid allocates a zeroed grid with the given dimensions.
func NewGrid(w, h int) *Grid {
	return &Grid{Width: w, Height: h, Values: make([]float64, w*h)}
}

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.Width + x }

// At returns the value at (x, y).
func (g *Grid) At(x, y int) float64 { return g.Values[y*g.Width+x] }

// Gradient returns the central differences (right-left, down-up) at (x, y).
// Neighbours outside the grid are replaced by the cell itself.
func (g *Grid) Gradient(x, y int) (gx, gy float64) {
	idx := g.Index(x, y)
	here := g.Values[idx]

	left, right, up, down := here, here, here, here
	if x > 0 {
		left = g.Values[idx-1]
	}
	if x < g.Width-1 {
		right = g.Values[idx+1]
	}
	if y > 0 {
		up = g.Values[idx-g.Width]
	}
	if y < g.Height-1 {
		down = g.Values[idx+g.Width]
	}
	return right - left, down - up
}

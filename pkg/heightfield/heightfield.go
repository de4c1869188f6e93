// Package heightfield holds the dense height buffers passed between noise
// synthesis, fBm composition, erosion and export.
package heightfield

// Epsilon floors normalization denominators so constant fields stay finite.
const Epsilon = 1e-9

// Line is a 1D height field.
type Line []float64

// Grid is a 2D height field stored row-major in one contiguous buffer.
// Index = y*Width + x.
type Grid struct {
	Width  int
	Height int
	Cells  []float64
}

// NewGrid allocates a zeroed width×height grid.
func NewGrid(width, height int) *Grid {
	return &Grid{Width: width, Height: height, Cells: make([]float64, width*height)}
}

// Index returns the buffer offset of (x, y).
func (g *Grid) Index(x, y int) int {
	return y*g.Width + x
}

// At returns the height at (x, y).
func (g *Grid) At(x, y int) float64 {
	return g.Cells[g.Index(x, y)]
}

// Set stores the height at (x, y).
func (g *Grid) Set(x, y int, v float64) {
	g.Cells[g.Index(x, y)] = v
}

// Row returns a view of row y. Writes go through to the grid.
func (g *Grid) Row(y int) []float64 {
	return g.Cells[y*g.Width : (y+1)*g.Width]
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{Width: g.Width, Height: g.Height, Cells: make([]float64, len(g.Cells))}
	copy(c.Cells, g.Cells)
	return c
}

// Normalize rescales the grid into [0, 1] in place and returns it.
func (g *Grid) Normalize() *Grid {
	Normalize(g.Cells)
	return g
}

// MinMax returns the smallest and largest heights.
func (g *Grid) MinMax() (lo, hi float64) {
	return MinMax(g.Cells)
}

// Sum returns the total height of the grid.
func (g *Grid) Sum() float64 {
	return Sum(g.Cells)
}

// Clone returns a copy of the line.
func (l Line) Clone() Line {
	c := make(Line, len(l))
	copy(c, l)
	return c
}

// Normalize rescales the line into [0, 1] in place and returns it.
func (l Line) Normalize() Line {
	Normalize(l)
	return l
}

// MinMax returns the smallest and largest heights.
func (l Line) MinMax() (lo, hi float64) {
	return MinMax(l)
}

// Sum returns the total height of the line.
func (l Line) Sum() float64 {
	return Sum(l)
}

// Grid returns the line as a 1×len(l) grid sharing the same buffer.
func (l Line) Grid() *Grid {
	return &Grid{Width: len(l), Height: 1, Cells: l}
}

// Normalize applies (v-min)/(max-min+Epsilon) to every value. Empty input is
// left alone; a constant input becomes all zeros.
func Normalize(vals []float64) {
	if len(vals) == 0 {
		return
	}
	lo, hi := MinMax(vals)
	den := hi - lo + Epsilon
	for i, v := range vals {
		vals[i] = (v - lo) / den
	}
}

// MinMax returns the extremes of vals, or (0, 0) when vals is empty.
func MinMax(vals []float64) (lo, hi float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	lo, hi = vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Sum adds up vals.
func Sum(vals []float64) float64 {
	var total float64
	for _, v := range vals {
		total += v
	}
	return total
}

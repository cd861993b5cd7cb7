// Package occgrid holds the boolean occupancy grid that drives the LED
// matrix.
//
// The grid is square and row-major with row 0 at the bottom, matching
// sensor space where y grows upward. Rows returns the rows top-first for
// display. Cells can only be switched on between resets; nothing drawn
// within a frame is ever erased by a later shape.
package occgrid

// Grid is a Width×Width boolean buffer. It is allocated once and reused
// across frames via Reset.
type Grid struct {
	width int
	cells []bool // cells[y*width+x]
}

// New allocates an all-false grid. Non-positive widths yield an empty grid.
func New(width int) *Grid {
	if width < 0 {
		width = 0
	}
	return &Grid{width: width, cells: make([]bool, width*width)}
}

// Width returns the number of cells along each side.
func (g *Grid) Width() int { return g.width }

// InBounds reports whether (x, y) is inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.width
}

// Reset switches every cell off.
func (g *Grid) Reset() {
	clear(g.cells)
}

// Set switches the cell (x, y) on. Out-of-range writes are silently
// ignored.
func (g *Grid) Set(x, y int) {
	if g.InBounds(x, y) {
		g.cells[y*g.width+x] = true
	}
}

// SetSpan switches on the inclusive run x0..x1 of row y, clipped to the
// grid.
func (g *Grid) SetSpan(y, x0, x1 int) {
	if y < 0 || y >= g.width {
		return
	}
	x0 = max(x0, 0)
	x1 = min(x1, g.width-1)
	if x0 > x1 {
		return
	}
	row := g.cells[y*g.width : (y+1)*g.width]
	for x := x0; x <= x1; x++ {
		row[x] = true
	}
}

// At reports whether (x, y) is on. Out-of-range cells read as off.
func (g *Grid) At(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return g.cells[y*g.width+x]
}

// Count returns the number of cells that are on.
func (g *Grid) Count() int {
	n := 0
	for _, c := range g.cells {
		if c {
			n++
		}
	}
	return n
}

// Rows returns a copy of the grid as display rows, top row first: Rows()[0]
// is grid row Width-1.
func (g *Grid) Rows() [][]bool {
	out := make([][]bool, g.width)
	for i := range out {
		y := g.width - 1 - i
		row := make([]bool, g.width)
		copy(row, g.cells[y*g.width:(y+1)*g.width])
		out[i] = row
	}
	return out
}

// Equal reports whether both grids have the same size and cells.
func (g *Grid) Equal(o *Grid) bool {
	if g.width != o.width {
		return false
	}
	for i, c := range g.cells {
		if o.cells[i] != c {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := New(g.width)
	copy(c.cells, g.cells)
	return c
}

// String draws the grid top row first with '#' for on and '.' for off,
// one line per row. It is meant for tests and debugging.
func (g *Grid) String() string {
	b := make([]byte, 0, g.width*(g.width+1))
	for i, row := range g.Rows() {
		if i > 0 {
			b = append(b, '\n')
		}
		for _, c := range row {
			if c {
				b = append(b, '#')
			} else {
				b = append(b, '.')
			}
		}
	}
	return string(b)
}

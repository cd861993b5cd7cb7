// Package ledbuf renders an occupancy grid as styled terminal text, so the
// LED matrix can be previewed without the hardware.
//
// Each terminal cell holds a rune and a StyleKey (an int enum). At render
// time the caller provides a map[StyleKey]lipgloss.Style, which keeps the
// buffer independent of any color scheme. FromGrid packs two grid rows into
// one terminal line with half-block glyphs, which keeps the LED pixels
// roughly square in a typical terminal font.
package ledbuf

// StyleKey identifies a visual style.
type StyleKey int

// Cell is a single terminal character with its style.
type Cell struct {
	Ch    rune
	Style StyleKey
}

// Buffer is a 2D grid of styled terminal cells, indexed [row][col] with
// row 0 at the top.
type Buffer struct {
	W, H  int
	Cells [][]Cell
}

// New creates a Buffer of the given size filled with spaces in
// defaultStyle. Negative sizes are treated as zero.
func New(w, h int, defaultStyle StyleKey) *Buffer {
	w = max(w, 0)
	h = max(h, 0)
	b := &Buffer{W: w, H: h, Cells: make([][]Cell, h)}
	for y := range b.Cells {
		b.Cells[y] = make([]Cell, w)
	}
	b.Fill(defaultStyle)
	return b
}

// InBounds reports whether (x, y) is inside the buffer.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

// Set writes one cell. Out-of-bounds writes are ignored.
func (b *Buffer) Set(x, y int, ch rune, style StyleKey) {
	if b.InBounds(x, y) {
		b.Cells[y][x] = Cell{Ch: ch, Style: style}
	}
}

// Fill resets every cell to a space in the given style.
func (b *Buffer) Fill(style StyleKey) {
	for y := range b.Cells {
		for x := range b.Cells[y] {
			b.Cells[y][x] = Cell{Ch: ' ', Style: style}
		}
	}
}

// GridReader is the read side of an occupancy grid: a square of cells with
// row 0 at the bottom.
type GridReader interface {
	Width() int
	At(x, y int) bool
}

// Half-block glyphs indexed by (upper lit) | (lower lit)<<1.
var halfBlocks = [4]rune{' ', '▀', '▄', '█'}

// FromGrid draws g into a new buffer, two grid rows per terminal line,
// top grid row first. Terminal cells with any lit half get the lit style,
// fully dark cells the dark style. The lit style is expected to use the LED
// color as foreground and the dark color as background.
func FromGrid(g GridReader, lit, dark StyleKey) *Buffer {
	w := g.Width()
	b := New(w, (w+1)/2, dark)
	for row := 0; row < b.H; row++ {
		upper := w - 1 - 2*row
		lower := upper - 1
		for x := 0; x < w; x++ {
			idx := 0
			if g.At(x, upper) {
				idx |= 1
			}
			if lower >= 0 && g.At(x, lower) {
				idx |= 2
			}
			if idx != 0 {
				b.Cells[row][x] = Cell{Ch: halfBlocks[idx], Style: lit}
			}
		}
	}
	return b
}

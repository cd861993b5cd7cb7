package preview

import (
	"image"
	"strings"

	"charm.land/lipgloss/v2"
)

// region is a named rectangle of the terminal.
type region struct {
	name string
	rect image.Rectangle
}

// layout holds the computed regions for one terminal size.
type layout map[string]image.Rectangle

// layoutBuilder carves fixed bands off the edges of the terminal and hands
// whatever is left to the last region.
type layoutBuilder struct {
	termW, termH int
	top, bottom  int // rows consumed
	left         int // columns consumed
	regions      []region
}

func newLayout(termW, termH int) *layoutBuilder {
	return &layoutBuilder{termW: termW, termH: termH}
}

func (b *layoutBuilder) topFixed(name string, height int) *layoutBuilder {
	y := b.top
	b.regions = append(b.regions, region{name, image.Rect(0, y, b.termW, y+height)})
	b.top += height
	return b
}

func (b *layoutBuilder) bottomFixed(name string, height int) *layoutBuilder {
	y := b.termH - b.bottom - height
	b.regions = append(b.regions, region{name, image.Rect(0, y, b.termW, y+height)})
	b.bottom += height
	return b
}

// leftFixed reserves columns on the left, between the top and bottom bands.
func (b *layoutBuilder) leftFixed(name string, width int) *layoutBuilder {
	x := b.left
	width = min(width, b.termW-x)
	b.regions = append(b.regions, region{name, image.Rect(x, b.top, x+width, b.termH-b.bottom)})
	b.left += width
	return b
}

func (b *layoutBuilder) remaining(name string) *layoutBuilder {
	b.regions = append(b.regions, region{name, image.Rect(b.left, b.top, b.termW, b.termH-b.bottom)})
	return b
}

// build clamps degenerate regions to the empty rectangle.
func (b *layoutBuilder) build() layout {
	l := make(layout, len(b.regions))
	for _, r := range b.regions {
		if r.rect.Min.X >= r.rect.Max.X || r.rect.Min.Y >= r.rect.Max.Y {
			r.rect = image.Rectangle{}
		}
		l[r.name] = r.rect
	}
	return l
}

// fillLayer paints r with style's background.
func fillLayer(r image.Rectangle, style lipgloss.Style, id string) *lipgloss.Layer {
	w, h := r.Dx(), r.Dy()
	if w <= 0 || h <= 0 {
		return lipgloss.NewLayer("").X(r.Min.X).Y(r.Min.Y).ID(id)
	}
	lines := make([]string, h)
	for i := range lines {
		lines[i] = strings.Repeat(" ", w)
	}
	return lipgloss.NewLayer(style.Render(strings.Join(lines, "\n"))).
		X(r.Min.X).Y(r.Min.Y).Z(0).ID(id)
}

// barLayer renders a one-line band across the full width of r.
func barLayer(content string, r image.Rectangle, style lipgloss.Style, id string) *lipgloss.Layer {
	rendered := style.Width(max(r.Dx(), 0)).MaxHeight(1).Render(content)
	return lipgloss.NewLayer(rendered).X(r.Min.X).Y(r.Min.Y).Z(1).ID(id)
}

// separatorLayer draws a vertical rule of the given height.
func separatorLayer(x, y, height int, style lipgloss.Style) *lipgloss.Layer {
	lines := make([]string, max(height, 0))
	for i := range lines {
		lines[i] = "│"
	}
	return lipgloss.NewLayer(style.Render(strings.Join(lines, "\n"))).X(x).Y(y).Z(1).ID("separator")
}

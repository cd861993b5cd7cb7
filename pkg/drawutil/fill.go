package drawutil

import (
	"image"
	"math"
)

// Target receives the cells of a filled shape. Implementations must
// ignore coordinates they cannot store.
type Target interface {
	Set(x, y int)
}

// SpanTarget is an optional fast path: a Target that can set the
// inclusive run x0..x1 of row y in one call.
type SpanTarget interface {
	Target
	SetSpan(y, x0, x1 int)
}

// Filler fills convex outlines row by row. For each row spanned by the
// outline it finds the leftmost and rightmost boundary point on that row
// and sets every cell between them. Rows without boundary points are left
// untouched. Concave outlines are filled as their row-wise hull.
//
// Internal buffers grow as needed and are reused, so a long-lived Filler
// does not allocate in steady state. A Filler is not safe for concurrent
// use; the zero value is ready to use.
type Filler struct {
	outline []image.Point
	minX    []int
	maxX    []int
}

// Fill scans the union of the given boundary point sets and fills dst.
func (f *Filler) Fill(dst Target, outlines ...[]image.Point) {
	minY, maxY := math.MaxInt, math.MinInt
	for _, pts := range outlines {
		for _, p := range pts {
			minY = min(minY, p.Y)
			maxY = max(maxY, p.Y)
		}
	}
	if minY > maxY {
		return
	}

	rows := maxY - minY + 1
	f.minX = resize(f.minX, rows)
	f.maxX = resize(f.maxX, rows)
	for i := range rows {
		f.minX[i] = math.MaxInt
		f.maxX[i] = math.MinInt
	}
	for _, pts := range outlines {
		for _, p := range pts {
			r := p.Y - minY
			f.minX[r] = min(f.minX[r], p.X)
			f.maxX[r] = max(f.maxX[r], p.X)
		}
	}

	spans, fast := dst.(SpanTarget)
	for r := range rows {
		x0, x1 := f.minX[r], f.maxX[r]
		if x0 > x1 {
			continue
		}
		y := minY + r
		if fast {
			spans.SetSpan(y, x0, x1)
			continue
		}
		for x := x0; x <= x1; x++ {
			dst.Set(x, y)
		}
	}
}

// FillQuad rasterizes the closed outline c[0]→c[1]→c[2]→c[3]→c[0] and
// fills it.
func (f *Filler) FillQuad(dst Target, c [4]image.Point) {
	f.outline = f.outline[:0]
	for i := range c {
		f.outline = AppendLine(f.outline, c[i], c[(i+1)%4])
	}
	f.Fill(dst, f.outline)
}

// FillCircle fills a disc of the given radius around center.
func (f *Filler) FillCircle(dst Target, center image.Point, radius int) {
	f.outline = AppendCircle(f.outline[:0], center, radius)
	f.Fill(dst, f.outline)
}

// ScanFill fills the outline into dst using a temporary Filler.
func ScanFill(dst Target, outlines ...[]image.Point) {
	var f Filler
	f.Fill(dst, outlines...)
}

func resize(s []int, n int) []int {
	if cap(s) < n {
		return make([]int, n)
	}
	return s[:n]
}

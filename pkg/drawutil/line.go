// Package drawutil provides the integer rasterization primitives used to
// turn skeleton bones into occupancy-grid cells: Bresenham lines, tapered
// rectangle corners, midpoint circles and a min/max scan-line fill.
package drawutil

import "image"

// Bresenham returns the integer points on the line from (x0,y0) to (x1,y1).
// The result always includes both endpoints, has max(|dx|,|dy|)+1 points
// and consecutive points are 8-adjacent.
func Bresenham(x0, y0, x1, y1 int) []image.Point {
	return AppendLine(nil, image.Pt(x0, y0), image.Pt(x1, y1))
}

// AppendLine appends the points of the line a→b to dst and returns the
// extended slice. It steps one cell along the major axis per point and
// moves the minor axis whenever the accumulated error reaches the major
// length.
func AppendLine(dst []image.Point, a, b image.Point) []image.Point {
	dx := b.X - a.X
	dy := b.Y - a.Y
	sx := sign(dx)
	sy := sign(dy)

	major, minor := abs(dx), abs(dy)
	// Major-axis step and the extra step taken when the minor axis advances.
	mx, my := sx, 0
	if minor > major {
		major, minor = minor, major
		mx, my = 0, sy
	}

	dst = grow(dst, major+1)
	x, y := a.X, a.Y
	acc := major / 2
	for i := 0; i <= major; i++ {
		dst = append(dst, image.Pt(x, y))
		acc += minor
		if acc >= major {
			acc -= major
			x += sx
			y += sy
		} else {
			x += mx
			y += my
		}
	}
	return dst
}

func grow(s []image.Point, n int) []image.Point {
	if cap(s)-len(s) >= n {
		return s
	}
	out := make([]image.Point, len(s), len(s)+n)
	copy(out, s)
	return out
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

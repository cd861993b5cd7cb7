package drawutil

import (
	"image"
	"math"

	"seehuhn.de/go/geom/vec"
)

// Corners returns the four corners of a bone from a to b that is widthA
// cells wide at a and widthB cells wide at b. The corners are ordered
// a+, b+, b-, a- so that consecutive corners form the four edges of a
// convex outline.
//
// A width w is split into half = w/2 on the positive side of the
// perpendicular and w-half-1 on the negative side, so an axis-aligned bone
// covers exactly w cells across. Widths below 1 are treated as 1.
//
// If a == b there is no direction; the result is an axis-aligned square
// around a sized by the larger width.
func Corners(a, b image.Point, widthA, widthB int) [4]image.Point {
	widthA = max(widthA, 1)
	widthB = max(widthB, 1)

	if a == b {
		w := max(widthA, widthB)
		pos, neg := split(w)
		return [4]image.Point{
			image.Pt(a.X+pos, a.Y+pos),
			image.Pt(a.X+pos, a.Y-neg),
			image.Pt(a.X-neg, a.Y-neg),
			image.Pt(a.X-neg, a.Y+pos),
		}
	}

	pa := vec.Vec2{X: float64(a.X), Y: float64(a.Y)}
	pb := vec.Vec2{X: float64(b.X), Y: float64(b.Y)}
	d := pb.Sub(pa)
	d = d.Mul(1 / d.Length())
	n := vec.Vec2{X: -d.Y, Y: d.X}

	posA, negA := split(widthA)
	posB, negB := split(widthB)
	return [4]image.Point{
		offset(pa, n, float64(posA)),
		offset(pb, n, float64(posB)),
		offset(pb, n, -float64(negB)),
		offset(pa, n, -float64(negA)),
	}
}

// split divides a width into the cell counts on either side of the axis
// cell.
func split(w int) (pos, neg int) {
	half := w / 2
	other := w - half
	return half, other - 1
}

func offset(p, n vec.Vec2, k float64) image.Point {
	q := p.Add(n.Mul(k))
	return image.Pt(int(math.Round(q.X)), int(math.Round(q.Y)))
}

// Circle returns the perimeter cells of a circle of the given radius around
// center, using the midpoint algorithm: one octant is generated
// incrementally and mirrored into the other seven. A radius of zero or less
// yields the center alone. Points on octant boundaries may repeat.
func Circle(center image.Point, radius int) []image.Point {
	return AppendCircle(nil, center, radius)
}

// AppendCircle is like Circle but appends to dst.
func AppendCircle(dst []image.Point, center image.Point, radius int) []image.Point {
	if radius <= 0 {
		return append(dst, center)
	}
	cx, cy := center.X, center.Y
	x, y := 0, radius
	d := 1 - radius
	for x <= y {
		dst = append(dst,
			image.Pt(cx+x, cy+y), image.Pt(cx+x, cy-y),
			image.Pt(cx-x, cy+y), image.Pt(cx-x, cy-y),
			image.Pt(cx+y, cy+x), image.Pt(cx+y, cy-x),
			image.Pt(cx-y, cy+x), image.Pt(cx-y, cy-x),
		)
		if d < 0 {
			d += 2*x + 3
		} else {
			d += 2*(x-y) + 5
			y--
		}
		x++
	}
	return dst
}

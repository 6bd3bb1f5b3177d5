package raster

import (
	"image"
	"math"

	"github.com/rook-computer/softfb/internal/layout"
)

// Circle draws a filled circle in two passes: hard interior spans, then a
// one pixel antialiased rim. For every column (and, past the 45 degree
// point, every row) the ideal boundary sqrt(r^2 - d^2) is split into its
// integer part i and fraction f; the pixel just outside i is blended as
// dst*(1-f) + col*f over whatever the interior pass left there.
//
// Damage is the box center +/- radius, which contains the rim: the outer
// pixel only receives coverage when f > 0, i.e. when i < radius. Only rows
// and rim columns inside the buffer are walked.
func (c *Canvas) Circle(cx, cy, radius int, col Color) {
	if radius < 0 {
		return
	}
	p := col.Packed()
	lo, hi := visibleOffsets(cy, radius, c.fb.height)
	for dy := lo; dy <= hi; dy++ {
		dx := halfChord(radius, dy)
		c.hspan(cy+dy, cx-dx, cx+dx, p)
	}

	octant := int(float64(radius) / math.Sqrt2)
	// rim above and below, sampled per visible column
	lo, hi = visibleOffsets(cx, octant, c.fb.width)
	for d := lo; d <= hi; d++ {
		i, w := rimCoverage(radius, d)
		c.blendAt(cx+d, cy+i+1, p, w)
		c.blendAt(cx+d, cy-i-1, p, w)
	}
	// rim left and right, sampled per visible row
	lo, hi = visibleOffsets(cy, octant, c.fb.height)
	for d := lo; d <= hi; d++ {
		i, w := rimCoverage(radius, d)
		c.blendAt(cx+i+1, cy+d, p, w)
		c.blendAt(cx-i-1, cy+d, p, w)
	}
	c.damage.Report(layout.Around(image.Pt(cx, cy), radius, radius))
}

// rimCoverage splits the boundary sqrt(r^2 - d^2) into its integer part and
// the blend weight of the pixel just outside it.
func rimCoverage(radius, d int) (int, uint32) {
	edge := math.Sqrt((float64(radius) - float64(d)) * (float64(radius) + float64(d)))
	i := int(edge)
	return i, coverage(edge - float64(i))
}

// halfChord returns floor(sqrt(r^2 - d^2)) for |d| <= r. Radii whose square
// does not fit in an int64 fall back to float64.
func halfChord(r, d int) int {
	if r <= maxExactRadius {
		r64, d64 := int64(r), int64(d)
		return int(isqrt(r64*r64 - d64*d64))
	}
	return int(math.Sqrt((float64(r) - float64(d)) * (float64(r) + float64(d))))
}

// visibleOffsets returns the offsets d in [-r, r] for which center+d lies in
// [0, limit). lo > hi when none does.
func visibleOffsets(center, r, limit int) (lo, hi int) {
	lo, hi = -r, r
	if -center > lo {
		lo = -center
	}
	if limit-1-center < hi {
		hi = limit - 1 - center
	}
	return lo, hi
}

// maxExactRadius bounds the radii for which squares stay exact in int64.
const maxExactRadius = 1<<31 - 1

// maxTracedRadius bounds the radii traced by the integer midpoint
// recurrence: its decision terms reach 4*rx^2*ry^2, which must fit in int64.
const maxTracedRadius = 1 << 15

// Ellipse fills an axis aligned ellipse with the two region midpoint
// algorithm. The first quadrant boundary is traced once into a table of half
// widths per row offset, then each visible row is filled exactly once with
// the width mirrored left and right of the center. Radii past
// maxTracedRadius take their half widths from the ellipse equation, one
// visible row at a time.
func (c *Canvas) Ellipse(cx, cy, rx, ry int, col Color) {
	if rx < 0 || ry < 0 {
		return
	}
	p := col.Packed()
	lo, hi := visibleOffsets(cy, ry, c.fb.height)
	if lo <= hi {
		halfWidth := func(dy int) int { return ellipseHalfWidth(rx, ry, dy) }
		if rx <= maxTracedRadius && ry <= maxTracedRadius {
			table := ellipseHalfWidths(int64(rx), int64(ry))
			halfWidth = func(dy int) int { return table[abs(dy)] }
		}
		for dy := lo; dy <= hi; dy++ {
			hw := halfWidth(dy)
			c.hspan(cy+dy, cx-hw, cx+hw, p)
		}
	}
	c.damage.Report(layout.Around(image.Pt(cx, cy), rx, ry))
}

// ellipseHalfWidth returns the largest x whose pixel center on row offset dy
// lies inside the ellipse.
func ellipseHalfWidth(rx, ry, dy int) int {
	if ry == 0 {
		return rx
	}
	t := float64(dy) / float64(ry)
	return int(float64(rx) * math.Sqrt(1-t*t))
}

// ellipseHalfWidths returns, for each row offset 0..ry, the largest x on the
// midpoint ellipse boundary.
func ellipseHalfWidths(rx, ry int64) []int {
	half := make([]int, ry+1)
	if ry == 0 {
		half[0] = int(rx)
		return half
	}
	rx2, ry2 := rx*rx, ry*ry
	x, y := int64(0), ry
	px, py := int64(0), 2*rx2*y
	plot := func() {
		if int(x) > half[y] {
			half[y] = int(x)
		}
	}

	// region 1: |slope| < 1, step x every iteration
	d1 := ry2 - rx2*ry + rx2/4
	for px < py {
		plot()
		x++
		px += 2 * ry2
		if d1 < 0 {
			d1 += ry2 + px
		} else {
			y--
			py -= 2 * rx2
			d1 += ry2 + px - py
		}
	}

	// region 2: |slope| >= 1, step y every iteration
	d2 := ry2*(2*x+1)*(2*x+1)/4 + rx2*(y-1)*(y-1) - rx2*ry2
	for y >= 0 {
		plot()
		y--
		py -= 2 * rx2
		if d2 > 0 {
			d2 += rx2 - py
		} else {
			x++
			px += 2 * ry2
			d2 += rx2 - py + px
		}
	}
	return half
}

// coverage converts a fraction in [0, 1) to a blend weight in [0, 255].
func coverage(f float64) uint32 {
	return uint32(f*255 + 0.5)
}

// isqrt returns floor(sqrt(v)) for v >= 0.
func isqrt(v int64) int64 {
	if v <= 0 {
		return 0
	}
	s := int64(math.Sqrt(float64(v)))
	for s*s > v {
		s--
	}
	for (s+1)*(s+1) <= v {
		s++
	}
	return s
}

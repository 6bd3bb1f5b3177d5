package raster

import (
	"image"
	"math"
	"slices"

	"github.com/rook-computer/softfb/internal/layout"
)

// edge is one non-horizontal polygon edge, stored with its upper endpoint
// first. It is active for scanlines y with yMin <= y < yMax.
type edge struct {
	yMin, yMax int
	x          float64 // x at yMin
	slope      float64 // dx/dy
}

func buildEdges(pts []image.Point) []edge {
	edges := make([]edge, 0, len(pts))
	for i, a := range pts {
		b := pts[(i+1)%len(pts)]
		if a.Y == b.Y {
			continue
		}
		if a.Y > b.Y {
			a, b = b, a
		}
		edges = append(edges, edge{
			yMin:  a.Y,
			yMax:  b.Y,
			x:     float64(a.X),
			slope: float64(b.X-a.X) / float64(b.Y-a.Y),
		})
	}
	return edges
}

// Polygon fills the closed polygon through pts with the even-odd rule.
// Fewer than three vertices draw nothing. Self intersecting outlines need no
// special handling: pairing the sorted crossings is the even-odd rule.
//
// Each scanline is sampled at its pixel center and a pixel is filled when
// its center lies inside a span, so shared edges between adjacent polygons
// are not drawn twice and the filled count tracks the geometric area.
func (c *Canvas) Polygon(pts []image.Point, col Color) {
	if len(pts) < 3 {
		return
	}
	edges := buildEdges(pts)
	bounds := layout.PixelBounds(pts...)
	if len(edges) == 0 {
		return
	}
	yStart := max(bounds.Min.Y, 0)
	yEnd := min(bounds.Max.Y-1, c.fb.height)
	p := col.Packed()
	xs := make([]float64, 0, len(edges))
	for y := yStart; y < yEnd; y++ {
		xs = xs[:0]
		for _, e := range edges {
			if y < e.yMin || y >= e.yMax {
				continue
			}
			xs = append(xs, e.x+(float64(y-e.yMin)+0.5)*e.slope)
		}
		slices.Sort(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			x0 := int(math.Ceil(xs[i] - 0.5))
			x1 := int(math.Ceil(xs[i+1]-0.5)) - 1
			if x1 < x0 {
				continue
			}
			c.hspan(y, x0, x1, p)
		}
	}
	c.damage.Report(bounds)
}

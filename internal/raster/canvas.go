// Package raster draws primitives into an in-memory RGB framebuffer and
// reports every touched region to a damage tracker.
//
// All coordinates are integer buffer coordinates with the origin at the top
// left. Nothing here returns an error: out of range coordinates, empty sizes
// and fully clipped shapes are silently ignored.
package raster

import (
	"image"

	"github.com/rook-computer/softfb/internal/damage"
	"github.com/rook-computer/softfb/internal/layout"
)

// Canvas pairs a Framebuffer with the damage Tracker describing it. A Canvas
// is owned by a single drawing goroutine.
type Canvas struct {
	fb     *Framebuffer
	damage *damage.Tracker
}

// NewCanvas allocates a width x height framebuffer. The only possible error
// is ErrAllocation.
func NewCanvas(width, height int, cfg damage.Config) (*Canvas, error) {
	fb, err := NewFramebuffer(width, height)
	if err != nil {
		return nil, err
	}
	return &Canvas{fb: fb, damage: damage.New(cfg, fb.Width(), fb.Height())}, nil
}

func (c *Canvas) Framebuffer() *Framebuffer { return c.fb }
func (c *Canvas) Damage() *damage.Tracker   { return c.damage }
func (c *Canvas) Width() int                { return c.fb.width }
func (c *Canvas) Height() int               { return c.fb.height }
func (c *Canvas) Bounds() image.Rectangle   { return c.fb.Bounds() }

// Resize follows a host surface size change. Same size is a no-op; otherwise
// the pixels are reallocated and pending damage is dropped.
func (c *Canvas) Resize(width, height int) (bool, error) {
	changed, err := c.fb.Resize(width, height)
	if err != nil || !changed {
		return changed, err
	}
	c.damage.SetSize(c.fb.width, c.fb.height)
	return true, nil
}

// Clear fills the whole buffer and marks it fully dirty.
func (c *Canvas) Clear(col Color) {
	fillSpan(c.fb.pix, col.Packed())
	c.damage.MarkFull()
}

// Point sets a single pixel.
func (c *Canvas) Point(x, y int, col Color) {
	if x < 0 || y < 0 || x >= c.fb.width || y >= c.fb.height {
		return
	}
	c.fb.pix[y*c.fb.width+x] = col.Packed()
	c.damage.Report(image.Rect(x, y, x+1, y+1))
}

// Line draws from (x1, y1) to (x2, y2) inclusive with Bresenham stepping.
// The damage is the endpoints' bounding box.
func (c *Canvas) Line(x1, y1, x2, y2 int, col Color) {
	p := col.Packed()
	w, h := c.fb.width, c.fb.height
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx + dy
	x, y := x1, y1
	for {
		if x >= 0 && y >= 0 && x < w && y < h {
			c.fb.pix[y*w+x] = p
		}
		if x == x2 && y == y2 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
	c.damage.Report(layout.PixelBounds(image.Pt(x1, y1), image.Pt(x2, y2)))
}

// Rect fills the w x h rectangle at (x, y). The requested rectangle is
// reported as damage; the tracker clamps it to the buffer, which makes it
// identical to the clipped area that was written.
func (c *Canvas) Rect(x, y, w, h int, col Color) {
	if w <= 0 || h <= 0 {
		return
	}
	req := image.Rect(x, y, x+w, y+h)
	clip := req.Intersect(c.fb.Bounds())
	if clip.Empty() {
		return
	}
	p := col.Packed()
	for row := clip.Min.Y; row < clip.Max.Y; row++ {
		fillSpan(c.fb.Row(row, clip.Min.X, clip.Max.X), p)
	}
	c.damage.Report(req)
}

// hspan fills row y over the inclusive span [x0, x1], clipped. It does not
// report damage; callers report their shape's bounding box once.
func (c *Canvas) hspan(y, x0, x1 int, p uint32) {
	if y < 0 || y >= c.fb.height {
		return
	}
	lo, hi, ok := layout.ClipSpan(x0, x1, c.fb.width)
	if !ok {
		return
	}
	fillSpan(c.fb.Row(y, lo, hi+1), p)
}

// blendAt blends col into the pixel at (x, y) with weight a/255.
func (c *Canvas) blendAt(x, y int, p uint32, a uint32) {
	if a == 0 || x < 0 || y < 0 || x >= c.fb.width || y >= c.fb.height {
		return
	}
	i := y*c.fb.width + x
	if a >= 255 {
		c.fb.pix[i] = p
		return
	}
	c.fb.pix[i] = blendPixel(p, c.fb.pix[i], a)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

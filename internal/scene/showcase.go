package scene

import (
	"context"
	"image"
	"math"
	"strconv"

	"github.com/rook-computer/softfb/internal/layout"
	"github.com/rook-computer/softfb/internal/raster"
	"github.com/rook-computer/softfb/internal/state"
)

// Showcase redraws every primitive in its own grid cell each frame.
type Showcase struct {
	opts   Options
	colors []raster.Color
}

func NewShowcase(opts Options) *Showcase {
	return &Showcase{opts: opts}
}

func (s *Showcase) Start(ctx context.Context) error {
	s.colors = palette(8, 0.7, 0.95)
	return nil
}

func (s *Showcase) Stop() error { return nil }

func (s *Showcase) Draw(c *raster.Canvas, in state.Input) {
	if s.colors == nil {
		s.colors = palette(8, 0.7, 0.95)
	}
	c.Clear(s.opts.Background)
	t := in.Elapsed.Seconds()
	cells := layout.Grid(c.Bounds(), 4, 2)
	draws := []func(image.Rectangle){
		func(r image.Rectangle) { s.points(c, r) },
		func(r image.Rectangle) { s.lines(c, r, t) },
		func(r image.Rectangle) { s.rects(c, r) },
		func(r image.Rectangle) { s.polygon(c, r, t) },
		func(r image.Rectangle) { s.circles(c, r, t) },
		func(r image.Rectangle) { s.ellipse(c, r, t) },
		func(r image.Rectangle) { s.text(c, r, in) },
		func(r image.Rectangle) { s.glyphs(c, r) },
	}
	for i, cell := range cells {
		draws[i](layout.Inset(cell, 4))
	}

	if in.Mouse.Buttons&state.ButtonLeft != 0 {
		c.Circle(in.Mouse.X, in.Mouse.Y, 6, s.opts.Foreground)
	} else {
		c.Line(in.Mouse.X-5, in.Mouse.Y, in.Mouse.X+5, in.Mouse.Y, s.opts.Foreground)
		c.Line(in.Mouse.X, in.Mouse.Y-5, in.Mouse.X, in.Mouse.Y+5, s.opts.Foreground)
	}
}

func (s *Showcase) points(c *raster.Canvas, r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y += 3 {
		for x := r.Min.X; x < r.Max.X; x += 3 {
			c.Point(x, y, s.colors[(x+y)/3%len(s.colors)])
		}
	}
}

func (s *Showcase) lines(c *raster.Canvas, r image.Rectangle, t float64) {
	center := layout.Center(r, 0, 0).Min
	radius := float64(min(r.Dx(), r.Dy())) / 2
	for i := 0; i < 16; i++ {
		a := t*0.5 + float64(i)*math.Pi/8
		x := center.X + int(math.Cos(a)*radius)
		y := center.Y + int(math.Sin(a)*radius)
		c.Line(center.X, center.Y, x, y, s.colors[i%len(s.colors)])
	}
}

func (s *Showcase) rects(c *raster.Canvas, r image.Rectangle) {
	for i, cell := range layout.Grid(r, 3, 3) {
		cell = layout.Inset(cell, 2)
		c.Rect(cell.Min.X, cell.Min.Y, cell.Dx(), cell.Dy(), s.colors[i%len(s.colors)])
	}
}

func (s *Showcase) polygon(c *raster.Canvas, r image.Rectangle, t float64) {
	center := layout.Center(r, 0, 0).Min
	radius := float64(min(r.Dx(), r.Dy())) / 2
	// a five pointed star, its core left open by the even-odd rule
	pts := make([]image.Point, 5)
	for i := range pts {
		a := t*0.3 + float64(i*2)*2*math.Pi/5 - math.Pi/2
		pts[i] = image.Pt(center.X+int(math.Cos(a)*radius), center.Y+int(math.Sin(a)*radius))
	}
	c.Polygon(pts, s.colors[3])
}

func (s *Showcase) circles(c *raster.Canvas, r image.Rectangle, t float64) {
	center := layout.Center(r, 0, 0).Min
	maxR := min(r.Dx(), r.Dy()) / 2
	pulse := 0.75 + 0.25*math.Sin(t*2)
	for i := 3; i >= 1; i-- {
		c.Circle(center.X, center.Y, int(float64(maxR*i/3)*pulse), s.colors[(i*2)%len(s.colors)])
	}
}

func (s *Showcase) ellipse(c *raster.Canvas, r image.Rectangle, t float64) {
	center := layout.Center(r, 0, 0).Min
	rx := int(float64(r.Dx()/2) * (0.5 + 0.5*math.Abs(math.Cos(t))))
	c.Ellipse(center.X, center.Y, rx, r.Dy()/3, s.colors[5])
}

func (s *Showcase) text(c *raster.Canvas, r image.Rectangle, in state.Input) {
	lines := []string{"softfb", "frame", strconv.FormatUint(in.Frame, 10)}
	for i, line := range lines {
		c.Text(r.Min.X, r.Min.Y+i*(raster.GlyphSize+2), line, s.opts.Foreground)
	}
}

func (s *Showcase) glyphs(c *raster.Canvas, r image.Rectangle) {
	x, y := r.Min.X, r.Min.Y
	for ch := rune(0x20); ch < 0x7F; ch++ {
		if x+raster.GlyphSize > r.Max.X {
			x = r.Min.X
			y += raster.GlyphSize
		}
		c.Glyph(x, y, ch, s.colors[int(ch)%len(s.colors)])
		x += raster.GlyphSize
	}
}

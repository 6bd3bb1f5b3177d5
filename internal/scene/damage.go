package scene

import (
	"context"
	"image"

	"github.com/rook-computer/softfb/internal/layout"
	"github.com/rook-computer/softfb/internal/raster"
	"github.com/rook-computer/softfb/internal/state"
)

const damageTiles = 8

// Damage never clears once the screen is set up. Each frame it repaints a
// single tile, moves a small square and leaves a mouse trail, so only those
// regions reach the host when damage tracking is on. Typing 'c' starts over.
type Damage struct {
	opts Options

	width, height int
	tiles         []image.Rectangle
	colors        []raster.Color
	square        image.Rectangle
}

func NewDamage(opts Options) *Damage {
	return &Damage{opts: opts}
}

func (d *Damage) Start(ctx context.Context) error {
	d.colors = palette(12, 0.55, 0.9)
	d.width, d.height = -1, -1
	return nil
}

func (d *Damage) Stop() error { return nil }

func (d *Damage) Draw(c *raster.Canvas, in state.Input) {
	if d.colors == nil {
		d.colors = palette(12, 0.55, 0.9)
	}
	reset := c.Width() != d.width || c.Height() != d.height
	for _, k := range in.Keys {
		if k == 'c' {
			reset = true
		}
	}
	if reset {
		d.setup(c)
	}
	if len(d.tiles) == 0 {
		return
	}

	i := int(in.Frame % uint64(len(d.tiles)))
	tile := layout.Inset(d.tiles[i], 2)
	col := d.colors[int(in.Frame/uint64(len(d.tiles)))%len(d.colors)]
	c.Rect(tile.Min.X, tile.Min.Y, tile.Dx(), tile.Dy(), col)
	c.Text(tile.Min.X+2, tile.Min.Y+2, string(rune('A'+i%26)), d.opts.Foreground)

	if !d.square.Empty() {
		c.Rect(d.square.Min.X, d.square.Min.Y, d.square.Dx(), d.square.Dy(), d.opts.Background)
	}
	const size = 12
	x := bounce(in.Elapsed.Seconds()*120, c.Width()-size)
	y := c.Height() / 2
	d.square = image.Rect(x, y, x+size, y+size)
	c.Rect(x, y, size, size, d.opts.Foreground)

	if in.Mouse.Buttons&state.ButtonLeft != 0 {
		c.Circle(in.Mouse.X, in.Mouse.Y, 2, d.opts.Foreground)
	} else {
		c.Point(in.Mouse.X, in.Mouse.Y, d.opts.Foreground)
	}
}

func (d *Damage) setup(c *raster.Canvas) {
	d.width, d.height = c.Width(), c.Height()
	c.Clear(d.opts.Background)
	band := image.Rect(0, 0, c.Width(), c.Height()/2)
	d.tiles = layout.Grid(band, damageTiles, 2)
	d.square = image.Rectangle{}
}

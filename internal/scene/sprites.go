package scene

import (
	"context"
	"image"
	"math"

	"github.com/rook-computer/softfb/internal/asset"
	"github.com/rook-computer/softfb/internal/layout"
	"github.com/rook-computer/softfb/internal/logging"
	"github.com/rook-computer/softfb/internal/raster"
	"github.com/rook-computer/softfb/internal/state"
)

const spriteBox = 192

type sprite struct {
	bitmap raster.Bitmap
	speedX float64
	speedY float64
	phase  float64
}

// Sprites bounces bitmaps around the screen and fades them through the
// whole opacity range, exercising every path of the compositor.
type Sprites struct {
	opts    Options
	sprites []sprite
}

func NewSprites(opts Options) *Sprites {
	return &Sprites{opts: opts}
}

// Start builds the sprite bitmaps. Every source is optional: a missing
// image or a failed QR code is logged and skipped.
func (s *Sprites) Start(ctx context.Context) error {
	log := logging.OrNoop(s.opts.Logger)
	if s.opts.Fonts == nil {
		s.opts.Fonts = asset.LoadFonts(nil, log)
	}
	s.sprites = s.sprites[:0]

	label := s.opts.Fonts.Label("softfb", 32, 6, s.opts.Foreground, s.opts.Background)
	s.add(label, 90, 60, 0)

	if s.opts.QRPayload != "" {
		qr, err := asset.QRCode(s.opts.QRPayload, 128)
		if err != nil {
			log.Errorf("scene", "qr code for %q failed: %v", s.opts.QRPayload, err)
		} else {
			s.add(qr, 70, 110, math.Pi/2)
		}
	}

	if s.opts.ImagePath != "" {
		img, err := asset.Load(s.opts.ImagePath)
		if err != nil {
			log.Errorf("scene", "image load failed: %v", err)
		} else {
			fitted := asset.Fit(img, image.Rect(0, 0, spriteBox, spriteBox), true)
			s.add(asset.FromImage(fitted, s.opts.Background), 50, 80, math.Pi)
			log.Infof("scene", "loaded %s (%dx%d)", s.opts.ImagePath, img.Bounds().Dx(), img.Bounds().Dy())
		}
	}

	checker := raster.NewBitmap(64, 64)
	colors := palette(4, 0.6, 1)
	for y := 0; y < checker.Height; y++ {
		for x := 0; x < checker.Width; x++ {
			checker.Set(x, y, colors[(x/16+y/16)%len(colors)])
		}
	}
	s.add(checker, 130, 45, 3*math.Pi/2)
	return nil
}

func (s *Sprites) add(b raster.Bitmap, vx, vy, phase float64) {
	s.sprites = append(s.sprites, sprite{bitmap: b, speedX: vx, speedY: vy, phase: phase})
}

func (s *Sprites) Stop() error { return nil }

func (s *Sprites) Draw(c *raster.Canvas, in state.Input) {
	c.Clear(s.opts.Background)
	stripes := layout.Grid(c.Bounds(), 1, 8)
	for i, r := range stripes {
		if i%2 == 1 {
			c.Rect(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), mix(s.opts.Background, s.opts.Foreground, 0.25))
		}
	}

	t := in.Elapsed.Seconds()
	for _, sp := range s.sprites {
		x := bounce(t*sp.speedX, c.Width()-sp.bitmap.Width)
		y := bounce(t*sp.speedY, c.Height()-sp.bitmap.Height)
		opacity := uint8(math.Round(127.5 + 127.5*math.Sin(t+sp.phase)))
		c.Blit(sp.bitmap, x, y, opacity)
	}
}

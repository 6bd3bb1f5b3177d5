// Package scene holds the demo programs drawn by the frame loop. A scene
// only talks to the canvas and the input snapshot; loading happens in Start.
package scene

import (
	"context"
	"fmt"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/rook-computer/softfb/internal/asset"
	"github.com/rook-computer/softfb/internal/logging"
	"github.com/rook-computer/softfb/internal/raster"
	"github.com/rook-computer/softfb/internal/state"
)

type Scene interface {
	Start(ctx context.Context) error
	Stop() error
	Draw(c *raster.Canvas, in state.Input)
}

type Options struct {
	Background raster.Color
	Foreground raster.Color
	// ImagePath is an optional picture for the sprites scene.
	ImagePath string
	// QRPayload is encoded by the sprites scene; empty disables the code.
	QRPayload string
	Fonts     *asset.Fonts
	Logger    logging.Logger
}

type factory func(opts Options) Scene

var registry = map[string]factory{
	"showcase": func(opts Options) Scene { return NewShowcase(opts) },
	"sprites":  func(opts Options) Scene { return NewSprites(opts) },
	"damage":   func(opts Options) Scene { return NewDamage(opts) },
}

// ByName builds a registered scene.
func ByName(name string, opts Options) (Scene, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (have %v)", name, Names())
	}
	if opts.Fonts == nil {
		opts.Fonts = asset.LoadFonts(nil, opts.Logger)
	}
	opts.Logger = logging.OrNoop(opts.Logger)
	return f(opts), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// palette spreads n hues evenly around the HSV wheel.
func palette(n int, s, v float64) []raster.Color {
	out := make([]raster.Color, n)
	for i := range out {
		r, g, b := colorful.Hsv(float64(i)*360/float64(n), s, v).RGB255()
		out[i] = raster.RGB(r, g, b)
	}
	return out
}

// mix blends a towards b in HCL space, t in [0, 1].
func mix(a, b raster.Color, t float64) raster.Color {
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	r, g, bl := ca.BlendHcl(cb, t).Clamped().RGB255()
	return raster.RGB(r, g, bl)
}

// bounce maps a distance travelled to a position moving back and forth
// over [0, span].
func bounce(dist float64, span int) int {
	if span <= 0 {
		return 0
	}
	p := int(dist) % (2 * span)
	if p < 0 {
		p += 2 * span
	}
	if p > span {
		p = 2*span - p
	}
	return p
}

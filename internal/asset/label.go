package asset

import (
	"image"
	"image/color"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/rook-computer/softfb/internal/logging"
	"github.com/rook-computer/softfb/internal/raster"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Fonts renders anti-aliased text labels. Glyphs are rasterised with
// freetype; metrics come from the opentype face. When the embedded font
// cannot be parsed labels fall back to basicfont.Face7x13.
type Fonts struct {
	log logging.Logger
	tt  *truetype.Font
	ot  *opentype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// LoadFonts parses ttf, or the Go Regular font when ttf is nil.
func LoadFonts(ttf []byte, log logging.Logger) *Fonts {
	if ttf == nil {
		ttf = goregular.TTF
	}
	f := &Fonts{log: logging.OrNoop(log), faces: map[float64]font.Face{}}
	if ot, err := opentype.Parse(ttf); err != nil {
		f.log.Errorf("font", "font parse failed, using basicfont: %v", err)
	} else {
		f.ot = ot
	}
	if tt, err := truetype.Parse(ttf); err != nil {
		f.log.Errorf("font", "truetype parse failed: %v", err)
	} else {
		f.tt = tt
	}
	return f
}

// Face returns the face for a pixel size, cached per size.
func (f *Fonts) Face(sizePx float64) font.Face {
	if f.ot == nil || sizePx <= 0 {
		return basicfont.Face7x13
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if face, ok := f.faces[sizePx]; ok {
		return face
	}
	face, err := opentype.NewFace(f.ot, &opentype.FaceOptions{Size: sizePx, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		f.log.Errorf("font", "font face create failed, using basicfont: %v", err)
		return basicfont.Face7x13
	}
	f.faces[sizePx] = face
	return face
}

// Label renders text on bg with a padding of pad pixels on every side.
func (f *Fonts) Label(text string, sizePx float64, pad int, fg, bg raster.Color) raster.Bitmap {
	face := f.Face(sizePx)
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	width := font.MeasureString(face, text).Ceil() + 2*pad
	height := ascent + metrics.Descent.Ceil() + 2*pad

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.Draw(rgba, rgba.Bounds(), image.NewUniform(rgbaOf(bg)), image.Point{}, xdraw.Src)
	src := image.NewUniform(rgbaOf(fg))
	dot := fixed.P(pad, pad+ascent)

	if f.tt != nil && face != basicfont.Face7x13 {
		ctx := freetype.NewContext()
		ctx.SetDPI(72)
		ctx.SetFont(f.tt)
		ctx.SetFontSize(sizePx)
		ctx.SetHinting(font.HintingFull)
		ctx.SetClip(rgba.Bounds())
		ctx.SetDst(rgba)
		ctx.SetSrc(src)
		_, err := ctx.DrawString(text, dot)
		if err == nil {
			return FromImage(rgba, bg)
		}
		f.log.Errorf("font", "freetype draw failed, using font.Drawer: %v", err)
		xdraw.Draw(rgba, rgba.Bounds(), image.NewUniform(rgbaOf(bg)), image.Point{}, xdraw.Src)
	}
	drawer := &font.Drawer{Dst: rgba, Src: src, Face: face, Dot: dot}
	drawer.DrawString(text)
	return FromImage(rgba, bg)
}

func rgbaOf(c raster.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}

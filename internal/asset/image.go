// Package asset turns images, QR codes and text into raster.Bitmap sources
// for the compositor. Nothing here draws on a canvas.
package asset

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/rook-computer/softfb/internal/layout"
	"github.com/rook-computer/softfb/internal/raster"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Decode reads a PNG, JPEG, GIF, BMP or WebP image and reports its format.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}

// Load decodes the image file at path.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// FromImage flattens img onto bg. Bitmaps carry no alpha, so translucent
// pixels are resolved here once instead of on every blit.
func FromImage(img image.Image, bg raster.Color) raster.Bitmap {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(rgba, rgba.Bounds(), &image.Uniform{C: color.RGBA{R: bg.R, G: bg.G, B: bg.B, A: 0xFF}}, image.Point{}, xdraw.Src)
	xdraw.Draw(rgba, rgba.Bounds(), img, b.Min, xdraw.Over)

	out := raster.NewBitmap(b.Dx(), b.Dy())
	for i := range out.Pix {
		p := rgba.Pix[i*4 : i*4+3]
		out.Pix[i] = raster.RGB(p[0], p[1], p[2]).Packed()
	}
	return out
}

// Scale resizes img to w x h. Smooth selects Catmull-Rom over nearest
// neighbour, which keeps QR modules and pixel art crisp.
func Scale(img image.Image, w, h int, smooth bool) image.Image {
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rectangle{})
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	var scaler xdraw.Scaler = xdraw.NearestNeighbor
	if smooth {
		scaler = xdraw.CatmullRom
	}
	scaler.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Over, nil)
	return dst
}

// Fit scales img to the largest size that fits into box keeping its aspect
// ratio.
func Fit(img image.Image, box image.Rectangle, smooth bool) image.Image {
	w, h := layout.FitSize(box, img.Bounds().Dx(), img.Bounds().Dy())
	return Scale(img, w, h, smooth)
}

package raster

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
)

// MaxPixels bounds a single allocation. Larger requests fail with
// ErrAllocation instead of panicking inside make.
const MaxPixels = 1 << 28

// ErrAllocation is the only fatal condition of the core: the pixel storage
// could not be allocated.
var ErrAllocation = errors.New("framebuffer allocation failed")

// Framebuffer is a CPU addressable array of packed RGB pixels, row major,
// with a stride equal to its width.
type Framebuffer struct {
	width  int
	height int
	pix    []uint32
}

// NewFramebuffer allocates a framebuffer. Negative dimensions are treated as
// zero.
func NewFramebuffer(width, height int) (*Framebuffer, error) {
	fb := &Framebuffer{}
	if _, err := fb.Resize(width, height); err != nil {
		return nil, err
	}
	return fb, nil
}

// Resize reallocates storage for the new size and discards the old contents.
// Asking for the current size is a no-op that keeps the pixels; changed
// reports whether a reallocation happened.
func (fb *Framebuffer) Resize(width, height int) (changed bool, err error) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if fb.pix != nil && width == fb.width && height == fb.height {
		return false, nil
	}
	pix, err := allocPixels(width, height)
	if err != nil {
		return false, err
	}
	fb.width, fb.height, fb.pix = width, height, pix
	return true, nil
}

func allocPixels(width, height int) (pix []uint32, err error) {
	if height != 0 && width > math.MaxInt/height {
		return nil, fmt.Errorf("%w: %dx%d overflows", ErrAllocation, width, height)
	}
	n := width * height
	if n > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrAllocation, width, height, MaxPixels)
	}
	defer func() {
		if r := recover(); r != nil {
			pix, err = nil, fmt.Errorf("%w: %v", ErrAllocation, r)
		}
	}()
	return make([]uint32, n), nil
}

func (fb *Framebuffer) Width() int  { return fb.width }
func (fb *Framebuffer) Height() int { return fb.height }

// Stride is the distance in pixels between vertically adjacent pixels.
func (fb *Framebuffer) Stride() int { return fb.width }

// Pixels exposes the backing array. It is invalidated by Resize.
func (fb *Framebuffer) Pixels() []uint32 { return fb.pix }

// Bounds implements image.Image.
func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.width, fb.height)
}

// ColorModel implements image.Image.
func (fb *Framebuffer) ColorModel() color.Model { return ColorModel }

// At implements image.Image.
func (fb *Framebuffer) At(x, y int) color.Color {
	return fb.PixelAt(x, y)
}

// PixelAt returns the color at (x, y), or Black outside the buffer.
func (fb *Framebuffer) PixelAt(x, y int) Color {
	if x < 0 || y < 0 || x >= fb.width || y >= fb.height {
		return Black
	}
	return Unpack(fb.pix[y*fb.width+x])
}

// Row returns the packed pixels of row y restricted to [x0, x1). The
// arguments must already be clipped.
func (fb *Framebuffer) Row(y, x0, x1 int) []uint32 {
	off := y * fb.width
	return fb.pix[off+x0 : off+x1]
}

// Clone returns a deep copy.
func (fb *Framebuffer) Clone() *Framebuffer {
	out := &Framebuffer{width: fb.width, height: fb.height, pix: make([]uint32, len(fb.pix))}
	copy(out.pix, fb.pix)
	return out
}

// AppendRGBX appends the pixels of r, row by row, in the host byte layout:
// byte 0 red, byte 1 green, byte 2 blue, byte 3 zero.
func (fb *Framebuffer) AppendRGBX(dst []byte, r image.Rectangle) []byte {
	r = r.Intersect(fb.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for _, p := range fb.Row(y, r.Min.X, r.Max.X) {
			dst = binary.LittleEndian.AppendUint32(dst, p&0x00FFFFFF)
		}
	}
	return dst
}

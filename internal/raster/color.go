package raster

import "image/color"

// Color is an opaque RGB triple. The destination buffer stores no alpha.
type Color struct {
	R, G, B uint8
}

// Convenience palette.
var (
	Black   = Color{0x00, 0x00, 0x00}
	White   = Color{0xFF, 0xFF, 0xFF}
	Red     = Color{0xFF, 0x00, 0x00}
	Green   = Color{0x00, 0xFF, 0x00}
	Blue    = Color{0x00, 0x00, 0xFF}
	Yellow  = Color{0xFF, 0xFF, 0x00}
	Cyan    = Color{0x00, 0xFF, 0xFF}
	Magenta = Color{0xFF, 0x00, 0xFF}
	Gray    = Color{0x80, 0x80, 0x80}
)

func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b} }

// Packed returns the pixel encoding used by Framebuffer: R in the low byte,
// then G, then B, top byte zero.
func (c Color) Packed() uint32 {
	return uint32(c.R) | uint32(c.G)<<8 | uint32(c.B)<<16
}

// Unpack is the inverse of Color.Packed. The top byte is ignored.
func Unpack(p uint32) Color {
	return Color{R: uint8(p), G: uint8(p >> 8), B: uint8(p >> 16)}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xFFFF
}

// ColorModel converts any color.Color to Color. The premultiplied channels
// are kept as is, so translucent colors end up composited over black.
var ColorModel = color.ModelFunc(func(c color.Color) color.Color {
	if rc, ok := c.(Color); ok {
		return rc
	}
	r, g, b, _ := c.RGBA()
	return Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
})

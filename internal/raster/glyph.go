package raster

import "image"

// GlyphSize is the width and height of a glyph cell and the text advance.
const GlyphSize = 8

// Glyph draws the built-in 8x8 bitmap for ch with its top left corner at
// (x, y). Only set bits are written, so the background shows through.
// Codes above 127 are ignored. The whole cell is reported as damage.
func (c *Canvas) Glyph(x, y int, ch rune, col Color) {
	if ch < 0 || ch > 127 {
		return
	}
	bitmap := &font8x8[ch]
	p := col.Packed()
	w, h := c.fb.width, c.fb.height
	for row, bits := range bitmap {
		py := y + row
		if bits == 0 || py < 0 || py >= h {
			continue
		}
		off := py * w
		for bit := 0; bit < GlyphSize; bit++ {
			px := x + bit
			if bits&(1<<bit) == 0 || px < 0 || px >= w {
				continue
			}
			c.fb.pix[off+px] = p
		}
	}
	c.damage.Report(image.Rect(x, y, x+GlyphSize, y+GlyphSize))
}

// Text draws s left to right with a fixed advance of GlyphSize per rune.
// It neither wraps nor clips the line; each glyph reports its own damage.
func (c *Canvas) Text(x, y int, s string, col Color) {
	for _, ch := range s {
		c.Glyph(x, y, ch, col)
		x += GlyphSize
	}
}

// TextWidth is the advance of s in pixels.
func TextWidth(s string) int {
	n := 0
	for range s {
		n++
	}
	return n * GlyphSize
}

package raster

import "image"

// Bitmap is a caller owned block of packed pixels, row major with a stride
// of Width. The compositor only reads it for the duration of one call.
type Bitmap struct {
	Width  int
	Height int
	Pix    []uint32
}

// NewBitmap allocates a zeroed bitmap.
func NewBitmap(width, height int) Bitmap {
	width, height = max(width, 0), max(height, 0)
	return Bitmap{Width: width, Height: height, Pix: make([]uint32, width*height)}
}

// Bounds returns the usable area. Rows missing from a short Pix are cut off.
func (b Bitmap) Bounds() image.Rectangle {
	if b.Width <= 0 || b.Height <= 0 {
		return image.Rectangle{}
	}
	rows := min(b.Height, len(b.Pix)/b.Width)
	return image.Rect(0, 0, b.Width, rows)
}

// Set writes one pixel, ignoring out of range coordinates.
func (b Bitmap) Set(x, y int, c Color) {
	if !image.Pt(x, y).In(b.Bounds()) {
		return
	}
	b.Pix[y*b.Width+x] = c.Packed()
}

// At returns the pixel at (x, y), or Black outside the bitmap.
func (b Bitmap) At(x, y int) Color {
	if !image.Pt(x, y).In(b.Bounds()) {
		return Black
	}
	return Unpack(b.Pix[y*b.Width+x])
}

// Blit composites src onto the canvas with its top left corner at
// (dstX, dstY), using one opacity for every pixel. Opacity 0 draws nothing,
// 255 copies rows verbatim, anything between blends each channel as
// round((src*a + dst*(255-a)) / 255). The requested destination rectangle is
// reported as damage.
func (c *Canvas) Blit(src Bitmap, dstX, dstY int, opacity uint8) {
	if opacity == 0 {
		return
	}
	sb := src.Bounds()
	req := sb.Add(image.Pt(dstX, dstY))
	clip := req.Intersect(c.fb.Bounds())
	if clip.Empty() {
		return
	}
	sx := clip.Min.X - dstX
	sy := clip.Min.Y - dstY
	w := clip.Dx()
	a := uint32(opacity)
	for row := 0; row < clip.Dy(); row++ {
		soff := (sy+row)*src.Width + sx
		s := src.Pix[soff : soff+w]
		d := c.fb.Row(clip.Min.Y+row, clip.Min.X, clip.Max.X)
		if a == 255 {
			copy(d, s)
			continue
		}
		blendSpan(d, s, a)
	}
	c.damage.Report(req)
}

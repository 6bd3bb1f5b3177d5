// Package layout holds rectangle arithmetic shared by the rasterizer and the
// scenes: clipping, bounding boxes and simple grid placement.
package layout

import "image"

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// PixelBounds returns the smallest rectangle containing every pixel in pts.
// Max is exclusive, so a single point yields a 1x1 rectangle.
func PixelBounds(pts ...image.Point) image.Rectangle {
	if len(pts) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		r.Min.X = min(r.Min.X, p.X)
		r.Min.Y = min(r.Min.Y, p.Y)
		r.Max.X = max(r.Max.X, p.X)
		r.Max.Y = max(r.Max.Y, p.Y)
	}
	r.Max = r.Max.Add(image.Pt(1, 1))
	return r
}

// Around returns the pixel rectangle covering center +/- (rx, ry).
func Around(center image.Point, rx, ry int) image.Rectangle {
	return image.Rect(center.X-rx, center.Y-ry, center.X+rx+1, center.Y+ry+1)
}

// ClipSpan clips the inclusive span [x0, x1] to [0, limit). ok is false when
// nothing remains.
func ClipSpan(x0, x1, limit int) (lo, hi int, ok bool) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	lo = max(x0, 0)
	hi = min(x1, limit-1)
	return lo, hi, lo <= hi
}

// Inset shrinks rect by paddingPx on all sides.
func Inset(rect image.Rectangle, paddingPx int) image.Rectangle {
	if paddingPx <= 0 {
		return rect
	}
	return Normalize(rect.Inset(paddingPx))
}

// Grid splits rect into cols x rows cells, row major. The last column and
// row absorb any remainder.
func Grid(rect image.Rectangle, cols, rows int) []image.Rectangle {
	rect = Normalize(rect)
	if cols <= 0 || rows <= 0 {
		return nil
	}
	cellW := rect.Dx() / cols
	cellH := rect.Dy() / rows
	cells := make([]image.Rectangle, 0, cols*rows)
	for row := 0; row < rows; row++ {
		y0 := rect.Min.Y + row*cellH
		y1 := y0 + cellH
		if row == rows-1 {
			y1 = rect.Max.Y
		}
		for col := 0; col < cols; col++ {
			x0 := rect.Min.X + col*cellW
			x1 := x0 + cellW
			if col == cols-1 {
				x1 = rect.Max.X
			}
			cells = append(cells, image.Rect(x0, y0, x1, y1))
		}
	}
	return cells
}

// Center returns a (widthPx x heightPx) rectangle centered in rect. The
// result may overhang rect when it is larger.
func Center(rect image.Rectangle, widthPx, heightPx int) image.Rectangle {
	rect = Normalize(rect)
	x := rect.Min.X + (rect.Dx()-widthPx)/2
	y := rect.Min.Y + (rect.Dy()-heightPx)/2
	return image.Rect(x, y, x+widthPx, y+heightPx)
}

// FitSize scales (w, h) to fit into rect keeping the aspect ratio.
func FitSize(rect image.Rectangle, w, h int) (int, int) {
	rect = Normalize(rect)
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	maxW, maxH := rect.Dx(), rect.Dy()
	if w*maxH > h*maxW {
		return maxW, h * maxW / w
	}
	return w * maxH / h, maxH
}

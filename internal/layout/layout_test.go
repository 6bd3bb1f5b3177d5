package layout

import (
	"image"
	"testing"
)

func TestPixelBounds(t *testing.T) {
	got := PixelBounds(image.Pt(5, 9), image.Pt(1, 2), image.Pt(3, 4))
	if want := image.Rect(1, 2, 6, 10); got != want {
		t.Errorf("PixelBounds = %v, want %v", got, want)
	}
	if got := PixelBounds(image.Pt(3, 3)); got != image.Rect(3, 3, 4, 4) {
		t.Errorf("single point = %v", got)
	}
	if got := PixelBounds(); !got.Empty() {
		t.Errorf("no points = %v", got)
	}
}

func TestClipSpan(t *testing.T) {
	tests := []struct {
		x0, x1, limit int
		lo, hi        int
		ok            bool
	}{
		{2, 5, 10, 2, 5, true},
		{-3, 4, 10, 0, 4, true},
		{7, 20, 10, 7, 9, true},
		{9, 2, 10, 2, 9, true},
		{-5, -1, 10, 0, -1, false},
		{10, 12, 10, 10, 9, false},
	}
	for _, tt := range tests {
		lo, hi, ok := ClipSpan(tt.x0, tt.x1, tt.limit)
		if ok != tt.ok || (ok && (lo != tt.lo || hi != tt.hi)) {
			t.Errorf("ClipSpan(%d, %d, %d) = %d, %d, %v", tt.x0, tt.x1, tt.limit, lo, hi, ok)
		}
	}
}

func TestGridCoversRect(t *testing.T) {
	rect := image.Rect(0, 0, 101, 53)
	cells := Grid(rect, 3, 2)
	if len(cells) != 6 {
		t.Fatalf("got %d cells", len(cells))
	}
	area := 0
	for _, c := range cells {
		area += c.Dx() * c.Dy()
		if !c.In(rect) {
			t.Errorf("cell %v outside %v", c, rect)
		}
	}
	if area != rect.Dx()*rect.Dy() {
		t.Errorf("cells cover %d pixels, want %d", area, rect.Dx()*rect.Dy())
	}
	if Grid(rect, 0, 2) != nil {
		t.Error("zero columns should yield no cells")
	}
}

func TestCenterAndFit(t *testing.T) {
	if got := Center(image.Rect(0, 0, 100, 50), 20, 10); got != image.Rect(40, 20, 60, 30) {
		t.Errorf("Center = %v", got)
	}
	w, h := FitSize(image.Rect(0, 0, 100, 50), 200, 200)
	if w != 50 || h != 50 {
		t.Errorf("FitSize = %dx%d, want 50x50", w, h)
	}
	w, h = FitSize(image.Rect(0, 0, 100, 50), 400, 100)
	if w != 100 || h != 25 {
		t.Errorf("FitSize = %dx%d, want 100x25", w, h)
	}
}

func TestInsetNormalizes(t *testing.T) {
	if got := Inset(image.Rect(0, 0, 4, 4), 3); got.Min.X > got.Max.X || got.Min.Y > got.Max.Y {
		t.Errorf("Inset produced uncanonical %v", got)
	}
}

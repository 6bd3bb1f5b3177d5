package raster

import (
	"image"
	"testing"
)

func TestPolygonTriangleArea(t *testing.T) {
	c := newTestCanvas(t, 20, 20)
	c.Polygon([]image.Point{{0, 0}, {10, 0}, {5, 10}}, Blue)

	n := countColor(c, Blue)
	// geometric area 50, one row of stepping error allowed
	if n < 40 || n > 60 {
		t.Errorf("triangle filled %d pixels, want about 50", n)
	}
	if r := dirtyRect(t, c); r != image.Rect(0, 0, 11, 11) {
		t.Errorf("damage %v", r)
	}
	if c.Framebuffer().PixelAt(5, 2) != Blue {
		t.Error("interior pixel not filled")
	}
	if c.Framebuffer().PixelAt(0, 9) == Blue || c.Framebuffer().PixelAt(9, 9) == Blue {
		t.Error("pixel outside the triangle filled")
	}
}

func TestPolygonDegenerate(t *testing.T) {
	c := newTestCanvas(t, 20, 20)
	c.Polygon([]image.Point{{0, 0}, {10, 10}}, Blue)
	c.Polygon(nil, Blue)
	if n := countColor(c, Blue); n != 0 {
		t.Errorf("degenerate polygon drew %d pixels", n)
	}
	if _, dirty := c.Damage().Query(); dirty {
		t.Error("degenerate polygon reported damage")
	}

	// all edges horizontal
	c.Polygon([]image.Point{{0, 3}, {5, 3}, {9, 3}}, Blue)
	if n := countColor(c, Blue); n != 0 {
		t.Errorf("flat polygon drew %d pixels", n)
	}
}

func TestPolygonRectangleExact(t *testing.T) {
	c := newTestCanvas(t, 20, 20)
	c.Polygon([]image.Point{{2, 3}, {12, 3}, {12, 8}, {2, 8}}, Red)
	if n := countColor(c, Red); n != 10*5 {
		t.Errorf("filled %d pixels, want 50", n)
	}
	for y := 3; y < 8; y++ {
		for x := 2; x < 12; x++ {
			if c.Framebuffer().PixelAt(x, y) != Red {
				t.Fatalf("pixel (%d,%d) not filled", x, y)
			}
		}
	}
}

func TestPolygonEvenOdd(t *testing.T) {
	// A pentagram: the even-odd rule leaves the inner pentagon empty.
	c := newTestCanvas(t, 100, 100)
	star := []image.Point{{50, 5}, {79, 95}, {2, 40}, {98, 40}, {21, 95}}
	c.Polygon(star, White)
	if c.Framebuffer().PixelAt(50, 55) == White {
		t.Error("center of pentagram filled under even-odd")
	}
	if c.Framebuffer().PixelAt(50, 20) != White {
		t.Error("star tip not filled")
	}
}

func TestPolygonClipsToBuffer(t *testing.T) {
	c := newTestCanvas(t, 10, 10)
	c.Polygon([]image.Point{{-20, -20}, {30, -20}, {30, 30}, {-20, 30}}, Green)
	if n := countColor(c, Green); n != 100 {
		t.Errorf("covering polygon filled %d pixels, want 100", n)
	}
	if r := dirtyRect(t, c); r != c.Bounds() {
		t.Errorf("damage %v", r)
	}
}

func TestCircle(t *testing.T) {
	c := newTestCanvas(t, 64, 64)
	c.Circle(32, 32, 10, White)

	fb := c.Framebuffer()
	if fb.PixelAt(32, 32) != White || fb.PixelAt(22, 32) != White || fb.PixelAt(32, 42) != White {
		t.Error("interior or axis extreme not filled")
	}
	if fb.PixelAt(32, 44) != Black || fb.PixelAt(20, 32) != Black {
		t.Error("pixels beyond the radius touched")
	}
	if fb.PixelAt(25, 25) != White {
		t.Error("interior near 45 degrees not filled")
	}

	// the rim carries partial coverage
	partial := 0
	for _, p := range fb.Pixels() {
		if col := Unpack(p); col != White && col != Black {
			if col.R != col.G || col.G != col.B {
				t.Fatalf("rim pixel %v is not a gray blend", col)
			}
			partial++
		}
	}
	if partial == 0 {
		t.Error("no antialiased rim pixels")
	}

	r := dirtyRect(t, c)
	if r != image.Rect(22, 22, 43, 43) {
		t.Errorf("damage %v, want center +/- radius", r)
	}
	// every touched pixel lies inside the reported damage
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if fb.PixelAt(x, y) != Black && !image.Pt(x, y).In(r) {
				t.Fatalf("pixel (%d,%d) drawn outside damage %v", x, y, r)
			}
		}
	}
}

func TestCircleAreaAndEdgeCases(t *testing.T) {
	c := newTestCanvas(t, 101, 101)
	c.Circle(50, 50, 40, Red)
	n := countColor(c, Red)
	// pi*40^2 = 5026; the hard interior sits inside the ideal circle
	if n < 4800 || n > 5100 {
		t.Errorf("solid pixels %d, want about 5000", n)
	}

	c = newTestCanvas(t, 10, 10)
	c.Circle(5, 5, -1, Red)
	if countColor(c, Red) != 0 {
		t.Error("negative radius drew")
	}
	c.Circle(5, 5, 0, Red)
	if countColor(c, Red) != 1 {
		t.Error("zero radius should draw the center pixel")
	}

	c = newTestCanvas(t, 10, 10)
	c.Circle(0, 0, 30, Red)
	if countColor(c, Red) != 100 {
		t.Error("large clipped circle should cover the buffer")
	}
}

func TestEllipse(t *testing.T) {
	c := newTestCanvas(t, 80, 60)
	c.Ellipse(40, 30, 20, 10, Yellow)
	fb := c.Framebuffer()

	for _, p := range []image.Point{{40, 30}, {20, 30}, {60, 30}, {40, 20}, {40, 40}} {
		if fb.PixelAt(p.X, p.Y) != Yellow {
			t.Errorf("pixel %v not filled", p)
		}
	}
	for _, p := range []image.Point{{19, 30}, {61, 30}, {40, 19}, {40, 41}, {22, 22}} {
		if fb.PixelAt(p.X, p.Y) == Yellow {
			t.Errorf("pixel %v outside the ellipse filled", p)
		}
	}
	// no antialiasing: only two colors
	for _, v := range fb.Pixels() {
		if col := Unpack(v); col != Yellow && col != Black {
			t.Fatalf("unexpected blended pixel %v", col)
		}
	}
	// pi*20*10 = 628
	if n := countColor(c, Yellow); n < 580 || n > 700 {
		t.Errorf("filled %d pixels, want about 628", n)
	}
	// symmetric about both axes
	for y := 0; y <= 10; y++ {
		for x := 0; x <= 20; x++ {
			q := fb.PixelAt(40+x, 30+y)
			if fb.PixelAt(40-x, 30+y) != q || fb.PixelAt(40+x, 30-y) != q || fb.PixelAt(40-x, 30-y) != q {
				t.Fatalf("asymmetric at offset (%d,%d)", x, y)
			}
		}
	}
	if r := dirtyRect(t, c); r != image.Rect(20, 20, 61, 41) {
		t.Errorf("damage %v", r)
	}
}

func TestEllipseDegenerate(t *testing.T) {
	c := newTestCanvas(t, 30, 30)
	c.Ellipse(15, 15, 5, 0, Red)
	if n := countColor(c, Red); n != 11 {
		t.Errorf("flat ellipse drew %d, want 11", n)
	}
	c = newTestCanvas(t, 30, 30)
	c.Ellipse(15, 15, 0, 4, Red)
	if n := countColor(c, Red); n != 9 {
		t.Errorf("thin ellipse drew %d, want 9", n)
	}
	c = newTestCanvas(t, 30, 30)
	c.Ellipse(15, 15, -1, 4, Red)
	if n := countColor(c, Red); n != 0 {
		t.Errorf("negative radius drew %d", n)
	}
}

func TestEllipseHalfWidthsMonotonic(t *testing.T) {
	for _, r := range [][2]int64{{1, 1}, {3, 7}, {50, 5}, {5, 50}, {33, 33}} {
		half := ellipseHalfWidths(r[0], r[1])
		if half[0] != int(r[0]) {
			t.Errorf("%v: center row half width %d", r, half[0])
		}
		for i := 1; i < len(half); i++ {
			if half[i] > half[i-1] {
				t.Errorf("%v: half widths grow at row %d: %v", r, i, half)
				break
			}
		}
	}
}

func TestLargeRadiiMatchCircle(t *testing.T) {
	for _, r := range []int{40000, 50000, 60000, 100000, 1 << 20, 1 << 33} {
		for _, center := range [][2]int{{22 + r, 32}, {32, 22 + r}} {
			e := newTestCanvas(t, 64, 64)
			e.Ellipse(center[0], center[1], r, r, White)
			ref := newTestCanvas(t, 64, 64)
			ref.Circle(center[0], center[1], r, White)

			got, want := countColor(e, White), countColor(ref, White)
			if got == 0 || got == 64*64 {
				t.Fatalf("r=%d center %v: ellipse filled %d pixels", r, center, got)
			}
			// one pixel per visible row or column for the differing boundary rules
			if d := got - want; d < -64 || d > 64 {
				t.Errorf("r=%d center %v: ellipse %d pixels, circle %d", r, center, got, want)
			}
		}
	}
}

func TestHugeShapesOnlyTouchVisibleRows(t *testing.T) {
	c := newTestCanvas(t, 16, 16)
	c.Ellipse(8, 8, 1<<40, 1<<40, Red)
	if n := countColor(c, Red); n != 16*16 {
		t.Errorf("covering ellipse filled %d pixels", n)
	}
	c.Clear(Black)
	c.Circle(8, 8, 1<<40, Green)
	if n := countColor(c, Green); n != 16*16 {
		t.Errorf("covering circle filled %d pixels", n)
	}
	c.Clear(Black)
	c.Ellipse(8, 1<<34, 1<<20, 1<<33, Red)
	c.Circle(1<<34, 8, 1<<33, Red)
	if n := countColor(c, Red); n != 0 {
		t.Errorf("off buffer shapes drew %d pixels", n)
	}
}

func TestEllipseDirectHalfWidthsNearTrace(t *testing.T) {
	// in the steep rows both rules sample the same boundary
	for _, r := range [][2]int{{300, 300}, {1000, 400}, {maxTracedRadius, maxTracedRadius}} {
		half := ellipseHalfWidths(int64(r[0]), int64(r[1]))
		for dy := 0; dy <= r[1]/3; dy++ {
			if d := half[dy] - ellipseHalfWidth(r[0], r[1], dy); d < -1 || d > 1 {
				t.Fatalf("%v row %d: traced %d, direct %d", r, dy, half[dy], ellipseHalfWidth(r[0], r[1], dy))
			}
		}
	}
}

package raster

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
)

func TestNewFramebuffer(t *testing.T) {
	fb, err := NewFramebuffer(4, 3)
	if err != nil {
		t.Fatal(err)
	}
	if fb.Width() != 4 || fb.Height() != 3 || fb.Stride() != 4 || len(fb.Pixels()) != 12 {
		t.Errorf("got %dx%d stride %d len %d", fb.Width(), fb.Height(), fb.Stride(), len(fb.Pixels()))
	}

	fb, err = NewFramebuffer(-5, 3)
	if err != nil || fb.Width() != 0 || len(fb.Pixels()) != 0 {
		t.Errorf("negative width: %v, %v", fb, err)
	}
}

func TestNewFramebufferAllocationFailure(t *testing.T) {
	for _, size := range [][2]int{{math.MaxInt, 2}, {MaxPixels, 2}} {
		if _, err := NewFramebuffer(size[0], size[1]); !errors.Is(err, ErrAllocation) {
			t.Errorf("NewFramebuffer(%d, %d) err = %v, want ErrAllocation", size[0], size[1], err)
		}
	}
}

func TestResizeSameSizeKeepsStorage(t *testing.T) {
	fb, _ := NewFramebuffer(5, 5)
	fb.Pixels()[7] = Red.Packed()
	for i := 0; i < 2; i++ {
		changed, err := fb.Resize(5, 5)
		if err != nil || changed {
			t.Fatalf("Resize = %v, %v", changed, err)
		}
	}
	if fb.PixelAt(2, 1) != Red {
		t.Error("contents lost")
	}

	changed, err := fb.Resize(6, 5)
	if err != nil || !changed {
		t.Fatalf("Resize = %v, %v", changed, err)
	}
	if fb.PixelAt(2, 1) != Black {
		t.Error("resize should discard contents")
	}

	if _, err := fb.Resize(math.MaxInt, math.MaxInt); !errors.Is(err, ErrAllocation) {
		t.Errorf("huge resize err = %v", err)
	}
	if fb.Width() != 6 {
		t.Error("failed resize must keep the old buffer")
	}
}

func TestPackedLayout(t *testing.T) {
	c := RGB(0x11, 0x22, 0x33)
	if c.Packed() != 0x00332211 {
		t.Errorf("Packed = %08x", c.Packed())
	}
	if Unpack(0xFF332211) != c {
		t.Error("Unpack should ignore the top byte")
	}

	fb, _ := NewFramebuffer(2, 2)
	fb.Pixels()[1] = c.Packed()
	fb.Pixels()[3] = White.Packed()
	got := fb.AppendRGBX(nil, image.Rect(1, 0, 2, 2))
	want := []byte{0x11, 0x22, 0x33, 0x00, 0xFF, 0xFF, 0xFF, 0x00}
	if string(got) != string(want) {
		t.Errorf("AppendRGBX = % x, want % x", got, want)
	}
	if out := fb.AppendRGBX(nil, image.Rect(5, 5, 9, 9)); len(out) != 0 {
		t.Errorf("off buffer region produced %d bytes", len(out))
	}
}

func TestFramebufferIsImage(t *testing.T) {
	var img image.Image
	fb, _ := NewFramebuffer(3, 3)
	fb.Pixels()[4] = RGB(10, 20, 30).Packed()
	img = fb
	r, g, b, a := img.At(1, 1).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 || a != 0xFFFF {
		t.Errorf("At = %d %d %d %d", r>>8, g>>8, b>>8, a)
	}
	if got := fb.ColorModel().Convert(color.RGBA{R: 1, G: 2, B: 3, A: 255}); got != RGB(1, 2, 3) {
		t.Errorf("Convert = %v", got)
	}
	if fb.PixelAt(-1, 0) != Black || fb.PixelAt(3, 0) != Black {
		t.Error("out of range PixelAt should be black")
	}
}

func TestClone(t *testing.T) {
	fb, _ := NewFramebuffer(2, 2)
	fb.Pixels()[0] = Blue.Packed()
	cl := fb.Clone()
	fb.Pixels()[0] = Red.Packed()
	if cl.PixelAt(0, 0) != Blue || cl.Width() != 2 {
		t.Error("clone shares storage")
	}
}

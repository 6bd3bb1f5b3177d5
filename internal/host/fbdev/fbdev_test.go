package fbdev

import (
	"encoding/binary"
	"image"
	"image/color"
	"testing"

	"github.com/rook-computer/softfb/internal/present"
	"github.com/rook-computer/softfb/internal/raster"
	"github.com/rook-computer/softfb/internal/state"
)

func testFramebuffer(t *testing.T) *raster.Framebuffer {
	t.Helper()
	fb, err := raster.NewFramebuffer(8, 6)
	if err != nil {
		t.Fatal(err)
	}
	for i := range fb.Pixels() {
		fb.Pixels()[i] = raster.RGB(uint8(i), 0x80, 0x40).Packed()
	}
	return fb
}

func TestCopyRegionRGBA(t *testing.T) {
	fb := testFramebuffer(t)
	dst := image.NewRGBA(image.Rect(0, 0, 8, 6))
	copyRegion(dst, fb, image.Rect(2, 1, 5, 3))

	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			got := dst.RGBAAt(x, y)
			if image.Pt(x, y).In(image.Rect(2, 1, 5, 3)) {
				want := fb.PixelAt(x, y)
				if got != (color.RGBA{R: want.R, G: want.G, B: want.B, A: 0xFF}) {
					t.Fatalf("(%d,%d) = %v, want %v", x, y, got, want)
				}
			} else if got != (color.RGBA{}) {
				t.Fatalf("(%d,%d) outside the region written", x, y)
			}
		}
	}
}

func TestCopyRegionGenericImageWithOffset(t *testing.T) {
	fb := testFramebuffer(t)
	dst := image.NewNRGBA(image.Rect(100, 50, 104, 54))
	copyRegion(dst, fb, image.Rect(0, 0, 8, 6))

	if got := dst.NRGBAAt(103, 53); got != (color.NRGBA{R: uint8(3*8 + 3), G: 0x80, B: 0x40, A: 0xFF}) {
		t.Errorf("offset pixel = %v", got)
	}
	if got := dst.NRGBAAt(100, 50); got.R != 0 || got.A != 0xFF {
		t.Errorf("origin pixel = %v", got)
	}
}

func TestHostSizeAndEvents(t *testing.T) {
	h := newHost(image.NewRGBA(image.Rect(0, 0, 640, 480)), nil, nil)
	if w, hh := h.CurrentSurfaceSize(); w != 640 || hh != 480 {
		t.Errorf("size %dx%d", w, hh)
	}
	h.queue(present.Event{Kind: present.EventKey, Rune: 'a'})
	h.queue(present.Event{Kind: present.EventQuit})
	if got := h.PollEvents(); len(got) != 2 || got[1].Kind != present.EventQuit {
		t.Errorf("events %+v", got)
	}
	if got := h.PollEvents(); len(got) != 0 {
		t.Errorf("queue not drained: %+v", got)
	}
	for i := 0; i < eventBuffer+10; i++ {
		h.queue(present.Event{Kind: present.EventKey})
	}
	if got := h.PollEvents(); len(got) != eventBuffer {
		t.Errorf("overflow kept %d events", len(got))
	}
	h.Close()
}

func record(tvSize int, typ, code uint16, value int32) []byte {
	rec := make([]byte, tvSize+8)
	binary.LittleEndian.PutUint16(rec[tvSize:], typ)
	binary.LittleEndian.PutUint16(rec[tvSize+2:], code)
	binary.LittleEndian.PutUint32(rec[tvSize+4:], uint32(value))
	return rec
}

func TestDecoder(t *testing.T) {
	const tv = 16
	var buf []byte
	buf = append(buf, record(tv, evKey, 30, 1)...)         // 'a' down
	buf = append(buf, record(tv, evKey, 30, 0)...)         // 'a' up, ignored
	buf = append(buf, record(tv, evKey, btnLeft, 1)...)    // press
	buf = append(buf, record(tv, evRel, relX, -3)...)      // drag
	buf = append(buf, record(tv, evRel, relY, 7)...)       // drag
	buf = append(buf, record(tv, evRel, 0x08, 1)...)       // wheel, ignored
	buf = append(buf, record(tv, evKey, btnLeft, 0)...)    // release
	buf = append(buf, record(tv, evKey, keyF4, 1)...)      // quit
	buf = append(buf, record(tv, evKey, keyEsc, 1)[:5]...) // truncated record

	got := newDecoder(tv).decode(buf)
	want := []present.Event{
		{Kind: present.EventKey, Rune: 'a'},
		{Kind: present.EventMouse, Relative: true, Buttons: state.ButtonLeft},
		{Kind: present.EventMouse, Relative: true, X: -3, Buttons: state.ButtonLeft},
		{Kind: present.EventMouse, Relative: true, Y: 7, Buttons: state.ButtonLeft},
		{Kind: present.EventMouse, Relative: true},
		{Kind: present.EventQuit},
	}
	if len(got) != len(want) {
		t.Fatalf("decoded %d events, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

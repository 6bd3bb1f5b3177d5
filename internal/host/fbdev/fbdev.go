// Package fbdev presents frames on a Linux framebuffer device and reads
// keyboard and mouse input from evdev.
package fbdev

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/rook-computer/softfb/internal/logging"
	"github.com/rook-computer/softfb/internal/present"
	"github.com/rook-computer/softfb/internal/raster"
)

const eventBuffer = 256

// Host writes damaged regions into a draw.Image backed by the device memory.
type Host struct {
	dst    draw.Image
	events chan present.Event
	log    logging.Logger
	close  func()
}

func newHost(dst draw.Image, log logging.Logger, close func()) *Host {
	if close == nil {
		close = func() {}
	}
	return &Host{
		dst:    dst,
		events: make(chan present.Event, eventBuffer),
		log:    logging.OrNoop(log),
		close:  close,
	}
}

// PollEvents drains the input queued by the evdev readers.
func (h *Host) PollEvents() []present.Event {
	var out []present.Event
	for {
		select {
		case ev := <-h.events:
			out = append(out, ev)
		default:
			return out
		}
	}
}

// CurrentSurfaceSize is the visible mode of the device. The mode never
// changes while the device is open.
func (h *Host) CurrentSurfaceSize() (int, int) {
	b := h.dst.Bounds()
	return b.Dx(), b.Dy()
}

func (h *Host) PresentRegion(fb *raster.Framebuffer, r image.Rectangle) error {
	copyRegion(h.dst, fb, r)
	return nil
}

// Close releases the device and restores the console.
func (h *Host) Close() {
	h.close()
}

func (h *Host) queue(ev present.Event) {
	select {
	case h.events <- ev:
	default:
		h.log.Errorf("input", "event queue full, dropping %v", ev.Kind)
	}
}

// copyRegion converts the packed pixels of r into dst, which may be offset.
func copyRegion(dst draw.Image, fb *raster.Framebuffer, r image.Rectangle) {
	origin := dst.Bounds().Min
	r = r.Intersect(fb.Bounds()).Intersect(dst.Bounds().Sub(origin))
	if r.Empty() {
		return
	}
	if rgba, ok := dst.(*image.RGBA); ok {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			off := rgba.PixOffset(origin.X+r.Min.X, origin.Y+y)
			for _, p := range fb.Row(y, r.Min.X, r.Max.X) {
				rgba.Pix[off] = uint8(p)
				rgba.Pix[off+1] = uint8(p >> 8)
				rgba.Pix[off+2] = uint8(p >> 16)
				rgba.Pix[off+3] = 0xFF
				off += 4
			}
		}
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for i, p := range fb.Row(y, r.Min.X, r.Max.X) {
			c := raster.Unpack(p)
			dst.Set(origin.X+r.Min.X+i, origin.Y+y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF})
		}
	}
}

var _ present.Host = (*Host)(nil)

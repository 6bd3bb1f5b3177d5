// Package memhost is a headless Host: it keeps the presented pixels in an
// in-memory surface and records every presented region.
package memhost

import (
	"image"
	"sync"

	"github.com/rook-computer/softfb/internal/present"
	"github.com/rook-computer/softfb/internal/raster"
)

type Host struct {
	mu      sync.Mutex
	surface *raster.Framebuffer
	events  []present.Event
	regions []image.Rectangle
	failing error
}

func New(width, height int) (*Host, error) {
	surface, err := raster.NewFramebuffer(width, height)
	if err != nil {
		return nil, err
	}
	return &Host{surface: surface}, nil
}

// Push queues events for the next PollEvents.
func (h *Host) Push(events ...present.Event) {
	h.mu.Lock()
	h.events = append(h.events, events...)
	h.mu.Unlock()
}

// Resize changes the surface size and queues an EventResize. The surface
// contents are discarded, like a real mode switch.
func (h *Host) Resize(width, height int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, err := h.surface.Resize(width, height); err != nil {
		return err
	}
	h.events = append(h.events, present.Event{Kind: present.EventResize, X: width, Y: height})
	return nil
}

// FailPresents makes PresentRegion return err until called with nil.
func (h *Host) FailPresents(err error) {
	h.mu.Lock()
	h.failing = err
	h.mu.Unlock()
}

func (h *Host) PollEvents() []present.Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	events := h.events
	h.events = nil
	return events
}

func (h *Host) CurrentSurfaceSize() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.surface.Width(), h.surface.Height()
}

func (h *Host) PresentRegion(fb *raster.Framebuffer, r image.Rectangle) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.failing != nil {
		return h.failing
	}
	r = r.Intersect(fb.Bounds()).Intersect(h.surface.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		copy(h.surface.Row(y, r.Min.X, r.Max.X), fb.Row(y, r.Min.X, r.Max.X))
	}
	h.regions = append(h.regions, r)
	return nil
}

// Surface returns a copy of what has been presented so far.
func (h *Host) Surface() *raster.Framebuffer {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.surface.Clone()
}

// Regions returns the presented regions in order.
func (h *Host) Regions() []image.Rectangle {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]image.Rectangle(nil), h.regions...)
}

var _ present.Host = (*Host)(nil)

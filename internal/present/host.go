// Package present is the bridge between the rasterizer and whatever shows
// its pixels. A Host supplies the surface size and input, and receives the
// dirty part of the framebuffer once per frame.
package present

import (
	"image"

	"github.com/rook-computer/softfb/internal/raster"
	"github.com/rook-computer/softfb/internal/state"
)

// Host is implemented by the windowing side: the Linux framebuffer, a
// terminal, or an in-memory surface.
type Host interface {
	// PollEvents returns the events queued since the last call without
	// blocking.
	PollEvents() []Event
	// CurrentSurfaceSize is the drawable size in pixels.
	CurrentSurfaceSize() (width, height int)
	// PresentRegion copies r of fb to the visible surface. r is always
	// within fb.Bounds().
	PresentRegion(fb *raster.Framebuffer, r image.Rectangle) error
}

type EventKind int

const (
	// EventQuit asks the frame loop to stop.
	EventQuit EventKind = iota
	// EventResize reports a new surface size; the session picks it up
	// through CurrentSurfaceSize.
	EventResize
	// EventKey carries a typed rune.
	EventKey
	// EventMouse carries a pointer position (absolute, or a delta when
	// Relative is set) and the pressed buttons.
	EventMouse
)

func (k EventKind) String() string {
	switch k {
	case EventQuit:
		return "quit"
	case EventResize:
		return "resize"
	case EventKey:
		return "key"
	case EventMouse:
		return "mouse"
	}
	return "unknown"
}

type Event struct {
	Kind     EventKind
	X, Y     int
	Relative bool
	Buttons  state.Buttons
	Rune     rune
}

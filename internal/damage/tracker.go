// Package damage tracks the region of a framebuffer modified since the last
// presentation as a single bounding rectangle.
package damage

import "image"

type State int

const (
	Empty State = iota
	Partial
	Full
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Partial:
		return "partial"
	case Full:
		return "full"
	}
	return "unknown"
}

// Config controls a Tracker. Tracking is off unless Enabled is set; a
// disabled tracker always reports the whole buffer as dirty.
type Config struct {
	Enabled bool
}

// Tracker coalesces reported rectangles by bounding-box union. It does not
// keep a list of disjoint rectangles, so tracking stays O(1) at the price of
// presenting some unchanged pixels.
//
// Tracker is not safe for concurrent use.
type Tracker struct {
	enabled bool
	bounds  image.Rectangle
	rect    image.Rectangle
	state   State
}

func New(cfg Config, width, height int) *Tracker {
	t := &Tracker{enabled: cfg.Enabled}
	t.SetSize(width, height)
	return t
}

// SetSize changes the clamp bounds and drops any pending damage.
func (t *Tracker) SetSize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	t.bounds = image.Rect(0, 0, width, height)
	t.Reset()
}

func (t *Tracker) Enabled() bool { return t.enabled }

// SetEnabled toggles tracking. Pending damage is dropped either way.
func (t *Tracker) SetEnabled(enabled bool) {
	t.enabled = enabled
	t.Reset()
}

func (t *Tracker) State() State { return t.state }

// Report adds r to the dirty region. r is clamped to the buffer; an empty
// result is ignored, as is any report while the whole buffer is dirty.
func (t *Tracker) Report(r image.Rectangle) {
	if !t.enabled || t.state == Full {
		return
	}
	r = r.Canon().Intersect(t.bounds)
	if r.Empty() {
		return
	}
	if t.state == Empty {
		t.rect = r
		t.state = Partial
		return
	}
	t.rect = t.rect.Union(r)
}

// MarkFull marks the entire buffer dirty.
func (t *Tracker) MarkFull() {
	if !t.enabled {
		return
	}
	t.state = Full
	t.rect = image.Rectangle{}
}

// Query returns the region to present and whether anything needs presenting.
// It does not change the tracker.
func (t *Tracker) Query() (image.Rectangle, bool) {
	if !t.enabled {
		return t.bounds, !t.bounds.Empty()
	}
	switch t.state {
	case Full:
		return t.bounds, !t.bounds.Empty()
	case Partial:
		return t.rect, true
	}
	return image.Rectangle{}, false
}

func (t *Tracker) Reset() {
	t.state = Empty
	t.rect = image.Rectangle{}
}

// Package termhost presents frames in a true color terminal. Each cell shows
// two vertically stacked pixels with the upper half block glyph, so the
// surface is as wide as the terminal and twice as tall.
package termhost

import (
	"image"

	"github.com/gdamore/tcell/v2"
	"github.com/rook-computer/softfb/internal/logging"
	"github.com/rook-computer/softfb/internal/present"
	"github.com/rook-computer/softfb/internal/raster"
	"github.com/rook-computer/softfb/internal/state"
)

const (
	upperHalf   = '▀'
	eventBuffer = 64
)

type Host struct {
	screen tcell.Screen
	events chan present.Event
	log    logging.Logger
}

// Open initialises the controlling terminal.
func Open(log logging.Logger) (*Host, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return New(screen, log)
}

// New takes ownership of screen, initialises it and starts reading its
// events. Close releases the terminal.
func New(screen tcell.Screen, log logging.Logger) (*Host, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorBlack))
	screen.HideCursor()
	screen.EnableMouse()
	screen.Clear()

	h := &Host{
		screen: screen,
		events: make(chan present.Event, eventBuffer),
		log:    logging.OrNoop(log),
	}
	w, rows := screen.Size()
	h.log.Infof("term", "terminal %dx%d cells, surface %dx%d", w, rows, w, rows*2)
	go h.pollLoop()
	return h, nil
}

// pollLoop ends when the screen is finalised and PollEvent returns nil.
func (h *Host) pollLoop() {
	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			return
		}
		pe, ok := translate(ev)
		if !ok {
			continue
		}
		select {
		case h.events <- pe:
		default:
			h.log.Errorf("term", "event queue full, dropping %v", pe.Kind)
		}
	}
}

func translate(ev tcell.Event) (present.Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return present.Event{Kind: present.EventQuit}, true
		case tcell.KeyRune:
			return present.Event{Kind: present.EventKey, Rune: ev.Rune()}, true
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		var b state.Buttons
		if ev.Buttons()&tcell.Button1 != 0 {
			b |= state.ButtonLeft
		}
		if ev.Buttons()&tcell.Button2 != 0 {
			b |= state.ButtonRight
		}
		if ev.Buttons()&tcell.Button3 != 0 {
			b |= state.ButtonMiddle
		}
		return present.Event{Kind: present.EventMouse, X: x, Y: y * 2, Buttons: b}, true
	case *tcell.EventResize:
		w, rows := ev.Size()
		return present.Event{Kind: present.EventResize, X: w, Y: rows * 2}, true
	}
	return present.Event{}, false
}

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

func (h *Host) CurrentSurfaceSize() (int, int) {
	w, rows := h.screen.Size()
	return w, rows * 2
}

// PresentRegion redraws every cell that overlaps r. A cell row holds pixel
// rows 2y and 2y+1, so odd edges pull in the neighbouring pixel row.
func (h *Host) PresentRegion(fb *raster.Framebuffer, r image.Rectangle) error {
	r = r.Intersect(fb.Bounds())
	if r.Empty() {
		return nil
	}
	for cy := r.Min.Y / 2; cy < (r.Max.Y+1)/2; cy++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			top := fb.PixelAt(x, cy*2)
			bottom := fb.PixelAt(x, cy*2+1)
			style := tcell.StyleDefault.Foreground(cellColor(top)).Background(cellColor(bottom))
			h.screen.SetContent(x, cy, upperHalf, nil, style)
		}
	}
	h.screen.Show()
	return nil
}

func cellColor(c raster.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Close restores the terminal and stops the event reader.
func (h *Host) Close() {
	h.screen.Fini()
	h.log.Infof("term", "terminal restored")
}

var _ present.Host = (*Host)(nil)

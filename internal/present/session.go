package present

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/rook-computer/softfb/internal/damage"
	"github.com/rook-computer/softfb/internal/logging"
	"github.com/rook-computer/softfb/internal/raster"
	"github.com/rook-computer/softfb/internal/state"
)

// statsLogInterval spaces the periodic frame summary in Run.
const statsLogInterval = 5 * time.Second

// ErrNoHost is returned by NewSession when host is nil.
var ErrNoHost = errors.New("present: no host")

// DrawFunc renders one frame.
type DrawFunc func(c *raster.Canvas, in state.Input)

type Config struct {
	Damage damage.Config
	FPS    int
	Logger logging.Logger
	// Store receives input and timing; a private one is used when nil.
	Store *state.Store
	// Now defaults to time.Now.
	Now func() time.Time
}

// Stats describes the most recent frame.
type Stats struct {
	Frame     uint64
	Width     int
	Height    int
	Dirty     image.Rectangle
	Presented bool
	// PresentedPixels is the area of Dirty when Presented.
	PresentedPixels int
	// TotalPresentedPixels accumulates PresentedPixels over the session.
	TotalPresentedPixels uint64
	DamageTracking       bool
}

type request struct {
	fn   func(s *Session)
	done chan struct{}
}

// Session owns the single canvas of a rendering session and runs the
// per-frame cycle: poll input, follow the surface size, draw, present the
// damage, reset it.
//
// Drawing and presenting never overlap. Other goroutines reach the canvas
// only through Exec, which runs between frames on the loop goroutine.
type Session struct {
	host   Host
	canvas *raster.Canvas
	store  *state.Store
	log    logging.Logger
	fps    int
	now    func() time.Time

	frame uint64
	start time.Time
	last  time.Time
	stats Stats
	quit  bool

	requests chan request
}

func NewSession(host Host, cfg Config) (*Session, error) {
	if host == nil {
		return nil, ErrNoHost
	}
	if cfg.FPS <= 0 {
		cfg.FPS = 30
	}
	if cfg.Store == nil {
		cfg.Store = state.NewStore()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	w, h := host.CurrentSurfaceSize()
	canvas, err := raster.NewCanvas(w, h, cfg.Damage)
	if err != nil {
		return nil, fmt.Errorf("create %dx%d canvas: %w", w, h, err)
	}
	s := &Session{
		host:     host,
		canvas:   canvas,
		store:    cfg.Store,
		log:      logging.OrNoop(cfg.Logger),
		fps:      cfg.FPS,
		now:      cfg.Now,
		requests: make(chan request),
	}
	s.log.Infof("present", "session started %dx%d, damage tracking=%v", w, h, cfg.Damage.Enabled)
	return s, nil
}

func (s *Session) Canvas() *raster.Canvas { return s.canvas }
func (s *Session) Store() *state.Store    { return s.store }

// Stats returns the statistics of the last frame. Only call it from the
// loop goroutine or inside Exec.
func (s *Session) Stats() Stats { return s.stats }

// QuitRequested reports whether the host sent EventQuit.
func (s *Session) QuitRequested() bool { return s.quit }

// Frame runs one complete frame. The only error is a failed reallocation
// after a surface resize, which leaves the session unusable.
func (s *Session) Frame(draw DrawFunc) (Stats, error) {
	now := s.now()
	if s.frame == 0 {
		s.start, s.last = now, now
	}
	events := s.host.PollEvents()

	w, h := s.host.CurrentSurfaceSize()
	changed, err := s.canvas.Resize(w, h)
	if err != nil {
		return s.stats, fmt.Errorf("resize canvas to %dx%d: %w", w, h, err)
	}
	if changed {
		s.log.Infof("present", "surface resized to %dx%d", w, h)
	}

	s.frame++
	s.store.BeginFrame(s.frame, now.Sub(s.start), now.Sub(s.last), s.canvas.Width(), s.canvas.Height())
	s.last = now
	s.apply(events)

	if draw != nil {
		draw(s.canvas, s.store.Snapshot())
	}
	s.present()
	return s.stats, nil
}

func (s *Session) apply(events []Event) {
	for _, ev := range events {
		switch ev.Kind {
		case EventQuit:
			s.quit = true
		case EventKey:
			s.store.AddKey(ev.Rune)
		case EventMouse:
			if ev.Relative {
				s.store.MoveMouse(ev.X, ev.Y)
				s.store.SetButtons(ev.Buttons)
			} else {
				s.store.UpdateMouse(state.Mouse{X: ev.X, Y: ev.Y, Buttons: ev.Buttons})
			}
		case EventResize:
			// picked up through CurrentSurfaceSize
		}
	}
}

func (s *Session) present() {
	tracker := s.canvas.Damage()
	r, dirty := tracker.Query()
	st := Stats{
		Frame:                s.frame,
		Width:                s.canvas.Width(),
		Height:               s.canvas.Height(),
		Dirty:                r,
		TotalPresentedPixels: s.stats.TotalPresentedPixels,
		DamageTracking:       tracker.Enabled(),
	}
	if dirty {
		if err := s.host.PresentRegion(s.canvas.Framebuffer(), r); err != nil {
			s.log.Errorf("present", "present %v failed: %v", r, err)
		} else {
			st.Presented = true
			st.PresentedPixels = r.Dx() * r.Dy()
			st.TotalPresentedPixels += uint64(st.PresentedPixels)
		}
	}
	tracker.Reset()
	s.stats = st
}

// Run draws frames at the configured rate until ctx ends, the host asks to
// quit, or a frame fails. A quit request returns nil.
func (s *Session) Run(ctx context.Context, draw DrawFunc) error {
	ticker := time.NewTicker(time.Second / time.Duration(s.fps))
	defer ticker.Stop()
	lastLog := s.now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req := <-s.requests:
			req.fn(s)
			close(req.done)
		case <-ticker.C:
			st, err := s.Frame(draw)
			if err != nil {
				return err
			}
			if s.quit {
				s.log.Infof("present", "quit requested after frame %d", st.Frame)
				return nil
			}
			if now := s.now(); now.Sub(lastLog) > statsLogInterval {
				s.log.Infof("present", "frame %d, last dirty %v, %d px presented in total", st.Frame, st.Dirty, st.TotalPresentedPixels)
				lastLog = now
			}
		}
	}
}

// Exec runs fn on the loop goroutine between two frames. It blocks until fn
// has returned or ctx ends; it only makes progress while Run is active.
func (s *Session) Exec(ctx context.Context, fn func(s *Session)) error {
	req := request{fn: fn, done: make(chan struct{})}
	select {
	case s.requests <- req:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-req.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type snapshot struct {
	fb *raster.Framebuffer
	st Stats
}

// Snapshot copies the framebuffer as presented by the last frame. The copy
// is handed over through a channel: when ctx ends after the loop picked the
// request up, the loop still finishes the copy and nothing reads it.
func (s *Session) Snapshot(ctx context.Context) (*raster.Framebuffer, Stats, error) {
	out := make(chan snapshot, 1)
	err := s.Exec(ctx, func(s *Session) {
		out <- snapshot{fb: s.canvas.Framebuffer().Clone(), st: s.stats}
	})
	if err != nil {
		return nil, Stats{}, err
	}
	snap := <-out
	return snap.fb, snap.st, nil
}

// SetDamageTracking switches dirty rectangle presentation on or off.
func (s *Session) SetDamageTracking(ctx context.Context, enabled bool) error {
	return s.Exec(ctx, func(s *Session) {
		s.canvas.Damage().SetEnabled(enabled)
		s.log.Infof("present", "damage tracking=%v", enabled)
	})
}

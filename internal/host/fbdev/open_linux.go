//go:build linux

package fbdev

import (
	"context"
	"fmt"
	"sync"

	fb "github.com/gonutz/framebuffer"
	"github.com/rook-computer/softfb/internal/logging"
)

// Options selects the device and the optional console and input handling.
type Options struct {
	Device string
	// Console switches the active VT to graphics mode while the host is open.
	Console bool
	// Input reads keyboards and mice under /dev/input.
	Input bool
}

// Open maps the framebuffer device. The returned host must be closed to
// give the console back.
func Open(ctx context.Context, opts Options, log logging.Logger) (*Host, error) {
	log = logging.OrNoop(log)
	dev, err := fb.Open(opts.Device)
	if err != nil {
		return nil, fmt.Errorf("open framebuffer %s: %w", opts.Device, err)
	}
	bounds := dev.Bounds()
	log.Infof("fb", "framebuffer %s open, bounds=%dx%d", opts.Device, bounds.Dx(), bounds.Dy())

	inputCtx, cancel := context.WithCancel(ctx)
	var once sync.Once
	h := newHost(dev, log, nil)
	h.close = func() {
		once.Do(func() {
			cancel()
			if opts.Console {
				restoreConsole(log)
			}
			dev.Close()
			log.Infof("fb", "framebuffer %s closed", opts.Device)
		})
	}

	if opts.Console {
		if err := setGraphicsMode(); err != nil {
			log.Errorf("tty", "KD_GRAPHICS failed: %v", err)
		} else {
			log.Infof("tty", "KD_GRAPHICS set")
		}
		if err := hideCursor(); err != nil {
			log.Errorf("tty", "hide cursor failed: %v", err)
		}
	}
	if opts.Input {
		startInput(inputCtx, log, h.queue)
	}
	return h, nil
}

func restoreConsole(log logging.Logger) {
	if err := showCursor(); err != nil {
		log.Errorf("tty", "show cursor failed: %v", err)
	}
	if err := restoreTextMode(); err != nil {
		log.Errorf("tty", "KD_TEXT failed: %v", err)
	} else {
		log.Infof("tty", "KD_TEXT set")
	}
}

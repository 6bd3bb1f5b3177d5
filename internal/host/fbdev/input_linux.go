//go:build linux

package fbdev

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"

	"github.com/rook-computer/softfb/internal/logging"
	"github.com/rook-computer/softfb/internal/present"
	"golang.org/x/sys/unix"
)

// startInput reads every evdev device under /dev/input until ctx ends.
// Missing or unreadable devices are skipped.
func startInput(ctx context.Context, log logging.Logger, emit func(present.Event)) {
	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil || len(paths) == 0 {
		log.Infof("input", "no evdev devices found")
		return
	}
	tvSize := binary.Size(unix.Timeval{})
	for _, path := range paths {
		go readDevice(ctx, log, path, newDecoder(tvSize), emit)
	}
}

func readDevice(ctx context.Context, log logging.Logger, path string, dec *decoder, emit func(present.Event)) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return
	}
	f := os.NewFile(uintptr(fd), path)
	defer func() {
		_ = f.Close()
	}()
	log.Infof("input", "reading %s", path)

	buf := make([]byte, 64*dec.eventSize())
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			// Device might have gone away.
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			log.Errorf("input", "read %s: %v", path, err)
			return
		}
		for _, ev := range dec.decode(buf[:n]) {
			emit(ev)
		}
	}
}

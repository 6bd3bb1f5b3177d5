//go:build !linux

package fbdev

import (
	"context"
	"errors"

	"github.com/rook-computer/softfb/internal/logging"
)

type Options struct {
	Device  string
	Console bool
	Input   bool
}

// Open always fails: framebuffer devices only exist on Linux.
func Open(ctx context.Context, opts Options, log logging.Logger) (*Host, error) {
	return nil, errors.New("fbdev: framebuffer devices are only supported on linux")
}

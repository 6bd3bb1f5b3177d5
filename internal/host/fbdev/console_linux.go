//go:build linux

package fbdev

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// KD console modes from linux/kd.h
const (
	kdText     = 0x00
	kdGraphics = 0x01
	kdSetMode  = 0x4B3A // KDSETMODE ioctl
)

// Prefer the active VT, fall back to tty0.
var consolePaths = []string{"/dev/tty", "/dev/tty0"}

func setGraphicsMode() error { return setConsoleMode(kdGraphics, "KD_GRAPHICS") }
func restoreTextMode() error { return setConsoleMode(kdText, "KD_TEXT") }

func setConsoleMode(mode int, name string) error {
	var lastErr error
	for _, p := range consolePaths {
		fd, err := unix.Open(p, unix.O_RDONLY, 0)
		if err != nil {
			lastErr = fmt.Errorf("open %s: %w", p, err)
			continue
		}
		err = unix.IoctlSetInt(fd, kdSetMode, mode)
		_ = unix.Close(fd)
		if err != nil {
			lastErr = fmt.Errorf("%s on %s: %w", name, p, err)
			continue
		}
		return nil
	}
	return lastErr
}

func hideCursor() error { return writeConsole("\x1b[?25l") }
func showCursor() error { return writeConsole("\x1b[?25h") }

func writeConsole(s string) error {
	var lastErr error
	for _, p := range consolePaths {
		f, err := os.OpenFile(p, os.O_WRONLY, 0)
		if err != nil {
			lastErr = err
			continue
		}
		_, err = f.WriteString(s)
		_ = f.Close()
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("write console: %w", lastErr)
}

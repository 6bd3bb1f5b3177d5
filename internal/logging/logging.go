// Package logging provides the component tagged logger shared by the
// session, hosts and scenes.
package logging

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Logger writes messages tagged with the emitting component ("present",
// "fbdev", "scene", ...).
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

// FileLogger writes one line per message:
//
//	2006-01-02T15:04:05Z07:00 [INFO] component: message
type FileLogger struct {
	mu  *sync.Mutex
	w   io.Writer
	now func() time.Time
}

func NewFileLogger(w io.Writer) FileLogger {
	return FileLogger{mu: &sync.Mutex{}, w: w, now: time.Now}
}

func (l FileLogger) Infof(component string, format string, args ...interface{}) {
	l.write("INFO", component, format, args...)
}

func (l FileLogger) Errorf(component string, format string, args ...interface{}) {
	l.write("ERROR", component, format, args...)
}

func (l FileLogger) write(level, component, format string, args ...interface{}) {
	if l.w == nil {
		return
	}
	now := time.Now
	if l.now != nil {
		now = l.now
	}
	line := now().Format(time.RFC3339) + " [" + level + "] " + component + ": " + fmt.Sprintf(format, args...) + "\n"
	if l.mu != nil {
		l.mu.Lock()
		defer l.mu.Unlock()
	}
	_, _ = io.WriteString(l.w, line)
}

// OrNoop returns l, or a NoopLogger when l is nil.
func OrNoop(l Logger) Logger {
	if l == nil {
		return NoopLogger{}
	}
	return l
}

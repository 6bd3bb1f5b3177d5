// Package state keeps the host supplied input and timing that scenes read
// while drawing. The rasterizer itself never looks at it.
package state

import (
	"sync"
	"time"
)

type Buttons uint8

const (
	ButtonLeft Buttons = 1 << iota
	ButtonRight
	ButtonMiddle
)

type Mouse struct {
	X, Y    int
	Buttons Buttons
}

type Input struct {
	Frame   uint64
	Elapsed time.Duration
	Delta   time.Duration
	Width   int
	Height  int
	Mouse   Mouse
	// Keys holds runes typed since the previous frame.
	Keys []rune
}

type Store struct {
	mu    sync.RWMutex
	input Input
}

func NewStore() *Store {
	return &Store{}
}

// Snapshot returns a copy safe to hold across frames.
func (store *Store) Snapshot() Input {
	store.mu.RLock()
	defer store.mu.RUnlock()
	in := store.input
	in.Keys = append([]rune(nil), store.input.Keys...)
	return in
}

// BeginFrame records timing and surface size and clears the per-frame keys.
func (store *Store) BeginFrame(frame uint64, elapsed, delta time.Duration, width, height int) {
	store.mu.Lock()
	store.input.Frame = frame
	store.input.Elapsed = elapsed
	store.input.Delta = delta
	store.input.Width = width
	store.input.Height = height
	store.input.Keys = store.input.Keys[:0]
	store.mu.Unlock()
}

func (store *Store) UpdateMouse(mouse Mouse) {
	store.mu.Lock()
	store.input.Mouse = mouse
	store.mu.Unlock()
}

// MoveMouse applies a relative motion, clamped to the last known size.
func (store *Store) MoveMouse(dx, dy int) {
	store.mu.Lock()
	m := &store.input.Mouse
	m.X = clamp(m.X+dx, store.input.Width)
	m.Y = clamp(m.Y+dy, store.input.Height)
	store.mu.Unlock()
}

func (store *Store) SetButtons(b Buttons) {
	store.mu.Lock()
	store.input.Mouse.Buttons = b
	store.mu.Unlock()
}

func (store *Store) AddKey(r rune) {
	store.mu.Lock()
	store.input.Keys = append(store.input.Keys, r)
	store.mu.Unlock()
}

func clamp(v, limit int) int {
	if v < 0 || limit <= 0 {
		return 0
	}
	if v >= limit {
		return limit - 1
	}
	return v
}

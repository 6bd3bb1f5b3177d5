package state

import (
	"testing"
	"time"
)

func TestStoreFrameAndKeys(t *testing.T) {
	s := NewStore()
	s.BeginFrame(1, time.Second, 33*time.Millisecond, 320, 240)
	s.AddKey('a')
	s.AddKey('b')

	snap := s.Snapshot()
	if snap.Frame != 1 || snap.Width != 320 || snap.Delta != 33*time.Millisecond || string(snap.Keys) != "ab" {
		t.Errorf("snapshot %+v", snap)
	}

	s.BeginFrame(2, 2*time.Second, time.Second, 320, 240)
	if len(s.Snapshot().Keys) != 0 {
		t.Error("keys survived into the next frame")
	}
	if string(snap.Keys) != "ab" {
		t.Error("snapshot aliases the store's key buffer")
	}
}

func TestStoreMouseClamp(t *testing.T) {
	s := NewStore()
	s.BeginFrame(0, 0, 0, 100, 50)
	s.UpdateMouse(Mouse{X: 10, Y: 10})
	s.MoveMouse(500, -30)
	m := s.Snapshot().Mouse
	if m.X != 99 || m.Y != 0 {
		t.Errorf("mouse = %+v, want clamped to (99, 0)", m)
	}
	s.SetButtons(ButtonLeft | ButtonMiddle)
	if s.Snapshot().Mouse.Buttons&ButtonLeft == 0 {
		t.Error("buttons not stored")
	}
}

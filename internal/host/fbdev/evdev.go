package fbdev

import (
	"encoding/binary"

	"github.com/rook-computer/softfb/internal/present"
	"github.com/rook-computer/softfb/internal/state"
)

// Linux input-event-codes.h
const (
	evKey = 0x01
	evRel = 0x02

	relX = 0x00
	relY = 0x01

	keyEsc = 1
	keyF4  = 62

	btnLeft   = 0x110
	btnRight  = 0x111
	btnMiddle = 0x112
)

var keyRunes = map[uint16]rune{
	2: '1', 3: '2', 4: '3', 5: '4', 6: '5', 7: '6', 8: '7', 9: '8', 10: '9', 11: '0',
	16: 'q', 17: 'w', 18: 'e', 19: 'r', 20: 't', 21: 'y', 22: 'u', 23: 'i', 24: 'o', 25: 'p',
	30: 'a', 31: 's', 32: 'd', 33: 'f', 34: 'g', 35: 'h', 36: 'j', 37: 'k', 38: 'l',
	44: 'z', 45: 'x', 46: 'c', 47: 'v', 48: 'b', 49: 'n', 50: 'm',
	57: ' ',
}

// decoder turns raw input_event records into session events. One decoder
// serves one device; it remembers the mouse buttons held on that device.
type decoder struct {
	tvSize  int
	buttons state.Buttons
}

func newDecoder(tvSize int) *decoder {
	return &decoder{tvSize: tvSize}
}

// eventSize is timeval + u16 type + u16 code + s32 value.
func (d *decoder) eventSize() int {
	return d.tvSize + 8
}

func (d *decoder) decode(buf []byte) []present.Event {
	var out []present.Event
	size := d.eventSize()
	for off := 0; off+size <= len(buf); off += size {
		rec := buf[off+d.tvSize : off+size]
		typ := binary.LittleEndian.Uint16(rec[0:2])
		code := binary.LittleEndian.Uint16(rec[2:4])
		value := int32(binary.LittleEndian.Uint32(rec[4:8]))
		if ev, ok := d.translate(typ, code, value); ok {
			out = append(out, ev)
		}
	}
	return out
}

func (d *decoder) translate(typ, code uint16, value int32) (present.Event, bool) {
	switch typ {
	case evKey:
		if b, ok := mouseButton(code); ok {
			if value != 0 {
				d.buttons |= b
			} else {
				d.buttons &^= b
			}
			return present.Event{Kind: present.EventMouse, Relative: true, Buttons: d.buttons}, true
		}
		if value != 1 {
			return present.Event{}, false
		}
		if code == keyEsc || code == keyF4 {
			return present.Event{Kind: present.EventQuit}, true
		}
		if r, ok := keyRunes[code]; ok {
			return present.Event{Kind: present.EventKey, Rune: r}, true
		}
	case evRel:
		ev := present.Event{Kind: present.EventMouse, Relative: true, Buttons: d.buttons}
		switch code {
		case relX:
			ev.X = int(value)
		case relY:
			ev.Y = int(value)
		default:
			return present.Event{}, false
		}
		return ev, true
	}
	return present.Event{}, false
}

func mouseButton(code uint16) (state.Buttons, bool) {
	switch code {
	case btnLeft:
		return state.ButtonLeft, true
	case btnRight:
		return state.ButtonRight, true
	case btnMiddle:
		return state.ButtonMiddle, true
	}
	return 0, false
}

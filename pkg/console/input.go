package console

import (
	"unicode/utf16"
	"unicode/utf8"

	"src.rtio.sh/pkg/ansi"
)

// InputRecord is a decoded console input record.
type InputRecord struct {
	// Whether this is a keyboard event. All other fields are only meaningful
	// for keyboard events.
	KeyEvent    bool
	KeyDown     bool
	RepeatCount uint16
	VirtualKey  uint16
	// UTF-16 code unit produced by the key, or 0.
	Char        uint16
	ControlKeys uint32
}

// Bits of InputRecord.ControlKeys.
const (
	RightAltPressed  uint32 = 0x01
	LeftAltPressed   uint32 = 0x02
	RightCtrlPressed uint32 = 0x04
	LeftCtrlPressed  uint32 = 0x08
	ShiftPressed     uint32 = 0x10
)

// A subset of virtual key codes listed in
// https://learn.microsoft.com/en-us/windows/win32/inputdev/virtual-key-codes
var virtualKeys = map[uint16]ansi.Key{
	0x21: ansi.PageUp, 0x22: ansi.PageDown,
	0x23: ansi.End, 0x24: ansi.Home,
	0x25: ansi.Left, 0x26: ansi.Up, 0x27: ansi.Right, 0x28: ansi.Down,
	0x2d: ansi.Insert, 0x2e: ansi.Delete,
	0x70: ansi.F1, 0x71: ansi.F2, 0x72: ansi.F3, 0x73: ansi.F4,
	0x74: ansi.F5, 0x75: ansi.F6, 0x76: ansi.F7, 0x77: ansi.F8,
	0x78: ansi.F9, 0x79: ansi.F10, 0x7a: ansi.F11, 0x7b: ansi.F12,
	/* 0x7c - 0x87: F13 - F24; no xterm encoding */
}

func convertMod(state uint32) ansi.Mod {
	var mod ansi.Mod
	if state&ShiftPressed != 0 {
		mod |= ansi.Shift
	}
	if state&(LeftAltPressed|RightAltPressed) != 0 {
		mod |= ansi.Alt
	}
	if state&(LeftCtrlPressed|RightCtrlPressed) != 0 {
		mod |= ansi.Ctrl
	}
	return mod
}

// Translate converts input records to the bytes a terminal would send and
// writes them to p. It returns the number of bytes written and the number of
// leading records that were fully handled; the caller should dequeue exactly
// that many records.
//
// Navigation and function keys become CSI sequences carrying the xterm
// modifier parameter, other keys become the UTF-8 encoding of their
// character, and key releases and non-keyboard events produce nothing but
// are still consumed. A key with a repeat count produces its bytes that many
// times. Translation stops at the first record whose bytes do not fit in the
// remaining space of p; that record is not consumed.
func Translate(recs []InputRecord, p []byte) (n, consumed int) {
	var enc [16]byte
	for consumed < len(recs) {
		rec := &recs[consumed]
		if !rec.KeyEvent || !rec.KeyDown {
			consumed++
			continue
		}
		out, used := encodeKey(enc[:0], recs[consumed:], consumed == 0)
		if used == 0 {
			// Waiting for the trailing half of a surrogate pair.
			break
		}
		if len(out) > 0 {
			count := max(int(rec.RepeatCount), 1)
			if n+count*len(out) > len(p) {
				break
			}
			for i := 0; i < count; i++ {
				n += copy(p[n:], out)
			}
		}
		consumed += used
	}
	return n, consumed
}

// Encodes the key-down record recs[0], appending to dst. It returns the
// number of records used, which is more than 1 when recs[0] is the leading
// half of a surrogate pair, and 0 when the trailing half has not been
// queued yet. If first is true, a missing trailing half is not waited for.
func encodeKey(dst []byte, recs []InputRecord, first bool) ([]byte, int) {
	rec := &recs[0]
	if key, ok := virtualKeys[rec.VirtualKey]; ok {
		return ansi.AppendKey(dst, key, convertMod(rec.ControlKeys)), 1
	}
	if rec.Char == 0 {
		return dst, 1
	}
	r := rune(rec.Char)
	if !utf16.IsSurrogate(r) {
		return utf8.AppendRune(dst, r), 1
	}
	if r >= 0xdc00 {
		// Unpaired trailing surrogate.
		return utf8.AppendRune(dst, utf8.RuneError), 1
	}
	for i := 1; i < len(recs); i++ {
		if !recs[i].KeyEvent || !recs[i].KeyDown {
			continue
		}
		if r2 := rune(recs[i].Char); 0xdc00 <= r2 && r2 <= 0xdfff {
			return utf8.AppendRune(dst, utf16.DecodeRune(r, r2)), i + 1
		}
		// Unpaired leading surrogate.
		return utf8.AppendRune(dst, utf8.RuneError), 1
	}
	if first {
		return utf8.AppendRune(dst, utf8.RuneError), 1
	}
	return dst, 0
}

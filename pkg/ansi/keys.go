package ansi

import "strconv"

// Key is a navigation or function key that has an xterm CSI encoding.
type Key uint8

// Keys with a CSI encoding.
const (
	KeyNone Key = iota
	Home
	End
	PageUp
	PageDown
	Insert
	Delete
	Up
	Down
	Right
	Left
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
)

// Mod is a set of modifier keys.
type Mod uint8

// Modifier keys.
const (
	Shift Mod = 1 << iota
	Alt
	Ctrl
)

// Param returns the xterm encoding of the modifiers: 1 for none, 2 for
// Shift, 3 for Alt, 4 for Alt+Shift, 5 for Ctrl, 6 for Ctrl+Shift, 7 for
// Ctrl+Alt and 8 for all three.
func (m Mod) Param() int {
	return 1 + int(m&(Shift|Alt|Ctrl))
}

// The keys are all sent as CSI, a number, an optional modifier parameter and
// a final byte. Arrow keys carry a leading 1 so that the modifier always has
// a slot; the numbers of the other keys follow the VT220 tilde sequences.
var keySeqs = [...]struct {
	num   string
	final byte
}{
	Home: {"1", '~'}, End: {"4", '~'},
	PageUp: {"5", '~'}, PageDown: {"6", '~'},
	Insert: {"2", '~'}, Delete: {"3", '~'},
	Up: {"1", 'A'}, Down: {"1", 'B'}, Right: {"1", 'C'}, Left: {"1", 'D'},
	F1: {"11", '~'}, F2: {"12", '~'}, F3: {"13", '~'}, F4: {"14", '~'},
	// NOTE: 16 and 22 are unused
	F5: {"15", '~'}, F6: {"17", '~'}, F7: {"18", '~'}, F8: {"19", '~'},
	F9: {"20", '~'}, F10: {"21", '~'}, F11: {"23", '~'}, F12: {"24", '~'},
}

// AppendKey appends the CSI sequence for k pressed with the given modifiers
// to dst and returns the extended slice. KeyNone and unknown keys append
// nothing.
func AppendKey(dst []byte, k Key, mod Mod) []byte {
	if int(k) >= len(keySeqs) || keySeqs[k].final == 0 {
		return dst
	}
	s := keySeqs[k]
	dst = append(dst, CSI...)
	dst = append(dst, s.num...)
	if p := mod.Param(); p > 1 {
		dst = append(dst, ';')
		dst = strconv.AppendInt(dst, int64(p), 10)
	}
	return append(dst, s.final)
}

package ansi

import (
	"testing"

	"src.rtio.sh/pkg/tt"
)

func appendKey(k Key, mod Mod) string { return string(AppendKey(nil, k, mod)) }

func TestAppendKey(t *testing.T) {
	tt.Test(t, tt.Fn("AppendKey", appendKey).RetsFmt("%q"),
		Args(Home, Mod(0)).Rets("\x1b[1~"),
		Args(End, Mod(0)).Rets("\x1b[4~"),
		Args(PageUp, Mod(0)).Rets("\x1b[5~"),
		Args(PageDown, Ctrl).Rets("\x1b[6;5~"),
		Args(Insert, Mod(0)).Rets("\x1b[2~"),
		Args(Delete, Shift).Rets("\x1b[3;2~"),

		Args(Up, Mod(0)).Rets("\x1b[1A"),
		Args(Down, Alt).Rets("\x1b[1;3B"),
		Args(Right, Alt|Shift).Rets("\x1b[1;4C"),
		Args(Left, Ctrl|Shift).Rets("\x1b[1;6D"),

		Args(F1, Mod(0)).Rets("\x1b[11~"),
		Args(F5, Ctrl|Alt).Rets("\x1b[15;7~"),
		Args(F6, Mod(0)).Rets("\x1b[17~"),
		Args(F11, Mod(0)).Rets("\x1b[23~"),
		Args(F12, Ctrl|Alt|Shift).Rets("\x1b[24;8~"),

		// Keys without an encoding
		Args(KeyNone, Ctrl).Rets(""),
		Args(Key(200), Mod(0)).Rets(""),
	)
}

func TestAppendKey_Appends(t *testing.T) {
	if got := string(AppendKey([]byte("x"), Home, 0)); got != "x\x1b[1~" {
		t.Errorf("got %q, want %q", got, "x\x1b[1~")
	}
}

func TestAppendKey_RoundTripsThroughParse(t *testing.T) {
	buf := AppendKey([]byte("x"), Left, Ctrl)
	s := Parse(buf, 1+len(CSI))
	if !s.Terminated || s.Command != 'D' || s.Count != 2 || s.Params[1] != 5 {
		t.Errorf("Parse(%q) = %+v", buf, s)
	}
	if s.Next != len(buf) {
		t.Errorf("Next = %d, want %d", s.Next, len(buf))
	}
}

func TestMod_Param(t *testing.T) {
	tt.Test(t, tt.Fn("Mod.Param", Mod.Param),
		Args(Mod(0)).Rets(1),
		Args(Shift).Rets(2),
		Args(Alt).Rets(3),
		Args(Alt|Shift).Rets(4),
		Args(Ctrl).Rets(5),
		Args(Ctrl|Shift).Rets(6),
		Args(Ctrl|Alt).Rets(7),
		Args(Ctrl|Alt|Shift).Rets(8),
	)
}

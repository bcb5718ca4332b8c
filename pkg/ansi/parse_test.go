package ansi

import (
	"testing"

	"src.rtio.sh/pkg/tt"
)

var Args = tt.Args

func seq(cmd byte, next int, params ...int) Seq {
	s := Seq{Command: cmd, Terminated: cmd != 0, Count: len(params), Next: next}
	copy(s.Params[:], params)
	return s
}

func parse(s string, pos int) Seq { return Parse([]byte(s), pos) }

func TestParse(t *testing.T) {
	tt.Test(t, tt.Fn("Parse", parse).ArgsFmt("%q, %d"),
		Args("\x1b[1;2A", 2).Rets(seq('A', 6, 1, 2)),
		Args("\x1b[K", 2).Rets(seq('K', 3)),
		Args("\x1b[42m", 2).Rets(seq('m', 5, 42)),
		// Omitted parameters
		Args("\x1b[;5H", 2).Rets(seq('H', 5, 0, 5)),
		Args("\x1b[3;m", 2).Rets(seq('m', 5, 3, 0)),
		Args("\x1b[;m", 2).Rets(seq('m', 4, 0, 0)),
		// Parameter limit
		Args("\x1b[1;2;3;4;5;6m", 2).Rets(seq('m', 14, 1, 2, 3, 4, 5, 6)),
		Args("\x1b[1;2;3;4;5;6;7m", 2).Rets(
			Seq{Params: [MaxParams]int{1, 2, 3, 4, 5, 6}, Count: MaxParams, Next: 14}),
		Args(";;;;;;m", 0).Rets(Seq{Count: MaxParams, Next: 6}),
		// Trailing text is left alone
		Args("\x1b[2Jhello", 2).Rets(seq('J', 4, 2)),
		// Forward progress at and past the end
		Args("", 0).Rets(seq(0, 1)),
		Args("ab", 5).Rets(seq(0, 6)),
		Args("\x1b[123", 2).Rets(Seq{Params: [MaxParams]int{123}, Count: 1, Next: 6}),
		// Saturation
		Args("\x1b[99999999999C", 2).Rets(seq('C', 14, maxParam)),
		Args("\x1b[65535;65536C", 2).Rets(seq('C', 14, maxParam, maxParam)),
		// Any non-digit, non-';' byte is a command
		Args("\x1b[\x00", 2).Rets(Seq{Terminated: true, Next: 3}),
	)
}

func TestParse_AlwaysAdvances(t *testing.T) {
	inputs := []string{"", "0", "000000000", ";;;;;;;;", "1;", "\x1b", "[", "9;9;9;9;9;9;9;9;9"}
	for _, input := range inputs {
		buf := []byte(input)
		for pos := 0; pos <= len(buf)+1; pos++ {
			if next := Parse(buf, pos).Next; next <= pos {
				t.Errorf("Parse(%q, %d).Next = %d, want > %d", input, pos, next, pos)
			}
		}
	}
}

func TestSeq_Param(t *testing.T) {
	s := Parse([]byte("5;0"), 0)
	tt.Test(t, tt.Fn("Seq.Param", s.Param),
		Args(0, 1).Rets(5),
		// An explicit zero counts as omitted
		Args(1, 1).Rets(1),
		Args(4, 7).Rets(7),
	)
}

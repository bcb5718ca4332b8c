// Package ansi implements the subset of ANSI escape sequences understood by
// the standard-stream driver: parsing CSI parameter lists, and encoding keys
// as xterm CSI sequences.
package ansi

// CSI is the Control Sequence Introducer.
const CSI = "\x1b["

// MaxParams is the number of numeric parameters a sequence may carry.
const MaxParams = 6

// Parameters larger than this saturate.
const maxParam = 1<<16 - 1

// Seq is a parsed CSI parameter list.
type Seq struct {
	// Command is the byte that terminated the sequence. It is only
	// meaningful when Terminated is true.
	Command    byte
	Terminated bool
	// Params holds the numeric parameters; only the first Count are
	// meaningful.
	Params [MaxParams]int
	Count  int
	// Next is the position right after the last consumed byte. It is always
	// greater than the position the parse started at.
	Next int
}

// Param returns the i-th parameter, or def if it was not given or is zero.
func (s *Seq) Param(i, def int) int {
	if i < s.Count && s.Params[i] != 0 {
		return s.Params[i]
	}
	return def
}

// Parse parses a CSI parameter list in buf, starting at pos, which is
// normally right after "ESC [". Digits accumulate into the current parameter,
// ';' moves to the next one, and any other byte is the command and ends the
// sequence. Omitted parameters are 0. A seventh parameter ends the scan
// without a command.
//
// Parse never fails and always makes progress, even when pos is at or past
// the end of buf.
func Parse(buf []byte, pos int) Seq {
	var seq Seq
	arg := -1
	n := pos
scan:
	for ; n < len(buf); n++ {
		c := buf[n]
		switch {
		case '0' <= c && c <= '9':
			if arg < 0 {
				arg = 0
			}
			if v := seq.Params[arg]*10 + int(c-'0'); v <= maxParam {
				seq.Params[arg] = v
			} else {
				seq.Params[arg] = maxParam
			}
		case c == ';':
			// An empty leading parameter still occupies a slot.
			arg = max(arg, 0) + 1
			if arg >= MaxParams {
				break scan
			}
		default:
			seq.Command = c
			seq.Terminated = true
			break scan
		}
	}
	seq.Next = n + 1
	seq.Count = min(arg+1, MaxParams)
	return seq
}

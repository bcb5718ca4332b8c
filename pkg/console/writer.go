package console

import (
	"io"

	"src.rtio.sh/pkg/ansi"
	"src.rtio.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[console] ")

// Writer is an io.Writer that passes text through to an underlying writer
// and applies the ANSI control sequences it finds to a Screen.
//
// The recognized sequences are CSI H (cursor position), J (clear the
// window), K (erase to the end of the line), A, B, C and D (cursor movement)
// and m (graphics rendition). Other CSI sequences are dropped; bytes outside
// of CSI sequences are written unchanged.
//
// A Writer keeps no state between calls, so a sequence split across two
// Write calls is not recognized.
type Writer struct {
	out    io.Writer
	screen Screen
	reset  uint16
}

// NewWriter returns a Writer that writes text to out and applies control
// sequences to screen. The reset attribute is restored by "CSI 0 m".
func NewWriter(out io.Writer, screen Screen, reset uint16) *Writer {
	return &Writer{out, screen, reset}
}

// Write writes p, translating control sequences. Failures of Screen
// operations are logged and do not stop the write; errors from the
// underlying writer are returned.
func (w *Writer) Write(p []byte) (int, error) {
	last := 0
	pos := 0
	for pos < len(p)-1 {
		if p[pos] != '\x1b' || p[pos+1] != '[' {
			pos++
			continue
		}
		if pos > last {
			if _, err := w.out.Write(p[last:pos]); err != nil {
				return last, err
			}
		}
		seq := ansi.Parse(p, pos+2)
		if seq.Terminated {
			w.apply(&seq)
		}
		pos = min(seq.Next, len(p))
		last = pos
	}
	if last < len(p) {
		if _, err := w.out.Write(p[last:]); err != nil {
			return last, err
		}
	}
	return len(p), nil
}

func (w *Writer) apply(seq *ansi.Seq) {
	info, err := w.screen.Info()
	if err != nil {
		logger.Println("get screen info:", err)
		return
	}
	win := info.Window
	switch seq.Command {
	case 'H':
		row, col := seq.Param(0, 1), seq.Param(1, 1)
		w.setCursor(win, Coord{X: win.Left + col - 1, Y: win.Top + row - 1})
	case 'J':
		// All modes clear the whole window, plus the row below it.
		at := Coord{X: 0, Y: win.Top}
		w.fill(at, info.Size.X*(win.Bottom-win.Top+2), info.Attr)
		w.setCursor(win, at)
	case 'K':
		w.fill(info.Cursor, info.Size.X-info.Cursor.X, info.Attr)
		w.setCursor(win, info.Cursor)
	case 'A':
		w.setCursor(win, Coord{X: info.Cursor.X, Y: info.Cursor.Y - seq.Param(0, 1)})
	case 'B':
		w.setCursor(win, Coord{X: info.Cursor.X, Y: info.Cursor.Y + seq.Param(0, 1)})
	case 'C':
		w.setCursor(win, Coord{X: info.Cursor.X + seq.Param(0, 1), Y: info.Cursor.Y})
	case 'D':
		w.setCursor(win, Coord{X: info.Cursor.X - seq.Param(0, 1), Y: info.Cursor.Y})
	case 'm':
		attr := sgr(info.Attr, w.reset, seq.Params[:seq.Count])
		if err := w.screen.SetAttr(attr); err != nil {
			logger.Println("set attribute:", err)
		}
	}
}

func (w *Writer) setCursor(win Rect, at Coord) {
	if err := w.screen.SetCursor(win.Clamp(at)); err != nil {
		logger.Println("set cursor:", err)
	}
}

func (w *Writer) fill(at Coord, n int, attr uint16) {
	if n <= 0 {
		return
	}
	if err := w.screen.Fill(at, n, attr); err != nil {
		logger.Println("fill:", err)
	}
}

// Applies SGR parameters to attr. An empty parameter list is the same as a
// single 0.
func sgr(attr, reset uint16, params []int) uint16 {
	if len(params) == 0 {
		return reset
	}
	for _, m := range params {
		switch {
		case m == 0:
			return reset
		case m == 7 || m == 27:
			attr = (attr&FgMask)<<4 | (attr&BgMask)>>4
		case 30 <= m && m <= 37:
			attr = attr&BgMask | fg(m-30)
		case 40 <= m && m <= 47:
			attr = attr&FgMask | fg(m-40)<<4
		case 90 <= m && m <= 97:
			attr = attr&BgMask | FgIntensity | fg(m-90)
		case 100 <= m && m <= 107:
			attr = attr&FgMask | BgIntensity | fg(m-100)<<4
		}
	}
	return attr
}

// Converts an ANSI color number, where bit 0 is red and bit 2 is blue, to
// foreground attribute bits.
func fg(color int) uint16 {
	var attr uint16
	if color&1 != 0 {
		attr |= FgRed
	}
	if color&2 != 0 {
		attr |= FgGreen
	}
	if color&4 != 0 {
		attr |= FgBlue
	}
	return attr
}

package stdio

import (
	"io"
	"os"

	"golang.org/x/sys/windows"

	"src.rtio.sh/pkg/console"
	"src.rtio.sh/pkg/sys"
	"src.rtio.sh/pkg/sys/ewindows"
)

// Number of console input records examined per read.
const maxRecords = 64

type win32 struct{}

// Native returns the Platform of the current OS.
func Native() Platform { return win32{} }

func (win32) Classify(f *os.File) sys.FileKind { return sys.Classify(f.Fd()) }

// Disables echo and line input in the console mode. Ctrl-C processing is
// disabled as well, unless keepSignals is true.
func (win32) EnableRaw(f *os.File, keepSignals bool) (func() error, error) {
	h := windows.Handle(f.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return nil, err
	}
	raw := mode &^ (windows.ENABLE_ECHO_INPUT | windows.ENABLE_LINE_INPUT)
	if !keepSignals {
		raw &^= windows.ENABLE_PROCESSED_INPUT
	}
	if err := windows.SetConsoleMode(h, raw); err != nil {
		return nil, err
	}
	return func() error { return windows.SetConsoleMode(h, mode) }, nil
}

func (win32) ReadNonblocking(f *os.File, kind sys.FileKind, p []byte) (int, error) {
	h := windows.Handle(f.Fd())
	switch kind {
	case sys.KindTerminal:
		return readConsole(h, p)
	case sys.KindPipeOrSocket:
		avail, err := ewindows.PeekNamedPipe(h)
		if err != nil {
			if err != windows.ERROR_BROKEN_PIPE {
				logger.Println("peek stdin:", err)
			}
			return 0, io.EOF
		}
		if avail == 0 {
			return 0, ErrRetry
		}
		p = p[:min(len(p), int(avail))]
	}
	var n uint32
	err := windows.ReadFile(h, p, &n, nil)
	if err != nil {
		if err != windows.ERROR_BROKEN_PIPE && err != windows.ERROR_HANDLE_EOF {
			logger.Println("read stdin:", err)
		}
		return 0, io.EOF
	}
	if n == 0 {
		return 0, io.EOF
	}
	return int(n), nil
}

// Translates pending console input records without blocking. Only the
// records that were translated are removed from the input queue. An empty
// queue is not the end of the stream.
func readConsole(h windows.Handle, p []byte) (int, error) {
	var recs [maxRecords]ewindows.InputRecord
	nr, err := ewindows.PeekConsoleInput(h, recs[:])
	if err != nil {
		logger.Println("peek console input:", err)
		return 0, ErrRetry
	}
	var conv [maxRecords]console.InputRecord
	for i := 0; i < nr; i++ {
		conv[i] = convertRecord(&recs[i])
	}
	n, consumed := console.Translate(conv[:nr], p)
	if consumed > 0 {
		if _, err := ewindows.ReadConsoleInput(h, recs[:consumed]); err != nil {
			logger.Println("read console input:", err)
		}
	}
	if n == 0 {
		return 0, ErrRetry
	}
	return n, nil
}

func convertRecord(rec *ewindows.InputRecord) console.InputRecord {
	key, ok := rec.KeyEvent()
	if !ok {
		return console.InputRecord{}
	}
	return console.InputRecord{
		KeyEvent:    true,
		KeyDown:     key.BKeyDown != 0,
		RepeatCount: key.WRepeatCount,
		VirtualKey:  key.WVirtualKeyCode,
		Char:        key.UChar,
		ControlKeys: key.DwControlKeyState,
	}
}

// Consoles that can interpret ANSI sequences are switched to do so. Older
// consoles get a translating writer, with the attribute at this point as the
// target of resets.
func (win32) NewOutput(f *os.File, terminal bool) io.Writer {
	if !terminal {
		return f
	}
	h := windows.Handle(f.Fd())
	var mode uint32
	if windows.GetConsoleMode(h, &mode) == nil &&
		windows.SetConsoleMode(h, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING) == nil {
		return f
	}
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(h, &info); err != nil {
		logger.Println("get console screen buffer info:", err)
		return f
	}
	return console.NewWriter(f, consoleScreen{h}, info.Attributes)
}

// Implements console.Screen on a console screen buffer.
type consoleScreen struct{ h windows.Handle }

func (s consoleScreen) Info() (console.ScreenInfo, error) {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(s.h, &info); err != nil {
		return console.ScreenInfo{}, err
	}
	return console.ScreenInfo{
		Size:   console.Coord{X: int(info.Size.X), Y: int(info.Size.Y)},
		Cursor: console.Coord{X: int(info.CursorPosition.X), Y: int(info.CursorPosition.Y)},
		Attr:   info.Attributes,
		Window: console.Rect{
			Left: int(info.Window.Left), Top: int(info.Window.Top),
			Right: int(info.Window.Right), Bottom: int(info.Window.Bottom)},
	}, nil
}

func (s consoleScreen) SetCursor(at console.Coord) error {
	return ewindows.SetConsoleCursorPosition(s.h, coord(at))
}

func (s consoleScreen) Fill(at console.Coord, n int, attr uint16) error {
	if _, err := ewindows.FillConsoleOutputCharacter(s.h, ' ', uint32(n), coord(at)); err != nil {
		return err
	}
	_, err := ewindows.FillConsoleOutputAttribute(s.h, attr, uint32(n), coord(at))
	return err
}

func (s consoleScreen) SetAttr(attr uint16) error {
	return ewindows.SetConsoleTextAttribute(s.h, attr)
}

func coord(c console.Coord) windows.Coord {
	return windows.Coord{X: int16(c.X), Y: int16(c.Y)}
}

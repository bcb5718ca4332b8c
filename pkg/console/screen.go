// Package console translates between ANSI terminal byte streams and the
// primitives of a character-cell console that does not interpret ANSI
// sequences itself.
//
// The package does not talk to any operating system; callers supply a Screen
// for output and decoded input records for input.
package console

// Coord is a position in the screen buffer, in character cells.
type Coord struct {
	X, Y int
}

// Rect is a rectangle in the screen buffer. All four edges are inclusive.
type Rect struct {
	Left, Top, Right, Bottom int
}

// Clamp returns c moved to the nearest position inside r.
func (r Rect) Clamp(c Coord) Coord {
	c.X = min(max(c.X, r.Left), r.Right)
	c.Y = min(max(c.Y, r.Top), r.Bottom)
	return c
}

// ScreenInfo describes the state of a screen buffer.
type ScreenInfo struct {
	// Size of the whole buffer, including history.
	Size   Coord
	Cursor Coord
	// Current text attribute.
	Attr uint16
	// The visible part of the buffer.
	Window Rect
}

// Screen is the set of console operations the Writer needs.
type Screen interface {
	Info() (ScreenInfo, error)
	SetCursor(at Coord) error
	// Fill writes n spaces with the given attribute, starting at at and
	// wrapping at the right edge of the buffer.
	Fill(at Coord, n int, attr uint16) error
	SetAttr(attr uint16) error
}

// Text attribute bits, with the same values as the native console.
const (
	FgBlue      uint16 = 0x01
	FgGreen     uint16 = 0x02
	FgRed       uint16 = 0x04
	FgIntensity uint16 = 0x08
	BgBlue      uint16 = 0x10
	BgGreen     uint16 = 0x20
	BgRed       uint16 = 0x40
	BgIntensity uint16 = 0x80

	FgMask uint16 = 0x0f
	BgMask uint16 = 0xf0
)

//go:build windows

package ewindows

// https://docs.microsoft.com/en-us/windows/console/input-record-str
const (
	KEY_EVENT                = 0x0001
	MOUSE_EVENT              = 0x0002
	WINDOW_BUFFER_SIZE_EVENT = 0x0004
	MENU_EVENT               = 0x0008
	FOCUS_EVENT              = 0x0010
)

// InputRecord is the INPUT_RECORD struct. Event holds the union of the
// possible event records; the largest of them is 16 bytes long.
type InputRecord struct {
	EventType uint16
	_         uint16
	Event     [16]byte
}

// KeyEvent is the KEY_EVENT_RECORD struct.
type KeyEvent struct {
	BKeyDown          int32
	WRepeatCount      uint16
	WVirtualKeyCode   uint16
	WVirtualScanCode  uint16
	UChar             uint16
	DwControlKeyState uint32
}

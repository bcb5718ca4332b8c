//go:build windows

package ewindows

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// https://docs.microsoft.com/en-us/windows/console/peekconsoleinput
//
// BOOL WINAPI PeekConsoleInput(
//
//		_In_  HANDLE        hConsoleInput,
//		_Out_ PINPUT_RECORD lpBuffer,
//		_In_  DWORD         nLength,
//		_Out_ LPDWORD       lpNumberOfEventsRead
//	  );
//
// ReadConsoleInputW has the same signature.
var (
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	peekConsoleInput           = kernel32.NewProc("PeekConsoleInputW")
	readConsoleInput           = kernel32.NewProc("ReadConsoleInputW")
	fillConsoleOutputCharacter = kernel32.NewProc("FillConsoleOutputCharacterW")
	fillConsoleOutputAttribute = kernel32.NewProc("FillConsoleOutputAttribute")
	setConsoleTextAttribute    = kernel32.NewProc("SetConsoleTextAttribute")
	setConsoleCursorPosition   = kernel32.NewProc("SetConsoleCursorPosition")
)

// KeyEvent returns the key event carried by the record, if there is one.
func (input *InputRecord) KeyEvent() (*KeyEvent, bool) {
	if input.EventType != KEY_EVENT {
		return nil, false
	}
	return (*KeyEvent)(unsafe.Pointer(&input.Event)), true
}

// PeekConsoleInput wraps the homonymous Windows API call. It reads records
// without removing them from the input queue.
func PeekConsoleInput(h windows.Handle, buf []InputRecord) (int, error) {
	return callInput(peekConsoleInput, h, buf)
}

// ReadConsoleInput wraps the homonymous Windows API call. It blocks if the
// input queue is empty.
func ReadConsoleInput(h windows.Handle, buf []InputRecord) (int, error) {
	return callInput(readConsoleInput, h, buf)
}

func callInput(proc *windows.LazyProc, h windows.Handle, buf []InputRecord) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	var nr uint32
	r, _, err := proc.Call(uintptr(h),
		uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)), uintptr(unsafe.Pointer(&nr)))
	if r != 0 {
		err = nil
	}
	return int(nr), err
}

// FillConsoleOutputCharacter writes ch n times starting at the given
// position and returns the number of cells written.
func FillConsoleOutputCharacter(h windows.Handle, ch uint16, n uint32, at windows.Coord) (uint32, error) {
	var written uint32
	r, _, err := fillConsoleOutputCharacter.Call(uintptr(h), uintptr(ch), uintptr(n),
		coordArg(at), uintptr(unsafe.Pointer(&written)))
	if r == 0 {
		return written, err
	}
	return written, nil
}

// FillConsoleOutputAttribute sets the attribute of n cells starting at the
// given position and returns the number of cells changed.
func FillConsoleOutputAttribute(h windows.Handle, attr uint16, n uint32, at windows.Coord) (uint32, error) {
	var written uint32
	r, _, err := fillConsoleOutputAttribute.Call(uintptr(h), uintptr(attr), uintptr(n),
		coordArg(at), uintptr(unsafe.Pointer(&written)))
	if r == 0 {
		return written, err
	}
	return written, nil
}

// SetConsoleTextAttribute sets the attribute used for subsequent output.
func SetConsoleTextAttribute(h windows.Handle, attr uint16) error {
	r, _, err := setConsoleTextAttribute.Call(uintptr(h), uintptr(attr))
	if r == 0 {
		return err
	}
	return nil
}

// SetConsoleCursorPosition moves the cursor of the screen buffer.
func SetConsoleCursorPosition(h windows.Handle, at windows.Coord) error {
	r, _, err := setConsoleCursorPosition.Call(uintptr(h), coordArg(at))
	if r == 0 {
		return err
	}
	return nil
}

// COORD is passed by value, packed into a single 32-bit argument.
func coordArg(c windows.Coord) uintptr {
	return uintptr(uint16(c.X)) | uintptr(uint16(c.Y))<<16
}

package sys

import (
	"golang.org/x/sys/windows"
)

var (
	kernel32                  = windows.NewLazySystemDLL("kernel32.dll")
	procSetThreadAffinityMask = kernel32.NewProc("SetThreadAffinityMask")
)

func pinToCPU(cpu int) error {
	thread := windows.CurrentThread()
	r, _, err := procSetThreadAffinityMask.Call(uintptr(thread), uintptr(1)<<uint(cpu))
	if r == 0 {
		return err
	}
	return nil
}

//go:build !linux && !windows

package sys

func pinToCPU(cpu int) error { return ErrPinUnsupported }

package sys

import "golang.org/x/sys/unix"

func pinToCPU(cpu int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	// A pid of 0 designates the calling thread.
	return unix.SchedSetaffinity(0, &set)
}

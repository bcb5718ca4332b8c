//go:build unix

package sys

import (
	"testing"
	"time"

	"src.rtio.sh/pkg/testutil"
)

func TestWaitForRead(t *testing.T) {
	r0, w0 := testutil.Pipe(t)
	r1, _ := testutil.Pipe(t)

	w0.WriteString("x")
	ready, err := WaitForRead(-1, r0, r1)
	if err != nil {
		t.Error("WaitForRead errors:", err)
	}
	if !ready[0] {
		t.Error("Want ready[0]")
	}
	if ready[1] {
		t.Error("Don't want ready[1]")
	}
}

func TestWaitForRead_ZeroTimeoutDoesNotBlock(t *testing.T) {
	r, _ := testutil.Pipe(t)

	start := time.Now()
	ready, err := WaitForRead(0, r)
	if err != nil {
		t.Error("WaitForRead errors:", err)
	}
	if ready[0] {
		t.Error("Don't want ready[0]")
	}
	if d := time.Since(start); d > testutil.Scaled(time.Second) {
		t.Errorf("zero-timeout wait took %v", d)
	}
}

func TestWaitForRead_HangupIsReady(t *testing.T) {
	r, w := testutil.Pipe(t)
	w.Close()

	ready, err := WaitForRead(0, r)
	if err != nil {
		t.Error("WaitForRead errors:", err)
	}
	if !ready[0] {
		t.Error("Want a hung-up pipe to be ready")
	}
}

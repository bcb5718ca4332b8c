//go:build unix

package rtio

import (
	"os"
	"strings"
	"testing"
	"time"

	"src.rtio.sh/pkg/prog/progtest"
	"src.rtio.sh/pkg/testutil"
)

func TestProgram_Pipe(t *testing.T) {
	r, w := testutil.Pipe(t)
	w.WriteString("piped\n")
	w.Close()

	res := progtest.Run(t, &Program{}, r)
	if res.Exit != 0 || res.Stdout != "piped\n" {
		t.Errorf("got (%d, %q), want (0, %q)", res.Exit, res.Stdout, "piped\n")
	}
}

func TestProgram_PipeWithDelayedWriter(t *testing.T) {
	r, w := testutil.Pipe(t)
	chunks := []string{"one ", "two ", "three"}
	go func() {
		for _, chunk := range chunks {
			time.Sleep(testutil.Scaled(5 * time.Millisecond))
			w.WriteString(chunk)
		}
		w.Close()
	}()

	res := progtest.Run(t, &Program{}, r, "-prefix", "|")
	// Chunks may be coalesced by the pipe, so only check that every chunk
	// arrived in order.
	got := strings.ReplaceAll(res.Stdout, "|", "")
	if res.Exit != 0 || got != strings.Join(chunks, "") {
		t.Errorf("got (%d, %q)", res.Exit, res.Stdout)
	}
}

func TestProgram_PipePolledWithoutBackend(t *testing.T) {
	r, w := testutil.Pipe(t)
	go func() {
		time.Sleep(testutil.Scaled(20 * time.Millisecond))
		w.WriteString("polled")
		w.Close()
	}()

	testutil.Set(t, &defaultFactory, failingFactory)
	res := progtest.Run(t, &Program{}, r)
	if res.Exit != 0 || res.Stdout != "polled" {
		t.Errorf("got (%d, %q), want (0, %q)", res.Exit, res.Stdout, "polled")
	}
}

func TestProgram_DevNull(t *testing.T) {
	devNull, err := os.Open(os.DevNull)
	if err != nil {
		t.Skip(err)
	}
	defer devNull.Close()

	res := progtest.Run(t, &Program{}, devNull, "-info")
	if !strings.Contains(res.Stdout, "stdin: device\n") {
		t.Errorf("got %q, want stdin classified as device", res.Stdout)
	}
	res = progtest.Run(t, &Program{}, devNull)
	if res.Exit != 0 || res.Stdout != "" {
		t.Errorf("got (%d, %q), want (0, \"\")", res.Exit, res.Stdout)
	}
}

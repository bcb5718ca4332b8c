package testutil

import (
	"os"
	"testing"
)

type cleanups []func()

func (c *cleanups) Cleanup(f func()) { *c = append(*c, f) }

func (c cleanups) run() {
	for i := len(c) - 1; i >= 0; i-- {
		c[i]()
	}
}

func TestSet(t *testing.T) {
	var c cleanups
	x := 1
	Set(&c, &x, 2)
	if x != 2 {
		t.Errorf("after Set, x = %d, want 2", x)
	}
	c.run()
	if x != 1 {
		t.Errorf("after cleanup, x = %d, want 1", x)
	}
}

const envName = "RTIO_TESTUTIL_TEST_VAR"

func TestSetenv_RestoresOldValue(t *testing.T) {
	os.Setenv(envName, "old")
	defer os.Unsetenv(envName)

	var c cleanups
	if got := Setenv(&c, envName, "new"); got != "new" {
		t.Errorf("Setenv -> %q, want %q", got, "new")
	}
	if os.Getenv(envName) != "new" {
		t.Errorf("value not set")
	}
	c.run()
	if os.Getenv(envName) != "old" {
		t.Errorf("old value not restored")
	}
}

func TestSetenv_UnsetsNewVariable(t *testing.T) {
	os.Unsetenv(envName)

	var c cleanups
	Setenv(&c, envName, "new")
	c.run()
	if _, ok := os.LookupEnv(envName); ok {
		t.Errorf("variable still set after cleanup")
	}
}

func TestPipe(t *testing.T) {
	r, w := Pipe(t)
	w.WriteString("x")
	buf := make([]byte, 1)
	if n, err := r.Read(buf); n != 1 || buf[0] != 'x' || err != nil {
		t.Errorf("Read -> (%d, %q, %v)", n, buf[:n], err)
	}
}

func TestOpenContentAndReadBack(t *testing.T) {
	f := OpenContent(t, "content")
	if got := ReadBack(t, f); got != "content" {
		t.Errorf("got %q, want %q", got, "content")
	}
	out := Create(t)
	out.WriteString("written")
	if got := ReadBack(t, out); got != "written" {
		t.Errorf("got %q, want %q", got, "written")
	}
}

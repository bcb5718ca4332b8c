package testutil

import (
	"io"
	"os"
	"path/filepath"
)

// TB is the subset of [testing.TB] used by the file helpers.
type TB interface {
	Cleanuper
	Helper()
	Fatalf(format string, args ...any)
	TempDir() string
}

// Pipe wraps os.Pipe. Both ends are closed when the test finishes.
func Pipe(t TB) (r, w *os.File) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	t.Cleanup(func() {
		r.Close()
		w.Close()
	})
	return r, w
}

// OpenContent writes content into a new file in a temporary directory and
// returns that file opened for reading, positioned at its start. The file is
// closed when the test finishes.
func OpenContent(t TB, content string) *os.File {
	t.Helper()
	name := filepath.Join(t.TempDir(), "content")
	if err := os.WriteFile(name, []byte(content), 0600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	f, err := os.Open(name)
	if err != nil {
		t.Fatalf("open %s: %v", name, err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

// Create creates an empty file in a temporary directory, opened for reading
// and writing. The file is closed when the test finishes.
func Create(t TB) *os.File {
	t.Helper()
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

// ReadBack rewinds f and returns its entire content.
func ReadBack(t TB, f *os.File) string {
	t.Helper()
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		t.Fatalf("seek: %v", err)
	}
	b, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return string(b)
}

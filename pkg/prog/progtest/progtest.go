// Package progtest contains utilities for testing [prog.Program]
// implementations.
package progtest

import (
	"os"
	"strings"
	"testing"

	"src.rtio.sh/pkg/prog"
	"src.rtio.sh/pkg/testutil"
)

// Result is the outcome of running a program.
type Result struct {
	Exit           int
	Stdout, Stderr string
}

// Run runs p with the given stdin and arguments, and returns its exit status
// and output. Stdout and stderr are regular files, so that the program can
// write any amount of output without a reader. A nil stdin is replaced by an
// empty regular file.
func Run(t *testing.T, p prog.Program, stdin *os.File, args ...string) Result {
	t.Helper()
	if stdin == nil {
		stdin = testutil.OpenContent(t, "")
	}
	stdout, stderr := testutil.Create(t), testutil.Create(t)
	exit := prog.Run([3]*os.File{stdin, stdout, stderr}, append([]string{"rtio"}, args...), p)
	return Result{exit, testutil.ReadBack(t, stdout), testutil.ReadBack(t, stderr)}
}

// Case is a test case for Test.
type Case struct {
	args          []string
	stdin         string
	wantExit      int
	wantOut       *string
	wantOutSubstr string
	wantErr       *string
	wantErrSubstr string
}

// ThatProgram returns a Case that runs the program with the given arguments.
func ThatProgram(args ...string) Case { return Case{args: args} }

// WithStdin returns an altered Case that reads stdin from a regular file with
// the given content.
func (c Case) WithStdin(s string) Case {
	c.stdin = s
	return c
}

// ExitsWith returns an altered Case that requires the given exit status.
func (c Case) ExitsWith(exit int) Case {
	c.wantExit = exit
	return c
}

// WritesStdout returns an altered Case that requires stdout to be exactly s.
func (c Case) WritesStdout(s string) Case {
	c.wantOut = &s
	return c
}

// WritesStdoutContaining returns an altered Case that requires stdout to
// contain s.
func (c Case) WritesStdoutContaining(s string) Case {
	c.wantOutSubstr = s
	return c
}

// WritesStderr returns an altered Case that requires stderr to be exactly s.
func (c Case) WritesStderr(s string) Case {
	c.wantErr = &s
	return c
}

// WritesStderrContaining returns an altered Case that requires stderr to
// contain s.
func (c Case) WritesStderrContaining(s string) Case {
	c.wantErrSubstr = s
	return c
}

// DoesNothing returns an altered Case that requires the program to exit with
// 0 and write nothing.
func (c Case) DoesNothing() Case {
	return c.ExitsWith(0).WritesStdout("").WritesStderr("")
}

// Test runs p for each of the cases and checks the results.
func Test(t *testing.T, p prog.Program, cases ...Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(strings.Join(c.args, " "), func(t *testing.T) {
			t.Helper()
			r := Run(t, p, testutil.OpenContent(t, c.stdin), c.args...)
			if r.Exit != c.wantExit {
				t.Errorf("got exit %v, want %v", r.Exit, c.wantExit)
			}
			if c.wantOut != nil && r.Stdout != *c.wantOut {
				t.Errorf("got stdout %q, want %q", r.Stdout, *c.wantOut)
			}
			if !strings.Contains(r.Stdout, c.wantOutSubstr) {
				t.Errorf("got stdout %q, want string containing %q", r.Stdout, c.wantOutSubstr)
			}
			if c.wantErr != nil && r.Stderr != *c.wantErr {
				t.Errorf("got stderr %q, want %q", r.Stderr, *c.wantErr)
			}
			if !strings.Contains(r.Stderr, c.wantErrSubstr) {
				t.Errorf("got stderr %q, want string containing %q", r.Stderr, c.wantErrSubstr)
			}
		})
	}
}

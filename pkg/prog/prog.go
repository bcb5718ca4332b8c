// Package prog provides the entry point of programs: it parses the flags
// common to all programs, sets up logging and maps errors to exit codes.
package prog

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/pprof"

	"src.rtio.sh/pkg/buildinfo"
	"src.rtio.sh/pkg/logutil"
)

// Program is a program run by Run.
type Program interface {
	// RegisterFlags registers the program's own flags.
	RegisterFlags(fs *FlagSet)
	// Run runs the program with the remaining arguments after flag parsing.
	Run(fds [3]*os.File, args []string) error
}

type commonFlags struct {
	Log, CPUProfile string

	Help, Version, BuildInfo bool
}

func newFlagSet(name string, f *commonFlags) *FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	// Error and usage will be printed explicitly.
	fs.SetOutput(io.Discard)

	fs.StringVar(&f.Log, "log", "", "a file to write debug log to")
	fs.StringVar(&f.CPUProfile, "cpuprofile", "", "write cpu profile to file")

	fs.BoolVar(&f.Help, "help", false, "show usage help and quit")
	fs.BoolVar(&f.Version, "version", false, "show version and quit")
	fs.BoolVar(&f.BuildInfo, "buildinfo", false, "show build info and quit")
	return &FlagSet{FlagSet: fs}
}

func usage(out io.Writer, fs *FlagSet) {
	fmt.Fprintf(out, "Usage: %s [flags]\n", fs.Name())
	fmt.Fprintln(out, "Supported flags:")
	fs.SetOutput(out)
	fs.PrintDefaults()
	fs.SetOutput(io.Discard)
}

// Run parses command-line flags and runs the program. It returns the exit
// status of the program.
func Run(fds [3]*os.File, args []string, p Program) int {
	f := &commonFlags{}
	fs := newFlagSet(args[0], f)
	p.RegisterFlags(fs)
	err := fs.Parse(args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			// (*flag.FlagSet).Parse returns ErrHelp when -h or -help was
			// requested but *not* defined. We define -help, but not -h; so
			// this means that -h has been requested. Handle this by printing
			// the same message as an undefined flag.
			fmt.Fprintln(fds[2], "flag provided but not defined: -h")
		} else {
			fmt.Fprintln(fds[2], err)
		}
		usage(fds[2], fs)
		return 2
	}

	// Handle flags common to all programs.
	if f.CPUProfile != "" {
		f, err := os.Create(f.CPUProfile)
		if err != nil {
			fmt.Fprintln(fds[2], "Warning: cannot create CPU profile:", err)
			fmt.Fprintln(fds[2], "Continuing without CPU profiling.")
		} else {
			pprof.StartCPUProfile(f)
			defer func() {
				pprof.StopCPUProfile()
				f.Close()
			}()
		}
	}

	if f.Log != "" {
		err = logutil.SetOutputFile(f.Log)
		if err != nil {
			fmt.Fprintln(fds[2], err)
		}
		defer logutil.SetOutput(io.Discard)
	}

	switch {
	case f.Help:
		usage(fds[1], fs)
		return 0
	case f.Version:
		fmt.Fprintln(fds[1], buildinfo.Value.Version)
		return 0
	case f.BuildInfo:
		fmt.Fprintln(fds[1], "Version:", buildinfo.Value.Version)
		fmt.Fprintln(fds[1], "Go version:", buildinfo.Value.GoVersion)
		return 0
	}

	err = p.Run(fds, fs.Args())
	if err == nil {
		return 0
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(fds[2], msg)
	}
	switch err := err.(type) {
	case badUsageError:
		usage(fds[2], fs)
	case exitError:
		return err.exit
	}
	return 2
}

// BadUsage returns a special error that may be returned by Program.Run. It
// causes the main function to print out a message, the usage information and
// exit with 2.
func BadUsage(msg string) error { return badUsageError{msg} }

type badUsageError struct{ msg string }

func (e badUsageError) Error() string { return e.msg }

// Exit returns a special error that may be returned by Program.Run. It causes
// the main function to exit with the given code without printing any error
// messages. Exit(0) returns nil.
func Exit(exit int) error {
	if exit == 0 {
		return nil
	}
	return exitError{exit}
}

type exitError struct{ exit int }

func (e exitError) Error() string { return "" }

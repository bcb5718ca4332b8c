// Rtio copies its standard input to its standard output through a
// non-blocking standard-stream driver. When stdin and stdout are both
// terminals, stdin is put into raw mode and ^D or ^C ends the input.
package main

import (
	"os"

	"src.rtio.sh/pkg/prog"
	"src.rtio.sh/pkg/rtio"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args, &rtio.Program{}))
}

// Package rtio implements the rtio program, which copies its standard input
// to its standard output through the standard-stream driver and the
// asynchronous I/O engine.
package rtio

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"src.rtio.sh/pkg/asio"
	"src.rtio.sh/pkg/logutil"
	"src.rtio.sh/pkg/prog"
	"src.rtio.sh/pkg/stdio"
	"src.rtio.sh/pkg/sys"
)

var logger = logutil.GetLogger("[rtio] ")

// Program is the rtio program.
type Program struct {
	fs         *prog.FlagSet
	configPath string
	flags      Config
	info       bool
}

var _ prog.Program = (*Program)(nil)

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	p.fs = fs
	def := DefaultConfig()
	fs.StringVar(&p.configPath, "config", "", "a YAML file with default settings")
	fs.IntVar(&p.flags.CPU, "cpu", def.CPU, "CPU to pin the I/O dispatch thread to; -1 for none")
	fs.BoolVar(&p.flags.KeepSignals, "keep-signals", def.KeepSignals,
		"keep ^C and other signal characters enabled when stdin is a terminal")
	fs.StringVar(&p.flags.Color, "color", def.Color,
		"color of echoed input, such as red or bright-blue")
	fs.StringVar(&p.flags.Prefix, "prefix", def.Prefix, "text written before each chunk of echoed input")
	fs.BoolVar(&p.info, "info", false, "show the kinds of the standard streams and quit")
}

// Builds the effective configuration: defaults, then the config file, then
// flags given on the command line.
func (p *Program) config() (Config, error) {
	cfg := DefaultConfig()
	if p.configPath != "" {
		if err := LoadConfig(p.configPath, &cfg); err != nil {
			return cfg, err
		}
	}
	given := p.fs.Given()
	if given["cpu"] {
		cfg.CPU = p.flags.CPU
	}
	if given["keep-signals"] {
		cfg.KeepSignals = p.flags.KeepSignals
	}
	if given["color"] {
		cfg.Color = p.flags.Color
	}
	if given["prefix"] {
		cfg.Prefix = p.flags.Prefix
	}
	if given["log"] {
		// Already handled by prog.Run.
		cfg.Log = ""
	}
	return cfg, nil
}

func (p *Program) Run(fds [3]*os.File, args []string) error {
	if len(args) > 0 {
		return prog.BadUsage("arguments are not supported")
	}
	cfg, err := p.config()
	if err != nil {
		return err
	}
	sgr, err := colorSGR(cfg.Color)
	if err != nil {
		return prog.BadUsage(err.Error())
	}
	if cfg.Log != "" {
		if err := logutil.SetOutputFile(cfg.Log); err != nil {
			fmt.Fprintln(fds[2], err)
		}
		defer logutil.SetOutput(io.Discard)
	}

	d := stdio.New(fds, stdio.Options{KeepSignals: cfg.KeepSignals})
	d.SetupStdout()
	eventBased := d.SetupStdin()
	defer func() {
		if err := d.Close(); err != nil {
			logger.Println("close standard streams:", err)
		}
	}()

	if p.info {
		return printInfo(d, fds, eventBased)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c := &cat{
		stdin: fds[0], d: d, out: d.Stdout(),
		prefix: cfg.Prefix, sgr: sgr, raw: d.RawMode(),
	}
	return c.run(ctx, asio.New(defaultFactory), eventBased, cfg.CPU)
}

func printInfo(d *stdio.Driver, fds [3]*os.File, eventBased bool) error {
	out := d.Stdout()
	lines := []string{
		fmt.Sprintf("stdin: %v", d.StdinKind()),
		fmt.Sprintf("stdout: %v", sys.Classify(fds[1].Fd())),
		fmt.Sprintf("stderr: %v", sys.Classify(fds[2].Fd())),
		fmt.Sprintf("event-based: %v", eventBased),
		fmt.Sprintf("raw mode: %v", d.RawMode()),
	}
	if out.IsTerminal() {
		if row, col := sys.WinSize(fds[1]); row > 0 {
			lines = append(lines, fmt.Sprintf("size: %dx%d", col, row))
		}
	}
	for _, line := range lines {
		if err := out.Print([]byte(line)); err != nil {
			return err
		}
	}
	return nil
}

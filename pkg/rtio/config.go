package rtio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"src.rtio.sh/pkg/asio"
)

// Config is the configuration of the program. It can be loaded from a YAML
// file and is overridden by command-line flags.
type Config struct {
	// CPU to pin the dispatch thread to, or asio.NoCPU.
	CPU int `yaml:"cpu"`
	// File to write the debug log to.
	Log string `yaml:"log"`
	// Keep signal generating characters enabled in raw mode.
	KeepSignals bool `yaml:"keep_signals"`
	// Color of echoed input; see colorNames.
	Color string `yaml:"color"`
	// Written before each chunk of echoed input.
	Prefix string `yaml:"prefix"`
}

// DefaultConfig returns the configuration used when neither a config file nor
// flags say otherwise.
func DefaultConfig() Config {
	return Config{CPU: asio.NoCPU}
}

// LoadConfig reads the YAML file at path into cfg. Keys missing from the
// file leave the corresponding fields of cfg unchanged; unknown keys are an
// error.
func LoadConfig(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

var colorNames = []string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

// Returns the SGR sequence that selects the named foreground color. The
// empty name selects no color.
func colorSGR(name string) (string, error) {
	if name == "" {
		return "", nil
	}
	base, plain := 90, strings.TrimPrefix(name, "bright-")
	if plain == name {
		base = 30
	}
	for i, c := range colorNames {
		if c == plain {
			return fmt.Sprintf("\x1b[%dm", base+i), nil
		}
	}
	return "", fmt.Errorf("unknown color %q", name)
}

package prog

import "flag"

// FlagSet wraps a [flag.FlagSet] passed to Program.RegisterFlags.
type FlagSet struct {
	*flag.FlagSet
}

// Given returns the names of the flags that were set on the command line.
func (fs *FlagSet) Given() map[string]bool {
	given := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { given[f.Name] = true })
	return given
}

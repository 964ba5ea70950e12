package base

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// FlagSet wraps a flag.FlagSet to render help text in the CLI's format.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet wraps f. Parse errors are reported by the caller rather than
// printed by the flag package.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	f.SetOutput(io.Discard)
	return &FlagSet{FlagSet: f}
}

// Help returns the options section of a command's help.
func (f *FlagSet) Help() string {
	var b strings.Builder
	b.WriteString("\n\nOptions:\n")
	f.VisitAll(func(fl *flag.Flag) {
		fmt.Fprintf(&b, "\n  -%s", fl.Name)
		if fl.DefValue != "" {
			fmt.Fprintf(&b, "=%s", fl.DefValue)
		}
		fmt.Fprintf(&b, "\n      %s\n", fl.Usage)
	})
	return b.String()
}

package version

import (
	"github.com/basebase-ai/basebase-go/internal/cmd/base"
	"github.com/basebase-ai/basebase-go/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the version of the binary"
}

func (c *Command) Help() string {
	return `Usage: basebase version

  Prints the version of this binary.`
}

func (c *Command) Run(args []string) int {
	c.UI.Output(version.FullVersion())
	return 0
}

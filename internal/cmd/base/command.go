// Package base contains the pieces shared by every CLI command.
package base

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
)

// Command is embedded by CLI commands to reach the logger and UI.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui
}

// NewCommand returns a Command using log and ui.
func NewCommand(log hclog.Logger, ui cli.Ui) *Command {
	return &Command{
		Log: log,
		UI:  ui,
	}
}

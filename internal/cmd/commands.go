package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/basebase-ai/basebase-go/internal/cmd/base"
	"github.com/basebase-ai/basebase-go/internal/cmd/commands/document"
	"github.com/basebase-ai/basebase-go/internal/cmd/commands/version"
)

// Commands is the mapping of all available basebase commands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	b := base.NewCommand(log, ui)

	Commands = map[string]cli.CommandFactory{
		"get": func() (cli.Command, error) {
			return &document.GetCommand{Command: b}, nil
		},
		"list": func() (cli.Command, error) {
			return &document.ListCommand{Command: b}, nil
		},
		"add": func() (cli.Command, error) {
			return &document.AddCommand{Command: b}, nil
		},
		"set": func() (cli.Command, error) {
			return &document.WriteCommand{Command: b}, nil
		},
		"update": func() (cli.Command, error) {
			return &document.WriteCommand{Command: b, Merge: true}, nil
		},
		"delete": func() (cli.Command, error) {
			return &document.DeleteCommand{Command: b}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{Command: b}, nil
		},
	}
}

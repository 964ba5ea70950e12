package document

import (
	"context"
	"flag"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/basebase-ai/basebase-go/internal/cmd/base"
)

type DeleteCommand struct {
	*base.Command
	connection
}

func (c *DeleteCommand) Synopsis() string {
	return "Delete one or more documents"
}

func (c *DeleteCommand) Help() string {
	return `Usage: basebase delete [options] <document-path>...

  Deletes each document. Every path is attempted; failures are reported
  together at the end.` +
		c.Flags().Help()
}

func (c *DeleteCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("delete", flag.ContinueOnError))
	c.register(f)
	return f
}

type deleteView struct {
	Path      string `json:"path" yaml:"path"`
	WriteTime string `json:"writeTime" yaml:"writeTime"`
}

func (c *DeleteCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	args = flags.Args()
	if len(args) == 0 {
		ui.Error("expected at least one document path")
		return 1
	}

	client, err := c.client(c.Log)
	if err != nil {
		ui.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.flagTimeout)
	defer cancel()

	var result *multierror.Error
	deleted := make([]deleteView, 0, len(args))
	for _, path := range args {
		ref, err := client.Doc(path)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", path, err))
			continue
		}
		res, err := ref.Delete(ctx)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		deleted = append(deleted, deleteView{Path: ref.Path(), WriteTime: res.WriteTime})
	}

	if code := c.output(ui, deleted); code != 0 {
		return code
	}
	if err := result.ErrorOrNil(); err != nil {
		ui.Error(err.Error())
		return 1
	}
	return 0
}

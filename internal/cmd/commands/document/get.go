package document

import (
	"context"
	"flag"
	"fmt"

	"github.com/basebase-ai/basebase-go/internal/cmd/base"
)

type GetCommand struct {
	*base.Command
	connection

	flagField string
}

func (c *GetCommand) Synopsis() string {
	return "Read a document"
}

func (c *GetCommand) Help() string {
	return `Usage: basebase get [options] <document-path>

  Reads the document at the given path, e.g. "users/u1". A document that
  does not exist is printed with "exists": false and exit code 2.` +
		c.Flags().Help()
}

func (c *GetCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("get", flag.ContinueOnError))
	c.register(f)
	f.StringVar(&c.flagField, "field", "",
		"Print only the value at this dot-separated field path.")
	return f
}

func (c *GetCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	args = flags.Args()
	if len(args) != 1 {
		ui.Error("expected exactly one document path")
		return 1
	}

	client, err := c.client(c.Log)
	if err != nil {
		ui.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}
	ref, err := client.Doc(args[0])
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.flagTimeout)
	defer cancel()

	snap, err := ref.Get(ctx)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	if c.flagField != "" {
		v, ok := snap.Get(c.flagField)
		if !ok {
			ui.Error(fmt.Sprintf("field %q not found in %s", c.flagField, ref.Path()))
			return 2
		}
		return c.output(ui, v)
	}

	if code := c.output(ui, viewOf(snap)); code != 0 {
		return code
	}
	if !snap.Exists() {
		return 2
	}
	return 0
}

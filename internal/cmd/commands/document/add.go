package document

import (
	"context"
	"flag"
	"fmt"

	"github.com/basebase-ai/basebase-go/internal/cmd/base"
)

type AddCommand struct {
	*base.Command
	connection
}

func (c *AddCommand) Synopsis() string {
	return "Add a document with a server-assigned ID"
}

func (c *AddCommand) Help() string {
	return `Usage: basebase add [options] <collection-path> <json|->

  Creates a document in the collection from a JSON object, read from
  standard input when the data argument is "-". Prints the new ID.` +
		c.Flags().Help()
}

func (c *AddCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("add", flag.ContinueOnError))
	c.register(f)
	return f
}

func (c *AddCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	args = flags.Args()
	if len(args) != 2 {
		ui.Error("expected a collection path and document data")
		return 1
	}

	data, err := c.readData(args[1])
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	client, err := c.client(c.Log)
	if err != nil {
		ui.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}
	col, err := client.Collection(args[0])
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.flagTimeout)
	defer cancel()

	ref, err := col.Add(ctx, data)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	return c.output(ui, map[string]string{
		"id":   ref.ID(),
		"path": ref.Path(),
	})
}

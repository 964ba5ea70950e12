package document

import (
	"context"
	"flag"
	"fmt"

	"github.com/basebase-ai/basebase-go/internal/cmd/base"
)

type ListCommand struct {
	*base.Command
	connection
}

func (c *ListCommand) Synopsis() string {
	return "List the documents of a collection"
}

func (c *ListCommand) Help() string {
	return `Usage: basebase list [options] <collection-path>

  Lists every document in the collection, e.g. "users" or
  "users/u1/posts". A collection without documents prints an empty list.` +
		c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("list", flag.ContinueOnError))
	c.register(f)
	return f
}

func (c *ListCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	args = flags.Args()
	if len(args) != 1 {
		ui.Error("expected exactly one collection path")
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

	snap, err := col.Get(ctx)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	views := make([]documentView, 0, snap.Size())
	for _, doc := range snap.All() {
		views = append(views, viewOf(doc.DocumentSnapshot))
	}
	c.Log.Debug("listed collection", "path", col.Path(), "count", len(views))
	return c.output(ui, views)
}

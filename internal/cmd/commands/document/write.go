package document

import (
	"context"
	"flag"
	"fmt"

	"github.com/basebase-ai/basebase-go/internal/cmd/base"
	"github.com/basebase-ai/basebase-go/pkg/basebase"
)

// WriteCommand implements set and update, which differ only in the method
// called on the document reference.
type WriteCommand struct {
	*base.Command
	connection

	// Merge selects update semantics instead of replacement.
	Merge bool
}

func (c *WriteCommand) name() string {
	if c.Merge {
		return "update"
	}
	return "set"
}

func (c *WriteCommand) Synopsis() string {
	if c.Merge {
		return "Merge fields into an existing document"
	}
	return "Create or replace a document"
}

func (c *WriteCommand) Help() string {
	var body string
	if c.Merge {
		body = `  Merges the fields of a JSON object into the existing document. Fails
  when the document does not exist.`
	} else {
		body = `  Replaces the document with a JSON object, creating it if needed.`
	}
	return fmt.Sprintf("Usage: basebase %s [options] <document-path> <json|->\n\n%s\n  Data is read from standard input when the data argument is \"-\".",
		c.name(), body) + c.Flags().Help()
}

func (c *WriteCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet(c.name(), flag.ContinueOnError))
	c.register(f)
	return f
}

func (c *WriteCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	args = flags.Args()
	if len(args) != 2 {
		ui.Error("expected a document path and document data")
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
	ref, err := client.Doc(args[0])
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.flagTimeout)
	defer cancel()

	var res *basebase.WriteResult
	if c.Merge {
		res, err = ref.Update(ctx, data)
	} else {
		res, err = ref.Set(ctx, data)
	}
	if err != nil {
		ui.Error(err.Error())
		return 1
	}
	return c.output(ui, res)
}

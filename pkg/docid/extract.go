package docid

import (
	"fmt"
	"time"

	"github.com/basebase-ai/basebase-go/pkg/docpath"
	"github.com/basebase-ai/basebase-go/pkg/wire"
)

// Strategy derives the ID of doc, found at position index of a server
// response. It returns false to defer to the next strategy of a Chain.
type Strategy func(doc *wire.Document, index int) (string, bool)

// Chain is an ordered list of strategies.
type Chain []Strategy

// DefaultIDFields are the fields FromIDField consults by default, in order.
var DefaultIDFields = []string{"id", "_id", "ID"}

// DefaultChain returns the chain used by collection listings and Add:
// resource name, then ID fields, then a placeholder stamped with now.
func DefaultChain(now func() time.Time) Chain {
	return Chain{
		FromName,
		FromIDField(DefaultIDFields...),
		Placeholder(now),
	}
}

// Extract returns the ID produced by the first strategy that yields one, or
// "" when none does.
func (c Chain) Extract(doc *wire.Document, index int) string {
	for _, strategy := range c {
		if id, ok := strategy(doc, index); ok {
			return id
		}
	}
	return ""
}

// FromName uses the last segment of the document resource name. A name
// ending in a slash yields "fallback_<index>".
func FromName(doc *wire.Document, index int) (string, bool) {
	if doc == nil || doc.Name == "" {
		return "", false
	}
	if id := docpath.Base(doc.Name); id != "" {
		return id, true
	}
	return fmt.Sprintf("fallback_%d", index), true
}

// FromIDField returns a strategy that uses the first of fields holding a
// non-empty string value.
func FromIDField(fields ...string) Strategy {
	return func(doc *wire.Document, _ int) (string, bool) {
		for _, field := range fields {
			if id, ok := doc.StringField(field); ok && id != "" {
				return id, true
			}
		}
		return "", false
	}
}

// Placeholder returns a strategy that always yields "doc_<index>_<millis>",
// where millis is the Unix time in milliseconds reported by now.
func Placeholder(now func() time.Time) Strategy {
	if now == nil {
		now = time.Now
	}
	return func(_ *wire.Document, index int) (string, bool) {
		return fmt.Sprintf("doc_%d_%d", index, now().UnixMilli()), true
	}
}

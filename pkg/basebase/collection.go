package basebase

import (
	"context"
	"fmt"

	"github.com/basebase-ai/basebase-go/pkg/docpath"
	"github.com/basebase-ai/basebase-go/pkg/errs"
	"github.com/basebase-ai/basebase-go/pkg/transport"
	"github.com/basebase-ai/basebase-go/pkg/wire"
)

// CollectionReference refers to a collection of documents.
type CollectionReference struct {
	client *Client
	path   string
	id     string
	parent *DocumentReference
}

// ID returns the last segment of the collection path.
func (c *CollectionReference) ID() string {
	return c.id
}

// Path returns the project-scoped path, e.g. "proj/users".
func (c *CollectionReference) Path() string {
	return c.path
}

// Parent returns the document containing a subcollection, or nil for a
// top-level collection.
func (c *CollectionReference) Parent() *DocumentReference {
	return c.parent
}

// Client returns the client the reference was created from.
func (c *CollectionReference) Client() *Client {
	return c.client
}

// IsEqual reports whether other refers to the same collection through the
// same client.
func (c *CollectionReference) IsEqual(other *CollectionReference) bool {
	return other != nil && c.client == other.client && c.path == other.path
}

func (c *CollectionReference) String() string {
	return c.path
}

// Doc returns a reference to the document id in this collection. An empty
// id is replaced by a generated one.
func (c *CollectionReference) Doc(id string) (*DocumentReference, error) {
	if id == "" {
		return c.NewDoc(), nil
	}
	if err := docpath.ValidateDocumentID(id); err != nil {
		return nil, err
	}
	return c.child(id), nil
}

// NewDoc returns a reference to a new document with a generated ID.
func (c *CollectionReference) NewDoc() *DocumentReference {
	return c.child(c.client.ids.NewID())
}

func (c *CollectionReference) child(id string) *DocumentReference {
	return &DocumentReference{
		client: c.client,
		path:   c.path + docpath.Separator + id,
		id:     id,
		parent: c,
	}
}

// Get lists the documents of the collection. A collection the server does
// not know yields an empty snapshot.
func (c *CollectionReference) Get(ctx context.Context) (*QuerySnapshot, error) {
	var resp wire.ListResponse
	if err := c.client.do(ctx, transport.MethodGet, c.path, nil, &resp); err != nil {
		if errs.IsNotFound(err) {
			c.client.logger.Debug("collection not found", "path", c.path)
			return newQuerySnapshot(c, nil), nil
		}
		return nil, fmt.Errorf("failed to list collection %s: %w", c.path, err)
	}

	docs := make([]*QueryDocumentSnapshot, 0, len(resp.Documents))
	for i := range resp.Documents {
		doc := &resp.Documents[i]
		id := c.client.idChain.Extract(doc, i)
		docs = append(docs, newQueryDocumentSnapshot(c.child(id), doc))
	}
	return newQuerySnapshot(c, docs), nil
}

// Add creates a document with a server-assigned ID and returns its
// reference.
func (c *CollectionReference) Add(ctx context.Context, data any) (*DocumentReference, error) {
	doc, err := wire.EncodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("invalid document data: %w", err)
	}

	var resp wire.Document
	if err := c.client.do(ctx, transport.MethodPost, c.path, doc, &resp); err != nil {
		return nil, fmt.Errorf("failed to add document to %s: %w", c.path, err)
	}

	id := c.client.idChain.Extract(&resp, 0)
	c.client.logger.Debug("document added", "collection", c.path, "id", id)
	return c.child(id), nil
}

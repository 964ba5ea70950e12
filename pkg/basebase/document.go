package basebase

import (
	"context"
	"fmt"
	"time"

	"github.com/basebase-ai/basebase-go/pkg/docpath"
	"github.com/basebase-ai/basebase-go/pkg/errs"
	"github.com/basebase-ai/basebase-go/pkg/transport"
	"github.com/basebase-ai/basebase-go/pkg/wire"
)

// WriteResult reports when a write took effect.
type WriteResult struct {
	// WriteTime is an ISO-8601 timestamp: the server's update time when it
	// reported one, otherwise the local time of the write.
	WriteTime string `json:"writeTime" yaml:"writeTime"`
}

// Time parses WriteTime.
func (r *WriteResult) Time() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, r.WriteTime)
}

// DocumentReference refers to a document location. The document may or may
// not exist.
type DocumentReference struct {
	client *Client
	path   string
	id     string
	parent *CollectionReference
}

// ID returns the last segment of the document path.
func (d *DocumentReference) ID() string {
	return d.id
}

// Path returns the project-scoped path, e.g. "proj/users/u1".
func (d *DocumentReference) Path() string {
	return d.path
}

// Parent returns the collection containing the document.
func (d *DocumentReference) Parent() *CollectionReference {
	return d.parent
}

// Client returns the client the reference was created from.
func (d *DocumentReference) Client() *Client {
	return d.client
}

// IsEqual reports whether other refers to the same document through the
// same client.
func (d *DocumentReference) IsEqual(other *DocumentReference) bool {
	return other != nil && d.client == other.client && d.path == other.path
}

func (d *DocumentReference) String() string {
	return d.path
}

// Collection returns a reference to the subcollection at subpath, relative
// to this document.
func (d *DocumentReference) Collection(subpath string) (*CollectionReference, error) {
	if err := docpath.Validate(subpath); err != nil {
		return nil, err
	}
	segments := docpath.Split(subpath)
	if err := docpath.ValidateSegments(segments, false); err != nil {
		return nil, err
	}
	if err := validateDocumentSegments(segments); err != nil {
		return nil, err
	}
	return d.client.collectionAt(d.path + docpath.Separator + subpath), nil
}

// Get reads the document. A document that does not exist yields a snapshot
// whose Exists reports false, not an error.
func (d *DocumentReference) Get(ctx context.Context) (*DocumentSnapshot, error) {
	var doc wire.Document
	if err := d.client.do(ctx, transport.MethodGet, d.path, nil, &doc); err != nil {
		if errs.IsNotFound(err) {
			d.client.logger.Debug("document not found", "path", d.path)
			return newDocumentSnapshot(d, nil), nil
		}
		return nil, fmt.Errorf("failed to get document %s: %w", d.path, err)
	}
	return newDocumentSnapshot(d, &doc), nil
}

// Update merges data into the existing document. data must be a map with
// string keys or a struct.
func (d *DocumentReference) Update(ctx context.Context, data any) (*WriteResult, error) {
	doc, err := wire.EncodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("invalid update data: %w", err)
	}

	var resp wire.Document
	if err := d.client.do(ctx, transport.MethodPatch, d.path, doc, &resp); err != nil {
		return nil, fmt.Errorf("failed to update document %s: %w", d.path, err)
	}
	return d.client.writeResult(resp.UpdateTime), nil
}

// Set replaces the document, creating it if needed.
func (d *DocumentReference) Set(ctx context.Context, data any) (*WriteResult, error) {
	doc, err := wire.EncodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("invalid document data: %w", err)
	}

	var resp wire.Document
	if err := d.client.do(ctx, transport.MethodPut, d.path, doc, &resp); err != nil {
		return nil, fmt.Errorf("failed to set document %s: %w", d.path, err)
	}
	return d.client.writeResult(resp.UpdateTime), nil
}

// Delete removes the document. The write time is always local.
func (d *DocumentReference) Delete(ctx context.Context) (*WriteResult, error) {
	if err := d.client.do(ctx, transport.MethodDelete, d.path, nil, nil); err != nil {
		return nil, fmt.Errorf("failed to delete document %s: %w", d.path, err)
	}
	return d.client.writeResult(""), nil
}

package wire

import (
	"github.com/basebase-ai/basebase-go/pkg/errs"
)

// Document is the wire form of a stored document. Fields may be nil when
// the server omits them, which is equivalent to an empty document.
type Document struct {
	// Name is the server resource path, e.g. "proj/users/u1".
	Name string `json:"name,omitempty"`

	Fields map[string]Value `json:"fields"`

	CreateTime string `json:"createTime,omitempty"`
	UpdateTime string `json:"updateTime,omitempty"`
}

// ListResponse is the body returned when listing a collection.
type ListResponse struct {
	Documents []Document `json:"documents"`
}

// StringField returns the named field when it holds a string value.
func (d *Document) StringField(name string) (string, bool) {
	if d == nil || d.Fields == nil {
		return "", false
	}
	v, ok := d.Fields[name]
	if !ok {
		return "", false
	}
	return v.AsString()
}

// EncodeDocument builds a Document from a native object: a string-keyed map
// or a struct. Any other input fails with errs.ErrInvalidArgument. The
// returned Document always has a non-nil Fields map.
func EncodeDocument(data any) (*Document, error) {
	v, err := Encode(data)
	if err != nil {
		return nil, err
	}
	if v.kind != KindMap {
		return nil, errs.InvalidArgument("wire.EncodeDocument", "document data must be an object, got %s", v.kind)
	}
	fields := v.m
	if fields == nil {
		fields = map[string]Value{}
	}
	return &Document{Fields: fields}, nil
}

// DecodeDocument returns the native field mapping of doc. A nil document or
// a document without fields decodes to an empty map.
func DecodeDocument(doc *Document) map[string]any {
	out := make(map[string]any)
	if doc == nil {
		return out
	}
	for k, v := range doc.Fields {
		out[k] = Decode(v)
	}
	return out
}

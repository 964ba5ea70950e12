package basebase

import (
	"iter"
	"strings"
	"time"

	"github.com/mitchellh/copystructure"
	"github.com/mitchellh/mapstructure"

	"github.com/basebase-ai/basebase-go/pkg/errs"
	"github.com/basebase-ai/basebase-go/pkg/wire"
)

// DocumentSnapshot is the content of a document at the time it was read.
type DocumentSnapshot struct {
	ref        *DocumentReference
	exists     bool
	data       map[string]any
	createTime string
	updateTime string
}

func newDocumentSnapshot(ref *DocumentReference, doc *wire.Document) *DocumentSnapshot {
	s := &DocumentSnapshot{ref: ref}
	if doc == nil {
		return s
	}
	s.exists = true
	s.data = wire.DecodeDocument(doc)
	s.createTime = doc.CreateTime
	s.updateTime = doc.UpdateTime
	return s
}

// Exists reports whether the document existed when it was read.
func (s *DocumentSnapshot) Exists() bool {
	return s.exists
}

// ID returns the document ID.
func (s *DocumentSnapshot) ID() string {
	return s.ref.ID()
}

// Ref returns the reference the snapshot was read from.
func (s *DocumentSnapshot) Ref() *DocumentReference {
	return s.ref
}

// CreateTime returns the server creation timestamp, if reported.
func (s *DocumentSnapshot) CreateTime() string {
	return s.createTime
}

// UpdateTime returns the server update timestamp, if reported.
func (s *DocumentSnapshot) UpdateTime() string {
	return s.updateTime
}

// Data returns a copy of the document fields, or nil when the document does
// not exist. Mutating the result does not affect the snapshot.
func (s *DocumentSnapshot) Data() map[string]any {
	if !s.exists {
		return nil
	}
	return deepCopy(s.data).(map[string]any)
}

// Get returns the value at a dot-separated field path such as
// "address.city". It reports false when the document does not exist or any
// step of the path is missing or not a map.
func (s *DocumentSnapshot) Get(fieldPath string) (any, bool) {
	if !s.exists || fieldPath == "" {
		return nil, false
	}
	var current any = s.data
	for _, key := range strings.Split(fieldPath, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = m[key]; !ok {
			return nil, false
		}
	}
	return deepCopy(current), true
}

// DataTo decodes the document fields into out, a pointer to a struct or
// map. Struct fields are matched using the "basebase" tag, falling back to
// a case-insensitive match on the field name.
func (s *DocumentSnapshot) DataTo(out any) error {
	const op = "DocumentSnapshot.DataTo"

	if !s.exists {
		return errs.New(errs.ErrNotFound, op, "document %s does not exist", s.ref.Path())
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    wire.TagName,
		Squash:     true,
		Result:     out,
		DecodeHook: mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
	})
	if err != nil {
		return errs.New(errs.ErrInvalidArgument, op, "%v", err)
	}
	if err := decoder.Decode(s.data); err != nil {
		return errs.New(errs.ErrInvalidArgument, op, "%v", err)
	}
	return nil
}

// deepCopy copies the values produced by wire.Decode. Those are limited to
// maps, slices and scalars, which copystructure always handles.
func deepCopy(v any) any {
	if v == nil {
		return nil
	}
	return copystructure.Must(copystructure.Copy(v))
}

// QueryDocumentSnapshot is a DocumentSnapshot taken from a collection
// listing. Its document always exists.
type QueryDocumentSnapshot struct {
	*DocumentSnapshot
}

func newQueryDocumentSnapshot(ref *DocumentReference, doc *wire.Document) *QueryDocumentSnapshot {
	return &QueryDocumentSnapshot{DocumentSnapshot: newDocumentSnapshot(ref, doc)}
}

// Data returns a copy of the document fields.
func (s *QueryDocumentSnapshot) Data() (map[string]any, error) {
	data := s.DocumentSnapshot.Data()
	if data == nil {
		return nil, errs.Internal("QueryDocumentSnapshot.Data", "query document snapshot should always have data")
	}
	return data, nil
}

// QuerySnapshot holds the documents returned by listing a collection.
type QuerySnapshot struct {
	collection *CollectionReference
	docs       []*QueryDocumentSnapshot
}

func newQuerySnapshot(col *CollectionReference, docs []*QueryDocumentSnapshot) *QuerySnapshot {
	if docs == nil {
		docs = []*QueryDocumentSnapshot{}
	}
	return &QuerySnapshot{collection: col, docs: docs}
}

// Collection returns the collection that was listed.
func (q *QuerySnapshot) Collection() *CollectionReference {
	return q.collection
}

// Docs returns the documents in server order.
func (q *QuerySnapshot) Docs() []*QueryDocumentSnapshot {
	out := make([]*QueryDocumentSnapshot, len(q.docs))
	copy(out, q.docs)
	return out
}

// Size returns the number of documents.
func (q *QuerySnapshot) Size() int {
	return len(q.docs)
}

// Empty reports whether the snapshot holds no documents.
func (q *QuerySnapshot) Empty() bool {
	return len(q.docs) == 0
}

// ForEach calls fn for each document in order.
func (q *QuerySnapshot) ForEach(fn func(*QueryDocumentSnapshot)) {
	for _, doc := range q.docs {
		fn(doc)
	}
}

// All iterates over the documents with their positions.
func (q *QuerySnapshot) All() iter.Seq2[int, *QueryDocumentSnapshot] {
	return func(yield func(int, *QueryDocumentSnapshot) bool) {
		for i, doc := range q.docs {
			if !yield(i, doc) {
				return
			}
		}
	}
}

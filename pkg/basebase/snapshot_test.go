package basebase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basebase-ai/basebase-go/pkg/errs"
	"github.com/basebase-ai/basebase-go/pkg/wire"
)

func newTestSnapshot(t *testing.T, data map[string]any) *DocumentSnapshot {
	t.Helper()
	doc, err := wire.EncodeDocument(data)
	require.NoError(t, err)
	ref := &DocumentReference{path: "proj/users/u1", id: "u1"}
	return newDocumentSnapshot(ref, doc)
}

func TestDocumentSnapshot_Data_IsCopy(t *testing.T) {
	snap := newTestSnapshot(t, map[string]any{
		"name":    "Ada",
		"address": map[string]any{"city": "London"},
		"tags":    []any{"a"},
	})

	data := snap.Data()
	data["name"] = "changed"
	data["address"].(map[string]any)["city"] = "Paris"
	data["tags"].([]any)[0] = "z"

	assert.Equal(t, map[string]any{
		"name":    "Ada",
		"address": map[string]any{"city": "London"},
		"tags":    []any{"a"},
	}, snap.Data())
}

func TestDocumentSnapshot_Get(t *testing.T) {
	snap := newTestSnapshot(t, map[string]any{
		"name":    "Ada",
		"nothing": nil,
		"address": map[string]any{
			"city": "London",
			"geo":  map[string]any{"lat": 51.5},
		},
	})

	tests := []struct {
		path   string
		want   any
		wantOK bool
	}{
		{"name", "Ada", true},
		{"nothing", nil, true},
		{"address.city", "London", true},
		{"address.geo.lat", 51.5, true},
		{"address.geo", map[string]any{"lat": 51.5}, true},
		{"missing", nil, false},
		{"address.zip", nil, false},
		{"name.first", nil, false},
		{"nothing.deeper", nil, false},
		{"", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := snap.Get(tt.path)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDocumentSnapshot_DataTo(t *testing.T) {
	type location struct {
		City string `basebase:"city"`
	}
	type profile struct {
		Name    string    `basebase:"name"`
		Age     int       // matched case-insensitively
		Score   float64   `basebase:"score"`
		Address location  `basebase:"address"`
		Joined  time.Time `basebase:"joined"`
		Tags    []string  `basebase:"tags"`
	}

	snap := newTestSnapshot(t, map[string]any{
		"name":    "Ada",
		"age":     36,
		"score":   9,
		"address": map[string]any{"city": "London"},
		"joined":  "2024-01-02T03:04:05Z",
		"tags":    []any{"math"},
	})

	var p profile
	require.NoError(t, snap.DataTo(&p))
	assert.Equal(t, profile{
		Name:    "Ada",
		Age:     36,
		Score:   9,
		Address: location{City: "London"},
		Joined:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Tags:    []string{"math"},
	}, p)

	var m map[string]any
	require.NoError(t, snap.DataTo(&m))
	assert.Equal(t, "Ada", m["name"])
}

func TestDocumentSnapshot_DataTo_Errors(t *testing.T) {
	missing := newDocumentSnapshot(&DocumentReference{path: "proj/users/u2", id: "u2"}, nil)
	var out struct{}
	err := missing.DataTo(&out)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	snap := newTestSnapshot(t, map[string]any{"age": "old"})
	var typed struct {
		Age int `basebase:"age"`
	}
	err = snap.DataTo(&typed)
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)

	err = snap.DataTo(typed)
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestQueryDocumentSnapshot_Data(t *testing.T) {
	ref := &DocumentReference{path: "proj/users/u1", id: "u1"}

	doc, err := wire.EncodeDocument(map[string]any{"a": true})
	require.NoError(t, err)
	qs := newQueryDocumentSnapshot(ref, doc)
	data, err := qs.Data()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": true}, data)

	empty := newQueryDocumentSnapshot(ref, nil)
	_, err = empty.Data()
	assert.ErrorIs(t, err, errs.ErrInternal)
}

func TestQuerySnapshot(t *testing.T) {
	col := &CollectionReference{path: "proj/users", id: "users"}
	docs := []*QueryDocumentSnapshot{
		newQueryDocumentSnapshot(col.child("a"), &wire.Document{}),
		newQueryDocumentSnapshot(col.child("b"), &wire.Document{}),
		newQueryDocumentSnapshot(col.child("c"), &wire.Document{}),
	}
	snap := newQuerySnapshot(col, docs)

	assert.Equal(t, 3, snap.Size())
	assert.False(t, snap.Empty())

	var seen []string
	for i, doc := range snap.All() {
		if i == 2 {
			break
		}
		seen = append(seen, doc.ID())
	}
	assert.Equal(t, []string{"a", "b"}, seen)

	got := snap.Docs()
	got[0] = nil
	assert.NotNil(t, snap.Docs()[0])

	empty := newQuerySnapshot(col, nil)
	assert.True(t, empty.Empty())
	assert.Empty(t, empty.Docs())
}

package basebase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basebase-ai/basebase-go/pkg/errs"
)

func TestDoc(t *testing.T) {
	client := newFakeClient(t, respondWith("", nil))

	tests := []struct {
		name        string
		path        string
		project     string
		wantPath    string
		wantID      string
		wantParent  string
		wantGrandID string
		wantErr     string
	}{
		{
			name:       "top level",
			path:       "users/u1",
			wantPath:   "proj/users/u1",
			wantID:     "u1",
			wantParent: "proj/users",
		},
		{
			name:        "nested",
			path:        "users/u1/posts/p1",
			wantPath:    "proj/users/u1/posts/p1",
			wantID:      "p1",
			wantParent:  "proj/users/u1/posts",
			wantGrandID: "u1",
		},
		{
			name:       "explicit project",
			path:       "users/u1",
			project:    "other",
			wantPath:   "other/users/u1",
			wantID:     "u1",
			wantParent: "other/users",
		},
		{name: "empty", path: "", wantErr: "non-empty"},
		{name: "collection arity", path: "users", wantErr: "even number of segments"},
		{name: "leading slash", path: "/users/u1", wantErr: "start or end with a slash"},
		{name: "empty segment", path: "users//u1/x", wantErr: "empty segments"},
		{name: "underscore id", path: "users/_u1", wantErr: "cannot start with a dot or underscore"},
		{name: "dot parent id", path: "users/.u1/posts/p1", wantErr: "cannot start with a dot or underscore"},
		{name: "slash in project", path: "users/u1", project: "a/b", wantErr: "cannot contain slashes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := Doc(client, tt.path, tt.project)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrInvalidArgument)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, ref.Path())
			assert.Equal(t, tt.wantID, ref.ID())
			assert.Same(t, client, ref.Client())
			require.NotNil(t, ref.Parent())
			assert.Equal(t, tt.wantParent, ref.Parent().Path())

			if tt.wantGrandID == "" {
				assert.Nil(t, ref.Parent().Parent())
			} else {
				require.NotNil(t, ref.Parent().Parent())
				assert.Equal(t, tt.wantGrandID, ref.Parent().Parent().ID())
			}
		})
	}
}

func TestCollection(t *testing.T) {
	client := newFakeClient(t, respondWith("", nil))

	col, err := Collection(client, "users", "")
	require.NoError(t, err)
	assert.Equal(t, "proj/users", col.Path())
	assert.Equal(t, "users", col.ID())
	assert.Nil(t, col.Parent())

	sub, err := Collection(client, "users/u1/posts", "")
	require.NoError(t, err)
	assert.Equal(t, "posts", sub.ID())
	require.NotNil(t, sub.Parent())
	assert.Equal(t, "proj/users/u1", sub.Parent().Path())
	assert.Equal(t, "proj/users", sub.Parent().Parent().Path())

	_, err = Collection(client, "users/u1", "")
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)

	_, err = Collection(client, "users/", "")
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestDocumentReference_Collection(t *testing.T) {
	client := newFakeClient(t, respondWith("", nil))

	user, err := Doc(client, "users/u1", "")
	require.NoError(t, err)

	deep, err := user.Collection("posts/p1/comments")
	require.NoError(t, err)
	assert.Equal(t, "proj/users/u1/posts/p1/comments", deep.Path())
	assert.Equal(t, "proj/users/u1/posts/p1", deep.Parent().Path())
	assert.True(t, deep.Parent().Parent().Parent().IsEqual(user))

	_, err = user.Collection("posts/p1")
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)

	_, err = user.Collection("")
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestReferences_IsEqual(t *testing.T) {
	a := newFakeClient(t, respondWith("", nil))
	b := newFakeClient(t, respondWith("", nil))

	r1, err := Doc(a, "users/u1", "")
	require.NoError(t, err)
	r2, err := a.Doc("users/u1")
	require.NoError(t, err)
	r3, err := Doc(b, "users/u1", "")
	require.NoError(t, err)
	r4, err := Doc(a, "users/u2", "")
	require.NoError(t, err)

	assert.True(t, r1.IsEqual(r2))
	assert.False(t, r1.IsEqual(r3))
	assert.False(t, r1.IsEqual(r4))
	assert.False(t, r1.IsEqual(nil))

	assert.True(t, r1.Parent().IsEqual(r4.Parent()))
	assert.False(t, r1.Parent().IsEqual(r3.Parent()))
	assert.Equal(t, "proj/users/u1", r1.String())
}

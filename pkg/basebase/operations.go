package basebase

import (
	"context"
)

// GetDoc reads the document at ref.
func GetDoc(ctx context.Context, ref *DocumentReference) (*DocumentSnapshot, error) {
	return ref.Get(ctx)
}

// GetDocs lists the documents of col.
func GetDocs(ctx context.Context, col *CollectionReference) (*QuerySnapshot, error) {
	return col.Get(ctx)
}

// AddDoc creates a document in col with a server-assigned ID.
func AddDoc(ctx context.Context, col *CollectionReference, data any) (*DocumentReference, error) {
	return col.Add(ctx, data)
}

// SetDoc replaces the document at ref.
func SetDoc(ctx context.Context, ref *DocumentReference, data any) (*WriteResult, error) {
	return ref.Set(ctx, data)
}

// UpdateDoc merges data into the document at ref.
func UpdateDoc(ctx context.Context, ref *DocumentReference, data any) (*WriteResult, error) {
	return ref.Update(ctx, data)
}

// DeleteDoc removes the document at ref.
func DeleteDoc(ctx context.Context, ref *DocumentReference) (*WriteResult, error) {
	return ref.Delete(ctx)
}

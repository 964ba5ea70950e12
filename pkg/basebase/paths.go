package basebase

import (
	"github.com/basebase-ai/basebase-go/pkg/docpath"
	"github.com/basebase-ai/basebase-go/pkg/errs"
)

// Doc returns a reference to the document at path, a relative path with an
// even number of segments such as "users/u1". projectName selects the
// project; an empty projectName uses the client's default.
func Doc(c *Client, path, projectName string) (*DocumentReference, error) {
	const op = "basebase.Doc"

	if err := docpath.Validate(path); err != nil {
		return nil, err
	}
	segments := docpath.Split(path)
	if err := docpath.ValidateSegments(segments, true); err != nil {
		return nil, err
	}
	if segments[len(segments)-1] == "" {
		return nil, errs.InvalidArgument(op, "document ID cannot be empty")
	}
	if err := validateDocumentSegments(segments); err != nil {
		return nil, err
	}

	fullPath, err := docpath.Scope(project(c, projectName), path)
	if err != nil {
		return nil, err
	}
	return c.documentAt(fullPath), nil
}

// Collection returns a reference to the collection at path, a relative path
// with an odd number of segments such as "users" or "users/u1/posts".
// projectName selects the project; an empty projectName uses the client's
// default.
func Collection(c *Client, path, projectName string) (*CollectionReference, error) {
	if err := docpath.Validate(path); err != nil {
		return nil, err
	}
	segments := docpath.Split(path)
	if err := docpath.ValidateSegments(segments, false); err != nil {
		return nil, err
	}
	if err := validateDocumentSegments(segments); err != nil {
		return nil, err
	}

	fullPath, err := docpath.Scope(project(c, projectName), path)
	if err != nil {
		return nil, err
	}
	return c.collectionAt(fullPath), nil
}

func project(c *Client, projectName string) string {
	if projectName != "" {
		return projectName
	}
	return c.projectID
}

// validateDocumentSegments checks every segment in a document position
// (the second, fourth, ...) of a relative path.
func validateDocumentSegments(segments []string) error {
	for i := 1; i < len(segments); i += 2 {
		if err := docpath.ValidateDocumentID(segments[i]); err != nil {
			return err
		}
	}
	return nil
}

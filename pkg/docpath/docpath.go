// Package docpath validates and manipulates Basebase resource paths.
//
// A path is a "/"-delimited list of non-empty segments. Collection paths
// have an odd number of segments ("users", "users/u1/posts") and document
// paths an even number ("users/u1"). Paths sent to the server are scoped by
// a leading project identifier ("proj/users/u1").
package docpath

import (
	"strings"

	"github.com/basebase-ai/basebase-go/pkg/errs"
)

// Separator delimits path segments.
const Separator = "/"

// Validate checks that path is non-empty, has no leading or trailing slash
// and contains no empty segment.
func Validate(path string) error {
	if path == "" {
		return errs.InvalidArgument("docpath.Validate", "path must be a non-empty string")
	}
	if strings.HasPrefix(path, Separator) || strings.HasSuffix(path, Separator) {
		return errs.InvalidArgument("docpath.Validate", "path cannot start or end with a slash: %q", path)
	}
	for _, segment := range strings.Split(path, Separator) {
		if segment == "" {
			return errs.InvalidArgument("docpath.Validate", "path cannot contain empty segments: %q", path)
		}
	}
	return nil
}

// ValidateDocumentID checks that id can be used as a single document path
// segment.
func ValidateDocumentID(id string) error {
	if id == "" {
		return errs.InvalidArgument("docpath.ValidateDocumentID", "document ID must be a non-empty string")
	}
	if strings.Contains(id, Separator) {
		return errs.InvalidArgument("docpath.ValidateDocumentID", "document ID cannot contain slashes: %q", id)
	}
	if strings.HasPrefix(id, ".") || strings.HasPrefix(id, "_") {
		return errs.InvalidArgument("docpath.ValidateDocumentID", "document ID cannot start with a dot or underscore: %q", id)
	}
	return nil
}

// ValidateSegments checks the arity of a split path: documents need an even
// number of segments, collections an odd number.
func ValidateSegments(segments []string, isDocument bool) error {
	n := len(segments)
	if isDocument && n%2 != 0 {
		return errs.InvalidArgument("docpath.ValidateSegments",
			"document path must have an even number of segments (collection/document), got %d", n)
	}
	if !isDocument && n%2 != 1 {
		return errs.InvalidArgument("docpath.ValidateSegments",
			"collection path must have an odd number of segments, got %d", n)
	}
	return nil
}

// IsAbsolute reports whether path appears to already carry a project
// identifier. The test is purely on segment count (3 or more) and cannot
// tell "proj/users/u1" from the relative collection path "users/u1/posts";
// callers that know the project should use Scope instead.
func IsAbsolute(path string) bool {
	return len(Split(path)) >= 3
}

// Resolve validates path and returns it unchanged when it looks absolute,
// otherwise prefixed with defaultProjectID.
func Resolve(defaultProjectID, path string) (string, error) {
	if err := Validate(path); err != nil {
		return "", err
	}
	if IsAbsolute(path) {
		return path, nil
	}
	return defaultProjectID + Separator + path, nil
}

// Scope validates path and prefixes it with projectID unconditionally.
func Scope(projectID, path string) (string, error) {
	if projectID == "" {
		return "", errs.InvalidArgument("docpath.Scope", "project ID must be a non-empty string")
	}
	if strings.Contains(projectID, Separator) {
		return "", errs.InvalidArgument("docpath.Scope", "project ID cannot contain slashes: %q", projectID)
	}
	if err := Validate(path); err != nil {
		return "", err
	}
	return projectID + Separator + path, nil
}

// Parse splits a project-scoped path into its project identifier and the
// remaining path.
func Parse(fullPath string) (projectID, path string, err error) {
	parts := strings.SplitN(fullPath, Separator, 2)
	if len(parts) < 2 || parts[0] == "" {
		return "", "", errs.InvalidArgument("docpath.Parse", "invalid path format: %q", fullPath)
	}
	return parts[0], parts[1], nil
}

// Split returns the segments of path.
func Split(path string) []string {
	return strings.Split(path, Separator)
}

// Join joins segments with the separator.
func Join(segments ...string) string {
	return strings.Join(segments, Separator)
}

// Base returns the last segment of path.
func Base(path string) string {
	if i := strings.LastIndex(path, Separator); i >= 0 {
		return path[i+1:]
	}
	return path
}

// Dir returns path without its last segment, or "" for a single segment.
func Dir(path string) string {
	if i := strings.LastIndex(path, Separator); i >= 0 {
		return path[:i]
	}
	return ""
}

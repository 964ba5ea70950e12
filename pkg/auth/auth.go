// Package auth supplies the headers that authenticate Basebase requests.
package auth

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/oauth2"

	"github.com/basebase-ai/basebase-go/pkg/errs"
)

// HeaderProvider returns the headers to attach to every request.
type HeaderProvider interface {
	AuthHeaders(ctx context.Context) (map[string]string, error)
}

// HeaderProviderFunc adapts a function to the HeaderProvider interface.
type HeaderProviderFunc func(ctx context.Context) (map[string]string, error)

// AuthHeaders implements HeaderProvider.
func (f HeaderProviderFunc) AuthHeaders(ctx context.Context) (map[string]string, error) {
	return f(ctx)
}

// None sends no credentials.
type None struct{}

// AuthHeaders implements HeaderProvider.
func (None) AuthHeaders(context.Context) (map[string]string, error) {
	return map[string]string{}, nil
}

// APIKey authenticates with a static bearer token.
type APIKey string

// AuthHeaders implements HeaderProvider.
func (k APIKey) AuthHeaders(context.Context) (map[string]string, error) {
	if k == "" {
		return nil, errs.New(errs.ErrUnauthenticated, "auth.APIKey", "API key is empty")
	}
	return map[string]string{"Authorization": "Bearer " + string(k)}, nil
}

// TokenSource authenticates with tokens from an OAuth2 token source, which
// is responsible for caching and refreshing them.
type TokenSource struct {
	Source oauth2.TokenSource
}

// AuthHeaders implements HeaderProvider.
func (s TokenSource) AuthHeaders(context.Context) (map[string]string, error) {
	if s.Source == nil {
		return nil, errs.New(errs.ErrUnauthenticated, "auth.TokenSource", "no token source configured")
	}
	tok, err := s.Source.Token()
	if err != nil {
		return nil, errs.New(errs.ErrUnauthenticated, "auth.TokenSource", "failed to obtain token: %v", err)
	}
	if !tok.Valid() {
		return nil, errs.New(errs.ErrUnauthenticated, "auth.TokenSource", "token is expired or empty")
	}
	return map[string]string{"Authorization": fmt.Sprintf("%s %s", tok.Type(), tok.AccessToken)}, nil
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// ProjectIDFromAPIKey derives the project identifier from an API key. Keys
// of the form "bb_<project>_<secret>" name their project explicitly; any
// other key maps to its first 16 alphanumeric characters, which is stable
// across sessions.
func ProjectIDFromAPIKey(apiKey string) (string, error) {
	if apiKey == "" {
		return "", errs.InvalidArgument("auth.ProjectIDFromAPIKey", "API key must be a non-empty string")
	}

	if strings.HasPrefix(apiKey, "bb_") {
		parts := strings.Split(apiKey, "_")
		if len(parts) >= 3 && parts[1] != "" {
			return parts[1], nil
		}
	}

	id := nonAlphanumeric.ReplaceAllString(apiKey, "")
	if len(id) > 16 {
		id = id[:16]
	}
	if id == "" {
		return "", errs.InvalidArgument("auth.ProjectIDFromAPIKey", "API key has no alphanumeric characters")
	}
	return id, nil
}

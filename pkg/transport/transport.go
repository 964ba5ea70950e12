// Package transport issues JSON requests against the Basebase REST API and
// maps HTTP failures onto the errs taxonomy.
//
// Status codes map as follows:
//
//	400 -> errs.ErrInvalidArgument
//	401 -> errs.ErrUnauthenticated
//	403 -> errs.ErrPermissionDenied
//	404 -> errs.ErrNotFound
//	409 -> errs.ErrAlreadyExists
//	503 -> errs.ErrUnavailable
//	any other non-2xx -> errs.ErrInternal
//
// Connection failures surface as errs.ErrNetworkError and timeouts as
// errs.ErrUnavailable.
package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/basebase-ai/basebase-go/pkg/errs"
)

// Supported request methods.
const (
	MethodGet    = http.MethodGet
	MethodPost   = http.MethodPost
	MethodPatch  = http.MethodPatch
	MethodPut    = http.MethodPut
	MethodDelete = http.MethodDelete
)

// Request describes a single call to the remote store.
type Request struct {
	URL     string
	Method  string
	Headers map[string]string

	// Body is JSON encoded unless it is already a []byte or string. It is
	// ignored for GET requests.
	Body any

	// Timeout bounds the whole call. Zero uses the transport default.
	Timeout time.Duration
}

// Doer performs requests. On success the JSON response, if any, is decoded
// into out; a response without a JSON content type leaves out untouched.
type Doer interface {
	Do(ctx context.Context, req *Request, out any) error
}

// DoerFunc adapts a function to the Doer interface.
type DoerFunc func(ctx context.Context, req *Request, out any) error

// Do implements Doer.
func (f DoerFunc) Do(ctx context.Context, req *Request, out any) error {
	return f(ctx, req, out)
}

func validMethod(method string) bool {
	switch method {
	case MethodGet, MethodPost, MethodPatch, MethodPut, MethodDelete:
		return true
	default:
		return false
	}
}

// StatusError maps a non-2xx response onto the errs taxonomy. The JSON
// "error" or "message" field of body, when present, becomes the message.
func StatusError(op string, statusCode int, body []byte) error {
	msg := statusMessage(statusCode, body)

	var kind error
	switch statusCode {
	case http.StatusBadRequest:
		kind = errs.ErrInvalidArgument
	case http.StatusUnauthorized:
		kind = errs.ErrUnauthenticated
	case http.StatusForbidden:
		kind = errs.ErrPermissionDenied
	case http.StatusNotFound:
		kind = errs.ErrNotFound
	case http.StatusConflict:
		kind = errs.ErrAlreadyExists
	case http.StatusServiceUnavailable:
		kind = errs.ErrUnavailable
	default:
		kind = errs.ErrInternal
	}

	return errs.New(kind, op, "%s", msg)
}

func statusMessage(statusCode int, body []byte) string {
	msg := fmt.Sprintf("HTTP %d: %s", statusCode, http.StatusText(statusCode))

	var apiErr struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil {
		if apiErr.Error != "" {
			msg = apiErr.Error
		}
		if apiErr.Message != "" {
			msg = apiErr.Message
		}
	}
	return msg
}

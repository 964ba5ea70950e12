// Package errs defines the error taxonomy shared by every Basebase package.
//
// Each failure is an *Error wrapping exactly one sentinel, so callers can
// branch with errors.Is:
//
//	snap, err := ref.Get(ctx)
//	if errors.Is(err, errs.ErrPermissionDenied) {
//	    ...
//	}
package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every *Error wraps one of these.
var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrNotFound         = errors.New("not found")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrPermissionDenied = errors.New("permission denied")
	ErrAlreadyExists    = errors.New("already exists")
	ErrUnavailable      = errors.New("unavailable")
	ErrNetworkError     = errors.New("network error")
	ErrInternal         = errors.New("internal error")
)

var codes = map[error]string{
	ErrInvalidArgument:  "invalid-argument",
	ErrNotFound:         "not-found",
	ErrUnauthenticated:  "unauthenticated",
	ErrPermissionDenied: "permission-denied",
	ErrAlreadyExists:    "already-exists",
	ErrUnavailable:      "unavailable",
	ErrNetworkError:     "network-error",
	ErrInternal:         "internal",
}

// Error is a Basebase failure. Op names the operation that failed, Err is
// the sentinel describing the class of failure and Msg carries detail.
type Error struct {
	Op  string
	Err error
	Msg string
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New returns an *Error for op wrapping the sentinel kind.
func New(kind error, op, format string, args ...any) *Error {
	return &Error{
		Op:  op,
		Err: kind,
		Msg: fmt.Sprintf(format, args...),
	}
}

// InvalidArgument is shorthand for New(ErrInvalidArgument, ...).
func InvalidArgument(op, format string, args ...any) *Error {
	return New(ErrInvalidArgument, op, format, args...)
}

// Internal is shorthand for New(ErrInternal, ...).
func Internal(op, format string, args ...any) *Error {
	return New(ErrInternal, op, format, args...)
}

// IsNotFound reports whether err is, or wraps, ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// CodeOf returns the kebab-case code of the sentinel err wraps, or
// "unknown" when err is not part of the taxonomy.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	for sentinel, code := range codes {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return "unknown"
}

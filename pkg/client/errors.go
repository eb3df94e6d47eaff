package client

import (
	"errors"
	"fmt"
)

// Kind classifies client errors so callers can branch without string
// matching.
type Kind int

const (
	// KindValidation: bad input caught before any network call.
	KindValidation Kind = iota
	// KindUnauthenticated: missing or rejected session token.
	KindUnauthenticated
	// KindNetwork: the request could not complete.
	KindNetwork
	// KindServer: non-2xx response, malformed body, or timeout.
	KindServer
	// KindNotFound: the resource no longer exists.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindNetwork:
		return "network"
	case KindServer:
		return "server"
	case KindNotFound:
		return "not_found"
	}
	return "unknown"
}

// Error is the typed error returned by all Client operations.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func wrapError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// ErrKind extracts the Kind from an error returned by this package.
// Errors from elsewhere report KindServer.
func ErrKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindServer
}

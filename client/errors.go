package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed gateway call.
type Kind int

const (
	// KindTransport means the request never produced a response
	// (connection refused, DNS failure, cancelled context).
	KindTransport Kind = iota

	// KindRemote means the backend answered with a non-2xx status
	// other than 401/403. The backend's message is preserved.
	KindRemote

	// KindUnauthorized means the backend answered 401 or 403. The
	// stored credential has already been cleared by the time the
	// caller sees this error.
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindRemote:
		return "remote"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// APIError is the error surfaced by every failed gateway call.
type APIError struct {
	Kind    Kind
	Status  int    // HTTP status; zero for transport failures
	Message string // backend message when available
	cause   error
}

func (e *APIError) Error() string {
	switch e.Kind {
	case KindTransport:
		return fmt.Sprintf("storefront: request failed: %v", e.cause)
	default:
		if e.Message != "" {
			return fmt.Sprintf("storefront: status %d: %s", e.Status, e.Message)
		}
		return fmt.Sprintf("storefront: status %d", e.Status)
	}
}

func (e *APIError) Unwrap() error { return e.cause }

// IsUnauthorized reports whether err is an authorization failure.
func IsUnauthorized(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Kind == KindUnauthorized
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == http.StatusNotFound
}

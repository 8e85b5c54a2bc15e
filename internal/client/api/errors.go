package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrConnection marks transport-level failures (DNS, refused connection,
	// timeout) as opposed to HTTP-status errors.
	ErrConnection = errors.New("cannot reach server")

	// ErrInvalidQuery marks client-side rejection of malformed query
	// parameters before any request is issued.
	ErrInvalidQuery = errors.New("invalid query parameter")
)

// ErrorKind buckets HTTP-status failures into the categories the UI layer
// reacts to.
type ErrorKind int

const (
	KindGeneric ErrorKind = iota
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindServer
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not found"
	case KindServer:
		return "server error"
	default:
		return "request failed"
	}
}

// StatusError is returned for any response with a status outside [200,300).
// Message carries the backend's error_msg field when one was present.
type StatusError struct {
	StatusCode int
	Kind       ErrorKind
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s (%d)", e.Kind, e.StatusCode)
}

func kindForStatus(code int) ErrorKind {
	switch {
	case code == http.StatusUnauthorized:
		return KindUnauthorized
	case code == http.StatusForbidden:
		return KindForbidden
	case code == http.StatusNotFound:
		return KindNotFound
	case code >= 500:
		return KindServer
	default:
		return KindGeneric
	}
}

func isKind(err error, kind ErrorKind) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Kind == kind
	}
	return false
}

// IsUnauthorized reports whether err is a 401 response. Callers use this to
// clear credentials and return to the login screen.
func IsUnauthorized(err error) bool { return isKind(err, KindUnauthorized) }

func IsForbidden(err error) bool { return isKind(err, KindForbidden) }

func IsNotFound(err error) bool { return isKind(err, KindNotFound) }

func IsServerError(err error) bool { return isKind(err, KindServer) }

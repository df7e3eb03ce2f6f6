package service

import (
	"errors"
	"fmt"
)

// Kind classifies why a backend operation failed.
type Kind int

const (
	// KindUnknown is reported for errors that did not come from a backend.
	KindUnknown Kind = iota

	// KindNetwork covers transport failures: DNS, refused connections,
	// resets, and cancelled or expired contexts.
	KindNetwork

	// KindStatus means the server answered with a non-success status code.
	KindStatus

	// KindDecode means the response body could not be parsed.
	KindDecode

	// KindUnavailable means the call was rejected locally by an open circuit breaker.
	KindUnavailable

	// KindNotFound means a task reference could not be resolved.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	case KindUnavailable:
		return "unavailable"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error is the failure value returned by Service implementations.
type Error struct {
	Op         string // "list", "create", "update" or "delete"
	Kind       Kind
	StatusCode int // set when Kind == KindStatus
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindStatus && e.Err != nil:
		return fmt.Sprintf("%s: %d error while trying to fetch API: %v", e.Op, e.StatusCode, e.Err)
	case e.Kind == KindStatus:
		return fmt.Sprintf("%s: %d error while trying to fetch API", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the Kind of err, or KindUnknown if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// StatusCodeOf returns the HTTP status carried by err, or 0.
func StatusCodeOf(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindStatus {
		return e.StatusCode
	}
	return 0
}

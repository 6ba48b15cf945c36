package api

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a request failure so callers can pick a recovery:
// retry, redirect to login, or inline display.
type ErrorKind int

const (
	// KindNetwork means the request never completed.
	KindNetwork ErrorKind = iota
	// KindTimeout means the request exceeded the client deadline.
	KindTimeout
	// KindUnauthorized means the backend returned 401; the session is
	// missing or stale and the caller must clear credentials and re-login.
	KindUnauthorized
	// KindNotFound means the backend returned 404 for the record.
	KindNotFound
	// KindServerRejected means the backend refused the request and may
	// carry a user-displayable message.
	KindServerRejected
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not found"
	case KindServerRejected:
		return "rejected"
	}
	return "unknown"
}

// Error is a classified API failure.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	cause      error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.cause)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.cause }

// UserMessage returns text suitable for direct display.
func (e *Error) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	switch e.Kind {
	case KindNetwork:
		return "server unreachable"
	case KindTimeout:
		return "request timed out"
	case KindUnauthorized:
		return "session expired, please sign in again"
	case KindNotFound:
		return "record not found"
	}
	return "request failed"
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool { return kindOf(err) == KindUnauthorized }

// IsTimeout reports whether err is a client-side deadline failure.
func IsTimeout(err error) bool { return kindOf(err) == KindTimeout }

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool { return kindOf(err) == KindNotFound }

func kindOf(err error) ErrorKind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ErrorKind(-1)
}

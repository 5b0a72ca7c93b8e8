package scrobble

import (
	"errors"
	"fmt"
	"net/http"
)

// Display strings attached to status failures. The presentation layer shows
// these verbatim, so they are worded for end users rather than operators.
const (
	msgUserNotFound   = "No such user"
	msgPrivateProfile = "This profile is private"
	msgGenericFailure = "The service returned an error"
)

// StatusError is a non-2xx response from a provider, converted at the
// transport boundary. Message is a human-readable category suitable for
// display; StatusCode is kept for callers that need to branch.
type StatusError struct {
	StatusCode int
	Message    string
}

// Error returns the display message with the status code.
func (e *StatusError) Error() string {
	return fmt.Sprintf("scrobble: status %d: %s", e.StatusCode, e.Message)
}

// Is allows errors.Is to match any StatusError with the same status code.
func (e *StatusError) Is(target error) bool {
	t, ok := target.(*StatusError)
	if !ok {
		return false
	}
	return e.StatusCode == t.StatusCode
}

// NotFound reports whether the provider answered 404.
func (e *StatusError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// PrivateProfile reports whether the provider answered 403.
func (e *StatusError) PrivateProfile() bool {
	return e.StatusCode == http.StatusForbidden
}

// statusError builds the StatusError for a non-2xx response.
func statusError(code int) *StatusError {
	msg := ""
	switch code {
	case http.StatusNotFound:
		msg = msgUserNotFound
	case http.StatusForbidden:
		msg = msgPrivateProfile
	default:
		msg = http.StatusText(code)
		if msg == "" {
			msg = msgGenericFailure
		}
	}
	return &StatusError{StatusCode: code, Message: msg}
}

// TransportError is a network-level failure: DNS, TLS, timeout, connection
// reset. It is distinct from StatusError so callers can tell "service said
// no" from "service unreachable". The core never retries these.
type TransportError struct {
	Err error
}

// Error returns the underlying failure.
func (e *TransportError) Error() string {
	return fmt.Sprintf("scrobble: transport: %v", e.Err)
}

// Unwrap exposes the underlying error for errors.Is/As.
func (e *TransportError) Unwrap() error { return e.Err }

// MalformedError is a 200 response whose body lacks a required top-level
// object or array. Missing optional fields never produce this; only a shape
// the adapter cannot work around at all.
type MalformedError struct {
	Path string // JSON path that was expected, e.g. "recenttracks.track"
}

// Error names the missing structure.
func (e *MalformedError) Error() string {
	return fmt.Sprintf("scrobble: malformed response: %q missing or wrong type", e.Path)
}

// EntityNotFoundError is returned by single-entity detail lookups when the
// provider has no record of the requested track, album or artist. It is
// deliberately separate from StatusError: some providers signal this with a
// 200 and an empty body.
type EntityNotFoundError struct {
	Kind EntryType
	Name string
}

// Error names the missing entity.
func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("scrobble: %s %q not found", e.Kind, e.Name)
}

// ErrNotFound matches any EntityNotFoundError via errors.Is.
var ErrNotFound = errors.New("scrobble: not found")

// Is lets errors.Is(err, ErrNotFound) succeed for all detail-lookup misses.
func (e *EntityNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

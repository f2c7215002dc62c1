package api

import (
	"errors"
	"fmt"
)

// ErrSessionInvalid marks a token that the server rejected or that is absent.
// It always resolves the same way: clear the session and return to the
// unauthenticated state. It is never retried.
var ErrSessionInvalid = errors.New("session is no longer valid")

// AuthError is a login or registration rejected by the server. Detail holds
// the server-supplied reason when one was given.
type AuthError struct {
	StatusCode int
	Detail     string
}

func (e *AuthError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("authentication failed (status %d)", e.StatusCode)
}

// CommandError is a signup or unregister rejected with a business reason,
// such as the activity being full. The detail is shown to the user verbatim.
type CommandError struct {
	StatusCode int
	Detail     string
}

func (e *CommandError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("command rejected (status %d)", e.StatusCode)
}

// FetchError is a failed read of the catalog or roster that did not implicate
// the session. The view degrades to an inline error without logging out.
type FetchError struct {
	StatusCode int
	Detail     string
}

func (e *FetchError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("fetch failed (status %d)", e.StatusCode)
}

// TransportError wraps a network-level failure where no response arrived.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

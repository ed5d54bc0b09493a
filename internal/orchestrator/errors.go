package orchestrator

import (
	"errors"
	"fmt"
)

// Validation failures. These are raised before any remote call or audit write
// and are mapped to 4xx responses at the API boundary.
var (
	ErrNotFound          = errors.New("client not found")
	ErrAlreadyExists     = errors.New("client with this username already exists")
	ErrAlreadyBlocked    = errors.New("client is already blocked")
	ErrNotBlocked        = errors.New("client is not blocked")
	ErrConfigUnavailable = errors.New("client has no remote binding, config unavailable")
)

// ErrRemoteUnavailable is the errors.Is target for every failed panel call,
// regardless of the underlying cause (network, rejection, timeout).
var ErrRemoteUnavailable = errors.New("remote panel unavailable")

// RemoteError wraps a failed gateway call with the action that triggered it.
// The underlying error text is what gets recorded in the audit trail.
type RemoteError struct {
	Action string
	Err    error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote panel %s failed: %v", e.Action, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Is reports ErrRemoteUnavailable so callers can match the whole class
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemoteUnavailable
}

func remoteErr(action string, err error) *RemoteError {
	return &RemoteError{Action: action, Err: err}
}

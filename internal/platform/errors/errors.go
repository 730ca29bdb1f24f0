package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrNoSession    = errors.New("not authenticated")
	ErrAuth         = errors.New("authentication failed")
	ErrNetwork      = errors.New("network error")
	ErrParse        = errors.New("malformed response")
	ErrRemote       = errors.New("remote service error")
	ErrSelection    = errors.New("invalid selection")
)

// RemoteError carries the message the remote service returned with a
// non-zero status.
type RemoteError struct {
	Op      string
	Message string
	kind    error
}

func NewRemoteError(op, message string) *RemoteError {
	return &RemoteError{Op: op, Message: message, kind: ErrRemote}
}

func NewAuthError(message string) *RemoteError {
	return &RemoteError{Op: "login", Message: message, kind: ErrAuth}
}

func (e *RemoteError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "unknown error"
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

func (e *RemoteError) Unwrap() error {
	if e.kind == nil {
		return ErrRemote
	}
	return e.kind
}

// Recoverable reports whether err is a transient failure that the
// iteration policies skip over instead of ending the run.
func Recoverable(err error) bool {
	return errors.Is(err, ErrNetwork) || errors.Is(err, ErrParse)
}

package gateway

import (
	"errors"
	"fmt"
)

// Kind classifies a Failure for the UI layer.
type Kind string

const (
	KindAuth      Kind = "auth"
	KindData      Kind = "data"
	KindTransport Kind = "transport"
)

// Reason sentinels. Callers match them with errors.Is; the Failure message
// is what gets shown to the user.
var (
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateAccount   = errors.New("account already exists")
	ErrSessionExpired     = errors.New("session expired")
	ErrNotFound           = errors.New("not found")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrValidation         = errors.New("validation error")
	ErrEmptyTitle         = errors.New("title must not be empty")
	ErrUnavailable        = errors.New("service unavailable")
)

// Failure is the structured, inspectable error value every component in this
// client returns instead of raw faults: a kind, a display-safe message, and
// an optional reason sentinel reachable through errors.Is.
type Failure struct {
	Kind    Kind
	Message string
	Reason  error
}

func (f *Failure) Error() string {
	if f.Message != "" {
		return f.Message
	}
	if f.Reason != nil {
		return f.Reason.Error()
	}
	return string(f.Kind) + " error"
}

func (f *Failure) Unwrap() error { return f.Reason }

// AuthFailure builds a Failure of kind auth.
func AuthFailure(reason error, format string, args ...any) *Failure {
	return &Failure{Kind: KindAuth, Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// DataFailure builds a Failure of kind data.
func DataFailure(reason error, format string, args ...any) *Failure {
	return &Failure{Kind: KindData, Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// TransportFailure builds a Failure of kind transport.
func TransportFailure(reason error, format string, args ...any) *Failure {
	return &Failure{Kind: KindTransport, Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// AsFailure extracts a *Failure from an error chain.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// KindOf reports the Kind of err, or KindTransport when err carries no
// Failure (an unclassified error is by definition not a user mistake).
func KindOf(err error) Kind {
	if f, ok := AsFailure(err); ok {
		return f.Kind
	}
	return KindTransport
}

package webhook

import (
	"errors"
	"fmt"
)

// Kind classifies a processing failure. The orchestration layer and the HTTP
// boundary decide retry behavior from the kind alone, never from error text.
type Kind int

const (
	// KindHandlerLogic is an unexpected business-rule violation inside a
	// handler. Terminal: redelivering a genuine bug loops forever, so the
	// event is acknowledged and the failure alerted instead.
	KindHandlerLogic Kind = iota
	// KindAuthentication is a bad signature or a timestamp outside the
	// allowed skew window. Terminal, never retried.
	KindAuthentication
	// KindValidation is a malformed payload. Terminal.
	KindValidation
	// KindLockContention means another attempt holds the per-event lock.
	// Transient: the platform should redeliver later. No handler ran.
	KindLockContention
	// KindDependencyUnavailable is a store/storage/broker outage. Retryable.
	KindDependencyUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindValidation:
		return "validation"
	case KindLockContention:
		return "lock_contention"
	case KindDependencyUnavailable:
		return "dependency_unavailable"
	default:
		return "handler_logic"
	}
}

// Retryable reports whether redelivering the same event may succeed.
func (k Kind) Retryable() bool {
	return k == KindLockContention || k == KindDependencyUnavailable
}

// Error attaches a Kind to an underlying cause.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func Authentication(err error) *Error {
	return NewError(KindAuthentication, err)
}

func Validation(err error) *Error {
	return NewError(KindValidation, err)
}

func Contention(err error) *Error {
	return NewError(KindLockContention, err)
}

func Dependency(err error) *Error {
	return NewError(KindDependencyUnavailable, err)
}

func Logic(err error) *Error {
	return NewError(KindHandlerLogic, err)
}

// KindOf extracts the failure kind from an error chain. Handler errors that
// carry no kind are unexpected business failures and classify as
// KindHandlerLogic.
func KindOf(err error) Kind {
	var we *Error
	if errors.As(err, &we) {
		return we.Kind
	}
	return KindHandlerLogic
}

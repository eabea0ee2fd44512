// Package apperr classifies persistence and input failures into kinds so
// callers can branch on the failure class instead of matching message text.
package apperr

import (
	"errors"
	"fmt"
)

// Kind identifies the failure class of an Error.
type Kind int

const (
	// KindUnknown is the zero value for unclassified errors.
	KindUnknown Kind = iota
	// KindValidation marks user input that fails a precondition. Validation
	// failures never cause partial writes.
	KindValidation
	// KindIntegrity marks a uniqueness or foreign-key violation detected at
	// write time despite prior validation.
	KindIntegrity
	// KindConnectivity marks an unreachable or timed-out persistence layer.
	KindConnectivity
	// KindNotFound marks a referenced id that does not exist.
	KindNotFound
)

// String returns a short label for the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindIntegrity:
		return "integrity"
	case KindConnectivity:
		return "connectivity"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error is a kinded error with the operation that produced it.
type Error struct {
	Kind Kind
	Op   string // e.g. "catalog.EnsureExercise"
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a kinded error from a message.
func New(kind Kind, op, msg string) error {
	return &Error{Kind: kind, Op: op, Err: errors.New(msg)}
}

// Wrap attaches a kind and operation to an existing error. Returns nil if
// err is nil.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of the outermost *Error in err's chain, or
// KindUnknown if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsIntegrity reports whether err is a constraint violation.
func IsIntegrity(err error) bool { return KindOf(err) == KindIntegrity }

// IsConnectivity reports whether err is a persistence connectivity failure.
func IsConnectivity(err error) bool { return KindOf(err) == KindConnectivity }

// IsNotFound reports whether err marks a missing entity.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

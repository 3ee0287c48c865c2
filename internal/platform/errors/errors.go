// Package errors carries kind-tagged errors across stage boundaries. The
// pipeline's public contract is total (every stage returns a usable value),
// so the kind tag is how a degraded stage stays observable internally.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind names the subsystem an error originated in.
type Kind string

const (
	KindConfig     Kind = "config"
	KindValidation Kind = "validation"
	KindCaption    Kind = "caption"
	KindScoring    Kind = "scoring"
	KindAnalytics  Kind = "analytics"
	KindStorage    Kind = "storage"
	KindTransport  Kind = "transport"
	KindBootstrap  Kind = "bootstrap"
	KindUnknown    Kind = "unknown"
)

// Error is the single error type used across the service. Op identifies the
// failing operation, Cause holds the underlying error when one exists.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Kind, e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Kind, e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New builds a kind-tagged error with no underlying cause.
func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// Wrap attaches kind and operation context to err. A nil err stays nil, and
// an already-tagged error keeps its original tag rather than being re-tagged
// at every layer it passes through.
func Wrap(kind Kind, op, message string, err error) *Error {
	if err == nil {
		return nil
	}
	var tagged *Error
	if stderrors.As(err, &tagged) {
		return tagged
	}
	return &Error{Kind: kind, Op: op, Message: message, Cause: err}
}

// KindOf reports the kind of the first tagged error in the chain, or
// KindUnknown when none is present.
func KindOf(err error) Kind {
	var tagged *Error
	if stderrors.As(err, &tagged) {
		return tagged.Kind
	}
	return KindUnknown
}

// IsKind reports whether the error chain carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

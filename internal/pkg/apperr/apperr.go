// Package apperr carries the error taxonomy surfaced by the service layer.
// Controllers map a Kind to an HTTP status; callers inspect it with KindOf.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a service-layer failure.
type Kind int

const (
	// Unknown covers errors that did not originate in the service layer.
	Unknown Kind = iota
	// NotFound means an id or user resolved to nothing.
	NotFound
	// InvalidInput covers malformed or rejected request fields.
	InvalidInput
	// EmptyCart means a checkout was attempted on an empty cart.
	EmptyCart
	// InsufficientStock means a strict price run found a stock shortfall.
	InsufficientStock
	// InvalidState means a status-gated operation was attempted out of order.
	InvalidState
	// WindowExpired means the 24h cancellation/modification window is over.
	WindowExpired
	// Forbidden means the resource belongs to a different user.
	Forbidden
	// Processor means the external payment processor call failed.
	Processor
	// MalformedPayload means an inbound webhook body was not parseable.
	MalformedPayload
)

// Error is a classified, user-presentable error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds a classified error with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies an underlying error, keeping it available via Unwrap.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the Kind from an error chain, Unknown if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// File path: internal/fault/fault.go

// Package fault defines the closed set of error kinds the service surfaces:
// configuration, validation, transport, and remote store. Callers branch on
// the kind to decide between surfacing and retrying; everything else about
// the underlying error is preserved through errors.Unwrap.
package fault

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindConfiguration
	KindValidation
	KindTransport
	KindRemoteStore
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindValidation:
		return "validation"
	case KindTransport:
		return "transport"
	case KindRemoteStore:
		return "remote store"
	default:
		return "unknown"
	}
}

type Error struct {
	kind Kind
	err  error
}

func (e *Error) Error() string {
	return e.err.Error()
}

func (e *Error) Unwrap() error {
	return e.err
}

func (e *Error) Kind() Kind {
	if e == nil {
		return KindUnknown
	}
	return e.kind
}

// New creates an error of the given kind from a format string.
func New(kind Kind, format string, args ...interface{}) error {
	return &Error{kind: kind, err: fmt.Errorf(format, args...)}
}

// Wrap attaches a kind to an existing error. A nil err yields nil.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{kind: kind, err: err}
}

// KindOf reports the kind carried by err, or KindUnknown when err carries
// none. The outermost kind wins when kinds are nested.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind()
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

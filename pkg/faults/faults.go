package faults

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure. The HTTP layer maps kinds to status codes,
// so every error crossing a handler boundary should carry one.
type Kind string

const (
	Validation        Kind = "ValidationError"
	UnsupportedFormat Kind = "UnsupportedFormat"
	PayloadTooLarge   Kind = "PayloadTooLarge"
	ExtractionFault   Kind = "ExtractionFault"
	ExtractionTimeout Kind = "ExtractionTimeout"
	EmptyPrompt       Kind = "EmptyPrompt"
	TransportError    Kind = "TransportError"
	ProviderError     Kind = "ProviderError"
	ProtocolError     Kind = "ProtocolError"
	Internal          Kind = "InternalError"
)

// Fault is a classified error. Message is safe to show to the caller;
// Err keeps the underlying cause for logs.
type Fault struct {
	Kind    Kind
	Message string
	Err     error
}

func (f *Fault) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Message, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

func (f *Fault) Unwrap() error { return f.Err }

func New(kind Kind, format string, args ...any) *Fault {
	return &Fault{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, format string, args ...any) *Fault {
	return &Fault{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the classification of err, or Internal for unclassified errors.
func KindOf(err error) Kind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return Internal
}

// MessageOf returns the caller-safe message of err.
// Unclassified errors get a generic message so internals never leak.
func MessageOf(err error) string {
	var f *Fault
	if errors.As(err, &f) {
		return f.Message
	}
	return "internal error"
}

// Is lets errors.Is match a fault against a bare kind probe.
func (f *Fault) Is(target error) bool {
	var other *Fault
	if !errors.As(target, &other) {
		return false
	}
	return f.Kind == other.Kind
}

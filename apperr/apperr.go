// Package apperr holds the error taxonomy shared by the scanner, the
// generator and the CLI boundary.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindNotFound            Kind = "not_found"
	KindUnsupportedProvider Kind = "unsupported_provider"
	KindMissingCredential   Kind = "missing_credential"
	KindTimeout             Kind = "timeout"
	KindProvider            Kind = "provider"
	KindIOWrite             Kind = "io_write"
	KindUsage               Kind = "usage"
	KindInternal            Kind = "internal"
)

// Error is a classified failure. Provider is set for provider-side kinds.
type Error struct {
	Kind     Kind
	Provider string
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if e.Provider != "" {
		msg = e.Provider + ": " + msg
	}
	if e.Cause == nil {
		return msg
	}
	return fmt.Sprintf("%s: %v", msg, e.Cause)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func New(kind Kind, message string, cause error) error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

func NotFound(path string, cause error) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("path %q not found", path), Cause: cause}
}

func UnsupportedProvider(name string, known []string) error {
	return &Error{
		Kind:    KindUnsupportedProvider,
		Message: fmt.Sprintf("provider %q is not supported (choose one of %v)", name, known),
	}
}

func MissingCredential(provider, envVar string) error {
	return &Error{
		Kind:     KindMissingCredential,
		Provider: provider,
		Message:  envVar + " not set",
	}
}

func Timeout(provider string, cause error) error {
	return &Error{Kind: KindTimeout, Provider: provider, Message: "request timed out", Cause: cause}
}

func Provider(provider, message string, cause error) error {
	return &Error{Kind: KindProvider, Provider: provider, Message: message, Cause: cause}
}

func IOWrite(path string, cause error) error {
	return &Error{Kind: KindIOWrite, Message: fmt.Sprintf("cannot write %s", path), Cause: cause}
}

func Usage(message string) error {
	return &Error{Kind: KindUsage, Message: message}
}

// KindOf reports the kind of the first *Error in err's chain, or
// KindInternal when err is unclassified.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

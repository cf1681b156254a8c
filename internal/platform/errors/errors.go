package errors

import (
	stderrors "errors"
)

// Domain names this module in gRPC ErrorInfo details.
const Domain = "github.com/Estagiarius/simulajuls"

// Error is a simulation failure. Code picks the message family, Metadata
// fills its template (field name, offending value, bounds) and Message is
// the English text written to logs.
type Error struct {
	Code     Code
	Message  string
	Metadata map[string]string
	Cause    error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same code, so the sentinels in codes.go
// work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Code == t.Code
}

// Field is the request field the error is about, empty when it concerns
// the request as a whole.
func (e *Error) Field() string {
	return e.Metadata[MetaField]
}

// Rule is the validation rule that failed, empty for plain code errors.
func (e *Error) Rule() string {
	return e.Metadata[MetaRule]
}

// New returns an error without template metadata.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithMetadata returns an error whose message template reads metadata.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{Code: code, Message: message, Metadata: metadata}
}

// Wrap is WithMetadata keeping cause in the chain. metadata may be nil.
func Wrap(code Code, message string, cause error, metadata map[string]string) *Error {
	return &Error{Code: code, Message: message, Metadata: metadata, Cause: cause}
}

// As finds the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var domainErr *Error
	if stderrors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}

// CodeOf returns the code of the *Error in err's chain, or CodeUnknown.
func CodeOf(err error) Code {
	if e, ok := As(err); ok {
		return e.Code
	}
	return CodeUnknown
}

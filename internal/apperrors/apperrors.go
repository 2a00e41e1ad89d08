package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies why an input could not be turned into an analysis
type Kind string

const (
	// NotFound means the input file does not exist
	NotFound Kind = "NOT_FOUND"
	// ParseError means the input exists but could not be read or decoded
	ParseError Kind = "PARSE_ERROR"
	// EmptyData means the input was well-formed but held zero records
	EmptyData Kind = "EMPTY_DATA"
)

// Error is an input failure with the offending path and underlying cause
type Error struct {
	Kind    Kind
	Path    string
	Message string
	Cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := string(e.Kind) + ": " + e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s %s", e.Kind, e.Message, e.Path)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an error of the given kind
func New(kind Kind, path, message string) *Error {
	return &Error{Kind: kind, Path: path, Message: message}
}

// Wrap creates an error of the given kind around cause
func Wrap(kind Kind, path, message string, cause error) *Error {
	return &Error{Kind: kind, Path: path, Message: message, Cause: cause}
}

// Is reports whether any error in err's chain is an *Error of the given kind
func Is(err error, kind Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

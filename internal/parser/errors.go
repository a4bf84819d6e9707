package parser

import (
	"errors"
	"fmt"
)

// Field names one of the three input fields of a conversion request.
type Field string

// Input fields, named by what they hold.
const (
	FieldLatitude  Field = "latitude"
	FieldLongitude Field = "longitude"
	FieldHeight    Field = "height"
	FieldX         Field = "x"
	FieldY         Field = "y"
	FieldZ         Field = "z"
)

// Kinds of parse failures. Every *ParseError matches exactly one of them with errors.Is.
var (
	ErrEmptyField   = errors.New("empty field")
	ErrNumericParse = errors.New("not a number")
	ErrOutOfRange   = errors.New("value out of range")
	ErrMalformedDMS = errors.New("malformed degrees-minutes-seconds")
)

// ParseError describes why a single input field was rejected.
type ParseError struct {
	Field  Field  // Field that failed.
	Kind   error  // One of ErrEmptyField, ErrNumericParse, ErrOutOfRange, ErrMalformedDMS.
	Input  string // Original, untrimmed field text.
	Detail string // Human readable reason, may be empty.
	Err    error  // Underlying error (e.g. from strconv), may be nil.
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("invalid %s %q: %v", e.Field, e.Input, e.Kind)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Unwrap exposes both the kind and the underlying cause to errors.Is and errors.As.
func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindName returns a stable snake_case identifier for the failure kind, used in API responses and metrics.
func (e *ParseError) KindName() string {
	switch e.Kind {
	case ErrEmptyField:
		return "empty_field"
	case ErrNumericParse:
		return "numeric_parse"
	case ErrOutOfRange:
		return "out_of_range"
	case ErrMalformedDMS:
		return "malformed_dms"
	default:
		return "unknown"
	}
}

func newParseError(field Field, kind error, input, detail string, cause error) *ParseError {
	return &ParseError{Field: field, Kind: kind, Input: input, Detail: detail, Err: cause}
}

package loader

import (
	"errors"
	"fmt"
)

// ErrorKind classifies dataset load failures
type ErrorKind int

const (
	// Unavailable means the source could not be reached: missing local
	// file, missing object, transport error, or non-200 response
	Unavailable ErrorKind = iota
	// ParseFailure means the source was reached but its content is not a
	// well-formed CSV matching the expected schema. Truncated bodies land
	// here too.
	ParseFailure
)

// String returns the string representation of the error kind
func (k ErrorKind) String() string {
	switch k {
	case Unavailable:
		return "unavailable"
	case ParseFailure:
		return "parse failure"
	default:
		return "unknown"
	}
}

// LoadError is a classified dataset load failure
type LoadError struct {
	Kind   ErrorKind
	Source string
	Err    error
}

// Error implements the error interface
func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %s: %v", e.Source, e.Kind, e.Err)
}

// Unwrap returns the underlying cause
func (e *LoadError) Unwrap() error {
	return e.Err
}

func unavailable(source string, err error) *LoadError {
	return &LoadError{Kind: Unavailable, Source: source, Err: err}
}

func parseFailure(source string, err error) *LoadError {
	return &LoadError{Kind: ParseFailure, Source: source, Err: err}
}

// IsUnavailable reports whether err is a LoadError of kind Unavailable
func IsUnavailable(err error) bool {
	var le *LoadError
	return errors.As(err, &le) && le.Kind == Unavailable
}

// IsParseFailure reports whether err is a LoadError of kind ParseFailure
func IsParseFailure(err error) bool {
	var le *LoadError
	return errors.As(err, &le) && le.Kind == ParseFailure
}

package config

import (
	"errors"
	"fmt"
)

// Exported error categories returned by this package. They form a closed
// taxonomy; callers detect error classes with errors.Is and recover richer
// context with errors.As on the struct errors below.
var (
	// ErrSourceNotFound indicates a required configuration source (or a file
	// referenced through leaf inclusion) does not exist.
	ErrSourceNotFound = errors.New("configuration source not found")

	// ErrParse indicates a source contained malformed text, including a
	// malformed interpolation token inside a string value.
	ErrParse = errors.New("configuration parse error")

	// ErrInterpolation indicates a referenced environment variable is
	// undefined and the token carried no default clause.
	ErrInterpolation = errors.New("environment variable interpolation failed")

	// ErrKeyNotFound indicates a section key is absent from the merged tree.
	// Only GetValidated surfaces it; the lenient accessors treat absence as
	// "not configured".
	ErrKeyNotFound = errors.New("configuration key not found")

	// ErrDeserialize indicates a section subtree does not match the shape of
	// the target type.
	ErrDeserialize = errors.New("configuration deserialize error")

	// ErrValidation indicates a successfully decoded section was rejected by
	// its validator.
	ErrValidation = errors.New("configuration validation failed")
)

// InterpolationError reports an undefined environment variable encountered
// while interpolating a string leaf. Name is the variable, Path the
// dot-separated location of the leaf inside its source tree.
type InterpolationError struct {
	Name string
	Path string
}

func (e *InterpolationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("environment variable %q not found", e.Name)
	}
	return fmt.Sprintf("environment variable %q not found (at %s)", e.Name, e.Path)
}

func (e *InterpolationError) Unwrap() error { return ErrInterpolation }

// ParseError reports malformed source text. Source identifies the origin
// (file path or "inline"), Err carries the underlying parser diagnostic.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse configuration source %q: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Err} }

// SourceError reports a failure loading a named origin, wrapping the
// category sentinel so errors.Is keeps working through the added context.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("configuration source %q: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

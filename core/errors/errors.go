// Package errors provides the error taxonomy shared by the extraction engine.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrInvalidInput indicates a missing or unusable source locator
	ErrInvalidInput = errors.New("invalid input")
	// ErrMalformedTag indicates an element name without namespace qualification
	ErrMalformedTag = errors.New("malformed tag")
	// ErrJoinMismatch indicates a token without a matching transcription
	ErrJoinMismatch = errors.New("join mismatch")
)

// InvalidInputError is returned by every entry point when the source
// locator is empty or unusable. It is the only document-level failure.
type InvalidInputError struct {
	Field   string // Input that failed (e.g., "path")
	Value   string // Offending value, may be empty
	Message string // Human-readable reason
	Err     error  // Underlying error, if any
}

func (e *InvalidInputError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid input: %s", e.Message)
}

func (e *InvalidInputError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// MalformedTagError reports an element whose qualified name carries no
// namespace. Scanners log it and skip the element.
type MalformedTagError struct {
	Name   string // Raw element name as read
	Line   int    // 1-based input line, 0 if unknown
	Column int    // 1-based input column, 0 if unknown
}

func (e *MalformedTagError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed tag %q at %d:%d: no namespace", e.Name, e.Line, e.Column)
	}
	return fmt.Sprintf("malformed tag %q: no namespace", e.Name)
}

func (e *MalformedTagError) Unwrap() error {
	return ErrMalformedTag
}

// JoinMismatchError describes a token identifier that could not be joined
// with a transcription. It is never returned to callers.
type JoinMismatchError struct {
	TokenID string
	Reason  string
}

func (e *JoinMismatchError) Error() string {
	return fmt.Sprintf("token %s: %s", e.TokenID, e.Reason)
}

func (e *JoinMismatchError) Unwrap() error {
	return ErrJoinMismatch
}

// IOError represents an I/O operation error with context
type IOError struct {
	Operation string // Operation being performed (e.g., "open", "read")
	Path      string // File path involved
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ParseError represents a well-formedness failure of the XML stream.
// Results accumulated before the failure are kept by the caller.
type ParseError struct {
	Format  string // Format being parsed (e.g., "TEI")
	Path    string // File path, if applicable
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to parse %s at %s: %s", e.Format, e.Path, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// NewInvalidInput creates an InvalidInputError
func NewInvalidInput(field, value, message string) *InvalidInputError {
	return &InvalidInputError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// NewMalformedTag creates a MalformedTagError
func NewMalformedTag(name string, line, column int) *MalformedTagError {
	return &MalformedTagError{
		Name:   name,
		Line:   line,
		Column: column,
	}
}

// NewIO creates an IOError
func NewIO(operation, path string, err error) *IOError {
	return &IOError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// NewParse creates a ParseError wrapping err
func NewParse(format, path string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		Path:    path,
		Message: err.Error(),
		Err:     err,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

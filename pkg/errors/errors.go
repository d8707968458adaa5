// Package errors provides custom error types for the contactmerge system.
// These errors let callers tell recoverable row-level failures apart from
// fatal file-level ones with errors.Is and errors.As.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Common sentinel errors for the contactmerge system
var (
	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidRecord indicates that a row does not describe a contact.
	// Rows failing with this error are logged and skipped, never fatal.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrHeaderNotFound indicates that no header row was found in a sheet.
	// It is a negative result, not a failure of the run.
	ErrHeaderNotFound = errors.New("header not found")
)

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// InvalidRecordError is returned by row normalization when a row cannot
// become a contact: it has neither email nor name, or its name is a
// configured sentinel label.
type InvalidRecordError struct {
	Sheet  string
	Row    int // 1-based worksheet row number, 0 when unknown
	Reason string
}

// Error implements the error interface
func (e *InvalidRecordError) Error() string {
	switch {
	case e.Sheet != "" && e.Row > 0:
		return fmt.Sprintf("invalid record at %s row %d: %s", e.Sheet, e.Row, e.Reason)
	case e.Sheet != "":
		return fmt.Sprintf("invalid record in %s: %s", e.Sheet, e.Reason)
	default:
		return fmt.Sprintf("invalid record: %s", e.Reason)
	}
}

// Is implements errors.Is support
func (e *InvalidRecordError) Is(target error) bool {
	return target == ErrInvalidRecord
}

// NewInvalidRecordError creates a new InvalidRecordError
func NewInvalidRecordError(sheet string, row int, reason string) *InvalidRecordError {
	return &InvalidRecordError{Sheet: sheet, Row: row, Reason: reason}
}

// HeaderError reports that a sheet has no row carrying every required label.
type HeaderError struct {
	Sheet   string
	Missing []string
}

// Error implements the error interface
func (e *HeaderError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("header not found in sheet %s (missing labels: %s)", e.Sheet, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("header not found in sheet %s", e.Sheet)
}

// Is implements errors.Is support
func (e *HeaderError) Is(target error) bool {
	return target == ErrHeaderNotFound
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "yaml", "csv", "xlsx"
	File    string
	Line    int
	Column  int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %s:%d:%d: %s", e.Format, e.File, e.Line, e.Column, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations.
// Reading the input workbook and writing the output workbook both fail
// with an IOError, which aborts the run.
type IOError struct {
	Operation string // "read", "write", "create", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsInvalidRecord checks if an error marks a row that should be skipped
func IsInvalidRecord(err error) bool {
	return errors.Is(err, ErrInvalidRecord)
}

// IsHeaderNotFound checks if an error is a missing header signal
func IsHeaderNotFound(err error) bool {
	return errors.Is(err, ErrHeaderNotFound)
}

// IsIOError checks if an error is a file-level IO failure
func IsIOError(err error) bool {
	var ioErr *IOError
	return errors.As(err, &ioErr)
}

// IsParseError checks if an error is a ParseError
func IsParseError(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

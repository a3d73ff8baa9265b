// Package apperrors provides the error type used across the console. It implements
// the standard error interface while adding error chaining, HTTP status code
// management, and structured field-level validation reporting.
package apperrors

import (
	"bytes"
	"strings"
)

// Error defines the interface for console errors. It extends the standard error
// interface with methods for error wrapping and status code management. All
// methods return Error to support method chaining.
type Error interface {
	error
	Unwrap() error // support for errors.Is / errors.As

	New(msg string) Error                  // creates a new error using current as template
	Msg(msg string) Error                  // creates a new error with message and wraps original
	MsgErr(msg string, err ...error) Error // creates error with message and wraps extra errors
	Err(err ...error) Error                // attaches additional errors to current error
	SetExpandError(bool) Error             // controls whether ErrorAll expands wrapped errors
	SetStatusCode(int) Error               // sets HTTP status code for the error
	StatusCode() int                       // returns the current status code
	ErrorAll() string                      // returns full message including wrapped errors
	UnwrapAll() []error                    // returns all wrapped errors
}

// ValidationError reports a single field that failed local validation.
type ValidationError struct {
	Field  string // the field that caused the validation error
	Value  any    // the value that caused the validation error
	ErrStr string // the error message
}

// Error allows ValidationError to satisfy the error interface.
func (ve ValidationError) Error() string {
	if len(ve.Field) > 0 {
		return ve.Field + ": " + ve.ErrStr
	}
	return ve.ErrStr
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error allows ValidationErrors to satisfy the error interface.
func (ves ValidationErrors) Error() string {
	buff := bytes.NewBufferString("")
	for i := 0; i < len(ves); i++ {
		buff.WriteString(ves[i].Error())
		buff.WriteString("; ")
	}
	return strings.TrimSpace(buff.String())
}

// Fields returns the names of all fields that failed validation, in order.
func (ves ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(ves))
	for _, ve := range ves {
		fields = append(fields, ve.Field)
	}
	return fields
}

// FieldsOf extracts the offending field names from err if it carries a
// ValidationErrors anywhere in its chain. Returns nil otherwise.
func FieldsOf(err error) []string {
	appErr, ok := err.(Error)
	if !ok {
		return nil
	}
	for _, wrapped := range appErr.UnwrapAll() {
		if ves, ok := wrapped.(ValidationErrors); ok {
			return ves.Fields()
		}
	}
	return nil
}

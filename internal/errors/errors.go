// Package errors provides structured error types and exit codes for the fuzzy CLI.
package errors

import (
	"fmt"
)

// Exit codes returned by the CLI.
const (
	ExitSuccess      = 0 // Success
	ExitRuntimeError = 1 // Runtime error (invalid operands, unreadable files, etc.)
	ExitConfigError  = 2 // Configuration or usage error
	ExitMismatch     = 3 // Values or documents compared as different
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindUsage
	KindValidation
	KindMismatch
)

// FuzzyError is the base error type of the CLI.
type FuzzyError struct {
	Kind    ErrorKind
	Message string
	Command string // Command name if applicable
	Cause   error  // Underlying error
}

func (e *FuzzyError) Error() string {
	if e.Command != "" {
		return fmt.Sprintf("%s: %s", e.Command, e.Message)
	}
	return e.Message
}

func (e *FuzzyError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *FuzzyError) ExitCode() int {
	switch e.Kind {
	case KindConfig, KindUsage, KindValidation:
		return ExitConfigError
	case KindMismatch:
		return ExitMismatch
	default:
		return ExitRuntimeError
	}
}

// New creates a new runtime error.
func New(message string) *FuzzyError {
	return &FuzzyError{
		Kind:    KindRuntime,
		Message: message,
	}
}

// Newf creates a new runtime error with formatting.
func Newf(format string, args ...interface{}) *FuzzyError {
	return New(fmt.Sprintf(format, args...))
}

// Config creates a new configuration error.
func Config(message string) *FuzzyError {
	return &FuzzyError{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...interface{}) *FuzzyError {
	return Config(fmt.Sprintf(format, args...))
}

// Usagef creates a usage error for a command.
func Usagef(command, format string, args ...interface{}) *FuzzyError {
	return &FuzzyError{
		Kind:    KindUsage,
		Command: command,
		Message: fmt.Sprintf(format, args...),
	}
}

// Mismatch creates an error reporting that compared values differ.
func Mismatch(command, message string) *FuzzyError {
	return &FuzzyError{
		Kind:    KindMismatch,
		Command: command,
		Message: message,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *FuzzyError {
	return &FuzzyError{
		Kind:    KindRuntime,
		Message: fmt.Sprintf("%s: %v", message, err),
		Cause:   err,
	}
}

// WrapConfig wraps a configuration loading error with additional context.
func WrapConfig(err error, message string) *FuzzyError {
	return &FuzzyError{
		Kind:    KindConfig,
		Message: fmt.Sprintf("%s: %v", message, err),
		Cause:   err,
	}
}

// Validation wraps a configuration validation error.
func Validation(err error) *FuzzyError {
	return &FuzzyError{
		Kind:    KindValidation,
		Message: err.Error(),
		Cause:   err,
	}
}

// CommandError creates a runtime error for a specific command.
func CommandError(command string, err error) *FuzzyError {
	return &FuzzyError{
		Kind:    KindRuntime,
		Command: command,
		Message: err.Error(),
		Cause:   err,
	}
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if fe, ok := err.(*FuzzyError); ok {
		return fe.ExitCode()
	}
	return ExitRuntimeError
}

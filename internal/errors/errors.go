// Package errors provides sentinel errors and custom error types for the boxup application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrMissingConfiguration indicates that neither a configuration path nor
	// inline configuration was supplied
	ErrMissingConfiguration = errors.New("no configuration supplied")

	// ErrInvalidInput indicates that a configuration source is neither a
	// well-formed absolute URI nor an existing file
	ErrInvalidInput = errors.New("invalid configuration source")

	// ErrUnsupportedPlatform indicates that the OS does not meet the minimum
	// requirements for the requested operation
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrInsufficientSpace indicates that the disk arithmetic violated a
	// safety floor
	ErrInsufficientSpace = errors.New("insufficient disk space")

	// ErrTimeout indicates that a bounded wait expired
	ErrTimeout = errors.New("timed out")

	// ErrCanceled indicates that the operator declined a confirmation prompt
	ErrCanceled = errors.New("canceled")
)

// InvalidInputError reports a configuration source that could not be
// classified as a URI or an existing file
type InvalidInputError struct {
	Source string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("configuration source %q is neither an absolute URI nor an existing file", e.Source)
}

// Is returns true if the target error is ErrInvalidInput
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewInvalidInputError creates a new InvalidInputError
func NewInvalidInputError(source string) *InvalidInputError {
	return &InvalidInputError{Source: source}
}

// UnsupportedPlatformError reports an OS build below the supported minimum
type UnsupportedPlatformError struct {
	Build    int
	Required int
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("OS build %d does not support Dev Drive (requires build %d or later)", e.Build, e.Required)
}

// Is returns true if the target error is ErrUnsupportedPlatform
func (e *UnsupportedPlatformError) Is(target error) bool {
	return target == ErrUnsupportedPlatform
}

// NewUnsupportedPlatformError creates a new UnsupportedPlatformError
func NewUnsupportedPlatformError(build, required int) *UnsupportedPlatformError {
	return &UnsupportedPlatformError{Build: build, Required: required}
}

// InsufficientSpaceError reports a volume size computation that violated one
// of the safety floors
type InsufficientSpaceError struct {
	SystemGB  int
	ReserveGB int
	TargetGB  int
	Reason    string
}

func (e *InsufficientSpaceError) Error() string {
	return fmt.Sprintf("cannot carve a %d GB volume out of a %d GB system volume (reserve %d GB): %s",
		e.TargetGB, e.SystemGB, e.ReserveGB, e.Reason)
}

// Is returns true if the target error is ErrInsufficientSpace
func (e *InsufficientSpaceError) Is(target error) bool {
	return target == ErrInsufficientSpace
}

// TimeoutError reports a bounded wait that expired before the awaited
// condition became true
type TimeoutError struct {
	Operation string
	Waited    string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s did not complete within %s", e.Operation, e.Waited)
}

// Is returns true if the target error is ErrTimeout
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// CommandError represents an error from an external command execution
type CommandError struct {
	Command  string
	Args     []string
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.ExitCode != 0 {
		msg += fmt.Sprintf(" (exit %d)", e.ExitCode)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a new CommandError
func NewCommandError(command string, args []string, exitCode int, stdout, stderr string, err error) *CommandError {
	return &CommandError{
		Command:  command,
		Args:     args,
		ExitCode: exitCode,
		Stdout:   stdout,
		Stderr:   stderr,
		Err:      err,
	}
}

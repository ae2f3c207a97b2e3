package errors

import (
	"fmt"
)

// LaunchError indicates an external process could not be started at all.
type LaunchError struct {
	Command string
	Err     error
}

// NewLaunchError constructs a LaunchError for the given command path.
func NewLaunchError(command string, err error) error {
	return &LaunchError{Command: command, Err: err}
}

func (e *LaunchError) Error() string {
	if e == nil {
		return ""
	}
	if e.Command != "" {
		return fmt.Sprintf("failed to launch %s: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("failed to launch process: %v", e.Err)
}

// Unwrap exposes the underlying error.
func (e *LaunchError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// StepError represents a runtime failure inside a pipeline step. Fatal marks
// faults that abort the remaining pipeline.
type StepError struct {
	Step  string
	Fatal bool
	Err   error
}

// NewStepError constructs a non-fatal StepError.
func NewStepError(step string, err error) error {
	return &StepError{Step: step, Err: err}
}

// NewFatalStepError constructs a StepError that aborts the run.
func NewFatalStepError(step string, err error) error {
	return &StepError{Step: step, Fatal: true, Err: err}
}

func (e *StepError) Error() string {
	if e == nil {
		return ""
	}
	if e.Step != "" {
		return fmt.Sprintf("step %s failed: %v", e.Step, e.Err)
	}
	return fmt.Sprintf("step failed: %v", e.Err)
}

// Unwrap exposes the root error.
func (e *StepError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// InstallError aggregates the outcome of a failed package installation.
type InstallError struct {
	Requested int
	Installed int
	Failed    []string
	Err       error
}

// NewInstallError constructs an InstallError with install counts.
func NewInstallError(requested, installed int, failed []string, err error) error {
	return &InstallError{Requested: requested, Installed: installed, Failed: failed, Err: err}
}

func (e *InstallError) Error() string {
	if e == nil {
		return ""
	}
	if e.Requested > 0 {
		return fmt.Sprintf("installed %d/%d packages: %v", e.Installed, e.Requested, e.Err)
	}
	return fmt.Sprintf("installation failed: %v", e.Err)
}

// Unwrap exposes the underlying error.
func (e *InstallError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError reports a rejected package specifier or project name.
type ValidationError struct {
	Input   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(input, message string, err error) error {
	return &ValidationError{Input: input, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Input != "" {
		return fmt.Sprintf("validation error: %q: %s", e.Input, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ParseError represents a settings file parsing failure.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

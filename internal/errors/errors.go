package errors

import (
	"errors"
	"fmt"
)

// Exit codes for homeplay
const (
	ExitSuccess          = 0
	ExitGeneralError     = 1
	ExitInvalidReference = 2
	ExitProvisioning     = 3
	ExitEnvironment      = 4
	ExitNoPriorLaunch    = 5
	ExitMissingOption    = 6
	ExitConfigNotFound   = 7
)

// HomeplayError is the base error type for homeplay
type HomeplayError struct {
	Code    int
	Message string
	Cause   error
}

func (e *HomeplayError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *HomeplayError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *HomeplayError) ExitCode() int {
	return e.Code
}

// New creates a new HomeplayError
func New(code int, message string) *HomeplayError {
	return &HomeplayError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a HomeplayError
func Wrap(code int, message string, cause error) *HomeplayError {
	return &HomeplayError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// InvalidReference returns an error for input that is neither a known
// sandbox name nor a recognizable version-control reference.
func InvalidReference(input string) *HomeplayError {
	return New(ExitInvalidReference, fmt.Sprintf("not a sandbox name or repository reference: %s", input))
}

// ProvisioningFailed returns an error for a failed clone or directory setup.
// The sandbox directory has already been rolled back when this is returned.
func ProvisioningFailed(name string, cause error) *HomeplayError {
	return Wrap(ExitProvisioning, fmt.Sprintf("failed to provision sandbox %s", name), cause)
}

// EnvironmentUnavailable returns an error for a launch attempted outside a
// graphical session.
func EnvironmentUnavailable() *HomeplayError {
	return New(ExitEnvironment, "no graphical session available to launch into")
}

// NoPriorLaunch returns an error for operations that need a recorded launch.
func NoPriorLaunch() *HomeplayError {
	return New(ExitNoPriorLaunch, "no sandbox has been launched yet")
}

// MissingRequiredOption returns an error for a provisioning call without a
// repository reference.
func MissingRequiredOption(option string) *HomeplayError {
	return New(ExitMissingOption, fmt.Sprintf("required option missing: %s", option))
}

// NamedConfigNotFound returns an error for an unknown suggested configuration.
func NamedConfigNotFound(name string) *HomeplayError {
	return New(ExitConfigNotFound, fmt.Sprintf("no configuration named %s", name))
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *HomeplayError {
	return New(ExitGeneralError, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var hpErr *HomeplayError
	if errors.As(err, &hpErr) {
		return hpErr.ExitCode()
	}
	return ExitGeneralError
}

// IsKind reports whether err carries the given exit code anywhere in its chain.
func IsKind(err error, code int) bool {
	var hpErr *HomeplayError
	if errors.As(err, &hpErr) {
		return hpErr.Code == code
	}
	return false
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}

package model

import "fmt"

// ExitCode defines the process exit codes of the webdemo-index binaries.
// Scripts and CI jobs can use them to tell a missing input tree apart from
// a malformed one.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitNotFound indicates an input directory (the environment
	// directory, the policy root, or one of its levels) does not exist.
	ExitNotFound ExitCode = 2

	// ExitParseError indicates a seed directory name does not end with
	// the "_s<digits>" suffix.
	ExitParseError ExitCode = 3

	// ExitIOError indicates a filesystem read or write failed for a
	// reason other than a missing directory (permissions, a name file
	// that is a directory, a missing output directory, ...).
	ExitIOError ExitCode = 4

	// ExitConfigError indicates the configuration file or a flag value
	// is invalid.
	ExitConfigError ExitCode = 5
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

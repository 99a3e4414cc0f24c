package cli

import (
	"fmt"
	"strings"
)

// CLIError represents a user-friendly error with context and suggestions.
type CLIError struct {
	Message    string
	Suggestion string
	Cause      error
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	if e.Suggestion != "" {
		sb.WriteString("\n\nSuggestion: ")
		sb.WriteString(e.Suggestion)
	}
	return sb.String()
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *CLIError) Unwrap() error {
	return e.Cause
}

// NewCLIError creates a new CLIError with a message and suggestion.
func NewCLIError(message, suggestion string) *CLIError {
	return &CLIError{
		Message:    message,
		Suggestion: suggestion,
	}
}

// WrapError wraps an existing error with additional context.
func WrapError(cause error, message, suggestion string) *CLIError {
	return &CLIError{
		Message:    message,
		Suggestion: suggestion,
		Cause:      cause,
	}
}

// =============================================================================
// Configuration Errors
// =============================================================================

// ErrConfigInvalid returns an error for an unreadable or invalid configuration.
func ErrConfigInvalid(cause error) *CLIError {
	return &CLIError{
		Message:    "Configuration is invalid",
		Suggestion: "Check .hexcount/config.yaml and HEXCOUNT_* environment variables, or run 'hxc config init' in a fresh directory to see the defaults",
		Cause:      cause,
	}
}

// ErrConfigExists returns an error when init would overwrite a config file.
func ErrConfigExists(path string) *CLIError {
	return &CLIError{
		Message:    fmt.Sprintf("Configuration already exists at %s", path),
		Suggestion: "Edit the existing file, or remove it first to regenerate the defaults",
	}
}

// =============================================================================
// Input Errors
// =============================================================================

// ErrInputNotFound returns an error for a file that cannot be opened.
func ErrInputNotFound(path string, cause error) *CLIError {
	return &CLIError{
		Message:    fmt.Sprintf("Cannot read %s", path),
		Suggestion: "Check the path, or pass '-' to read from stdin",
		Cause:      cause,
	}
}

// ErrConflictingInput returns an error when --text is combined with a file.
func ErrConflictingInput() *CLIError {
	return &CLIError{
		Message:    "Both --text and a file were given",
		Suggestion: "Use either 'hxc count FILE' or 'hxc count --text \"...\"', not both",
	}
}

// ErrInvalidRange returns an error for a malformed --lines or --bytes value.
func ErrInvalidRange(flag string, cause error) *CLIError {
	return &CLIError{
		Message:    fmt.Sprintf("Invalid --%s value", flag),
		Suggestion: "Ranges are START:END, e.g. --lines 3:10, --lines 7 or --bytes 0:128. Either side may be omitted",
		Cause:      cause,
	}
}

// =============================================================================
// Operation Errors
// =============================================================================

// ErrScanFailed returns an error when a scan cannot complete.
func ErrScanFailed(cause error) *CLIError {
	return &CLIError{
		Message:    "Scan failed",
		Suggestion: "Check that the path exists and is readable. Use --verbose to see which file failed",
		Cause:      cause,
	}
}

// ErrWatchFailed returns an error when a file cannot be watched.
func ErrWatchFailed(cause error) *CLIError {
	return &CLIError{
		Message:    "Cannot watch file",
		Suggestion: "The file's directory must exist. The file itself may be created later",
		Cause:      cause,
	}
}

// ErrServeFailed returns an error when the HTTP service stops unexpectedly.
func ErrServeFailed(cause error) *CLIError {
	return &CLIError{
		Message:    "HTTP service failed",
		Suggestion: "Check if the port is already in use, or choose another with HEXCOUNT_SERVER_PORT",
		Cause:      cause,
	}
}

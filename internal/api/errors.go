package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is the JSON body of every failed request.
// It says what went wrong and, where possible, how to fix it.
type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
	Details    string `json:"details,omitempty"`
}

// Error implements the error interface for APIError.
func (e APIError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s: %s. %s", e.Code, e.Message, e.Suggestion)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WithDetails returns a copy of the error with additional details.
func (e APIError) WithDetails(details string) APIError {
	e.Details = details
	return e
}

// =============================================================================
// Request Errors
// =============================================================================

var (
	// ErrInvalidJSON is returned when the request body contains invalid JSON.
	ErrInvalidJSON = APIError{
		Code:       "INVALID_JSON",
		Message:    "Request body contains invalid JSON",
		Suggestion: "Check your JSON syntax and ensure all strings are properly quoted",
	}

	// ErrTextTooLarge is returned when the text or content exceeds server.max_text_bytes.
	ErrTextTooLarge = APIError{
		Code:       "TEXT_TOO_LARGE",
		Message:    "Text exceeds the maximum allowed size",
		Suggestion: "Send a smaller selection, or raise server.max_text_bytes in .hexcount/config.yaml",
	}

	// ErrFilenameRequired is returned when a scan request has no filename.
	ErrFilenameRequired = APIError{
		Code:       "FILENAME_REQUIRED",
		Message:    "Scan request needs a filename",
		Suggestion: "Set \"filename\" so the language can be detected from its extension, e.g. \"table.c\"",
	}
)

// =============================================================================
// Processing Errors
// =============================================================================

var (
	// ErrScanFailed is returned when the content could not be parsed.
	ErrScanFailed = APIError{
		Code:       "SCAN_FAILED",
		Message:    "Failed to scan content for literals",
		Suggestion: "Check that the filename extension matches the content's language",
	}
)

// =============================================================================
// HTTP Response Helpers
// =============================================================================

// WriteError writes an APIError as a JSON response with the appropriate status code.
func WriteError(w http.ResponseWriter, statusCode int, err APIError) {
	writeJSON(w, statusCode, err)
}

// WriteBadRequest writes a 400 Bad Request response with the given error.
func WriteBadRequest(w http.ResponseWriter, err APIError) {
	WriteError(w, http.StatusBadRequest, err)
}

// WriteTooLarge writes a 413 Request Entity Too Large response with the given error.
func WriteTooLarge(w http.ResponseWriter, err APIError) {
	WriteError(w, http.StatusRequestEntityTooLarge, err)
}

// WriteInternalError writes a 500 Internal Server Error response with the given error.
func WriteInternalError(w http.ResponseWriter, err APIError) {
	WriteError(w, http.StatusInternalServerError, err)
}

// NewError creates a custom APIError with the given code, message, and suggestion.
func NewError(code, message, suggestion string) APIError {
	return APIError{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("configuration validation failed:\n")
	for _, err := range e {
		sb.WriteString("  - ")
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}
	return sb.String()
}

// HasErrors returns true if there are any validation errors
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// validLogLevels defines the allowed log level values
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// maxHexWidth bounds the zero padding of the hex display
const maxHexWidth = 16

// Validate checks the configuration for errors and returns all validation errors found
func Validate(cfg *Config) ValidationErrors {
	var errors ValidationErrors

	if cfg.Version < 1 {
		errors = append(errors, ValidationError{
			Field:   "version",
			Message: "must be at least 1",
		})
	}

	// Display validation
	if cfg.Display.HexWidth < 1 || cfg.Display.HexWidth > maxHexWidth {
		errors = append(errors, ValidationError{
			Field:   "display.hex_width",
			Message: fmt.Sprintf("must be between 1 and %d", maxHexWidth),
		})
	}

	// Watcher validation
	if cfg.Watcher.DebounceMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "watcher.debounce_ms",
			Message: "must be non-negative",
		})
	}
	if cfg.Watcher.MaxFileSize <= 0 {
		errors = append(errors, ValidationError{
			Field:   "watcher.max_file_size",
			Message: "must be positive",
		})
	}

	// Server validation
	if cfg.Server.Host == "" {
		errors = append(errors, ValidationError{
			Field:   "server.host",
			Message: "must not be empty",
		})
	}
	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		errors = append(errors, ValidationError{
			Field:   "server.port",
			Message: "must be between 0 and 65535",
		})
	}
	if !validLogLevels[cfg.Server.LogLevel] {
		errors = append(errors, ValidationError{
			Field:   "server.log_level",
			Message: fmt.Sprintf("invalid log level '%s'; valid values are: debug, info, warn, error", cfg.Server.LogLevel),
		})
	}
	if cfg.Server.MaxTextBytes < 1 {
		errors = append(errors, ValidationError{
			Field:   "server.max_text_bytes",
			Message: "must be at least 1",
		})
	}
	if cfg.Server.TimeoutMs < 1 {
		errors = append(errors, ValidationError{
			Field:   "server.timeout_ms",
			Message: "must be at least 1",
		})
	}

	// Scan validation
	if len(cfg.Scan.IncludePatterns) == 0 {
		errors = append(errors, ValidationError{
			Field:   "scan.include_patterns",
			Message: "must specify at least one include pattern",
		})
	}
	for i, p := range cfg.Scan.IncludePatterns {
		if _, err := filepath.Match(strings.TrimPrefix(p, "**/"), ""); err != nil {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("scan.include_patterns[%d]", i),
				Message: fmt.Sprintf("invalid glob '%s': %v", p, err),
			})
		}
	}
	if cfg.Scan.MinBytes < 0 {
		errors = append(errors, ValidationError{
			Field:   "scan.min_bytes",
			Message: "must be non-negative",
		})
	}
	if cfg.Scan.Concurrency < 1 {
		errors = append(errors, ValidationError{
			Field:   "scan.concurrency",
			Message: "must be at least 1",
		})
	}
	if cfg.Scan.MaxFileSize <= 0 {
		errors = append(errors, ValidationError{
			Field:   "scan.max_file_size",
			Message: "must be positive",
		})
	}

	return errors
}

// ValidateOrError is a convenience function that returns an error if validation fails
func ValidateOrError(cfg *Config) error {
	errors := Validate(cfg)
	if errors.HasErrors() {
		return errors
	}
	return nil
}

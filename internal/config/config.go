// Package config provides configuration loading, validation, and path resolution.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete Hexcount configuration
type Config struct {
	Version int           `yaml:"version" json:"version" mapstructure:"version"`
	Display DisplayConfig `yaml:"display" json:"display" mapstructure:"display"`
	Watcher WatcherConfig `yaml:"watcher" json:"watcher" mapstructure:"watcher"`
	Server  ServerConfig  `yaml:"server" json:"server" mapstructure:"server"`
	Scan    ScanConfig    `yaml:"scan" json:"scan" mapstructure:"scan"`
}

// DisplayConfig controls how a count is rendered, e.g. "Bytes: 3 (0x03)"
type DisplayConfig struct {
	Label     string `yaml:"label" json:"label" mapstructure:"label"`
	HexWidth  int    `yaml:"hex_width" json:"hex_width" mapstructure:"hex_width"`
	Uppercase bool   `yaml:"uppercase" json:"uppercase" mapstructure:"uppercase"`
}

// WatcherConfig contains file watcher settings
type WatcherConfig struct {
	DebounceMs  int   `yaml:"debounce_ms" json:"debounce_ms" mapstructure:"debounce_ms"`
	MaxFileSize int64 `yaml:"max_file_size" json:"max_file_size" mapstructure:"max_file_size"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host         string `yaml:"host" json:"host" mapstructure:"host"`
	Port         int    `yaml:"port" json:"port" mapstructure:"port"`
	LogLevel     string `yaml:"log_level" json:"log_level" mapstructure:"log_level"`
	MaxTextBytes int    `yaml:"max_text_bytes" json:"max_text_bytes" mapstructure:"max_text_bytes"`
	TimeoutMs    int    `yaml:"timeout_ms" json:"timeout_ms" mapstructure:"timeout_ms"`
}

// ScanConfig contains literal scanner settings
type ScanConfig struct {
	IncludePatterns []string `yaml:"include_patterns" json:"include_patterns" mapstructure:"include_patterns"`
	ExcludePatterns []string `yaml:"exclude_patterns" json:"exclude_patterns" mapstructure:"exclude_patterns"`
	MinBytes        int      `yaml:"min_bytes" json:"min_bytes" mapstructure:"min_bytes"`
	Concurrency     int      `yaml:"concurrency" json:"concurrency" mapstructure:"concurrency"`
	MaxFileSize     int64    `yaml:"max_file_size" json:"max_file_size" mapstructure:"max_file_size"`
}

// DebounceDuration returns the debounce duration as time.Duration
func (w WatcherConfig) DebounceDuration() time.Duration {
	return time.Duration(w.DebounceMs) * time.Millisecond
}

// Address returns the host:port address the server listens on.
// Port 0 lets the system pick a free port.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Timeout returns the per-request timeout as time.Duration
func (s ServerConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutMs) * time.Millisecond
}

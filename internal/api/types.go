package api

import (
	"time"

	"github.com/hexcount-dev/hexcount/internal/config"
	"github.com/hexcount-dev/hexcount/internal/hexcount"
	"github.com/hexcount-dev/hexcount/internal/scan"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// CountRequest asks for the hex byte count of a selection.
type CountRequest struct {
	Text   string `json:"text"`
	Detail bool   `json:"detail,omitempty"`
}

// CountResponse is the count together with its status bar rendering.
// Normalized, Path and Tokens are only set when detail was requested.
type CountResponse struct {
	Count      int                `json:"count"`
	Hex        string             `json:"hex"`
	Display    string             `json:"display"`
	Visible    bool               `json:"visible"`
	Contiguous bool               `json:"contiguous"`
	Path       hexcount.CountPath `json:"path,omitempty"`
	Normalized string             `json:"normalized,omitempty"`
	Tokens     []hexcount.Token   `json:"tokens,omitempty"`
}

// ScanRequest asks for the byte-array literals in one file's content.
type ScanRequest struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// ScanResponse lists the literals found in a ScanRequest.
type ScanResponse struct {
	Filename   string         `json:"filename"`
	Language   scan.Language  `json:"language"`
	Literals   []scan.Literal `json:"literals"`
	TotalBytes int            `json:"total_bytes"`
}

// ConfigResponse represents the config endpoint response
type ConfigResponse struct {
	Config *config.Config `json:"config"`
}

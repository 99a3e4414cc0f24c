package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hexcount-dev/hexcount/internal/config"
	"github.com/hexcount-dev/hexcount/internal/hexcount"
	"github.com/hexcount-dev/hexcount/internal/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Helpers
// =============================================================================

// testLogger creates a silent logger for testing
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testConfig creates a default config for testing
func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Server.Port = 0
	cfg.Server.MaxTextBytes = 64
	return cfg
}

func postJSON(t *testing.T, handler http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

// =============================================================================
// Health Tests
// =============================================================================

func TestHealthHandler(t *testing.T) {
	h := NewHandler(testConfig(), testLogger())

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "healthy", resp.Status)
	assert.False(t, resp.Timestamp.IsZero())
}

// =============================================================================
// Count Tests
// =============================================================================

func TestCountHandler(t *testing.T) {
	testCases := []struct {
		name       string
		text       string
		count      int
		hex        string
		display    string
		visible    bool
		contiguous bool
	}{
		{"prefixed list", "0x01, 0x02, 0x03", 3, "0x03", "Bytes: 3 (0x03)", true, false},
		{"contiguous", "AABBCCDD", 4, "0x04", "Bytes: 4 (0x04)", true, true},
		{"escapes", `\x0A\x0B\x0C`, 3, "0x03", "Bytes: 3 (0x03)", true, false},
		{"commented", "0x01, /* 0x02 */ 0x03 // 0x04", 2, "0x02", "Bytes: 2 (0x02)", true, false},
		{"noise only", "hello world", 0, "0x00", "Bytes: 0 (0x00)", true, false},
		{"empty", "", 0, "0x00", "", false, false},
	}

	h := NewHandler(testConfig(), testLogger())

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, h.Count, CountRequest{Text: tc.text})
			require.Equal(t, http.StatusOK, rec.Code)

			var resp CountResponse
			decodeBody(t, rec, &resp)
			assert.Equal(t, tc.count, resp.Count)
			assert.Equal(t, tc.hex, resp.Hex)
			assert.Equal(t, tc.display, resp.Display)
			assert.Equal(t, tc.visible, resp.Visible)
			assert.Equal(t, tc.contiguous, resp.Contiguous)
			assert.Empty(t, resp.Tokens)
			assert.Empty(t, resp.Path)
		})
	}
}

func TestCountHandler_Detail(t *testing.T) {
	h := NewHandler(testConfig(), testLogger())

	rec := postJSON(t, h.Count, CountRequest{Text: "0x01,\n0x02", Detail: true})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CountResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, hexcount.PathTokens, resp.Path)
	assert.Equal(t, "0x01 0x02", resp.Normalized)
	require.Len(t, resp.Tokens, 2)
	assert.Equal(t, "01", resp.Tokens[0].Digits)
	assert.Equal(t, hexcount.Prefix0x, resp.Tokens[1].Prefix)
}

func TestCountHandler_UsesDisplayConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Display.Label = "Hex"
	cfg.Display.HexWidth = 4
	cfg.Display.Uppercase = true

	h := NewHandler(cfg, testLogger())
	rec := postJSON(t, h.Count, CountRequest{Text: strings.Repeat("AB", 26)})

	var resp CountResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "Hex: 26 (0x001A)", resp.Display)
}

func TestCountHandler_InvalidJSON(t *testing.T) {
	h := NewHandler(testConfig(), testLogger())

	req := httptest.NewRequest(http.MethodPost, "/count", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Count(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr APIError
	decodeBody(t, rec, &apiErr)
	assert.Equal(t, "INVALID_JSON", apiErr.Code)
	assert.NotEmpty(t, apiErr.Details)
}

func TestCountHandler_TextTooLarge(t *testing.T) {
	h := NewHandler(testConfig(), testLogger())

	rec := postJSON(t, h.Count, CountRequest{Text: strings.Repeat("A", 65)})
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	var apiErr APIError
	decodeBody(t, rec, &apiErr)
	assert.Equal(t, "TEXT_TOO_LARGE", apiErr.Code)
}

func TestCountHandler_BodyTooLarge(t *testing.T) {
	h := NewHandler(testConfig(), testLogger())

	body := `{"text":"` + strings.Repeat("A", 10000) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/count", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Count(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestCountHandler_AtLimit(t *testing.T) {
	h := NewHandler(testConfig(), testLogger())

	rec := postJSON(t, h.Count, CountRequest{Text: strings.Repeat("A", 64)})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CountResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, 32, resp.Count)
}

// =============================================================================
// Scan Tests
// =============================================================================

func TestScanHandler(t *testing.T) {
	h := NewHandler(testConfig(), testLogger())

	rec := postJSON(t, h.Scan, ScanRequest{
		Filename: "k.c",
		Content:  "char b[] = {0x01, 0x02, 0x03};\n",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ScanResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "k.c", resp.Filename)
	assert.Equal(t, scan.LangC, resp.Language)
	require.Len(t, resp.Literals, 1)
	assert.Equal(t, 3, resp.Literals[0].Bytes)
	assert.Equal(t, 3, resp.TotalBytes)
}

func TestScanHandler_NoLiterals(t *testing.T) {
	h := NewHandler(testConfig(), testLogger())

	rec := postJSON(t, h.Scan, ScanRequest{Filename: "empty.go", Content: ""})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"literals":[]`)
}

func TestScanHandler_MissingFilename(t *testing.T) {
	h := NewHandler(testConfig(), testLogger())

	rec := postJSON(t, h.Scan, ScanRequest{Content: "0x01"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr APIError
	decodeBody(t, rec, &apiErr)
	assert.Equal(t, "FILENAME_REQUIRED", apiErr.Code)
}

func TestScanHandler_ContentTooLarge(t *testing.T) {
	h := NewHandler(testConfig(), testLogger())

	rec := postJSON(t, h.Scan, ScanRequest{Filename: "a.txt", Content: strings.Repeat("0", 65)})
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

// =============================================================================
// Config Tests
// =============================================================================

func TestConfigHandler(t *testing.T) {
	cfg := testConfig()
	h := NewHandler(cfg, testLogger())

	rec := httptest.NewRecorder()
	h.Config(rec, httptest.NewRequest(http.MethodGet, "/config", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ConfigResponse
	decodeBody(t, rec, &resp)
	require.NotNil(t, resp.Config)
	assert.Equal(t, cfg.Display.Label, resp.Config.Display.Label)
	assert.Equal(t, cfg.Scan.IncludePatterns, resp.Config.Scan.IncludePatterns)
}

func TestNewHandler_NilLogger(t *testing.T) {
	h := NewHandler(testConfig(), nil)
	assert.NotNil(t, h.logger)
}

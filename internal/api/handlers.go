package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/hexcount-dev/hexcount/internal/config"
	"github.com/hexcount-dev/hexcount/internal/hexcount"
	"github.com/hexcount-dev/hexcount/internal/metrics"
	"github.com/hexcount-dev/hexcount/internal/scan"
	"github.com/hexcount-dev/hexcount/internal/status"
)

// jsonOverhead bounds how much larger the encoded body may be than the text
// it carries: every byte may be escaped as \uXXXX, plus the surrounding object.
const jsonOverhead = 4096

// Handler handles HTTP requests for the hexcount API
type Handler struct {
	config    *config.Config
	formatter status.Formatter
	scanner   *scan.Scanner
	logger    *slog.Logger
	startTime time.Time
}

// NewHandler creates a new Handler instance. A nil logger writes to stderr.
func NewHandler(cfg *config.Config, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return &Handler{
		config:    cfg,
		formatter: status.NewFormatter(cfg.Display),
		scanner:   scan.NewScanner(cfg.Scan, logger),
		logger:    logger,
		startTime: time.Now(),
	}
}

// =============================================================================
// Handlers
// =============================================================================

// Health handles GET /health requests
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
	}
	writeJSON(w, http.StatusOK, response)
}

// Count handles POST /count requests
func (h *Handler) Count(w http.ResponseWriter, r *http.Request) {
	var req CountRequest
	if !h.decode(w, r, &req) {
		return
	}
	if h.tooLarge(len(req.Text)) {
		WriteTooLarge(w, ErrTextTooLarge)
		return
	}

	a := hexcount.Analyze(req.Text)
	metrics.RecordCount(a)

	st := status.Hidden
	if req.Text != "" {
		st = h.formatter.ForCount(a.Count)
	}

	response := CountResponse{
		Count:      a.Count,
		Hex:        h.formatter.Hex(a.Count),
		Display:    st.Text,
		Visible:    st.Visible,
		Contiguous: a.Contiguous,
	}
	if req.Detail {
		response.Path = a.Path
		response.Normalized = a.Normalized
		response.Tokens = a.Tokens
	}

	h.logger.Debug("counted selection", "bytes", len(req.Text), "count", a.Count, "path", a.Path)
	writeJSON(w, http.StatusOK, response)
}

// Scan handles POST /scan requests
func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Filename == "" {
		WriteBadRequest(w, ErrFilenameRequired)
		return
	}
	if h.tooLarge(len(req.Content)) {
		WriteTooLarge(w, ErrTextTooLarge)
		return
	}

	literals, err := h.scanner.ScanFile(r.Context(), req.Filename, []byte(req.Content))
	if err != nil {
		h.logger.Warn("scan failed", "filename", req.Filename, "error", err)
		WriteInternalError(w, ErrScanFailed.WithDetails(err.Error()))
		return
	}
	if literals == nil {
		literals = []scan.Literal{}
	}

	total := 0
	for _, lit := range literals {
		total += lit.Bytes
	}
	metrics.RecordLiterals(len(literals))

	writeJSON(w, http.StatusOK, ScanResponse{
		Filename:   req.Filename,
		Language:   scan.DetectLanguage(req.Filename),
		Literals:   literals,
		TotalBytes: total,
	})
}

// Config handles GET /config requests
func (h *Handler) Config(w http.ResponseWriter, r *http.Request) {
	response := ConfigResponse{
		Config: h.config,
	}
	writeJSON(w, http.StatusOK, response)
}

// =============================================================================
// Helpers
// =============================================================================

// decode reads a JSON body into v, writing the error response itself when
// decoding fails.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	body := r.Body
	if limit := h.config.Server.MaxTextBytes; limit > 0 {
		body = http.MaxBytesReader(w, r.Body, int64(6*limit+jsonOverhead))
	}

	if err := json.NewDecoder(body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			WriteTooLarge(w, ErrTextTooLarge)
			return false
		}
		WriteBadRequest(w, ErrInvalidJSON.WithDetails(err.Error()))
		return false
	}
	return true
}

func (h *Handler) tooLarge(n int) bool {
	limit := h.config.Server.MaxTextBytes
	return limit > 0 && n > limit
}

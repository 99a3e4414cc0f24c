package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hexcount-dev/hexcount/internal/config"
	"github.com/hexcount-dev/hexcount/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// defaultTimeout applies when server.timeout_ms is unset.
const defaultTimeout = 30 * time.Second

// Router wraps a chi router with handler configuration
type Router struct {
	chi     chi.Router
	handler *Handler
	logger  *slog.Logger
}

// NewRouter creates a new Router with the given dependencies
func NewRouter(cfg *config.Config, logger *slog.Logger) *Router {
	handler := NewHandler(cfg, logger)

	timeout := cfg.Server.Timeout()
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	r := chi.NewRouter()

	// Apply middleware
	r.Use(recordRequests)
	r.Use(middleware.Timeout(timeout))
	r.Use(middleware.Recoverer)

	// Register routes
	r.Get("/health", handler.Health)
	r.Post("/count", handler.Count)
	r.Post("/scan", handler.Scan)
	r.Get("/config", handler.Config)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return &Router{
		chi:     r,
		handler: handler,
		logger:  handler.logger,
	}
}

// ServeHTTP implements the http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.chi.ServeHTTP(w, req)
}

// recordRequests observes every request under its route pattern, so that
// unmatched paths share one label instead of one per URL.
func recordRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		endpoint := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				endpoint = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.RecordRequest(endpoint, status, time.Since(start))
	})
}

package httphandler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ericfisherdev/personauth/internal/application"
)

// Handler is the HTTP driving adapter that serves the person REST API.
type Handler struct {
	persons *application.PersonService
	logger  *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(persons *application.PersonService, logger *slog.Logger) *Handler {
	return &Handler{
		persons: persons,
		logger:  logger,
	}
}

// MuxOptions configures the optional layers of NewServeMux.
type MuxOptions struct {
	// Auth enables HTTP basic authentication on every person route except
	// sign-up. Nil leaves the API open.
	Auth *application.AuthService

	// Metrics records request counts and latencies and serves /metrics. A
	// fresh registry is created when nil.
	Metrics *Metrics
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with request id, logging, metrics and recovery middleware.
func NewServeMux(h *Handler, logger *slog.Logger, opts MuxOptions) http.Handler {
	metrics := opts.Metrics
	if metrics == nil {
		metrics = NewMetrics()
	}

	protect := func(hf http.HandlerFunc) http.Handler {
		if opts.Auth == nil {
			return hf
		}
		return basicAuthMiddleware(opts.Auth, logger, hf)
	}

	mux := http.NewServeMux()

	mux.Handle("GET /person", protect(h.ListPersons))
	mux.Handle("GET /person/{$}", protect(h.ListPersons))
	mux.Handle("GET /person/all", protect(h.ListPersons))
	mux.Handle("GET /person/{id}", protect(h.GetPerson))
	mux.Handle("POST /person", protect(h.CreatePerson))
	mux.Handle("POST /person/{$}", protect(h.CreatePerson))
	mux.Handle("PUT /person", protect(h.UpdatePerson))
	mux.Handle("PUT /person/{$}", protect(h.UpdatePerson))
	mux.Handle("PATCH /person/{id}", protect(h.PatchPerson))
	mux.Handle("DELETE /person/{id}", protect(h.DeletePerson))

	mux.HandleFunc("POST /person/sign-up", h.SignUp)
	mux.HandleFunc("GET /health", h.Health)
	mux.Handle("GET /metrics", metrics.Handler())

	// Recovery innermost so panics are caught before metrics and logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = metricsMiddleware(metrics, wrapped)
	wrapped = loggingMiddleware(logger, wrapped)
	wrapped = requestIDMiddleware(wrapped)

	return wrapped
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

package httphandler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel/propagation"

	"github.com/ericfisherdev/personauth/internal/application"
	"github.com/ericfisherdev/personauth/internal/logging"
)

// RequestIDHeader carries the correlation id in both directions.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLen bounds caller-supplied ids before they reach the logs.
const maxRequestIDLen = 128

const authRealm = `Basic realm="personauth", charset="UTF-8"`

// statusWriter wraps http.ResponseWriter to capture the response status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

// WriteHeader captures the status code and delegates to the embedded writer.
func (sw *statusWriter) WriteHeader(status int) {
	sw.status = status
	sw.ResponseWriter.WriteHeader(status)
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (sw *statusWriter) Unwrap() http.ResponseWriter {
	return sw.ResponseWriter
}

// requestIDMiddleware stores a request id and any W3C trace context from the
// incoming headers in the request context. A usable X-Request-ID from the
// caller is kept; otherwise a ULID is generated.
func requestIDMiddleware(next http.Handler) http.Handler {
	propagator := propagation.TraceContext{}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = ulid.Make().String()
		}

		ctx := logging.WithRequestID(r.Context(), id)
		ctx = propagator.Extract(ctx, propagation.HeaderCarrier(r.Header))

		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// loggingMiddleware logs each HTTP request with method, path, status, and duration.
func loggingMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		logger.InfoContext(r.Context(), "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", time.Since(start).Round(time.Microsecond),
		)
	})
}

// metricsMiddleware records request count and latency per matched route. The
// route label comes from the ServeMux pattern, so it is read after the mux
// has run.
func metricsMiddleware(m *Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		m.observe(r.Method, routeLabel(r.Pattern), strconv.Itoa(sw.status), time.Since(start))
	})
}

// routeLabel strips the method from a ServeMux pattern. Requests that matched
// no route share one label to keep cardinality bounded.
func routeLabel(pattern string) string {
	if pattern == "" {
		return "unmatched"
	}
	if _, path, ok := strings.Cut(pattern, " "); ok {
		return path
	}
	return pattern
}

// recoveryMiddleware recovers from panics in HTTP handlers, logs the error,
// and returns a 500 response.
func recoveryMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				logger.ErrorContext(r.Context(), "panic recovered",
					"panic", v,
					"path", r.URL.Path,
				)
				writeError(w, http.StatusInternalServerError, errTypeInternal, "internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// basicAuthMiddleware rejects requests without valid basic credentials. An
// unknown login and a wrong password produce the same 401.
func basicAuthMiddleware(auth *application.AuthService, logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		login, password, ok := r.BasicAuth()
		if !ok {
			unauthorized(w, "authentication required")
			return
		}

		principal, err := auth.Authenticate(r.Context(), login, password)
		if err != nil {
			if application.IsUserNotFound(err) {
				logger.InfoContext(r.Context(), "authentication rejected", "login", login)
				unauthorized(w, "bad credentials")
				return
			}
			logger.ErrorContext(r.Context(), "authentication failed", "login", login, "error", err)
			writeError(w, http.StatusInternalServerError, errTypeInternal, "internal server error")
			return
		}

		logger.DebugContext(r.Context(), "authenticated", "login", principal.Login)
		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", authRealm)
	writeError(w, http.StatusUnauthorized, errTypeUnauthorized, message)
}

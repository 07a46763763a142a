package v1alpha1

import (
	"context"
	"net/http"
	"runtime/debug"
	"strconv"

	"github.com/felixge/httpsnoop"
	"go.uber.org/zap"

	"github.com/KirkDiggler/pokedex-api/internal/metrics"
	"github.com/KirkDiggler/pokedex-api/internal/pkg/clock"
	"github.com/KirkDiggler/pokedex-api/internal/pkg/idgen"
)

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

const unmatchedRoute = "unmatched"

type requestIDKey struct{}

// RequestIDFromContext returns the ID assigned to the request, if any
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// MiddlewareConfig holds dependencies shared by the HTTP middleware
type MiddlewareConfig struct {
	// IDGenerator for request IDs (optional, defaults to UUIDs)
	IDGenerator idgen.Generator
	// Clock for request latency (optional)
	Clock clock.Clock
	// Logger (optional)
	Logger *zap.Logger
	// Metrics (optional)
	Metrics *metrics.Recorder
}

// Validate sets defaults for any dependency not provided
func (c *MiddlewareConfig) Validate() error {
	if c.IDGenerator == nil {
		c.IDGenerator = idgen.NewUUID("")
	}
	if c.Clock == nil {
		c.Clock = clock.New()
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return nil
}

// WithRequestID assigns every request an ID, reusing one sent by the caller
func WithRequestID(next http.Handler, gen idgen.Generator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = gen.Generate()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

// WithAccessLog writes one log line and one metric sample per request
func WithAccessLog(next http.Handler, cfg *MiddlewareConfig) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := cfg.Clock.Now()
		m := httpsnoop.CaptureMetricsFn(w, func(ww http.ResponseWriter) {
			next.ServeHTTP(ww, r)
		})

		// the mux fills in the pattern on the request it was handed; the
		// fallback and mux redirects share one label
		route := r.Pattern
		if route == "" || route == FallbackRoute {
			route = unmatchedRoute
		}
		cfg.Metrics.ObserveHTTPRequest(route, strconv.Itoa(m.Code))

		cfg.Logger.Info("HTTP request",
			zap.String("request_id", RequestIDFromContext(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("route", route),
			zap.Int("status", m.Code),
			zap.Int64("bytes", m.Written),
			zap.Duration("duration", clock.Since(cfg.Clock, start)),
		)
	})
}

// WithRecovery turns a panic in next into a generic 500
func WithRecovery(next http.Handler, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				if p == http.ErrAbortHandler {
					panic(p)
				}
				logger.Error("Handler panicked",
					zap.String("request_id", RequestIDFromContext(r.Context())),
					zap.Any("panic", p),
					zap.ByteString("stack", debug.Stack()),
				)
				writeJSON(w, http.StatusInternalServerError, &ErrorResponse{Message: internalErrorMessage})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

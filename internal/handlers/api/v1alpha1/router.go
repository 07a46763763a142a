package v1alpha1

import (
	"net/http"

	"github.com/KirkDiggler/pokedex-api/internal/errors"
	"github.com/KirkDiggler/pokedex-api/internal/metrics"
)

// MetricsRoute serves the Prometheus exposition format
const MetricsRoute = "GET /metrics"

// FallbackRoute catches every request no other route matched
const FallbackRoute = "/"

// RouterConfig holds everything the HTTP router serves
type RouterConfig struct {
	SpeciesHandler *SpeciesHandler
	// Metrics (optional); /metrics answers 404 without it
	Metrics *metrics.Recorder
	// Middleware (optional)
	Middleware *MiddlewareConfig
}

// Validate ensures all required dependencies are present
func (c *RouterConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.SpeciesHandler == nil {
		vb.RequiredField("SpeciesHandler")
	}
	if c.Middleware == nil {
		c.Middleware = &MiddlewareConfig{}
	}
	if c.Middleware.Metrics == nil {
		c.Middleware.Metrics = c.Metrics
	}
	if err := c.Middleware.Validate(); err != nil {
		return err
	}

	return vb.Build()
}

// NewRouter builds the gateway's HTTP handler
func NewRouter(cfg *RouterConfig) (http.Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid router config")
	}

	mux := http.NewServeMux()
	cfg.SpeciesHandler.Register(mux)
	mux.HandleFunc(HealthRoute, Healthz)
	mux.Handle(MetricsRoute, cfg.Metrics.Handler())
	mux.HandleFunc(FallbackRoute, cfg.SpeciesHandler.RouteNotFound)

	mw := cfg.Middleware
	var h http.Handler = mux
	h = WithRecovery(h, mw.Logger)
	h = WithAccessLog(h, mw)
	h = WithRequestID(h, mw.IDGenerator)

	return h, nil
}

// Package metrics holds the Prometheus collectors of the gateway.
//
// A nil *Recorder is valid and records nothing, so components can take one
// as an optional dependency.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pokedex"

// Lookup outcomes
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// Translation outcomes
const (
	OutcomeTranslated = "translated"
	OutcomeFallback   = "fallback"
)

// Recorder owns a private registry and the collectors registered on it
type Recorder struct {
	registry *prometheus.Registry

	lookups          *prometheus.CounterVec
	translations     *prometheus.CounterVec
	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	httpRequests     *prometheus.CounterVec
}

// New creates a Recorder with Go runtime and process collectors registered
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "species_lookups_total",
			Help:      "Species lookups by outcome.",
		}, []string{"outcome"}),
		translations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "translations_total",
			Help:      "Description translations by tone and outcome.",
		}, []string{"tone", "outcome"}),
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Requests sent to upstream APIs by status code.",
		}, []string{"upstream", "code", "method"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of upstream API requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"upstream", "method"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Inbound HTTP requests by route and status code.",
		}, []string{"route", "code"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.lookups,
		r.translations,
		r.upstreamRequests,
		r.upstreamDuration,
		r.httpRequests,
	)

	return r
}

// Registry exposes the underlying registry, mostly for tests
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Handler serves the exposition format for the registry
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// ObserveLookup counts one species lookup
func (r *Recorder) ObserveLookup(outcome string) {
	if r == nil {
		return
	}
	r.lookups.WithLabelValues(outcome).Inc()
}

// ObserveTranslation counts one translation attempt
func (r *Recorder) ObserveTranslation(tone, outcome string) {
	if r == nil {
		return
	}
	r.translations.WithLabelValues(tone, outcome).Inc()
}

// ObserveHTTPRequest counts one inbound request
func (r *Recorder) ObserveHTTPRequest(route, code string) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(route, code).Inc()
}

// InstrumentTransport wraps next so every request it sends is counted and
// timed under the given upstream label.
func (r *Recorder) InstrumentTransport(upstream string, next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	if r == nil {
		return next
	}

	labels := prometheus.Labels{"upstream": upstream}
	return promhttp.InstrumentRoundTripperCounter(
		r.upstreamRequests.MustCurryWith(labels),
		promhttp.InstrumentRoundTripperDuration(
			r.upstreamDuration.MustCurryWith(labels),
			next,
		),
	)
}

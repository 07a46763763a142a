// Package pokeapi is the location for the PokeAPI species client
package pokeapi

//go:generate mockgen -destination=mock/mock_client.go -package=pokeapimock github.com/KirkDiggler/pokedex-api/internal/clients/pokeapi Client

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/pokedex-api/internal/entities"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
)

const (
	// DefaultBaseURL is the public PokeAPI
	DefaultBaseURL = "https://pokeapi.co"
	// DefaultHTTPTimeout bounds a single species request
	DefaultHTTPTimeout = 15 * time.Second

	speciesPath = "/api/v2/pokemon-species/"

	// species payloads are a few hundred KB at most
	maxBodyBytes = 8 << 20
)

// Client defines the interface for species lookups against PokeAPI
type Client interface {
	// GetSpecies fetches and normalizes one species by name.
	// A single request is made; failures are never retried.
	GetSpecies(ctx context.Context, name string) (*entities.Species, error)
}

// Config contains configuration options for the PokeAPI client.
type Config struct {
	// BaseURL for PokeAPI (optional, defaults to https://pokeapi.co)
	BaseURL string
	// HTTPTimeout for a whole request including the body (optional, defaults to 15 seconds)
	HTTPTimeout time.Duration
	// Transport shared with other clients (optional, defaults to http.DefaultTransport)
	Transport http.RoundTripper
	// Logger (optional)
	Logger *zap.Logger
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = DefaultHTTPTimeout
	}
	if cfg.Transport == nil {
		cfg.Transport = http.DefaultTransport
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateURL("BaseURL", cfg.BaseURL, vb)
	errors.ValidatePositiveDuration("HTTPTimeout", cfg.HTTPTimeout, vb)
	return vb.Build()
}

type client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates a new PokeAPI client with the given configuration.
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid pokeapi config")
	}

	return &client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   cfg.HTTPTimeout,
			Transport: cfg.Transport,
		},
		logger: cfg.Logger.With(zap.String("upstream", "pokeapi")),
	}, nil
}

func (c *client) GetSpecies(ctx context.Context, name string) (*entities.Species, error) {
	endpoint := c.baseURL + speciesPath + url.PathEscape(name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to build species request").
			WithMeta("name", name)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// the caller gave up; client timeouts stay Unavailable
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, errors.WrapWithCode(err, errors.CodeCanceled, "species request canceled").
				WithMeta("name", name)
		}
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "species request failed").
			WithMeta("name", name)
	}
	defer func() {
		_ = resp.Body.Close() // nolint:errcheck // nothing to do on close failure
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.NotFoundf("species %q not found", name).WithMeta("name", name)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, errors.Unavailablef("species lookup returned %s", resp.Status).
			WithMeta("name", name).
			WithMeta("status", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read species response").
			WithMeta("name", name)
	}

	c.logger.Debug("Species payload received",
		zap.String("name", name),
		zap.Int("bytes", len(body)),
	)

	species, err := ParseSpecies(body)
	if err != nil {
		return nil, err
	}
	return species, nil
}


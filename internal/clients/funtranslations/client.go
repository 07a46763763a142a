// Package funtranslations is the location for the FunTranslations tone client
package funtranslations

//go:generate mockgen -destination=mock/mock_client.go -package=funtranslationsmock github.com/KirkDiggler/pokedex-api/internal/clients/funtranslations Client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/KirkDiggler/pokedex-api/internal/entities"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
)

const (
	// DefaultBaseURL is the public FunTranslations API
	DefaultBaseURL = "https://api.funtranslations.com"
	// DefaultHTTPTimeout bounds a single translation request
	DefaultHTTPTimeout = 15 * time.Second

	translatePath = "/translate/"
	maxBodyBytes  = 1 << 20
)

// Client defines the interface for rewriting text in a tone
type Client interface {
	// Translate returns text rewritten in the given tone.
	// A single request is made; failures are never retried.
	Translate(ctx context.Context, text string, tone entities.Tone) (string, error)
}

// Config contains configuration options for the translation client.
type Config struct {
	// BaseURL for the translation API (optional, defaults to https://api.funtranslations.com)
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

type translateRequest struct {
	Text string `json:"text"`
}

// New creates a new translation client with the given configuration.
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid funtranslations config")
	}

	return &client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   cfg.HTTPTimeout,
			Transport: cfg.Transport,
		},
		logger: cfg.Logger.With(zap.String("upstream", "funtranslations")),
	}, nil
}

func (c *client) Translate(ctx context.Context, text string, tone entities.Tone) (string, error) {
	if tone.IsZero() {
		return "", errors.InvalidArgument("tone is required")
	}

	payload, err := json.Marshal(translateRequest{Text: text})
	if err != nil {
		return "", errors.Wrap(err, "failed to encode translation request")
	}

	endpoint := c.baseURL + translatePath + tone.Segment()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", errors.WrapWithCode(err, errors.CodeUnavailable, "failed to build translation request").
			WithMeta("tone", tone.String())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.CodeUnavailable, "translation request failed").
			WithMeta("tone", tone.String())
	}
	defer func() {
		_ = resp.Body.Close() // nolint:errcheck // nothing to do on close failure
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read translation response").
			WithMeta("tone", tone.String())
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		// the upstream explains when the quota resets
		return "", errors.ResourceExhausted("translation rate limit reached").
			WithMeta("tone", tone.String()).
			WithMeta("upstream_message", gjson.GetBytes(body, "error.message").String())
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return "", errors.Unavailablef("translation returned %s", resp.Status).
			WithMeta("tone", tone.String()).
			WithMeta("status", resp.StatusCode)
	}

	if !gjson.ValidBytes(body) {
		return "", errors.InvalidResponseShape("translation response is not valid JSON").
			WithMeta("tone", tone.String())
	}
	contents := gjson.GetBytes(body, "contents")
	if contents.Get("text").Type != gjson.String {
		return "", errors.InvalidResponseShapef("field %q is missing or not a string", "contents.text").
			WithMeta("tone", tone.String())
	}
	translated := contents.Get("translated")
	if translated.Type != gjson.String {
		return "", errors.InvalidResponseShapef("field %q is missing or not a string", "contents.translated").
			WithMeta("tone", tone.String())
	}
	// an empty translation would replace a non-empty description
	if translated.Str == "" {
		return "", errors.InvalidResponseShapef("field %q is empty", "contents.translated").
			WithMeta("tone", tone.String())
	}

	c.logger.Debug("Text translated",
		zap.Stringer("tone", tone),
		zap.Int("chars", len(translated.Str)),
	)

	return translated.Str, nil
}

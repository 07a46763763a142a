// Package species implements the species orchestrator: lookup, tone
// selection and translation with fallback to the original description.
package species

//go:generate mockgen -destination=mock/mock_service.go -package=speciesmock github.com/KirkDiggler/pokedex-api/internal/orchestrators/species Service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/KirkDiggler/pokedex-api/internal/clients/funtranslations"
	"github.com/KirkDiggler/pokedex-api/internal/clients/pokeapi"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
	"github.com/KirkDiggler/pokedex-api/internal/metrics"
)

// Service defines the interface for species operations
type Service interface {
	// GetSpecies resolves one species, optionally with a translated description.
	// Translation failures never fail the call.
	GetSpecies(ctx context.Context, input *GetSpeciesInput) (*GetSpeciesOutput, error)
}

// Config holds the dependencies for the species orchestrator
type Config struct {
	SpeciesClient pokeapi.Client
	ToneClient    funtranslations.Client
	// Logger (optional)
	Logger *zap.Logger
	// Metrics (optional)
	Metrics *metrics.Recorder
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.SpeciesClient == nil {
		vb.RequiredField("SpeciesClient")
	}
	if c.ToneClient == nil {
		vb.RequiredField("ToneClient")
	}

	return vb.Build()
}

type orchestrator struct {
	speciesClient pokeapi.Client
	toneClient    funtranslations.Client
	logger        *zap.Logger
	metrics       *metrics.Recorder
}

// NewOrchestrator creates a new species orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &orchestrator{
		speciesClient: cfg.SpeciesClient,
		toneClient:    cfg.ToneClient,
		logger:        logger,
		metrics:       cfg.Metrics,
	}, nil
}

func (o *orchestrator) GetSpecies(ctx context.Context, input *GetSpeciesInput) (*GetSpeciesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		o.metrics.ObserveLookup(metrics.OutcomeInvalid)
		return nil, errors.InvalidArgument("species name is required")
	}

	species, err := o.speciesClient.GetSpecies(ctx, name)
	if err != nil {
		if errors.IsNotFound(err) {
			o.metrics.ObserveLookup(metrics.OutcomeNotFound)
			return nil, errors.NotFoundf("Unable to find '%s'", input.Name).WithMeta("name", name)
		}
		if errors.IsCanceled(err) {
			o.logger.Debug("Species lookup canceled", zap.String("name", name))
			o.metrics.ObserveLookup(metrics.OutcomeError)
			return nil, errors.WrapWithCode(err, errors.CodeInternal, "Internal server error")
		}

		o.logger.Error("Species lookup failed",
			zap.String("name", name),
			zap.String("code", errors.GetCode(err).String()),
			zap.Any("meta", errors.GetMeta(err)),
			zap.Error(err),
		)
		o.metrics.ObserveLookup(metrics.OutcomeError)
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "Internal server error")
	}
	o.metrics.ObserveLookup(metrics.OutcomeOK)

	if !input.Translate {
		return &GetSpeciesOutput{Species: species}, nil
	}

	tone := SelectTone(species)
	translated, err := o.toneClient.Translate(ctx, species.Description, tone)
	if err != nil {
		o.logger.Warn("Translation failed, serving original description",
			zap.String("name", species.Name),
			zap.Stringer("tone", tone),
			zap.String("code", errors.GetCode(err).String()),
			zap.Any("meta", errors.GetMeta(err)),
			zap.Error(err),
		)
		o.metrics.ObserveTranslation(tone.String(), metrics.OutcomeFallback)
		return &GetSpeciesOutput{Species: species, Tone: tone}, nil
	}
	o.metrics.ObserveTranslation(tone.String(), metrics.OutcomeTranslated)

	return &GetSpeciesOutput{
		Species:    species.WithDescription(translated),
		Tone:       tone,
		Translated: true,
	}, nil
}

// Package v1alpha1 handles the public HTTP interface of the gateway
package v1alpha1

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/KirkDiggler/pokedex-api/internal/entities"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
	"github.com/KirkDiggler/pokedex-api/internal/orchestrators/species"
)

const (
	// SpeciesRoute serves a species with its original description
	SpeciesRoute = "GET /pokemon/{name}"
	// TranslatedSpeciesRoute serves a species with a translated description
	TranslatedSpeciesRoute = "GET /pokemon/translated/{name}"

	internalErrorMessage = "Internal server error"
)

// SpeciesResponse is the JSON body returned for a species
type SpeciesResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Habitat     string `json:"habitat"`
	IsLegendary bool   `json:"isLegendary"`
}

// ErrorResponse is the JSON body returned for failed requests
type ErrorResponse struct {
	Message string `json:"message"`
}

// RouteNotFoundResponse lists the routes the gateway serves
type RouteNotFoundResponse struct {
	Message  string   `json:"message"`
	Routes   []string `json:"routes"`
	Examples []string `json:"examples"`
}

// SpeciesHandlerConfig holds dependencies for the species handler
type SpeciesHandlerConfig struct {
	SpeciesService species.Service
	// Logger (optional)
	Logger *zap.Logger
}

// Validate ensures all required dependencies are present
func (c *SpeciesHandlerConfig) Validate() error {
	if c.SpeciesService == nil {
		return errors.InvalidArgument("species service is required")
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return nil
}

// SpeciesHandler serves species records over HTTP
type SpeciesHandler struct {
	speciesService species.Service
	logger         *zap.Logger
}

// NewSpeciesHandler creates a new species handler with the given configuration
func NewSpeciesHandler(cfg *SpeciesHandlerConfig) (*SpeciesHandler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &SpeciesHandler{
		speciesService: cfg.SpeciesService,
		logger:         cfg.Logger,
	}, nil
}

// Register adds the species routes to mux
func (h *SpeciesHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc(SpeciesRoute, h.GetSpecies)
	mux.HandleFunc(TranslatedSpeciesRoute, h.GetTranslatedSpecies)
}

// GetSpecies returns the species named in the path
func (h *SpeciesHandler) GetSpecies(w http.ResponseWriter, r *http.Request) {
	h.serveSpecies(w, r, false)
}

// GetTranslatedSpecies returns the species named in the path with its
// description translated. Translation failures still answer 200 with the
// original description.
func (h *SpeciesHandler) GetTranslatedSpecies(w http.ResponseWriter, r *http.Request) {
	h.serveSpecies(w, r, true)
}

func (h *SpeciesHandler) serveSpecies(w http.ResponseWriter, r *http.Request, translate bool) {
	output, err := h.speciesService.GetSpecies(r.Context(), &species.GetSpeciesInput{
		Name:      r.PathValue("name"),
		Translate: translate,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSpeciesResponse(output.Species))
}

// RouteNotFound answers any request no other route matched
func (h *SpeciesHandler) RouteNotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, &RouteNotFoundResponse{
		Message: "Route not found",
		Routes: []string{
			"/pokemon/<name>",
			"/pokemon/translated/<name>",
		},
		Examples: []string{
			"/pokemon/mewtwo",
			"/pokemon/translated/mewtwo",
		},
	})
}

// writeError converts err at the edge. Only the caller-facing message of a
// client error is echoed; server errors never carry upstream detail.
func (h *SpeciesHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.GetCode(err).HTTPStatus()
	if status >= http.StatusInternalServerError {
		h.logger.Debug("Request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, &ErrorResponse{Message: internalErrorMessage})
		return
	}

	writeJSON(w, status, &ErrorResponse{Message: errors.GetMessage(err)})
}

func toSpeciesResponse(s *entities.Species) *SpeciesResponse {
	return &SpeciesResponse{
		Name:        s.Name,
		Description: s.Description,
		Habitat:     s.Habitat,
		IsLegendary: s.IsLegendary,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// descriptions and route help are plain text, not HTML
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(body) // nolint:errcheck // client went away
}

package species

import "github.com/KirkDiggler/pokedex-api/internal/entities"

// GetSpeciesInput defines the request for resolving a species
type GetSpeciesInput struct {
	Name      string
	Translate bool
}

// GetSpeciesOutput defines the response for resolving a species
type GetSpeciesOutput struct {
	Species *entities.Species
	// Tone that was attempted; zero when no translation was requested
	Tone entities.Tone
	// Translated is true only when the description was replaced
	Translated bool
}

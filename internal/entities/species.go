// Package entities provides core data structures for pokedex-api.
package entities

// HabitatCave is the habitat whose species are described in Yoda speak
const HabitatCave = "cave"

// Species is the normalized record for one Pokémon species
type Species struct {
	Name        string
	Description string // single line, newlines and form feeds replaced by spaces
	Habitat     string
	IsLegendary bool
}

// WithDescription returns a copy of the species with the description replaced
func (s Species) WithDescription(description string) *Species {
	s.Description = description
	return &s
}

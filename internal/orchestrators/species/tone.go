package species

import "github.com/KirkDiggler/pokedex-api/internal/entities"

// SelectTone picks the tone used to rewrite a species description.
// Legendary species and cave dwellers get Yoda, everything else Shakespeare.
func SelectTone(s *entities.Species) entities.Tone {
	if s.IsLegendary || s.Habitat == entities.HabitatCave {
		return entities.ToneYoda
	}
	return entities.ToneShakespeare
}

// Package testutils provides fixtures and fake upstream servers for tests
package testutils

import (
	"encoding/json"
	"fmt"
)

// Species payloads trimmed from real PokeAPI responses. Only the fields the
// gateway reads are kept, plus a few it must ignore.
const (
	RawMewtwo = `{
  "id": 150,
  "name": "mewtwo",
  "is_legendary": true,
  "is_mythical": false,
  "habitat": {"name": "rare", "url": "https://pokeapi.co/api/v2/pokemon-habitat/5/"},
  "flavor_text_entries": [
    {
      "flavor_text": "Il a été créé par un scientifique\naprès des années d'horribles\fexpériences.",
      "language": {"name": "fr", "url": "https://pokeapi.co/api/v2/language/5/"},
      "version": {"name": "x", "url": "https://pokeapi.co/api/v2/version/23/"}
    },
    {
      "flavor_text": "It was created by\na scientist after\nyears of horrific\fgene splicing and\nDNA engineering\nexperiments.",
      "language": {"name": "en", "url": "https://pokeapi.co/api/v2/language/9/"},
      "version": {"name": "red", "url": "https://pokeapi.co/api/v2/version/1/"}
    },
    {
      "flavor_text": "Its DNA is almost\nthe same as MEW's.\fHowever, its size\nand disposition\nare vastly different.",
      "language": {"name": "en", "url": "https://pokeapi.co/api/v2/language/9/"},
      "version": {"name": "yellow", "url": "https://pokeapi.co/api/v2/version/3/"}
    }
  ]
}`

	RawDiglett = `{
  "id": 50,
  "name": "diglett",
  "is_legendary": false,
  "habitat": {"name": "cave", "url": "https://pokeapi.co/api/v2/pokemon-habitat/1/"},
  "flavor_text_entries": [
    {
      "flavor_text": "Lives about one\nyard underground\nwhere it feeds on\fplant roots. It\nsometimes appears\nabove ground.",
      "language": {"name": "en", "url": "https://pokeapi.co/api/v2/language/9/"},
      "version": {"name": "red", "url": "https://pokeapi.co/api/v2/version/1/"}
    },
    {
      "flavor_text": "Lebt etwa einen Meter\nunter der Erde.",
      "language": {"name": "de", "url": "https://pokeapi.co/api/v2/language/6/"},
      "version": {"name": "x", "url": "https://pokeapi.co/api/v2/version/23/"}
    }
  ]
}`

	RawBulbasaur = `{
  "id": 1,
  "name": "bulbasaur",
  "is_legendary": false,
  "habitat": {"name": "grassland", "url": "https://pokeapi.co/api/v2/pokemon-habitat/3/"},
  "flavor_text_entries": [
    {
      "flavor_text": "A strange seed was\nplanted on its\nback at birth.\fThe plant sprouts\nand grows with\nthis POKéMON.",
      "language": {"name": "en", "url": "https://pokeapi.co/api/v2/language/9/"},
      "version": {"name": "red", "url": "https://pokeapi.co/api/v2/version/1/"}
    }
  ]
}`

	RawDitto = `{
  "id": 132,
  "name": "ditto",
  "is_legendary": false,
  "habitat": {"name": "urban", "url": "https://pokeapi.co/api/v2/pokemon-habitat/8/"},
  "flavor_text_entries": [
    {
      "flavor_text": "It can freely recombine its own cellular structure to\ntransform into other life-forms.",
      "language": {"name": "en", "url": "https://pokeapi.co/api/v2/language/9/"},
      "version": {"name": "x", "url": "https://pokeapi.co/api/v2/version/23/"}
    },
    {
      "flavor_text": "Capable of copying\nan enemy's genetic\fcode.",
      "language": {"name": "en", "url": "https://pokeapi.co/api/v2/language/9/"},
      "version": {"name": "red", "url": "https://pokeapi.co/api/v2/version/1/"}
    }
  ]
}`

	// RawGermanOnly has flavor text in German only
	RawGermanOnly = `{
  "name": "kleinstein",
  "is_legendary": false,
  "habitat": {"name": "mountain"},
  "flavor_text_entries": [
    {"flavor_text": "Lebt in den Bergen.", "language": {"name": "de"}}
  ]
}`
)

// Cleaned English descriptions of the species above
const (
	MewtwoDescription    = "It was created by a scientist after years of horrific gene splicing and DNA engineering experiments."
	DiglettDescription   = "Lives about one yard underground where it feeds on plant roots. It sometimes appears above ground."
	BulbasaurDescription = "A strange seed was planted on its back at birth. The plant sprouts and grows with this POKéMON."
	DittoDescription     = "It can freely recombine its own cellular structure to transform into other life-forms."
)

// Translations returned by the fake translation API
const (
	MewtwoAsYoda           = "Created by a scientist after years of horrific gene splicing and dna engineering experiments,  it was."
	DiglettAsYoda          = "On plant roots,  lives about one yard underground where it feeds.Above ground,  it sometimes appears."
	BulbasaurAsShakespeare = "A strange seed wast planted on its back at birth. The plant sprouts and grows with this pokémon."
)

// RateLimitedBody is what the translation API answers with a 429
const RateLimitedBody = `{
  "error": {
    "code": 429,
    "message": "Too Many Requests: Rate limit of 5 requests per hour exceeded. Please wait for 17 minutes and 41 seconds."
  }
}`

// TranslationEnvelope builds a successful translation API response
func TranslationEnvelope(text, translated, tone string) string {
	body, err := json.Marshal(map[string]any{
		"success": map[string]any{"total": 1},
		"contents": map[string]any{
			"translated":  translated,
			"text":        text,
			"translation": tone,
		},
	})
	if err != nil {
		panic(fmt.Sprintf("marshal translation envelope: %v", err))
	}
	return string(body)
}

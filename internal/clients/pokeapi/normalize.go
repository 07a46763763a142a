package pokeapi

import (
	"slices"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/KirkDiggler/pokedex-api/internal/entities"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
)

// EnglishLocale is the language tag of the flavor text we serve
const EnglishLocale = "en"

var flavorTextCleaner = strings.NewReplacer("\n", " ", "\f", " ")

// CleanFlavorText replaces every newline and form feed with a single space.
// Nothing else about the text is changed.
func CleanFlavorText(text string) string {
	return flavorTextCleaner.Replace(text)
}

// ParseSpecies turns a pokemon-species payload into a Species.
//
// Flavor text entries are scanned in order over the raw payload and the scan
// stops at the first English entry; entries in other languages are never
// decoded.
func ParseSpecies(body []byte) (*entities.Species, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.MalformedUpstreamData("species payload is not valid JSON")
	}

	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, errors.MalformedUpstreamData("species payload is not a JSON object")
	}

	name := root.Get("name")
	if name.Type != gjson.String || name.Str == "" {
		return nil, errors.MalformedUpstreamDataf("field %q is missing or not a string", "name")
	}

	legendary := root.Get("is_legendary")
	if legendary.Type != gjson.True && legendary.Type != gjson.False {
		return nil, errors.MalformedUpstreamDataf("field %q is missing or not a boolean", "is_legendary").
			WithMeta("name", name.Str)
	}

	habitat := root.Get("habitat.name")
	if habitat.Type != gjson.String {
		return nil, errors.MalformedUpstreamDataf("field %q is missing or not a string", "habitat.name").
			WithMeta("name", name.Str)
	}

	entries := root.Get("flavor_text_entries")
	if !entries.IsArray() {
		return nil, errors.MalformedUpstreamDataf("field %q is missing or not an array", "flavor_text_entries").
			WithMeta("name", name.Str)
	}

	text, err := selectFlavorText(entries)
	if err != nil {
		return nil, err.WithMeta("name", name.Str)
	}

	return &entities.Species{
		Name:        name.Str,
		Description: CleanFlavorText(text),
		Habitat:     habitat.Str,
		IsLegendary: legendary.Bool(),
	}, nil
}

func selectFlavorText(entries gjson.Result) (string, *errors.Error) {
	var (
		selected gjson.Result
		found    bool
		count    int
		seen     []string
	)

	entries.ForEach(func(_, entry gjson.Result) bool {
		count++
		language := entry.Get("language.name")
		if language.Type == gjson.String && language.Str == EnglishLocale {
			selected = entry.Get("flavor_text")
			found = true
			return false
		}
		if tag := language.String(); tag != "" && !slices.Contains(seen, tag) {
			seen = append(seen, tag)
		}
		return true
	})

	if !found {
		return "", errors.MissingLocalizedTextf("no %q flavor text among %d entries", EnglishLocale, count).
			WithMeta("languages", seen).
			WithMeta("entries", count)
	}
	if selected.Type != gjson.String {
		return "", errors.MalformedUpstreamDataf("field %q of the %q entry is missing or not a string",
			"flavor_text", EnglishLocale)
	}

	return selected.Str, nil
}

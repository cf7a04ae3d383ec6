// Package consoles normalizes free-text console names to the canonical
// identifiers the price-guide API expects (e.g. "Super Nintendo" → "snes").
package consoles

import (
	"sort"
	"strings"
)

// displayNames maps canonical console ids to their display names.
var displayNames = map[string]string{
	"nes":           "Nintendo",
	"snes":          "Super Nintendo",
	"nintendo-64":   "Nintendo 64",
	"gamecube":      "GameCube",
	"wii":           "Nintendo Wii",
	"playstation":   "PlayStation",
	"playstation-2": "PlayStation 2",
	"playstation-3": "PlayStation 3",
	"xbox":          "Xbox",
	"xbox-360":      "Xbox 360",
	"genesis":       "Genesis",
	"dreamcast":     "Dreamcast",
	"saturn":        "Saturn",
	"gameboy":       "Game Boy",
}

// synonyms maps known long-form names to canonical ids.
var synonyms = map[string]string{
	"nintendo entertainment system":       "nes",
	"super nintendo entertainment system": "snes",
	"nintendo 64":                         "n64",
	"nintendo gamecube":                   "gamecube",
	"sony playstation":                    "playstation",
	"sony playstation 2":                  "playstation-2",
	"sony playstation 3":                  "playstation-3",
	"microsoft xbox":                      "xbox",
	"microsoft xbox 360":                  "xbox-360",
	"sega genesis":                        "genesis",
	"sega dreamcast":                      "dreamcast",
	"sega saturn":                         "saturn",
	"game boy":                            "gameboy",
	"gameboy":                             "gameboy",
}

var idsByDisplay = func() map[string]string {
	m := make(map[string]string, len(displayNames))
	for id, name := range displayNames {
		m[name] = id
	}
	return m
}()

// ToID maps a free-text console name to its canonical id. Exact display
// names win, then known synonyms; anything else passes through lowercased
// as a best-effort identifier, so an unknown console simply yields zero
// catalog matches downstream instead of an error.
func ToID(name string) string {
	if id, ok := idsByDisplay[name]; ok {
		return id
	}
	normalized := strings.ToLower(name)
	if id, ok := synonyms[normalized]; ok {
		return id
	}
	return normalized
}

// DisplayName returns the display name for a canonical id, or the id
// itself when unknown.
func DisplayName(id string) string {
	if name, ok := displayNames[id]; ok {
		return name
	}
	return id
}

// IDs returns every known canonical id, sorted.
func IDs() []string {
	ids := make([]string, 0, len(displayNames))
	for id := range displayNames {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

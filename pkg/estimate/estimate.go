// Package estimate produces rough rarity-based price estimates for titles
// the price guide has no sales data for. Estimates are always low
// confidence; they exist so a user has a starting number to enter
// manually, not to feed automatic updates.
package estimate

import (
	"strings"

	"gamestash/pkg/models"
)

// Rarity buckets a title by how commonly it trades.
type Rarity string

const (
	Common   Rarity = "common"
	Uncommon Rarity = "uncommon"
	Rare     Rarity = "rare"
	VeryRare Rarity = "very_rare"
)

type tierPrices struct {
	loose    float64
	complete float64
	sealed   float64
}

// Per-console ballpark figures in USD. Consoles without their own table
// use the NES numbers.
var consoleTables = map[string]map[Rarity]tierPrices{
	"NES": {
		Common:   {loose: 5, complete: 15, sealed: 30},
		Uncommon: {loose: 10, complete: 25, sealed: 50},
		Rare:     {loose: 25, complete: 50, sealed: 100},
		VeryRare: {loose: 50, complete: 100, sealed: 200},
	},
	"SNES": {
		Common:   {loose: 8, complete: 20, sealed: 40},
		Uncommon: {loose: 15, complete: 35, sealed: 70},
		Rare:     {loose: 35, complete: 70, sealed: 150},
		VeryRare: {loose: 75, complete: 150, sealed: 300},
	},
}

// Franchise keywords for crude rarity detection.
var (
	commonKeywords = []string{"mario", "sonic", "tetris", "pac-man", "donkey kong", "zelda", "metroid"}
	rareKeywords   = []string{"earthbound", "chrono trigger", "final fantasy", "castlevania", "mega man"}
)

// Estimate is a heuristic value for one title.
type Estimate struct {
	PriceUSD   float64
	PriceCAD   float64
	Rarity     Rarity
	Confidence string
}

// ClassifyRarity buckets a title by franchise keywords. Unknown titles
// default to uncommon rather than common: obscurity usually means fewer
// copies, not less value.
func ClassifyRarity(title string) Rarity {
	lower := strings.ToLower(title)
	for _, kw := range rareKeywords {
		if strings.Contains(lower, kw) {
			return Rare
		}
	}
	for _, kw := range commonKeywords {
		if strings.Contains(lower, kw) {
			return Common
		}
	}
	return Uncommon
}

// ForGame estimates a price for a title with no sales data, using the
// given USD→CAD rate.
func ForGame(title, console string, condition models.Condition, rate float64) Estimate {
	table, ok := consoleTables[strings.ToUpper(console)]
	if !ok {
		table = consoleTables["NES"]
	}

	rarity := ClassifyRarity(title)
	prices := table[rarity]

	var usd float64
	switch condition {
	case models.CompleteInBox:
		usd = prices.complete
	case models.NewSealed:
		usd = prices.sealed
	default:
		usd = prices.loose
	}

	return Estimate{
		PriceUSD:   usd,
		PriceCAD:   usd * rate,
		Rarity:     rarity,
		Confidence: "low",
	}
}

package main

import (
	"strings"

	"gamestash/pkg/export"
	"gamestash/pkg/models"
)

type filters struct {
	console   string
	search    string
	condition string
	minPrice  float64
	maxPrice  float64
}

func (f *filters) toFilterFunc() export.FilterFunc {
	return func(g models.Game) bool {
		if f.console != "" && !strings.EqualFold(g.Console, f.console) {
			return false
		}
		if f.search != "" && !strings.Contains(strings.ToLower(g.Title), strings.ToLower(f.search)) {
			return false
		}
		if f.condition != "" && !strings.EqualFold(string(g.Condition), f.condition) {
			return false
		}
		if f.minPrice != 0 && g.CurrentPrice < f.minPrice {
			return false
		}
		if f.maxPrice != 0 && g.CurrentPrice > f.maxPrice {
			return false
		}
		return true
	}
}

func (f *filters) apply(games []models.Game) []models.Game {
	keep := f.toFilterFunc()
	out := make([]models.Game, 0, len(games))
	for _, g := range games {
		if keep(g) {
			out = append(out, g)
		}
	}
	return out
}

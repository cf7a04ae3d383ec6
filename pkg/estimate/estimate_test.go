package estimate

import (
	"testing"

	"gamestash/pkg/models"
)

func TestClassifyRarity(t *testing.T) {
	tests := []struct {
		title string
		want  Rarity
	}{
		{"Super Mario Bros 3", Common},
		{"EarthBound", Rare},
		{"Mega Man X", Rare},
		{"Shaq Fu", Uncommon},
	}
	for _, tt := range tests {
		if got := ClassifyRarity(tt.title); got != tt.want {
			t.Errorf("ClassifyRarity(%q) = %v, want %v", tt.title, got, tt.want)
		}
	}
}

func TestForGame(t *testing.T) {
	got := ForGame("Super Mario World", "SNES", models.CompleteInBox, 1.37)
	if got.PriceUSD != 20 {
		t.Errorf("PriceUSD = %v, want 20 (SNES common complete)", got.PriceUSD)
	}
	if got.PriceCAD != 20*1.37 {
		t.Errorf("PriceCAD = %v", got.PriceCAD)
	}
	if got.Confidence != "low" {
		t.Errorf("Confidence = %q, estimates are always low confidence", got.Confidence)
	}

	// Unknown consoles fall back to the NES table, conditions without a
	// tier fall back to loose.
	other := ForGame("Obscuro", "Genesis", models.CartOnly, 1.0)
	if other.PriceUSD != 10 {
		t.Errorf("PriceUSD = %v, want 10 (NES uncommon loose)", other.PriceUSD)
	}
}

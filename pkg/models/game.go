package models

import (
	"fmt"
	"strings"
)

// Condition is the physical completeness state of a game item. It decides
// which price-guide field applies when prices are refreshed.
type Condition string

const (
	CartOnly      Condition = "Cart Only"
	Loose         Condition = "Loose"
	CompleteInBox Condition = "Complete in Box"
	NewSealed     Condition = "New/Sealed"
	BoxOnly       Condition = "Box Only"
	ManualOnly    Condition = "Manual Only"
	Graded        Condition = "Graded"
)

// Conditions lists every valid condition in display order.
var Conditions = []Condition{
	CartOnly,
	Loose,
	CompleteInBox,
	NewSealed,
	BoxOnly,
	ManualOnly,
	Graded,
}

// ParseCondition matches free text against the known conditions,
// case-insensitively. Returns an error for anything unknown so that bad
// input is rejected at the edge instead of silently defaulting.
func ParseCondition(s string) (Condition, error) {
	for _, c := range Conditions {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown condition %q", s)
}

// Game is one owned inventory entry. Prices are stored in CAD.
type Game struct {
	ID           string    `json:"id"`
	Console      string    `json:"console"`
	Title        string    `json:"title"`
	Quantity     int       `json:"quantity"`
	Condition    Condition `json:"condition"`
	CurrentPrice float64   `json:"currentPrice"`
	LastPrice    float64   `json:"lastPrice"`
}

// Validate checks the invariants that hold for every stored game.
func (g *Game) Validate() error {
	if g.Title == "" {
		return fmt.Errorf("title is required")
	}
	if g.Console == "" {
		return fmt.Errorf("console is required")
	}
	if g.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative, got %d", g.Quantity)
	}
	if g.CurrentPrice < 0 || g.LastPrice < 0 {
		return fmt.Errorf("prices must not be negative")
	}
	if _, err := ParseCondition(string(g.Condition)); err != nil {
		return err
	}
	return nil
}

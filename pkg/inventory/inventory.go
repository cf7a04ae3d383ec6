// Package inventory owns the authoritative owned-game list and the set of
// manually fixed titles. Every mutation is persisted through the backing
// key-value store; the snapshot is loaded once at construction.
package inventory

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"gamestash/pkg/models"
	"gamestash/pkg/storage"
)

// Store holds the inventory in memory and mirrors it to durable storage.
// It is not safe for concurrent use; callers serialize access (the HTTP
// server wraps it in its own lock).
type Store struct {
	kv     storage.KV
	logger *log.Logger

	games []models.Game
	fixed map[string]bool
}

// NewStore loads the persisted snapshot, falling back to the built-in
// seed list when nothing usable is stored. Construction never fails on
// bad local state.
func NewStore(kv storage.KV, logger *log.Logger) *Store {
	s := &Store{
		kv:     kv,
		logger: logger,
		fixed:  make(map[string]bool),
	}
	s.load()
	return s
}

func (s *Store) load() {
	raw, ok := s.kv.Get(storage.KeyInventory)
	if !ok {
		s.logger.Info("no saved inventory, starting from seed list")
		s.games = seedGames()
	} else if err := json.Unmarshal([]byte(raw), &s.games); err != nil {
		s.logger.Warn("saved inventory is corrupt, starting from seed list", "error", err)
		s.games = seedGames()
	}

	if rawFixed, ok := s.kv.Get(storage.KeyFixedGames); ok {
		var titles []string
		if err := json.Unmarshal([]byte(rawFixed), &titles); err != nil {
			s.logger.Warn("saved manual-override set is corrupt, ignoring", "error", err)
		} else {
			for _, t := range titles {
				s.fixed[t] = true
			}
		}
	}
}

func (s *Store) persist() {
	raw, err := json.Marshal(s.games)
	if err != nil {
		s.logger.Error("failed to encode inventory", "error", err)
		return
	}
	if err := s.kv.Set(storage.KeyInventory, string(raw)); err != nil {
		s.logger.Error("failed to persist inventory", "error", err)
		return
	}

	titles := make([]string, 0, len(s.fixed))
	for t := range s.fixed {
		titles = append(titles, t)
	}
	sort.Strings(titles)
	rawFixed, _ := json.Marshal(titles)
	s.kv.Set(storage.KeyFixedGames, string(rawFixed))
	s.kv.Set(storage.KeyLastUpdated, time.Now().Format(time.RFC3339))
}

// List returns a copy of the inventory in storage order.
func (s *Store) List() []models.Game {
	out := make([]models.Game, len(s.games))
	copy(out, s.games)
	return out
}

// Get looks a game up by id.
func (s *Store) Get(id string) (models.Game, bool) {
	for _, g := range s.games {
		if g.ID == id {
			return g, true
		}
	}
	return models.Game{}, false
}

// Add validates and appends a new game, assigning it an id.
func (s *Store) Add(game models.Game) (models.Game, error) {
	game.ID = uuid.NewString()
	if err := game.Validate(); err != nil {
		return models.Game{}, fmt.Errorf("invalid game: %w", err)
	}
	s.games = append(s.games, game)
	s.persist()
	s.logger.Debug("added game", "id", game.ID, "title", game.Title)
	return game, nil
}

// Edit replaces the stored game with the same id.
func (s *Store) Edit(game models.Game) error {
	if err := game.Validate(); err != nil {
		return fmt.Errorf("invalid game: %w", err)
	}
	for i, g := range s.games {
		if g.ID == game.ID {
			s.games[i] = game
			s.persist()
			return nil
		}
	}
	return fmt.Errorf("no game with id %s", game.ID)
}

// Delete removes a game by id.
func (s *Store) Delete(id string) error {
	for i, g := range s.games {
		if g.ID == id {
			s.games = append(s.games[:i], s.games[i+1:]...)
			s.persist()
			return nil
		}
	}
	return fmt.Errorf("no game with id %s", id)
}

// MarkFixed flags a title as manually priced. Refresh runs never touch a
// fixed title, even when the price guide has a match for it.
func (s *Store) MarkFixed(title string) {
	s.fixed[title] = true
	s.persist()
}

// ClearFixed drops every manual-override flag.
func (s *Store) ClearFixed() {
	s.fixed = make(map[string]bool)
	s.persist()
}

func (s *Store) IsFixed(title string) bool {
	return s.fixed[title]
}

// FixedTitles returns the manually fixed titles, sorted.
func (s *Store) FixedTitles() []string {
	titles := make([]string, 0, len(s.fixed))
	for t := range s.fixed {
		titles = append(titles, t)
	}
	sort.Strings(titles)
	return titles
}

// Merge applies a refresh run's output. For each game with a result the
// current price rotates into lastPrice and the converted price becomes
// current. Games without a result are left untouched; their errors are
// returned for manual remediation, except that errors for manually fixed
// titles are dropped since those prices are authoritative anyway.
func (s *Store) Merge(results []models.Result, errs []models.Error) []models.Error {
	byID := make(map[string]models.Result, len(results))
	for _, r := range results {
		byID[r.GameID] = r
	}

	updated := 0
	for i, game := range s.games {
		result, ok := byID[game.ID]
		if !ok {
			continue
		}
		if s.fixed[game.Title] {
			s.logger.Debug("skipping manually fixed game", "title", game.Title)
			continue
		}
		s.games[i].LastPrice = game.CurrentPrice
		s.games[i].CurrentPrice = result.PriceCAD
		updated++
	}
	s.persist()

	surfaced := make([]models.Error, 0, len(errs))
	for _, e := range errs {
		if _, ok := byID[e.GameID]; ok {
			continue
		}
		if s.fixed[e.Title] {
			continue
		}
		surfaced = append(surfaced, e)
	}

	s.logger.Info("merged price refresh", "updated", updated, "errors", len(surfaced))
	return surfaced
}

// TotalValue sums currentPrice × quantity over the whole inventory.
func (s *Store) TotalValue() float64 {
	var total float64
	for _, g := range s.games {
		total += g.CurrentPrice * float64(g.Quantity)
	}
	return total
}

// TotalItems sums quantities over the whole inventory.
func (s *Store) TotalItems() int {
	var total int
	for _, g := range s.games {
		total += g.Quantity
	}
	return total
}

// seedGames is the starter collection used when no snapshot exists.
func seedGames() []models.Game {
	return []models.Game{
		{ID: uuid.NewString(), Console: "NES", Title: "Super Mario Bros 3", Quantity: 5, Condition: models.CompleteInBox, CurrentPrice: 45.99, LastPrice: 42.50},
		{ID: uuid.NewString(), Console: "NES", Title: "The Legend of Zelda", Quantity: 3, Condition: models.CartOnly, CurrentPrice: 62.75, LastPrice: 58.99},
		{ID: uuid.NewString(), Console: "SNES", Title: "Super Mario World", Quantity: 8, Condition: models.CompleteInBox, CurrentPrice: 28.50, LastPrice: 31.25},
		{ID: uuid.NewString(), Console: "SNES", Title: "Super Metroid", Quantity: 2, Condition: models.CartOnly, CurrentPrice: 89.99, LastPrice: 85.75},
		{ID: uuid.NewString(), Console: "N64", Title: "Super Mario 64", Quantity: 4, Condition: models.CartOnly, CurrentPrice: 35.99, LastPrice: 38.50},
		{ID: uuid.NewString(), Console: "GameBoy", Title: "Pokemon Red", Quantity: 6, Condition: models.CartOnly, CurrentPrice: 55.25, LastPrice: 52.99},
	}
}

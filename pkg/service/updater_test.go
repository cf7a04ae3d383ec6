package service

import (
	"context"
	"testing"

	"github.com/charmbracelet/log"

	"gamestash/pkg/inventory"
	"gamestash/pkg/models"
	"gamestash/pkg/pricing"
	"gamestash/pkg/rates"
	"gamestash/pkg/storage"
)

type staticFetcher struct {
	catalogs map[string]string
}

func (f staticFetcher) FetchCatalog(_ context.Context, consoleID string) (string, error) {
	return f.catalogs[consoleID], nil
}

type staticRate struct{ rate float64 }

func (s staticRate) Name() string { return "static" }
func (s staticRate) Fetch(context.Context) (float64, error) { return s.rate, nil }

func TestUpdatePrices(t *testing.T) {
	logger := log.Default()
	kv := storage.MemKV{storage.KeyInventory: "[]"}
	store := inventory.NewStore(kv, logger)
	game, err := store.Add(models.Game{Console: "NES", Title: "Golf", Quantity: 1, Condition: models.Loose})
	if err != nil {
		t.Fatal(err)
	}

	fetcher := staticFetcher{catalogs: map[string]string{
		"nes": "product-name,console-name,loose-price\nGolf,NES,$3.00\n",
	}}
	updater := NewUpdater(
		store,
		rates.NewResolver(kv, logger, staticRate{rate: 1.37}),
		pricing.New(fetcher, logger),
		logger,
	)

	summary := updater.UpdatePrices(context.Background())

	if len(summary.Results) != 1 || len(summary.Errors) != 0 {
		t.Fatalf("summary = %+v", summary)
	}
	if summary.Rate.Rate != 1.37 {
		t.Errorf("rate = %v", summary.Rate.Rate)
	}

	updated, _ := store.Get(game.ID)
	if updated.CurrentPrice == 0 {
		t.Errorf("merge did not apply: %+v", updated)
	}
}

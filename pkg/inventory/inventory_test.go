package inventory

import (
	"testing"

	"github.com/charmbracelet/log"

	"gamestash/pkg/models"
	"gamestash/pkg/storage"
)

func newStore(t *testing.T) (*Store, storage.MemKV) {
	t.Helper()
	kv := storage.MemKV{}
	return NewStore(kv, log.Default()), kv
}

func TestStoreStartsFromSeed(t *testing.T) {
	store, _ := newStore(t)
	if len(store.List()) == 0 {
		t.Fatal("empty storage should fall back to the seed list")
	}
}

func TestStoreCorruptSnapshotFallsBack(t *testing.T) {
	kv := storage.MemKV{storage.KeyInventory: "{{{not json"}
	store := NewStore(kv, log.Default())
	if len(store.List()) == 0 {
		t.Fatal("corrupt snapshot should fall back to the seed list")
	}
}

func TestAddEditDelete(t *testing.T) {
	store, kv := newStore(t)
	before := len(store.List())

	game, err := store.Add(models.Game{
		Console:   "NES",
		Title:     "Battletoads",
		Quantity:  1,
		Condition: models.Loose,
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if game.ID == "" {
		t.Error("Add should assign an id")
	}
	if len(store.List()) != before+1 {
		t.Errorf("expected %d games, got %d", before+1, len(store.List()))
	}

	game.Quantity = 3
	if err := store.Edit(game); err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	got, ok := store.Get(game.ID)
	if !ok || got.Quantity != 3 {
		t.Errorf("edit not applied: %+v", got)
	}

	if err := store.Delete(game.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := store.Get(game.ID); ok {
		t.Error("game still present after delete")
	}

	// Mutations must be persisted: a fresh store sees the same list.
	reloaded := NewStore(kv, log.Default())
	if len(reloaded.List()) != before {
		t.Errorf("persisted list has %d games, want %d", len(reloaded.List()), before)
	}
}

func TestAddRejectsInvalid(t *testing.T) {
	store, _ := newStore(t)
	if _, err := store.Add(models.Game{Title: "No Console"}); err == nil {
		t.Error("expected validation error")
	}
	if _, err := store.Add(models.Game{Console: "NES", Title: "Bad Qty", Quantity: -1, Condition: models.Loose}); err == nil {
		t.Error("expected quantity validation error")
	}
}

func TestMergeRotatesPrices(t *testing.T) {
	store, _ := newStore(t)
	game, _ := store.Add(models.Game{Console: "NES", Title: "Golf", Quantity: 1, Condition: models.Loose})

	surfaced := store.Merge([]models.Result{
		{GameID: game.ID, MatchedProduct: "Golf", PriceCAD: 4.11},
	}, nil)

	if len(surfaced) != 0 {
		t.Errorf("unexpected surfaced errors: %+v", surfaced)
	}
	got, _ := store.Get(game.ID)
	if got.CurrentPrice != 4.11 || got.LastPrice != 0 {
		t.Errorf("prices not rotated: %+v", got)
	}
}

func TestMergePreservesManualOverride(t *testing.T) {
	store, _ := newStore(t)
	game, _ := store.Add(models.Game{
		Console: "NES", Title: "Golf", Quantity: 1, Condition: models.Loose,
	})
	game.CurrentPrice = 12.34
	game.LastPrice = 10.00
	if err := store.Edit(game); err != nil {
		t.Fatal(err)
	}
	store.MarkFixed("Golf")

	// Even a successful match must not overwrite a fixed title.
	surfaced := store.Merge([]models.Result{
		{GameID: game.ID, MatchedProduct: "Golf", PriceCAD: 99.99},
	}, []models.Error{
		{GameID: "other", Title: "Golf", Reason: models.NotFound},
	})

	got, _ := store.Get(game.ID)
	if got.CurrentPrice != 12.34 || got.LastPrice != 10.00 {
		t.Errorf("manual override not preserved: %+v", got)
	}
	// Errors for fixed titles are informational only, not surfaced.
	if len(surfaced) != 0 {
		t.Errorf("errors for fixed titles should be dropped, got %+v", surfaced)
	}
}

func TestMergeSurfacesErrors(t *testing.T) {
	store, _ := newStore(t)
	game, _ := store.Add(models.Game{Console: "NES", Title: "Obscuro", Quantity: 1, Condition: models.Loose})

	surfaced := store.Merge(nil, []models.Error{
		{GameID: game.ID, Title: "Obscuro", Reason: models.NotFound},
	})

	if len(surfaced) != 1 || surfaced[0].Reason != models.NotFound {
		t.Fatalf("expected the NotFound error back, got %+v", surfaced)
	}
	got, _ := store.Get(game.ID)
	if got.CurrentPrice != 0 {
		t.Errorf("unmatched game should be untouched: %+v", got)
	}
}

func TestTotals(t *testing.T) {
	kv := storage.MemKV{storage.KeyInventory: "[]"}
	store := NewStore(kv, log.Default())
	store.Add(models.Game{Console: "NES", Title: "A", Quantity: 2, Condition: models.Loose})
	store.Add(models.Game{Console: "NES", Title: "B", Quantity: 3, Condition: models.Loose})

	a := store.List()[0]
	a.CurrentPrice = 10
	store.Edit(a)

	if got := store.TotalItems(); got != 5 {
		t.Errorf("TotalItems = %d, want 5", got)
	}
	if got := store.TotalValue(); got != 20 {
		t.Errorf("TotalValue = %v, want 20", got)
	}
}

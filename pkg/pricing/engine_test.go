package pricing

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/charmbracelet/log"

	"gamestash/pkg/models"
)

type fakeFetcher struct {
	catalogs map[string]string
	err      error
}

func (f *fakeFetcher) FetchCatalog(_ context.Context, consoleID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	text, ok := f.catalogs[consoleID]
	if !ok {
		return "", errors.New("no such console")
	}
	return text, nil
}

func newEngine(f *fakeFetcher) *Engine {
	return New(f, log.Default())
}

func approx(got, want float64) bool {
	return math.Abs(got-want) < 0.005
}

const header = "product-name,console-name,loose-price,complete-price,new-price,graded-price,box-only-price,manual-only-price\n"

func TestReconcileEndToEnd(t *testing.T) {
	fetcher := &fakeFetcher{catalogs: map[string]string{
		"nes": header + "Golf,NES,$3.00,,,,,\n",
	}}
	games := []models.Game{
		{ID: "1", Console: "NES", Title: "Golf", Condition: models.Loose},
	}

	results, errs := newEngine(fetcher).Reconcile(context.Background(), games, 1.37)

	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	r := results[0]
	if r.MatchedProduct != "Golf" || r.GameID != "1" {
		t.Errorf("unexpected result %+v", r)
	}
	if !approx(r.PriceCAD, 4.11) {
		t.Errorf("PriceCAD = %v, want 4.11", r.PriceCAD)
	}
}

func TestReconcileFuzzyMatch(t *testing.T) {
	fetcher := &fakeFetcher{catalogs: map[string]string{
		"nes": header + "Legend of Zelda The,NES,$62.75,,,,,\n",
	}}
	games := []models.Game{
		{ID: "z", Console: "NES", Title: "The Legend of Zelda", Condition: models.CartOnly},
	}

	results, errs := newEngine(fetcher).Reconcile(context.Background(), games, 1.35)

	if len(errs) != 0 || len(results) != 1 {
		t.Fatalf("results=%d errs=%+v", len(results), errs)
	}
	if results[0].MatchedProduct != "Legend of Zelda The" {
		t.Errorf("matched %q", results[0].MatchedProduct)
	}
	if !approx(results[0].PriceCAD, 62.75*1.35) {
		t.Errorf("PriceCAD = %v", results[0].PriceCAD)
	}
}

func TestFuzzyMatchRenamedTitle(t *testing.T) {
	records := []models.PriceRecord{
		{"product-name": "Zelda II - The Adventure of Link", "console-name": "NES"},
		{"product-name": "Legend of Zelda, The", "console-name": "NES"},
	}

	record, ok := fuzzyMatch("The Legend of Zelda", records)
	if !ok {
		t.Fatal("expected a fuzzy match")
	}
	if record.ProductName() != "Legend of Zelda, The" {
		t.Errorf("matched %q", record.ProductName())
	}
}

func TestReconcileCurrencyConversion(t *testing.T) {
	fetcher := &fakeFetcher{catalogs: map[string]string{
		"nes": header +
			"Mega Man 2,NES,$45.99,,,,,\n" +
			"Kid Icarus,NES,C$62.75,,,,,\n",
	}}
	games := []models.Game{
		{ID: "usd", Console: "NES", Title: "Mega Man 2", Condition: models.Loose},
		{ID: "cad", Console: "NES", Title: "Kid Icarus", Condition: models.Loose},
	}

	results, errs := newEngine(fetcher).Reconcile(context.Background(), games, 1.35)
	if len(errs) != 0 || len(results) != 2 {
		t.Fatalf("results=%d errs=%+v", len(results), errs)
	}

	usd := results[0]
	if !approx(usd.PriceCAD, 62.0865) || usd.IsCADPrice {
		t.Errorf("USD price converted wrong: %+v", usd)
	}

	cad := results[1]
	if !cad.IsCADPrice {
		t.Errorf("C$ price not flagged as CAD: %+v", cad)
	}
	if !approx(cad.PriceCAD, 62.75) || !approx(cad.PriceUSD, 46.48) {
		t.Errorf("CAD price normalized wrong: %+v", cad)
	}
}

func TestReconcileConditionFallback(t *testing.T) {
	fetcher := &fakeFetcher{catalogs: map[string]string{
		"nes": header + "Stack-Up,NES,$10.00,,,N/A,,\n",
	}}
	games := []models.Game{
		{ID: "g", Console: "NES", Title: "Stack-Up", Condition: models.Graded},
	}

	results, errs := newEngine(fetcher).Reconcile(context.Background(), games, 1.0)
	if len(errs) != 0 || len(results) != 1 {
		t.Fatalf("results=%d errs=%+v", len(results), errs)
	}
	if results[0].PriceField != "loose-price" || results[0].RawPrice != "$10.00" {
		t.Errorf("fallback picked %s=%s, want loose-price=$10.00", results[0].PriceField, results[0].RawPrice)
	}
}

func TestReconcileNoSalesData(t *testing.T) {
	fetcher := &fakeFetcher{catalogs: map[string]string{
		"nes": header + "Cheetahmen II,NES,N/A,N/A,$0,0,,\n",
	}}
	games := []models.Game{
		{ID: "c", Console: "NES", Title: "Cheetahmen II", Condition: models.Loose},
	}

	results, errs := newEngine(fetcher).Reconcile(context.Background(), games, 1.37)
	if len(results) != 0 {
		t.Fatalf("expected no results, got %+v", results)
	}
	if len(errs) != 1 || errs[0].Reason != models.NoSalesData {
		t.Fatalf("expected NoSalesData, got %+v", errs)
	}
}

func TestReconcileNotFound(t *testing.T) {
	fetcher := &fakeFetcher{catalogs: map[string]string{
		"nes": header + "Golf,NES,$3.00,,,,,\n",
	}}
	games := []models.Game{
		{ID: "x", Console: "NES", Title: "Battletoads", Condition: models.Loose},
	}

	_, errs := newEngine(fetcher).Reconcile(context.Background(), games, 1.37)
	if len(errs) != 1 || errs[0].Reason != models.NotFound {
		t.Fatalf("expected NotFound, got %+v", errs)
	}
}

func TestReconcileRegionFilter(t *testing.T) {
	fetcher := &fakeFetcher{catalogs: map[string]string{
		"nes": header +
			"Golf,JP Famicom,$99.00,,,,,\n" +
			"Golf,PAL NES,$50.00,,,,,\n" +
			"Golf,NES,$3.00,,,,,\n",
	}}
	games := []models.Game{
		{ID: "1", Console: "NES", Title: "Golf", Condition: models.Loose},
	}

	results, errs := newEngine(fetcher).Reconcile(context.Background(), games, 1.0)
	if len(errs) != 0 || len(results) != 1 {
		t.Fatalf("results=%+v errs=%+v", results, errs)
	}
	if !approx(results[0].PriceCAD, 3.00) {
		t.Errorf("matched a non-domestic row: %+v", results[0])
	}
}

func TestReconcileFetchFailure(t *testing.T) {
	fetcher := &fakeFetcher{catalogs: map[string]string{
		"snes": header + "Super Metroid,Super Nintendo,$45.00,,,,,\n",
	}}
	games := []models.Game{
		{ID: "1", Console: "NES", Title: "Golf", Condition: models.Loose},
		{ID: "2", Console: "NES", Title: "Tetris", Condition: models.Loose},
		{ID: "3", Console: "Super Nintendo", Title: "Super Metroid", Condition: models.Loose},
	}

	results, errs := newEngine(fetcher).Reconcile(context.Background(), games, 1.37)

	// The failing NES group must not take down the SNES group.
	if len(results) != 1 || results[0].GameID != "3" {
		t.Fatalf("expected SNES result to survive, got %+v", results)
	}
	if len(errs) != 2 {
		t.Fatalf("expected 2 fetch errors, got %+v", errs)
	}
	for _, e := range errs {
		if e.Reason != models.FetchFailed {
			t.Errorf("expected FetchFailed, got %+v", e)
		}
	}
}

func TestReconcileNeverRaises(t *testing.T) {
	broken := &fakeFetcher{err: errors.New("network down")}

	results, errs := newEngine(broken).Reconcile(context.Background(), nil, 1.37)
	if len(results) != 0 || len(errs) != 0 {
		t.Errorf("empty input should produce empty output, got %v %v", results, errs)
	}

	games := []models.Game{
		{ID: "1", Console: "???", Title: "", Condition: "Nonsense"},
		{ID: "2", Console: "NES", Title: "Golf", Condition: models.Loose},
	}
	_, errs = newEngine(broken).Reconcile(context.Background(), games, 1.37)
	if len(errs) != 2 {
		t.Errorf("expected an error per game, got %+v", errs)
	}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"The Legend of Zelda", "legend zelda"},
		{"Legend of Zelda, The", "legend zelda"},
		{"Super Mario Bros. 3", "super mario bros 3"},
		{"  Kirby's   Adventure ", "kirbys adventure"},
	}
	for _, tt := range tests {
		if got := normalizeTitle(tt.in); got != tt.want {
			t.Errorf("normalizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

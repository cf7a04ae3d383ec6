// Package pricing matches owned games against downloaded price catalogs
// and produces per-game price updates. The engine only reads its inputs
// and returns results; merging into the inventory is the store's job.
package pricing

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"gamestash/pkg/consoles"
	"gamestash/pkg/models"
	"gamestash/pkg/pricecsv"
)

// regionPrefixes mark non-domestic catalog rows, which are dropped so a
// North American cart never picks up a JP or PAL price.
var regionPrefixes = []string{"JP", "PAL", "EU", "JPN"}

// CatalogFetcher supplies the raw delimited price catalog for one console
// id. The concrete transport (direct API call or same-origin proxy) is the
// caller's business.
type CatalogFetcher interface {
	FetchCatalog(ctx context.Context, consoleID string) (string, error)
}

// Engine reconciles an owned-game list against provider catalogs.
type Engine struct {
	fetcher CatalogFetcher
	logger  *log.Logger
}

func New(fetcher CatalogFetcher, logger *log.Logger) *Engine {
	return &Engine{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Reconcile prices every game in the list at the given USD→CAD rate.
//
// Games are grouped by console and each group's catalog is fetched once;
// a failed fetch marks every game in that group FetchFailed and the run
// moves on to the next group. Per-game failures are collected, never
// raised, so Reconcile always returns. Both slices preserve input
// traversal order: console groups in first-seen order, games in input
// order within each group.
func (e *Engine) Reconcile(ctx context.Context, games []models.Game, rate float64) ([]models.Result, []models.Error) {
	var results []models.Result
	var errs []models.Error

	groupOrder, groups := groupByConsole(games)

	for _, consoleID := range groupOrder {
		group := groups[consoleID]

		text, err := e.fetcher.FetchCatalog(ctx, consoleID)
		if err != nil {
			e.logger.Warn("catalog fetch failed", "console", consoleID, "error", err)
			for _, game := range group {
				errs = append(errs, models.Error{
					GameID:  game.ID,
					Title:   game.Title,
					Reason:  models.FetchFailed,
					Message: fmt.Sprintf("console data fetch failed: %v", err),
				})
			}
			continue
		}

		catalog := pricecsv.Parse(text)
		domestic := filterDomestic(catalog)
		restricted := restrictToOwned(domestic, group)
		e.logger.Debug("catalog ready",
			"console", consoleID,
			"rows", len(catalog),
			"domestic", len(domestic),
			"owned", len(restricted))

		for _, game := range group {
			result, gameErr := e.priceGame(game, restricted, domestic, rate)
			if gameErr != nil {
				errs = append(errs, *gameErr)
				continue
			}
			results = append(results, *result)
		}
	}

	return results, errs
}

func (e *Engine) priceGame(game models.Game, restricted, domestic []models.PriceRecord, rate float64) (*models.Result, *models.Error) {
	record, ok := exactMatch(game.Title, restricted)
	if !ok {
		// The exact pass is bounded to owned titles; the fuzzy pass has to
		// look at the whole domestic catalog since renamed listings
		// ("Legend of Zelda, The") fall outside the owned-title set.
		record, ok = fuzzyMatch(game.Title, domestic)
		if ok {
			e.logger.Debug("fuzzy match", "title", game.Title, "product", record.ProductName())
		}
	}
	if !ok {
		return nil, &models.Error{
			GameID:  game.ID,
			Title:   game.Title,
			Reason:  models.NotFound,
			Message: "game not found in price guide data",
		}
	}

	field, raw := selectPrice(record, game.Condition)
	usd, cad, isCAD := convertPrice(raw, rate)
	if cad == 0 {
		return nil, &models.Error{
			GameID:  game.ID,
			Title:   game.Title,
			Reason:  models.NoSalesData,
			Message: fmt.Sprintf("no recent sales data for %q, all price fields empty", record.ProductName()),
		}
	}

	return &models.Result{
		GameID:         game.ID,
		MatchedProduct: record.ProductName(),
		PriceField:     field,
		RawPrice:       raw,
		PriceUSD:       usd,
		PriceCAD:       cad,
		ExchangeRate:   rate,
		IsCADPrice:     isCAD,
	}, nil
}

// groupByConsole partitions games by canonical console id, preserving
// first-seen group order.
func groupByConsole(games []models.Game) ([]string, map[string][]models.Game) {
	var order []string
	groups := make(map[string][]models.Game)
	for _, game := range games {
		id := consoles.ToID(game.Console)
		if _, ok := groups[id]; !ok {
			order = append(order, id)
		}
		groups[id] = append(groups[id], game)
	}
	return order, groups
}

func filterDomestic(records []models.PriceRecord) []models.PriceRecord {
	domestic := make([]models.PriceRecord, 0, len(records))
	for _, r := range records {
		if isDomestic(r.ConsoleName()) {
			domestic = append(domestic, r)
		}
	}
	return domestic
}

func isDomestic(consoleName string) bool {
	upper := strings.ToUpper(consoleName)
	for _, prefix := range regionPrefixes {
		if strings.HasPrefix(upper, prefix) {
			return false
		}
	}
	return true
}

// restrictToOwned keeps only rows naming a title the group actually owns,
// bounding the exact-match search to the owner's titles.
func restrictToOwned(records []models.PriceRecord, group []models.Game) []models.PriceRecord {
	owned := make(map[string]bool, len(group))
	for _, game := range group {
		owned[strings.ToLower(game.Title)] = true
	}

	restricted := make([]models.PriceRecord, 0, len(group))
	for _, r := range records {
		if r.ProductName() != "" && owned[strings.ToLower(r.ProductName())] {
			restricted = append(restricted, r)
		}
	}
	return restricted
}

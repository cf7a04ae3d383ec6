// Package service wires the exchange-rate resolver, the pricing engine,
// and the inventory store into the one operation the CLI and the HTTP
// server both expose: refresh every price in the collection.
package service

import (
	"context"

	"github.com/charmbracelet/log"

	"gamestash/pkg/inventory"
	"gamestash/pkg/models"
	"gamestash/pkg/pricing"
	"gamestash/pkg/rates"
)

// Updater runs price refreshes. Concurrent runs are not supported;
// callers serialize (the server keeps an in-flight flag, the CLI is
// single-shot).
type Updater struct {
	store    *inventory.Store
	resolver *rates.Resolver
	engine   *pricing.Engine
	logger   *log.Logger
}

func NewUpdater(store *inventory.Store, resolver *rates.Resolver, engine *pricing.Engine, logger *log.Logger) *Updater {
	return &Updater{
		store:    store,
		resolver: resolver,
		engine:   engine,
		logger:   logger,
	}
}

// Summary is the outcome of one refresh run.
type Summary struct {
	Rate    models.RateSnapshot `json:"rate"`
	Results []models.Result     `json:"results"`
	// Errors are the per-game failures left after the merge dropped the
	// ones covered by manual overrides.
	Errors []models.Error `json:"errors"`
}

// UpdatePrices resolves today's exchange rate, reconciles the whole
// inventory against the price guide, and merges the outcome into the
// store. It never fails: the worst case is a summary full of errors.
func (u *Updater) UpdatePrices(ctx context.Context) Summary {
	games := u.store.List()
	u.logger.Info("starting price refresh", "games", len(games))

	rate := u.resolver.Resolve(ctx)
	results, errs := u.engine.Reconcile(ctx, games, rate.Rate)
	surfaced := u.store.Merge(results, errs)

	u.logger.Info("price refresh complete",
		"successful", len(results),
		"errors", len(surfaced),
		"rate", rate.Rate,
		"rateSource", rate.Source)

	return Summary{
		Rate:    rate,
		Results: results,
		Errors:  surfaced,
	}
}

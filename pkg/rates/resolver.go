// Package rates resolves the USD→CAD exchange rate used when converting
// price-guide amounts. Resolution never fails: providers are tried in
// order, then the cache, then a hardcoded constant, because price display
// must always produce a number.
package rates

import (
	"context"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"gamestash/pkg/models"
	"gamestash/pkg/storage"
)

// DefaultRate is the last-resort USD→CAD factor when no provider answers
// and no cache exists.
const DefaultRate = 1.374328

// Rate feeds occasionally return zero or garbage; anything outside this
// band is treated as a provider failure, not accepted.
const (
	minSaneRate = 1.0
	maxSaneRate = 2.0
)

// Resolver obtains the daily USD→CAD rate, caching it through the given
// key-value store so repeat runs on the same day make no network calls.
type Resolver struct {
	providers []Provider
	kv        storage.KV
	logger    *log.Logger

	// now is swapped out by tests.
	now func() time.Time
}

func NewResolver(kv storage.KV, logger *log.Logger, providers ...Provider) *Resolver {
	return &Resolver{
		providers: providers,
		kv:        kv,
		logger:    logger,
		now:       time.Now,
	}
}

// Resolve returns the rate to use for this run.
//
// Order of preference: today's cached rate, each provider in turn (subject
// to the sanity band), any stale cached rate, and finally DefaultRate.
func (r *Resolver) Resolve(ctx context.Context) models.RateSnapshot {
	today := r.now().Format("2006-01-02")

	if cached, ok := r.cached(); ok && cached.AsOf == today {
		r.logger.Debug("using cached exchange rate", "rate", cached.Rate, "source", cached.Source)
		return cached
	}

	for _, provider := range r.providers {
		rate, err := provider.Fetch(ctx)
		if err != nil {
			r.logger.Warn("exchange rate provider failed", "provider", provider.Name(), "error", err)
			continue
		}
		if rate <= minSaneRate || rate >= maxSaneRate {
			r.logger.Warn("exchange rate outside sanity band, rejecting",
				"provider", provider.Name(), "rate", rate)
			continue
		}

		snapshot := models.RateSnapshot{Rate: rate, AsOf: today, Source: provider.Name()}
		r.cache(snapshot)
		r.logger.Info("fetched exchange rate", "rate", rate, "source", provider.Name())
		return snapshot
	}

	if cached, ok := r.cached(); ok {
		r.logger.Warn("all providers failed, using stale cached rate",
			"rate", cached.Rate, "asOf", cached.AsOf, "source", cached.Source)
		cached.Source = models.RateSourceStale
		return cached
	}

	r.logger.Warn("no providers and no cache, using hardcoded rate", "rate", DefaultRate)
	return models.RateSnapshot{
		Rate:   DefaultRate,
		AsOf:   today,
		Source: models.RateSourceHardcoded,
	}
}

func (r *Resolver) cached() (models.RateSnapshot, bool) {
	raw, ok := r.kv.Get(storage.KeyRate)
	if !ok {
		return models.RateSnapshot{}, false
	}
	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return models.RateSnapshot{}, false
	}
	asOf, _ := r.kv.Get(storage.KeyRateDate)
	source, _ := r.kv.Get(storage.KeyRateSource)
	return models.RateSnapshot{Rate: rate, AsOf: asOf, Source: source}, true
}

func (r *Resolver) cache(s models.RateSnapshot) {
	if err := r.kv.Set(storage.KeyRate, strconv.FormatFloat(s.Rate, 'f', -1, 64)); err != nil {
		r.logger.Warn("failed to cache exchange rate", "error", err)
		return
	}
	r.kv.Set(storage.KeyRateDate, s.AsOf)
	r.kv.Set(storage.KeyRateSource, s.Source)
}

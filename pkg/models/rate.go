package models

// RateSnapshot is the cached USD→CAD conversion factor. Refreshed at most
// once per calendar day; read on every refresh run.
type RateSnapshot struct {
	Rate float64 `json:"rate"`
	// AsOf is the calendar date the rate was fetched, in the format
	// produced by time.Time.Format("2006-01-02").
	AsOf   string `json:"asOf"`
	Source string `json:"source"`
}

// Rate sources, recorded so users can tell how fresh a displayed price is.
const (
	RateSourceStale     = "stale cache"
	RateSourceHardcoded = "hardcoded default"
)

package models

// Reason classifies why a game could not be priced during a refresh run.
type Reason string

const (
	// NotFound means no catalog entry matched the owned title, even after
	// fuzzy matching.
	NotFound Reason = "not_found"
	// NoSalesData means the title matched but every usable price field was
	// empty or zero. Softer than NotFound: the product exists, it just has
	// no computable price.
	NoSalesData Reason = "no_sales_data"
	// FetchFailed means the whole console catalog could not be downloaded,
	// including timeouts and cancelled requests.
	FetchFailed Reason = "fetch_failed"
	// ParseFailed means the catalog payload could not be interpreted.
	ParseFailed Reason = "parse_failed"
)

// Result is one successfully priced game out of a refresh run.
type Result struct {
	GameID         string  `json:"id"`
	MatchedProduct string  `json:"matchedProduct"`
	PriceField     string  `json:"priceField"`
	RawPrice       string  `json:"rawPrice"`
	PriceUSD       float64 `json:"priceUsd"`
	PriceCAD       float64 `json:"priceCad"`
	ExchangeRate   float64 `json:"exchangeRate"`
	// IsCADPrice is set when the provider already quoted the price in CAD
	// ("C$" prefix), so no conversion was applied.
	IsCADPrice bool `json:"isCadPrice"`
}

// Error is one per-game failure out of a refresh run. Failures are
// collected, never raised: a refresh always completes.
type Error struct {
	GameID  string `json:"id"`
	Title   string `json:"title"`
	Reason  Reason `json:"reason"`
	Message string `json:"message"`
}

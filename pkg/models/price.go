package models

// PriceRecord is one row of price-guide data as downloaded from the
// provider. Keys come from the CSV header (product-name, console-name,
// loose-price, complete-price, new-price, graded-price, box-only-price,
// manual-only-price, ...); values are kept verbatim, usually
// currency-formatted strings like "$45.99" or "N/A".
type PriceRecord map[string]string

// PriceFields are all price columns a record can carry, in the order used
// when falling back from an empty condition-specific field.
var PriceFields = []string{
	"loose-price",
	"complete-price",
	"new-price",
	"box-only-price",
	"manual-only-price",
	"graded-price",
}

func (r PriceRecord) ProductName() string { return r["product-name"] }
func (r PriceRecord) ConsoleName() string { return r["console-name"] }

// HasPrice reports whether the given field holds a usable, non-zero price.
func (r PriceRecord) HasPrice(field string) bool {
	return UsablePrice(r[field])
}

// UsablePrice reports whether a raw price string carries an actual amount.
// The provider uses "N/A", "$0", "0" and the empty string interchangeably
// for "no sales data".
func UsablePrice(raw string) bool {
	switch raw {
	case "", "N/A", "$0", "0":
		return false
	}
	return true
}

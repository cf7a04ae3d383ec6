package pricing

import (
	"strconv"
	"strings"

	"gamestash/pkg/models"
)

// conditionFields maps an item's condition to the catalog price column
// that applies to it.
var conditionFields = map[models.Condition]string{
	models.CartOnly:      "loose-price",
	models.Loose:         "loose-price",
	models.CompleteInBox: "complete-price",
	models.NewSealed:     "new-price",
	models.BoxOnly:       "box-only-price",
	models.ManualOnly:    "manual-only-price",
	models.Graded:        "graded-price",
}

// FieldForCondition returns the price column for a condition, defaulting
// to loose-price for anything unrecognized.
func FieldForCondition(c models.Condition) string {
	if field, ok := conditionFields[c]; ok {
		return field
	}
	return "loose-price"
}

// selectPrice picks the usable raw price for a game's condition. When the
// condition's own column is empty or zero it falls back through every
// price column in order and takes the first usable one. The returned raw
// value may still be unusable when the record has no sales data at all.
func selectPrice(record models.PriceRecord, condition models.Condition) (field, raw string) {
	field = FieldForCondition(condition)
	raw = record[field]
	if models.UsablePrice(raw) {
		return field, raw
	}

	for _, candidate := range models.PriceFields {
		if models.UsablePrice(record[candidate]) {
			return candidate, record[candidate]
		}
	}
	return field, raw
}

// convertPrice parses a raw catalog price and normalizes it to both
// currencies. Prices prefixed "C$" or "C " are already CAD and are not
// converted; everything else is USD. Unparseable amounts come back as
// zero, mirroring how the feed uses empty fields for missing data.
func convertPrice(raw string, rate float64) (usd, cad float64, isCAD bool) {
	if strings.HasPrefix(raw, "C$") || strings.HasPrefix(raw, "C ") {
		clean := strings.NewReplacer("C", "", "$", "", " ", "").Replace(raw)
		cad, _ = strconv.ParseFloat(clean, 64)
		return cad / rate, cad, true
	}

	clean := strings.NewReplacer("$", "", ",", "").Replace(raw)
	usd, _ = strconv.ParseFloat(strings.TrimSpace(clean), 64)
	return usd, usd * rate, false
}

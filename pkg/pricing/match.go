package pricing

import (
	"strings"
	"unicode"

	"gamestash/pkg/models"
)

// stopWords are dropped before fuzzy comparison so that articles and
// connectives do not block a match ("The Legend of Zelda" vs
// "Legend of Zelda, The").
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "of": true, "with": true, "by": true,
}

// normalizeTitle lowercases, strips punctuation, removes stop words, and
// collapses whitespace.
func normalizeTitle(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '_' {
			b.WriteRune(r)
		}
	}

	words := strings.Fields(b.String())
	kept := words[:0]
	for _, w := range words {
		if !stopWords[w] {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

// exactMatch returns the first record whose product name equals the title,
// case-insensitively.
func exactMatch(title string, records []models.PriceRecord) (models.PriceRecord, bool) {
	for _, r := range records {
		if r.ProductName() != "" && strings.EqualFold(r.ProductName(), title) {
			return r, true
		}
	}
	return nil, false
}

// fuzzyMatch accepts a record when either normalized name contains the
// other. First matching record in catalog order wins; there is no scoring
// beyond containment.
func fuzzyMatch(title string, records []models.PriceRecord) (models.PriceRecord, bool) {
	normalized := normalizeTitle(title)
	if normalized == "" {
		return nil, false
	}
	for _, r := range records {
		product := normalizeTitle(r.ProductName())
		if product == "" {
			continue
		}
		if strings.Contains(product, normalized) || strings.Contains(normalized, product) {
			return r, true
		}
	}
	return nil, false
}

// Package pricecsv parses the comma-delimited price-guide downloads served
// by PriceCharting. The feed is plain comma-separated text with a header
// row; fields are sometimes wrapped in double quotes but never contain
// embedded delimiters, so no quote escaping is handled. This is a
// documented limitation of the upstream format, not something to fix here.
package pricecsv

import (
	"strings"

	"gamestash/pkg/models"
)

// Parse splits raw catalog text into one record per non-blank data line.
// The first line defines the field names; missing trailing fields map to
// the empty string. Malformed rows are kept as-is, only fully blank lines
// are skipped, and original order is preserved.
func Parse(text string) []models.PriceRecord {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 {
		return nil
	}

	headers := splitFields(lines[0])

	records := make([]models.PriceRecord, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		values := splitFields(line)
		record := make(models.PriceRecord, len(headers))
		for i, header := range headers {
			if i < len(values) {
				record[header] = values[i]
			} else {
				record[header] = ""
			}
		}
		records = append(records, record)
	}
	return records
}

func splitFields(line string) []string {
	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(strings.ReplaceAll(fields[i], `"`, ""))
	}
	return fields
}

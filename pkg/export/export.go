// Package export renders the inventory as CSV for spreadsheets.
package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"gamestash/pkg/models"
)

// FilterFunc decides which games make it into the export.
type FilterFunc func(models.Game) bool

// CSV renders games as comma-separated text with a header row. A nil
// filter exports everything. Titles like "Legend of Zelda, The" get
// quoted, so the output survives a round trip through a spreadsheet.
func CSV(games []models.Game, filter FilterFunc) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"Console", "Title", "Quantity", "Condition", "CurrentPrice", "LastPrice"})
	for _, g := range games {
		if filter == nil || filter(g) {
			w.Write([]string{
				g.Console,
				g.Title,
				strconv.Itoa(g.Quantity),
				string(g.Condition),
				strconv.FormatFloat(g.CurrentPrice, 'f', 2, 64),
				strconv.FormatFloat(g.LastPrice, 'f', 2, 64),
			})
		}
	}
	w.Flush()
	return buf.Bytes()
}

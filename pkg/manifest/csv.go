package manifest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"gamestash/pkg/models"
)

// LoadCSV parses a manifest in spreadsheet-export form, expecting the
// header console,title,quantity,condition. Quantity and condition are
// optional columns. Malformed rows are skipped, not fatal.
func (l *Loader) LoadCSV(data []byte) ([]models.Game, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // allow ragged rows, validated below

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("csv manifest has no data rows")
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"console", "title"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("csv manifest missing %q column", required)
		}
	}

	cell := func(row []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	games := make([]models.Game, 0, len(rows)-1)
	for i, row := range rows[1:] {
		entry := Entry{
			Console:   cell(row, "console"),
			Title:     cell(row, "title"),
			Condition: cell(row, "condition"),
		}
		if q := cell(row, "quantity"); q != "" {
			entry.Quantity, _ = strconv.Atoi(q)
		}

		game, err := l.toGame(entry)
		if err != nil {
			l.logger.Debug("skipping csv row", "line", i+2, "error", err)
			continue
		}
		games = append(games, game)
	}
	return games, nil
}

package manifest

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/extrame/xls"

	"gamestash/pkg/models"
)

// LoadXLS parses a legacy Excel manifest. The first sheet is scanned for
// rows of console, title, quantity, condition; a header row naming those
// columns is skipped when present.
func (l *Loader) LoadXLS(data []byte) ([]models.Game, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("error opening workbook: %w", err)
	}

	rows := workbook.ReadAllCells(10000)
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in sheet")
	}

	var games []models.Game
	for i, row := range rows {
		if len(row) < 2 {
			continue
		}
		if i == 0 && strings.EqualFold(strings.TrimSpace(row[0]), "console") {
			continue
		}

		entry := Entry{
			Console: strings.TrimSpace(row[0]),
			Title:   strings.TrimSpace(row[1]),
		}
		if len(row) > 2 {
			entry.Quantity, _ = strconv.Atoi(strings.TrimSpace(row[2]))
		}
		if len(row) > 3 {
			entry.Condition = strings.TrimSpace(row[3])
		}

		game, err := l.toGame(entry)
		if err != nil {
			l.logger.Debug("skipping xls row", "row", i+1, "error", err)
			continue
		}
		games = append(games, game)
	}

	if len(games) == 0 {
		return nil, fmt.Errorf("xls manifest has no usable rows")
	}
	return games, nil
}

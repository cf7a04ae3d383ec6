// Package manifest loads collection manifests: files listing games to
// bulk-import into the inventory. YAML is the native format; CSV and XLS
// are accepted because that is what collectors actually keep their lists
// in.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"gamestash/pkg/models"
)

// Entry is one game in a manifest file.
type Entry struct {
	Console   string `yaml:"console"`
	Title     string `yaml:"title"`
	Quantity  int    `yaml:"quantity"`
	Condition string `yaml:"condition"`
}

// Manifest is the YAML document shape.
type Manifest struct {
	Games []Entry `yaml:"games"`
}

// Loader turns manifest files into games ready for the store.
type Loader struct {
	logger *log.Logger
}

func NewLoader(logger *log.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads a manifest, picking the parser from the file extension.
func (l *Loader) Load(path string) ([]models.Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return l.LoadYAML(data)
	case ".csv":
		return l.LoadCSV(data)
	case ".xls":
		return l.LoadXLS(data)
	default:
		return nil, fmt.Errorf("unsupported manifest format %q", filepath.Ext(path))
	}
}

// LoadYAML parses the native manifest format.
func (l *Loader) LoadYAML(data []byte) ([]models.Game, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	if len(m.Games) == 0 {
		return nil, fmt.Errorf("manifest has no games")
	}

	games := make([]models.Game, 0, len(m.Games))
	for i, entry := range m.Games {
		game, err := l.toGame(entry)
		if err != nil {
			l.logger.Debug("skipping manifest entry", "index", i, "error", err)
			continue
		}
		games = append(games, game)
	}
	return games, nil
}

func (l *Loader) toGame(entry Entry) (models.Game, error) {
	if entry.Title == "" || entry.Console == "" {
		return models.Game{}, fmt.Errorf("console and title are required")
	}

	quantity := entry.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	condition := models.CartOnly
	if entry.Condition != "" {
		parsed, err := models.ParseCondition(entry.Condition)
		if err != nil {
			return models.Game{}, err
		}
		condition = parsed
	}

	return models.Game{
		Console:   entry.Console,
		Title:     entry.Title,
		Quantity:  quantity,
		Condition: condition,
	}, nil
}

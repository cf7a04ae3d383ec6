package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"gamestash/pkg/models"
)

func TestLoadYAML(t *testing.T) {
	data := []byte(`games:
  - console: NES
    title: Golf
    quantity: 2
    condition: Loose
  - console: SNES
    title: Super Metroid
  - console: ""
    title: Broken
`)

	games, err := NewLoader(log.Default()).LoadYAML(data)
	if err != nil {
		t.Fatalf("LoadYAML failed: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("expected 2 games (bad row skipped), got %d", len(games))
	}

	if games[0].Title != "Golf" || games[0].Quantity != 2 || games[0].Condition != models.Loose {
		t.Errorf("first game wrong: %+v", games[0])
	}
	// Defaults: quantity 1, condition Cart Only.
	if games[1].Quantity != 1 || games[1].Condition != models.CartOnly {
		t.Errorf("defaults not applied: %+v", games[1])
	}
}

func TestLoadYAMLEmpty(t *testing.T) {
	if _, err := NewLoader(log.Default()).LoadYAML([]byte("games: []")); err == nil {
		t.Error("expected error for empty manifest")
	}
}

func TestLoadCSV(t *testing.T) {
	data := []byte("console,title,quantity,condition\nNES,Golf,2,Loose\nSNES,Super Metroid,,\n,missing console,1,Loose\n")

	games, err := NewLoader(log.Default()).LoadCSV(data)
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(games))
	}
	if games[0].Console != "NES" || games[0].Quantity != 2 {
		t.Errorf("first game wrong: %+v", games[0])
	}
	if games[1].Quantity != 1 {
		t.Errorf("missing quantity should default to 1: %+v", games[1])
	}
}

func TestLoadCSVMissingColumns(t *testing.T) {
	if _, err := NewLoader(log.Default()).LoadCSV([]byte("title\nGolf\n")); err == nil {
		t.Error("expected error for manifest without console column")
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.txt")
	if err := os.WriteFile(path, []byte("whatever"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewLoader(log.Default()).Load(path); err == nil {
		t.Error("expected error for unsupported format")
	}
}

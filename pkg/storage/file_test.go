package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func TestFileKVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")

	kv := OpenFile(path, log.Default())
	if err := kv.Set(KeyRate, "1.37"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := kv.Set(KeyRateSource, "Bank of Canada"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	reopened := OpenFile(path, log.Default())
	if v, ok := reopened.Get(KeyRate); !ok || v != "1.37" {
		t.Errorf("Get(%s) = %q, %v; want 1.37, true", KeyRate, v, ok)
	}
	if v, _ := reopened.Get(KeyRateSource); v != "Bank of Canada" {
		t.Errorf("Get(%s) = %q", KeyRateSource, v)
	}
}

func TestFileKVMissingAndCorrupt(t *testing.T) {
	missing := OpenFile(filepath.Join(t.TempDir(), "nope.json"), log.Default())
	if _, ok := missing.Get(KeyInventory); ok {
		t.Error("missing snapshot should start empty")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	corrupt := OpenFile(path, log.Default())
	if _, ok := corrupt.Get(KeyInventory); ok {
		t.Error("corrupt snapshot should start empty")
	}
	// A corrupt store must still accept writes.
	if err := corrupt.Set(KeyRate, "1.35"); err != nil {
		t.Fatalf("Set after corrupt load failed: %v", err)
	}
}

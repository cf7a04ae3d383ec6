package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// FileKV persists all keys as one JSON object in a single file. The file
// is read once at open; every Set rewrites it through a temp-file rename
// so a crash mid-write cannot leave a truncated snapshot behind.
type FileKV struct {
	path   string
	data   map[string]string
	logger *log.Logger
}

// OpenFile loads the snapshot at path. A missing or corrupt file is not an
// error: the store starts empty and the caller falls back to its seed
// data. Startup must never fail on bad local state.
func OpenFile(path string, logger *log.Logger) *FileKV {
	kv := &FileKV{
		path:   path,
		data:   make(map[string]string),
		logger: logger,
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("could not read snapshot, starting empty", "path", path, "error", err)
		}
		return kv
	}
	if err := json.Unmarshal(raw, &kv.data); err != nil {
		logger.Warn("corrupt snapshot, starting empty", "path", path, "error", err)
		kv.data = make(map[string]string)
	}
	return kv
}

func (kv *FileKV) Get(key string) (string, bool) {
	v, ok := kv.data[key]
	return v, ok
}

func (kv *FileKV) Set(key, value string) error {
	kv.data[key] = value
	return kv.flush()
}

func (kv *FileKV) flush() error {
	raw, err := json.MarshalIndent(kv.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	dir := filepath.Dir(kv.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".gamestash-*")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), kv.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

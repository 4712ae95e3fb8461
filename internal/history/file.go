package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/flight-deals/flight-deal-radar/internal/domain"
)

// FileStore persists the price history as a single JSON file. Writes go
// through a temp file and an atomic rename so a crash mid-save never leaves
// a truncated store behind.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store at the given path. The file is
// created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the store file. A missing file yields an empty mapping; an
// unreadable or corrupt file yields a wrapped ErrCacheUnavailable so the
// caller can degrade to an empty history.
func (s *FileStore) Load(_ context.Context) (PriceHistory, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return PriceHistory{}, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrCacheUnavailable, s.path, err)
	}

	var h PriceHistory
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrCacheUnavailable, s.path, err)
	}
	if h == nil {
		h = PriceHistory{}
	}
	return h, nil
}

// Save writes the full mapping atomically.
func (s *FileStore) Save(_ context.Context, h PriceHistory) error {
	data, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp store: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}

var _ Store = (*FileStore)(nil)

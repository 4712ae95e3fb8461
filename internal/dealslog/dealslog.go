// Package dealslog keeps a per-date record of each scan's ranked output,
// read by the dashboard. It is append-only: every scan's result is added
// under the date it ran.
package dealslog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/flight-deals/flight-deal-radar/internal/domain"
)

// Log is a JSON-file-backed deals log. Writes replace the whole file via
// an atomic rename, matching the price-history file store.
type Log struct {
	path string
	mu   sync.Mutex
}

// NewLog creates a deals log at the given path. The file is created on
// first append.
func NewLog(path string) *Log {
	return &Log{path: path}
}

// Append records a scan result under the given date (YYYY-MM-DD).
func (l *Log) Append(date string, result *domain.ScanResult) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := l.read()
	if err != nil {
		return err
	}
	data[date] = append(data[date], *result)
	return l.write(data)
}

// Dates returns every recorded date, most recent first.
func (l *Log) Dates() ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := l.read()
	if err != nil {
		return nil, err
	}
	dates := make([]string, 0, len(data))
	for d := range data {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates, nil
}

// Get returns the scan results recorded for a date. A date with no
// entries returns an empty slice.
func (l *Log) Get(date string) ([]domain.ScanResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := l.read()
	if err != nil {
		return nil, err
	}
	results := data[date]
	if results == nil {
		results = []domain.ScanResult{}
	}
	return results, nil
}

// read loads the log file; a missing file yields an empty mapping.
// Caller must hold l.mu.
func (l *Log) read() (map[string][]domain.ScanResult, error) {
	raw, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string][]domain.ScanResult{}, nil
		}
		return nil, fmt.Errorf("read deals log: %w", err)
	}

	var data map[string][]domain.ScanResult
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode deals log: %w", err)
	}
	if data == nil {
		data = map[string][]domain.ScanResult{}
	}
	return data, nil
}

// write persists the mapping atomically. Caller must hold l.mu.
func (l *Log) write(data map[string][]domain.ScanResult) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode deals log: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(l.path), filepath.Base(l.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp deals log: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp deals log: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp deals log: %w", err)
	}
	if err := os.Rename(tmpPath, l.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace deals log: %w", err)
	}
	return nil
}

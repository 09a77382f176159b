// Package cache persists the ingredient table as a local CSV file so carts
// can still be built when the spreadsheet is unreachable.
package cache

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
)

// Store reads and writes the ingredient table at a fixed path.
type Store struct {
	path string
}

// NewStore creates a Store backed by the given CSV file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the cached table. Rows keep whatever width they were saved
// with; width validation belongs to the parser.
func (s *Store) Load() ([][]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file %s: %w", s.path, err)
	}
	return rows, nil
}

// Save overwrites the cache with the given rows.
func (s *Store) Save(rows [][]string) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write cache file %s: %w", s.path, err)
	}
	return nil
}

// LoadTable satisfies the app's table source contract, letting the cache
// stand in for the spreadsheet when the remote fetch fails.
func (s *Store) LoadTable(_ context.Context) ([][]string, error) {
	return s.Load()
}

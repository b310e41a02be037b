package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"ytdiff-go/pkg/differ"
	"ytdiff-go/pkg/extractor"
)

// MemoryStore keeps records in memory, keyed by name. It backs the review
// API and tests. Values are stored as marshaled JSON so that loaded records
// are independent copies.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
	results map[string][]byte
}

// NewMemoryStore creates an empty in-memory record store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string][]byte),
		results: make(map[string][]byte),
	}
}

// SaveRecord stores a validated extraction record under key.
func (m *MemoryStore) SaveRecord(ctx context.Context, key string, record *extractor.ExtractionRecord) error {
	if err := ValidateRecord(record); err != nil {
		return err
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode record %q: %w", key, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = data
	return nil
}

// LoadRecord returns a copy of the record stored under key.
func (m *MemoryStore) LoadRecord(ctx context.Context, key string) (*extractor.ExtractionRecord, error) {
	m.mu.RLock()
	data, ok := m.records[key]
	m.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("no record for %q: %w", key, ErrNotFound)
	}
	return DecodeRecord(data)
}

// SaveResult stores a comparison result under key.
func (m *MemoryStore) SaveResult(ctx context.Context, key string, result *differ.ComparisonResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result %q: %w", key, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[key] = data
	return nil
}

// Sources lists the keys of all stored records.
func (m *MemoryStore) Sources() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.records))
	for k := range m.records {
		keys = append(keys, k)
	}
	return keys
}

package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"ytdiff-go/pkg/differ"
	"ytdiff-go/pkg/extractor"
	"ytdiff-go/pkg/logger"
)

// FileStore reads and writes records as pretty-printed JSON files. Writes
// are marshal-then-rename, so a failed run never leaves partial output.
type FileStore struct {
	log *logger.Logger
}

// NewFileStore creates a new file-backed record store.
func NewFileStore() *FileStore {
	return &FileStore{
		log: logger.GetLogger().WithField("component", "file_store"),
	}
}

// SaveRecord writes an extraction record to path.
func (s *FileStore) SaveRecord(ctx context.Context, path string, record *extractor.ExtractionRecord) error {
	if err := ValidateRecord(record); err != nil {
		return err
	}
	return s.writeJSON(path, record)
}

// LoadRecord reads and validates an extraction record from path.
func (s *FileStore) LoadRecord(ctx context.Context, path string) (*extractor.ExtractionRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	record, err := DecodeRecord(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	s.log.WithFields(map[string]interface{}{
		"path":  path,
		"count": record.Count,
	}).Debug("Record loaded")

	return record, nil
}

// SaveResult writes a comparison result to path.
func (s *FileStore) SaveResult(ctx context.Context, path string, result *differ.ComparisonResult) error {
	return s.writeJSON(path, result)
}

func (s *FileStore) writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	s.log.WithField("path", path).Debug("File written")
	return nil
}

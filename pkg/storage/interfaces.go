package storage

import (
	"context"
	"errors"

	"ytdiff-go/pkg/differ"
	"ytdiff-go/pkg/extractor"
)

// RecordStore persists extraction records and comparison results. The key is
// a file path for the file-backed store and an opaque name for the in-memory
// one.
type RecordStore interface {
	SaveRecord(ctx context.Context, key string, record *extractor.ExtractionRecord) error
	LoadRecord(ctx context.Context, key string) (*extractor.ExtractionRecord, error)
	SaveResult(ctx context.Context, key string, result *differ.ComparisonResult) error
}

// ErrRecordFormat marks input that is not a structurally valid extraction
// record. Wrapped errors carry the specific violation.
var ErrRecordFormat = errors.New("not a valid extraction record")

// ErrNotFound marks a missing key in stores with their own keyspace.
var ErrNotFound = errors.New("record not found")

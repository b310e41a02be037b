package storage

import (
	"encoding/json"
	"fmt"

	"ytdiff-go/pkg/extractor"
)

// DecodeRecord parses raw JSON into a validated extraction record.
func DecodeRecord(data []byte) (*extractor.ExtractionRecord, error) {
	var record extractor.ExtractionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecordFormat, err)
	}
	if err := ValidateRecord(&record); err != nil {
		return nil, err
	}
	return &record, nil
}

// ValidateRecord checks the structural invariants every record must hold
// before it can take part in a comparison.
func ValidateRecord(record *extractor.ExtractionRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is missing", ErrRecordFormat)
	}
	if record.Entries == nil {
		return fmt.Errorf("%w: missing entries list", ErrRecordFormat)
	}
	for i, e := range record.Entries {
		if e.URL == "" {
			return fmt.Errorf("%w: entry %d has no url", ErrRecordFormat, i)
		}
	}
	if record.Count != len(record.Entries) {
		return fmt.Errorf("%w: count %d does not match %d entries", ErrRecordFormat, record.Count, len(record.Entries))
	}
	return nil
}

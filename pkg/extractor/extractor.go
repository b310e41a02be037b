package extractor

import (
	"context"
	"io"
	"time"

	"ytdiff-go/pkg/logger"
	"ytdiff-go/pkg/parser"
)

// ChannelExtractor turns one saved channel page into an ExtractionRecord.
type ChannelExtractor struct {
	parser  parser.ChannelParser
	filters []Filter
	now     func() time.Time
	log     *logger.Logger
}

// NewChannelExtractor creates an extractor with the default parser chain and
// first-seen deduplication.
func NewChannelExtractor() *ChannelExtractor {
	return &ChannelExtractor{
		parser:  parser.NewFallbackParser(),
		filters: []Filter{NewDuplicateFilter("dedup")},
		now:     time.Now,
		log:     logger.GetLogger().WithField("component", "channel_extractor"),
	}
}

// SetParser allows injection of a different parsing strategy.
func (e *ChannelExtractor) SetParser(p parser.ChannelParser) {
	e.parser = p
}

// SetFilters replaces the post-processing filter chain. Callers that still
// want deduplicated records must include a DuplicateFilter themselves.
func (e *ChannelExtractor) SetFilters(filters []Filter) {
	e.filters = filters
}

// SetClock overrides the timestamp source.
func (e *ChannelExtractor) SetClock(now func() time.Time) {
	e.now = now
}

// Extract parses one HTML document and assembles the record for it. A page
// with no video links yields a valid record with zero entries.
func (e *ChannelExtractor) Extract(ctx context.Context, r io.Reader, source string) (*ExtractionRecord, error) {
	videos, err := e.parser.Parse(ctx, r)
	if err != nil {
		return nil, err
	}

	entries := make([]VideoEntry, 0, len(videos))
	for _, v := range videos {
		entries = append(entries, VideoEntry{URL: v.URL, Title: v.Title})
	}

	for _, f := range e.filters {
		entries = f.Apply(entries)
	}

	record := &ExtractionRecord{
		Source:      source,
		ExtractedAt: e.now().UTC().Format(time.RFC3339),
		Count:       len(entries),
		Entries:     entries,
	}

	e.log.WithFields(map[string]interface{}{
		"source": source,
		"found":  len(videos),
		"kept":   record.Count,
	}).Info("Extraction completed")

	return record, nil
}

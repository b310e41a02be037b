package differ

import (
	"context"

	"ytdiff-go/pkg/extractor"
)

// ComparisonResult is the outcome of set-differencing two extraction
// records. The three URL groups partition the union of both records' URL
// sets. In quiet mode the list fields are omitted; counts are always set.
type ComparisonResult struct {
	First  string `json:"first"`
	Second string `json:"second"`

	OnlyInFirst  []string `json:"only_in_first,omitempty"`
	OnlyInSecond []string `json:"only_in_second,omitempty"`
	Common       []string `json:"common,omitempty"`

	OnlyInFirstCount  int `json:"only_in_first_count"`
	OnlyInSecondCount int `json:"only_in_second_count"`
	CommonCount       int `json:"common_count"`
	TotalUnique       int `json:"total_unique"`
}

// HasDifferences reports whether any URL is exclusive to one side.
func (r *ComparisonResult) HasDifferences() bool {
	return r.OnlyInFirstCount > 0 || r.OnlyInSecondCount > 0
}

// Options control the verbosity of a comparison.
type Options struct {
	// Quiet drops the detailed URL lists from the result, keeping counts.
	Quiet bool
}

// Comparator produces a ComparisonResult from two extraction records.
type Comparator interface {
	Compare(ctx context.Context, first, second *extractor.ExtractionRecord, opts Options) (*ComparisonResult, error)
}

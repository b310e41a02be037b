package differ

import (
	"context"
	"fmt"

	"ytdiff-go/pkg/extractor"
	"ytdiff-go/pkg/logger"
)

// URLDiffer implements Comparator over the URL strings stored in the
// records. URLs are compared exactly as stored; normalization happened at
// extraction time and is not repeated here.
type URLDiffer struct {
	log *logger.Logger
}

// NewURLDiffer creates a new record comparator.
func NewURLDiffer() *URLDiffer {
	return &URLDiffer{
		log: logger.GetLogger().WithField("component", "url_differ"),
	}
}

// Compare computes first−second, second−first and the intersection.
// Output ordering is deterministic: only_in_first and common follow the
// first record's entry order, only_in_second follows the second's.
func (d *URLDiffer) Compare(ctx context.Context, first, second *extractor.ExtractionRecord, opts Options) (*ComparisonResult, error) {
	if first == nil || second == nil {
		return nil, fmt.Errorf("both records are required for comparison")
	}

	firstOrder, firstSet := urlSet(first)
	secondOrder, secondSet := urlSet(second)

	onlyInFirst := make([]string, 0)
	onlyInSecond := make([]string, 0)
	common := make([]string, 0)

	for _, u := range firstOrder {
		if _, ok := secondSet[u]; ok {
			common = append(common, u)
		} else {
			onlyInFirst = append(onlyInFirst, u)
		}
	}
	for _, u := range secondOrder {
		if _, ok := firstSet[u]; !ok {
			onlyInSecond = append(onlyInSecond, u)
		}
	}

	result := &ComparisonResult{
		First:             first.Source,
		Second:            second.Source,
		OnlyInFirstCount:  len(onlyInFirst),
		OnlyInSecondCount: len(onlyInSecond),
		CommonCount:       len(common),
		TotalUnique:       len(firstSet) + len(onlyInSecond),
	}
	if !opts.Quiet {
		result.OnlyInFirst = onlyInFirst
		result.OnlyInSecond = onlyInSecond
		result.Common = common
	}

	d.log.WithFields(map[string]interface{}{
		"first":          first.Source,
		"second":         second.Source,
		"only_in_first":  result.OnlyInFirstCount,
		"only_in_second": result.OnlyInSecondCount,
		"common":         result.CommonCount,
	}).Info("Comparison completed")

	return result, nil
}

// urlSet returns the record's URLs in first-seen order plus a lookup set.
// Records are deduplicated at extraction time, but hand-edited input files
// may repeat URLs; repeats collapse here too.
func urlSet(record *extractor.ExtractionRecord) ([]string, map[string]struct{}) {
	order := make([]string, 0, len(record.Entries))
	set := make(map[string]struct{}, len(record.Entries))

	for _, e := range record.Entries {
		if _, seen := set[e.URL]; seen {
			continue
		}
		set[e.URL] = struct{}{}
		order = append(order, e.URL)
	}

	return order, set
}

package differ

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ytdiff-go/pkg/extractor"
)

func record(source string, urls ...string) *extractor.ExtractionRecord {
	entries := make([]extractor.VideoEntry, 0, len(urls))
	for _, u := range urls {
		entries = append(entries, extractor.VideoEntry{URL: u})
	}
	return &extractor.ExtractionRecord{
		Source:  source,
		Count:   len(entries),
		Entries: entries,
	}
}

func TestCompare(t *testing.T) {
	a := record("a.json", "AAA", "BBB", "CCC")
	b := record("b.json", "BBB", "CCC", "DDD")

	result, err := NewURLDiffer().Compare(context.Background(), a, b, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"AAA"}, result.OnlyInFirst)
	assert.Equal(t, []string{"DDD"}, result.OnlyInSecond)
	assert.Equal(t, []string{"BBB", "CCC"}, result.Common)
	assert.Equal(t, 1, result.OnlyInFirstCount)
	assert.Equal(t, 1, result.OnlyInSecondCount)
	assert.Equal(t, 2, result.CommonCount)
	assert.Equal(t, 4, result.TotalUnique)
	assert.Equal(t, "a.json", result.First)
	assert.Equal(t, "b.json", result.Second)
	assert.True(t, result.HasDifferences())
}

func TestCompareSymmetry(t *testing.T) {
	pairs := []struct {
		a, b *extractor.ExtractionRecord
	}{
		{record("a", "AAA", "BBB", "CCC"), record("b", "BBB", "CCC", "DDD")},
		{record("a"), record("b", "XXX")},
		{record("a", "AAA"), record("b", "AAA")},
		{record("a", "AAA", "BBB"), record("b", "CCC", "DDD")},
	}

	d := NewURLDiffer()
	ctx := context.Background()
	for _, pair := range pairs {
		forward, err := d.Compare(ctx, pair.a, pair.b, Options{})
		require.NoError(t, err)
		backward, err := d.Compare(ctx, pair.b, pair.a, Options{})
		require.NoError(t, err)

		assert.Equal(t, forward.OnlyInFirst, backward.OnlyInSecond)
		assert.Equal(t, forward.OnlyInSecond, backward.OnlyInFirst)
		assert.Equal(t, forward.CommonCount, backward.CommonCount)
		assert.Equal(t, forward.TotalUnique, backward.TotalUnique)
	}
}

func TestComparePartition(t *testing.T) {
	a := record("a", "AAA", "BBB", "CCC", "EEE")
	b := record("b", "BBB", "DDD", "CCC")

	result, err := NewURLDiffer().Compare(context.Background(), a, b, Options{})
	require.NoError(t, err)

	// The three groups must partition the union: no overlap, no omission.
	union := make(map[string]int)
	for _, u := range result.OnlyInFirst {
		union[u]++
	}
	for _, u := range result.OnlyInSecond {
		union[u]++
	}
	for _, u := range result.Common {
		union[u]++
	}

	for u, n := range union {
		assert.Equal(t, 1, n, "url %s appears in %d groups", u, n)
	}
	for _, u := range append(a.URLs(), b.URLs()...) {
		assert.Contains(t, union, u)
	}
	assert.Len(t, union, result.TotalUnique)
}

func TestCompareEmptyRecords(t *testing.T) {
	result, err := NewURLDiffer().Compare(context.Background(), record("a"), record("b"), Options{})
	require.NoError(t, err)

	assert.Empty(t, result.OnlyInFirst)
	assert.Empty(t, result.OnlyInSecond)
	assert.Empty(t, result.Common)
	assert.Zero(t, result.OnlyInFirstCount)
	assert.Zero(t, result.OnlyInSecondCount)
	assert.Zero(t, result.CommonCount)
	assert.Zero(t, result.TotalUnique)
	assert.False(t, result.HasDifferences())
}

func TestCompareOrderingIsDeterministic(t *testing.T) {
	a := record("a", "CCC", "AAA", "BBB", "EEE")
	b := record("b", "BBB", "FFF", "AAA")

	d := NewURLDiffer()
	ctx := context.Background()

	first, err := d.Compare(ctx, a, b, Options{})
	require.NoError(t, err)

	// only_in_first and common follow record a's order, only_in_second b's.
	assert.Equal(t, []string{"CCC", "EEE"}, first.OnlyInFirst)
	assert.Equal(t, []string{"AAA", "BBB"}, first.Common)
	assert.Equal(t, []string{"FFF"}, first.OnlyInSecond)

	for i := 0; i < 10; i++ {
		again, err := d.Compare(ctx, a, b, Options{})
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestCompareQuietMode(t *testing.T) {
	a := record("a", "AAA", "BBB")
	b := record("b", "BBB", "CCC")

	result, err := NewURLDiffer().Compare(context.Background(), a, b, Options{Quiet: true})
	require.NoError(t, err)

	assert.Nil(t, result.OnlyInFirst)
	assert.Nil(t, result.OnlyInSecond)
	assert.Nil(t, result.Common)
	assert.Equal(t, 1, result.OnlyInFirstCount)
	assert.Equal(t, 1, result.OnlyInSecondCount)
	assert.Equal(t, 1, result.CommonCount)
	assert.Equal(t, 3, result.TotalUnique)
}

func TestCompareNilRecord(t *testing.T) {
	_, err := NewURLDiffer().Compare(context.Background(), record("a"), nil, Options{})
	assert.Error(t, err)
}

func TestCompareCollapsesRepeatedURLs(t *testing.T) {
	// Hand-edited record files may repeat URLs; they count once.
	a := record("a", "AAA", "AAA", "BBB")
	b := record("b", "BBB")

	result, err := NewURLDiffer().Compare(context.Background(), a, b, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"AAA"}, result.OnlyInFirst)
	assert.Equal(t, 2, result.TotalUnique)
}

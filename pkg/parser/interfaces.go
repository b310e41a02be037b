package parser

import (
	"context"
	"errors"
	"io"
)

// Video is one video reference discovered in a saved channel page.
type Video struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

// ChannelParser extracts video references from a saved channel videos page.
// Implementations must return videos in document order and may return
// duplicates; deduplication is the extractor's job.
type ChannelParser interface {
	Parse(ctx context.Context, r io.Reader) ([]Video, error)
	Name() string
}

// ErrMalformedHTML marks input that cannot be processed as HTML at all. In
// practice this only fires when the reader or the encoding decode step fails:
// the HTML parser itself is error-tolerant, so arbitrary bytes (binary
// garbage included) parse to a document with no video links and yield a
// valid empty result instead.
var ErrMalformedHTML = errors.New("input is not parseable HTML")

// ErrNoInitialData marks pages without a usable ytInitialData payload. The
// fallback chain treats it as a signal to try the next strategy.
var ErrNoInitialData = errors.New("no ytInitialData payload found")

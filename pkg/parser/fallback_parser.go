package parser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"ytdiff-go/pkg/logger"
)

// FallbackParser reads the whole document once, normalizes its encoding and
// tries each strategy in order until one yields videos. A page where no
// strategy finds anything is a valid empty result, not an error.
type FallbackParser struct {
	parsers []ChannelParser
	log     *logger.Logger
}

// NewFallbackParser creates the default parser chain: ytInitialData first,
// anchor walking second.
func NewFallbackParser() *FallbackParser {
	return &FallbackParser{
		parsers: []ChannelParser{
			NewInitialDataParser(),
			NewAnchorParser(),
		},
		log: logger.GetLogger().WithField("component", "fallback_parser"),
	}
}

func (p *FallbackParser) Name() string {
	return "fallback"
}

// Parse runs the strategy chain over the decoded document.
func (p *FallbackParser) Parse(ctx context.Context, r io.Reader) ([]Video, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	decoded, err := DecodeHTML(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedHTML, err)
	}

	for _, sub := range p.parsers {
		videos, err := sub.Parse(ctx, bytes.NewReader(decoded))
		if err != nil {
			if errors.Is(err, ErrMalformedHTML) {
				return nil, err
			}
			p.log.WithError(err).WithField("parser", sub.Name()).Debug("Strategy yielded nothing, trying next")
			continue
		}
		if len(videos) > 0 {
			return videos, nil
		}
	}

	return nil, nil
}

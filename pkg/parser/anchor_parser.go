package parser

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"ytdiff-go/pkg/logger"
)

// AnchorParser is the fallback strategy for pages without a usable
// ytInitialData payload, e.g. snapshots saved after heavy DOM manipulation.
// It walks anchor elements in document order and keeps those whose href
// resolves to a video id. Navigation, ads and recommendation links fail the
// id check and are skipped silently.
type AnchorParser struct {
	log *logger.Logger
}

// NewAnchorParser creates a new anchor-walking parser.
func NewAnchorParser() *AnchorParser {
	return &AnchorParser{
		log: logger.GetLogger().WithField("component", "anchor_parser"),
	}
}

func (p *AnchorParser) Name() string {
	return "anchors"
}

// Parse scans all a[href] elements for recognizable video links.
func (p *AnchorParser) Parse(ctx context.Context, r io.Reader) ([]Video, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedHTML, err)
	}

	var videos []Video
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		id, ok := VideoID(href)
		if !ok {
			return
		}

		title := strings.TrimSpace(s.AttrOr("title", ""))
		if title == "" {
			// Collapse the anchor's rendered text; thumbnail-only anchors
			// yield an empty title, which is fine.
			title = strings.Join(strings.Fields(s.Text()), " ")
		}

		videos = append(videos, Video{URL: CanonicalURL(id), Title: title})
	})

	p.log.WithField("videos", len(videos)).Debug("Extracted videos from anchors")
	return videos, nil
}

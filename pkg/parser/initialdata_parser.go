package parser

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"

	"ytdiff-go/pkg/logger"
)

// InitialDataParser mines the ytInitialData JSON payload that YouTube embeds
// in a script element of every channel page. It is the preferred strategy:
// the payload lists exactly the videos rendered into the tab, with titles.
type InitialDataParser struct {
	log *logger.Logger
}

// NewInitialDataParser creates a new ytInitialData parser.
func NewInitialDataParser() *InitialDataParser {
	return &InitialDataParser{
		log: logger.GetLogger().WithField("component", "initialdata_parser"),
	}
}

func (p *InitialDataParser) Name() string {
	return "ytinitialdata"
}

// Parse locates the ytInitialData object and walks it for video renderers.
func (p *InitialDataParser) Parse(ctx context.Context, r io.Reader) ([]Video, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedHTML, err)
	}

	var payload string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		if !strings.Contains(text, "ytInitialData") {
			return true
		}
		if candidate, ok := sliceInitialData(text); ok && gjson.Valid(candidate) {
			payload = candidate
			return false
		}
		return true
	})

	if payload == "" {
		return nil, ErrNoInitialData
	}

	videos := collectVideos(gjson.Parse(payload))
	if len(videos) == 0 {
		return nil, ErrNoInitialData
	}

	p.log.WithField("videos", len(videos)).Debug("Extracted videos from ytInitialData")
	return videos, nil
}

// sliceInitialData returns the JSON object assigned to ytInitialData inside a
// script body, found by string-aware brace balancing.
func sliceInitialData(script string) (string, bool) {
	idx := strings.Index(script, "ytInitialData")
	if idx < 0 {
		return "", false
	}
	start := strings.IndexByte(script[idx:], '{')
	if start < 0 {
		return "", false
	}
	start += idx

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(script); i++ {
		ch := script[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return script[start : i+1], true
			}
		}
	}
	return "", false
}

// collectVideos walks the browse result tree for video renderers. The walk
// starts at the tabs node when present, which keeps unrelated page chrome
// (sidebar, header) out of the result.
func collectVideos(root gjson.Result) []Video {
	scope := root.Get("contents.twoColumnBrowseResultsRenderer.tabs")
	if !scope.Exists() {
		scope = root
	}

	var videos []Video
	walkRenderers(scope, &videos)
	return videos
}

func walkRenderers(node gjson.Result, out *[]Video) {
	if !node.IsObject() && !node.IsArray() {
		return
	}
	node.ForEach(func(key, value gjson.Result) bool {
		switch key.String() {
		// gridVideoRenderer: classic grid layout; videoRenderer: list and
		// rich-grid layouts; reelItemRenderer: Shorts shelves.
		case "gridVideoRenderer", "videoRenderer", "reelItemRenderer":
			if v, ok := videoFromRenderer(value); ok {
				*out = append(*out, v)
			}
		default:
			walkRenderers(value, out)
		}
		return true
	})
}

func videoFromRenderer(renderer gjson.Result) (Video, bool) {
	id := renderer.Get("videoId").String()
	if _, ok := validID(id); !ok {
		return Video{}, false
	}

	title := renderer.Get("title.runs.0.text").String()
	if title == "" {
		title = renderer.Get("title.simpleText").String()
	}
	if title == "" {
		title = renderer.Get("headline.simpleText").String()
	}

	return Video{URL: CanonicalURL(id), Title: strings.TrimSpace(title)}, true
}

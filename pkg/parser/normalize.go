package parser

import (
	"net/url"
	"regexp"
	"strings"
)

// CanonicalHost is the host every extracted video URL is rewritten to.
const CanonicalHost = "www.youtube.com"

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// CanonicalURL returns the normalized watch URL for a video id. This exact
// shape is the join key for record comparison, so it must stay stable.
func CanonicalURL(id string) string {
	return "https://" + CanonicalHost + "/watch?v=" + id
}

// VideoID extracts the video identifier from any recognized YouTube link
// shape: /watch?v=ID, /shorts/ID, /embed/ID, /live/ID and youtu.be/ID.
// Relative hrefs are treated as youtube.com paths. Tracking and playlist
// query parameters are ignored. An id is any non-empty run of URL-safe id
// characters; no length is assumed. Returns false for anything that does
// not carry a video id, which on a channel page is most links.
func VideoID(href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}

	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	host := strings.ToLower(u.Host)
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimPrefix(host, "m.")
	switch host {
	case "", "youtube.com", "youtube-nocookie.com":
	case "youtu.be":
		return validID(firstPathElement(u.Path))
	default:
		return "", false
	}

	path := u.Path
	switch {
	case path == "/watch" || path == "watch":
		return validID(u.Query().Get("v"))
	case strings.HasPrefix(path, "/shorts/"):
		return validID(firstPathElement(strings.TrimPrefix(path, "/shorts/")))
	case strings.HasPrefix(path, "/embed/"):
		return validID(firstPathElement(strings.TrimPrefix(path, "/embed/")))
	case strings.HasPrefix(path, "/live/"):
		return validID(firstPathElement(strings.TrimPrefix(path, "/live/")))
	}

	return "", false
}

func firstPathElement(path string) string {
	path = strings.TrimPrefix(path, "/")
	if idx := strings.IndexByte(path, '/'); idx >= 0 {
		path = path[:idx]
	}
	return path
}

func validID(id string) (string, bool) {
	if !videoIDPattern.MatchString(id) {
		return "", false
	}
	return id, true
}

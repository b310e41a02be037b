package extractor

// VideoEntry is one deduplicated video reference in an extraction record.
type VideoEntry struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

// ExtractionRecord is the persisted output of one extraction run. Entries
// are in first-seen document order with duplicates removed, and Count always
// equals len(Entries).
type ExtractionRecord struct {
	Source      string       `json:"source"`
	ExtractedAt string       `json:"extracted_at"`
	Count       int          `json:"count"`
	Entries     []VideoEntry `json:"entries"`
}

// URLs returns the record's URL strings in entry order.
func (r *ExtractionRecord) URLs() []string {
	urls := make([]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		urls = append(urls, e.URL)
	}
	return urls
}

// Filter post-processes the entry list before it is wrapped into a record.
type Filter interface {
	Apply(entries []VideoEntry) []VideoEntry
	Name() string
}

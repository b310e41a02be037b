package extractor

// DuplicateFilter removes repeated URLs, keeping the first occurrence. A
// later duplicate may still contribute its title when the first occurrence
// had none, which is the common thumbnail-then-title anchor pair.
type DuplicateFilter struct {
	name string
}

func NewDuplicateFilter(name string) *DuplicateFilter {
	return &DuplicateFilter{name: name}
}

func (f *DuplicateFilter) Apply(entries []VideoEntry) []VideoEntry {
	index := make(map[string]int, len(entries))
	filtered := make([]VideoEntry, 0, len(entries))

	for _, e := range entries {
		if at, seen := index[e.URL]; seen {
			if filtered[at].Title == "" && e.Title != "" {
				filtered[at].Title = e.Title
			}
			continue
		}
		index[e.URL] = len(filtered)
		filtered = append(filtered, e)
	}

	return filtered
}

func (f *DuplicateFilter) Name() string {
	return f.name
}

// LimitFilter caps the number of entries kept from a single page.
type LimitFilter struct {
	name string
	max  int
}

func NewLimitFilter(name string, max int) *LimitFilter {
	return &LimitFilter{name: name, max: max}
}

func (f *LimitFilter) Apply(entries []VideoEntry) []VideoEntry {
	if f.max > 0 && len(entries) > f.max {
		return entries[:f.max]
	}
	return entries
}

func (f *LimitFilter) Name() string {
	return f.name
}

package types

import "time"

// EntryFilter is the optional-criteria record consumed by entry search.
// Zero-valued fields are absent: an entirely zero filter matches every
// entry for the owner. Present fields combine with logical AND.
type EntryFilter struct {
	// Text matches case-insensitively as a substring of title or content.
	Text string `json:"text,omitempty"`

	// TagIDs requires association with at least one of the listed tags.
	TagIDs []int64 `json:"tag_ids,omitempty"`

	// MoodIDs requires association with at least one of the listed moods.
	MoodIDs []int64 `json:"mood_ids,omitempty"`

	// CategoryID requires an exact category match.
	CategoryID *int64 `json:"category_id,omitempty"`

	// DateFrom and DateTo bound the entry date, inclusive on both ends.
	// A from bound after the to bound yields an empty result.
	DateFrom *time.Time `json:"date_from,omitempty"`
	DateTo   *time.Time `json:"date_to,omitempty"`
}

// SearchResult is one page of entries plus the total match count computed
// over the same predicate, independent of paging.
type SearchResult struct {
	Entries []*Entry `json:"entries"`
	Total   int      `json:"total"`
}

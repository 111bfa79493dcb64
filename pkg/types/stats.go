package types

// WordCountStats aggregates word counts over a user's entries.
type WordCountStats struct {
	EntryCount   int     `json:"entry_count"`
	TotalWords   int     `json:"total_words"`
	AverageWords float64 `json:"average_words"`
}

// MonthCount is the number of entries in one calendar month (YYYY-MM).
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// CategoryCount is the number of entries in one category. Entries without
// a category are reported under CategoryID nil.
type CategoryCount struct {
	CategoryID *int64 `json:"category_id"`
	Count      int    `json:"count"`
}

// TagUsage is the number of entries associated with one tag.
type TagUsage struct {
	TagID int64  `json:"tag_id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

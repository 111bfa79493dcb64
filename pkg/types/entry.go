package types

import (
	"strings"
	"time"
)

// Maximum lengths for entry fields.
const (
	MaxEntryTitleLen = 200
)

// Entry is one journal entry. At most one entry exists per (user, entry
// date); writes go through an upsert keyed on that pair. WordCount is
// recomputed by the store on every write.
type Entry struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	EntryDate  time.Time `json:"entry_date"`
	CategoryID *int64    `json:"category_id,omitempty"`
	WordCount  int       `json:"word_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Validate checks the caller-supplied fields of an entry draft.
func (e *Entry) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return Invalidf("entry title must not be empty")
	}
	if len(e.Title) > MaxEntryTitleLen {
		return Invalidf("entry title exceeds %d characters", MaxEntryTitleLen)
	}
	if e.EntryDate.IsZero() {
		return Invalidf("entry date must be set")
	}
	return nil
}

// CountWords tokenizes on whitespace and counts tokens.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

package types

import "time"

// Maximum lengths for tag fields.
const (
	MaxTagNameLen = 50
)

// Tag is a user-owned label. Names are unique per owner.
type Tag struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the caller-supplied fields of a tag.
func (t *Tag) Validate() error {
	if t.Name == "" {
		return Invalidf("tag name must not be empty")
	}
	if len(t.Name) > MaxTagNameLen {
		return Invalidf("tag name exceeds %d characters", MaxTagNameLen)
	}
	return nil
}

// EntryTag associates a tag with an entry. Unique per (entry, tag); owned
// by the entry and removed when the entry or the tag is deleted.
type EntryTag struct {
	ID        int64     `json:"id"`
	EntryID   int64     `json:"entry_id"`
	TagID     int64     `json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}

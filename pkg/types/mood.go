package types

import "time"

// Mood category constants.
const (
	MoodPositive = "positive"
	MoodNeutral  = "neutral"
	MoodNegative = "negative"
)

// Mood intensity bounds, inclusive.
const (
	MinMoodIntensity = 1
	MaxMoodIntensity = 10
)

// validMoodCategories is the set of recognized mood categories.
var validMoodCategories = map[string]bool{
	MoodPositive: true,
	MoodNeutral:  true,
	MoodNegative: true,
}

// Mood is global reference data describing one mood in the taxonomy.
// Moods are seeded at store open and are not user-owned.
type Mood struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	Color     string `json:"color"`
	Intensity int    `json:"intensity"`
	Category  string `json:"category"`
}

// Validate checks a mood definition.
func (m *Mood) Validate() error {
	if m.Name == "" {
		return Invalidf("mood name must not be empty")
	}
	if m.Intensity < MinMoodIntensity || m.Intensity > MaxMoodIntensity {
		return Invalidf("mood intensity %d out of range %d-%d", m.Intensity, MinMoodIntensity, MaxMoodIntensity)
	}
	if !validMoodCategories[m.Category] {
		return Invalidf("unknown mood category %q", m.Category)
	}
	return nil
}

// EntryMood associates a mood with an entry. Unique per (entry, mood).
// Intensity, when set, overrides the mood's base intensity for this entry.
type EntryMood struct {
	ID        int64     `json:"id"`
	EntryID   int64     `json:"entry_id"`
	MoodID    int64     `json:"mood_id"`
	Intensity *int      `json:"intensity,omitempty"`
	IsPrimary bool      `json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the caller-supplied fields of an entry-mood association.
func (em *EntryMood) Validate() error {
	if em.Intensity != nil && (*em.Intensity < MinMoodIntensity || *em.Intensity > MaxMoodIntensity) {
		return Invalidf("mood intensity override %d out of range %d-%d", *em.Intensity, MinMoodIntensity, MaxMoodIntensity)
	}
	return nil
}

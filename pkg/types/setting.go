package types

import "time"

// Maximum lengths for setting fields.
const (
	MaxSettingKeyLen = 100
)

// Setting is one key-value pair in a user's settings. Keys are unique per
// owner; Set has upsert semantics.
type Setting struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidateSettingKey checks a setting key.
func ValidateSettingKey(key string) error {
	if key == "" {
		return Invalidf("setting key must not be empty")
	}
	if len(key) > MaxSettingKeyLen {
		return Invalidf("setting key exceeds %d characters", MaxSettingKeyLen)
	}
	return nil
}

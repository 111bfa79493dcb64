package types

import "time"

// Maximum lengths for user fields.
const (
	MaxUsernameLen = 32
)

// User is one journal account. Username matching is case-sensitive and
// unique across the store.
type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// ValidateUsername checks a username for creation.
func ValidateUsername(name string) error {
	if name == "" {
		return Invalidf("username must not be empty")
	}
	if len(name) > MaxUsernameLen {
		return Invalidf("username exceeds %d characters", MaxUsernameLen)
	}
	return nil
}

package types

import "time"

// Streak is a materialized run of consecutive journaling days. It is a
// cache recomputed from entry dates, not a source of truth. At most one
// row per user has IsActive true; superseded rows are deactivated, never
// deleted, except by an explicit rebuild.
type Streak struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	DayCount  int        `json:"day_count"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

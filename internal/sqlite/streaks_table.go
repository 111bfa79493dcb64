// Streak persistence. Streak rows are a materialized cache over entry
// dates: recalculation deactivates the previous active row and inserts a
// fresh one; the explicit rebuild purges history first.
package sqlite

import (
	"database/sql"
	"errors"
	"time"

	"github.com/quietloom/daybook/internal/streak"
	"github.com/quietloom/daybook/pkg/types"
)

const streakColumns = "id, user_id, start_date, end_date, day_count, is_active, created_at, updated_at"

// RecalculateStreak recomputes the owner's streak statistics from all
// entry dates and refreshes the persisted cache: the previously active row
// is deactivated (never deleted), and a new active row is inserted when
// the current streak is non-empty.
func (s *Store) RecalculateStreak(ownerID int64) (streak.Stats, error) {
	return s.refreshStreak(ownerID, false)
}

// RebuildStreaks deletes the owner's entire streak history and re-persists
// from scratch. Reserved for repair and migration use.
func (s *Store) RebuildStreaks(ownerID int64) (streak.Stats, error) {
	return s.refreshStreak(ownerID, true)
}

func (s *Store) refreshStreak(ownerID int64, purge bool) (streak.Stats, error) {
	if err := s.ready(); err != nil {
		return streak.Stats{}, err
	}

	dates, err := s.entryDates(ownerID)
	if err != nil {
		return streak.Stats{}, err
	}

	today := s.today()
	stats := streak.Calculate(dates, today, s.anchor)
	start, end, length := streak.CurrentRun(dates, today, s.anchor)

	now := formatTime(s.nowUTC())
	tx, err := s.db.Begin()
	if err != nil {
		return streak.Stats{}, types.Storef(err, "beginning transaction")
	}
	defer tx.Rollback()

	if purge {
		if _, err := tx.Exec("DELETE FROM streaks WHERE user_id = ?", ownerID); err != nil {
			return streak.Stats{}, types.Storef(err, "purging streaks")
		}
	} else {
		_, err := tx.Exec(
			"UPDATE streaks SET is_active = 0, updated_at = ? WHERE user_id = ? AND is_active = 1",
			now, ownerID,
		)
		if err != nil {
			return streak.Stats{}, types.Storef(err, "deactivating streak")
		}
	}

	if length > 0 {
		_, err := tx.Exec(
			`INSERT INTO streaks (user_id, start_date, end_date, day_count, is_active, created_at, updated_at)
			 VALUES (?, ?, ?, ?, 1, ?, ?)`,
			ownerID, types.FormatDate(start), types.FormatDate(end), length, now, now,
		)
		if err != nil {
			return streak.Stats{}, types.Storef(err, "inserting streak")
		}
	}

	if err := tx.Commit(); err != nil {
		return streak.Stats{}, types.Storef(err, "committing streak refresh")
	}
	return stats, nil
}

// CurrentStreak returns the owner's active streak row, or ErrNotFound when
// no run is active.
func (s *Store) CurrentStreak(ownerID int64) (*types.Streak, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	row := s.db.QueryRow(
		"SELECT "+streakColumns+" FROM streaks WHERE user_id = ? AND is_active = 1", ownerID,
	)
	return hydrateStreak(row)
}

// LongestStreak returns the owner's longest persisted streak row.
func (s *Store) LongestStreak(ownerID int64) (*types.Streak, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	row := s.db.QueryRow(
		"SELECT "+streakColumns+" FROM streaks WHERE user_id = ? ORDER BY day_count DESC, id DESC LIMIT 1",
		ownerID,
	)
	return hydrateStreak(row)
}

// ListStreaks lists the owner's streak history, newest first.
func (s *Store) ListStreaks(ownerID int64) ([]*types.Streak, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(
		"SELECT "+streakColumns+" FROM streaks WHERE user_id = ? ORDER BY start_date DESC, id DESC",
		ownerID,
	)
	if err != nil {
		return nil, types.Storef(err, "querying streaks")
	}
	defer rows.Close()

	streaks := []*types.Streak{}
	for rows.Next() {
		st, err := hydrateStreakFromRows(rows)
		if err != nil {
			return nil, err
		}
		streaks = append(streaks, st)
	}
	if err := rows.Err(); err != nil {
		return nil, types.Storef(err, "iterating streaks")
	}
	return streaks, nil
}

// entryDates returns the owner's distinct entry dates.
func (s *Store) entryDates(ownerID int64) ([]time.Time, error) {
	rows, err := s.db.Query(
		"SELECT DISTINCT entry_date FROM entries WHERE user_id = ? ORDER BY entry_date ASC", ownerID,
	)
	if err != nil {
		return nil, types.Storef(err, "querying entry dates")
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, types.Storef(err, "scanning entry date")
		}
		d, err := types.ParseDate(day)
		if err != nil {
			return nil, types.Storef(err, "parsing entry date")
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

func hydrateStreak(row *sql.Row) (*types.Streak, error) {
	var (
		st        types.Streak
		startDate string
		endDate   sql.NullString
		isActive  int
		createdAt string
		updatedAt string
	)
	err := row.Scan(&st.ID, &st.UserID, &startDate, &endDate, &st.DayCount, &isActive, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, types.Storef(err, "scanning streak")
	}
	return finishStreak(&st, startDate, endDate, isActive, createdAt, updatedAt)
}

func hydrateStreakFromRows(rows *sql.Rows) (*types.Streak, error) {
	var (
		st        types.Streak
		startDate string
		endDate   sql.NullString
		isActive  int
		createdAt string
		updatedAt string
	)
	err := rows.Scan(&st.ID, &st.UserID, &startDate, &endDate, &st.DayCount, &isActive, &createdAt, &updatedAt)
	if err != nil {
		return nil, types.Storef(err, "scanning streak")
	}
	return finishStreak(&st, startDate, endDate, isActive, createdAt, updatedAt)
}

func finishStreak(st *types.Streak, startDate string, endDate sql.NullString, isActive int, createdAt, updatedAt string) (*types.Streak, error) {
	var err error
	st.StartDate, err = types.ParseDate(startDate)
	if err != nil {
		return nil, types.Storef(err, "parsing start_date")
	}
	if endDate.Valid {
		d, err := types.ParseDate(endDate.String)
		if err != nil {
			return nil, types.Storef(err, "parsing end_date")
		}
		st.EndDate = &d
	}
	st.IsActive = isActive == 1
	st.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, types.Storef(err, "parsing created_at")
	}
	st.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, types.Storef(err, "parsing updated_at")
	}
	return st, nil
}

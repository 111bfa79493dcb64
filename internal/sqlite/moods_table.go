// Mood accessors and entry-mood association management. Moods are global
// reference data; associations belong to entries and carry an optional
// intensity override plus a primary flag.
package sqlite

import (
	"database/sql"
	"errors"

	"github.com/quietloom/daybook/pkg/types"
)

// CreateMood adds a mood to the taxonomy. Names are unique.
func (s *Store) CreateMood(draft *types.Mood) (*types.Mood, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	var one int
	err := s.db.QueryRow("SELECT 1 FROM moods WHERE name = ?", draft.Name).Scan(&one)
	if err == nil {
		return nil, types.Invalidf("mood %q already exists", draft.Name)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, types.Storef(err, "checking mood name")
	}

	res, err := s.db.Exec(
		"INSERT INTO moods (name, icon, color, intensity, category) VALUES (?, ?, ?, ?, ?)",
		draft.Name, draft.Icon, draft.Color, draft.Intensity, draft.Category,
	)
	if err != nil {
		return nil, types.Storef(err, "creating mood")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, types.Storef(err, "reading new mood id")
	}
	return s.GetMood(id)
}

// GetMood retrieves a mood by id.
func (s *Store) GetMood(id int64) (*types.Mood, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	var m types.Mood
	err := s.db.QueryRow(
		"SELECT id, name, icon, color, intensity, category FROM moods WHERE id = ?", id,
	).Scan(&m.ID, &m.Name, &m.Icon, &m.Color, &m.Intensity, &m.Category)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, types.Storef(err, "scanning mood")
	}
	return &m, nil
}

// ListMoods lists the taxonomy ordered by intensity descending.
func (s *Store) ListMoods() ([]*types.Mood, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(
		"SELECT id, name, icon, color, intensity, category FROM moods ORDER BY intensity DESC, name ASC",
	)
	if err != nil {
		return nil, types.Storef(err, "querying moods")
	}
	defer rows.Close()

	moods := []*types.Mood{}
	for rows.Next() {
		var m types.Mood
		if err := rows.Scan(&m.ID, &m.Name, &m.Icon, &m.Color, &m.Intensity, &m.Category); err != nil {
			return nil, types.Storef(err, "scanning mood")
		}
		moods = append(moods, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, types.Storef(err, "iterating moods")
	}
	return moods, nil
}

// DeleteMood removes a mood and every entry_moods row that references it.
func (s *Store) DeleteMood(id int64) error {
	if err := s.ready(); err != nil {
		return err
	}
	if _, err := s.GetMood(id); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return types.Storef(err, "beginning transaction")
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM entry_moods WHERE mood_id = ?", id); err != nil {
		return types.Storef(err, "deleting mood associations")
	}
	if _, err := tx.Exec("DELETE FROM moods WHERE id = ?", id); err != nil {
		return types.Storef(err, "deleting mood")
	}

	if err := tx.Commit(); err != nil {
		return types.Storef(err, "committing mood delete")
	}
	return nil
}

// AttachMood associates a mood with an owned entry. A primary attachment
// demotes any previous primary mood on the same entry. Re-attaching an
// existing pair updates the override and primary flag.
func (s *Store) AttachMood(ownerID, entryID, moodID int64, intensity *int, isPrimary bool) error {
	if err := s.ready(); err != nil {
		return err
	}
	assoc := types.EntryMood{EntryID: entryID, MoodID: moodID, Intensity: intensity, IsPrimary: isPrimary}
	if err := assoc.Validate(); err != nil {
		return err
	}
	if _, err := s.GetEntry(ownerID, entryID); err != nil {
		return err
	}
	if _, err := s.GetMood(moodID); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return types.Storef(err, "beginning transaction")
	}
	defer tx.Rollback()

	if isPrimary {
		if _, err := tx.Exec("UPDATE entry_moods SET is_primary = 0 WHERE entry_id = ?", entryID); err != nil {
			return types.Storef(err, "demoting primary mood")
		}
	}

	var existingID int64
	err = tx.QueryRow(
		"SELECT id FROM entry_moods WHERE entry_id = ? AND mood_id = ?", entryID, moodID,
	).Scan(&existingID)
	switch {
	case err == nil:
		_, err = tx.Exec(
			"UPDATE entry_moods SET intensity = ?, is_primary = ? WHERE id = ?",
			intensity, boolToInt(isPrimary), existingID,
		)
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.Exec(
			"INSERT INTO entry_moods (entry_id, mood_id, intensity, is_primary, created_at) VALUES (?, ?, ?, ?, ?)",
			entryID, moodID, intensity, boolToInt(isPrimary), formatTime(s.nowUTC()),
		)
	}
	if err != nil {
		return types.Storef(err, "attaching mood")
	}

	if err := tx.Commit(); err != nil {
		return types.Storef(err, "committing mood attach")
	}
	return nil
}

// DetachMood removes a mood association from an owned entry.
func (s *Store) DetachMood(ownerID, entryID, moodID int64) error {
	if err := s.ready(); err != nil {
		return err
	}
	if _, err := s.GetEntry(ownerID, entryID); err != nil {
		return err
	}

	res, err := s.db.Exec(
		"DELETE FROM entry_moods WHERE entry_id = ? AND mood_id = ?", entryID, moodID,
	)
	if err != nil {
		return types.Storef(err, "detaching mood")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// MoodsForEntry lists the mood associations on an owned entry, primary
// first.
func (s *Store) MoodsForEntry(ownerID, entryID int64) ([]*types.EntryMood, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if _, err := s.GetEntry(ownerID, entryID); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		`SELECT id, entry_id, mood_id, intensity, is_primary, created_at
		 FROM entry_moods WHERE entry_id = ? ORDER BY is_primary DESC, id ASC`, entryID,
	)
	if err != nil {
		return nil, types.Storef(err, "querying entry moods")
	}
	defer rows.Close()

	assocs := []*types.EntryMood{}
	for rows.Next() {
		var (
			em        types.EntryMood
			intensity sql.NullInt64
			isPrimary int
			createdAt string
		)
		if err := rows.Scan(&em.ID, &em.EntryID, &em.MoodID, &intensity, &isPrimary, &createdAt); err != nil {
			return nil, types.Storef(err, "scanning entry mood")
		}
		if intensity.Valid {
			v := int(intensity.Int64)
			em.Intensity = &v
		}
		em.IsPrimary = isPrimary == 1
		em.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, types.Storef(err, "parsing created_at")
		}
		assocs = append(assocs, &em)
	}
	if err := rows.Err(); err != nil {
		return nil, types.Storef(err, "iterating entry moods")
	}
	return assocs, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

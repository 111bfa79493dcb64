// Setting accessors: a per-user key-value store with upsert semantics.
package sqlite

import (
	"database/sql"
	"errors"

	"github.com/quietloom/daybook/pkg/types"
)

// SetSetting creates or updates the owner's setting for key.
func (s *Store) SetSetting(ownerID int64, key, value string) (*types.Setting, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if err := types.ValidateSettingKey(key); err != nil {
		return nil, err
	}

	now := formatTime(s.nowUTC())
	var existingID int64
	err := s.db.QueryRow(
		"SELECT id FROM settings WHERE user_id = ? AND key = ?", ownerID, key,
	).Scan(&existingID)
	switch {
	case err == nil:
		_, err = s.db.Exec(
			"UPDATE settings SET value = ?, updated_at = ? WHERE id = ?", value, now, existingID,
		)
		if err != nil {
			return nil, types.Storef(err, "updating setting")
		}
	case errors.Is(err, sql.ErrNoRows):
		_, err = s.db.Exec(
			"INSERT INTO settings (user_id, key, value, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
			ownerID, key, value, now, now,
		)
		if err != nil {
			return nil, types.Storef(err, "inserting setting")
		}
	default:
		return nil, types.Storef(err, "checking existing setting")
	}

	return s.GetSetting(ownerID, key)
}

// GetSetting retrieves the owner's setting for key.
func (s *Store) GetSetting(ownerID int64, key string) (*types.Setting, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	row := s.db.QueryRow(
		"SELECT id, user_id, key, value, created_at, updated_at FROM settings WHERE user_id = ? AND key = ?",
		ownerID, key,
	)
	return hydrateSetting(row)
}

// ListSettings lists the owner's settings by key.
func (s *Store) ListSettings(ownerID int64) ([]*types.Setting, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(
		"SELECT id, user_id, key, value, created_at, updated_at FROM settings WHERE user_id = ? ORDER BY key ASC",
		ownerID,
	)
	if err != nil {
		return nil, types.Storef(err, "querying settings")
	}
	defer rows.Close()

	settings := []*types.Setting{}
	for rows.Next() {
		var (
			st        types.Setting
			createdAt string
			updatedAt string
		)
		if err := rows.Scan(&st.ID, &st.UserID, &st.Key, &st.Value, &createdAt, &updatedAt); err != nil {
			return nil, types.Storef(err, "scanning setting")
		}
		st.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, types.Storef(err, "parsing created_at")
		}
		st.UpdatedAt, err = parseTime(updatedAt)
		if err != nil {
			return nil, types.Storef(err, "parsing updated_at")
		}
		settings = append(settings, &st)
	}
	if err := rows.Err(); err != nil {
		return nil, types.Storef(err, "iterating settings")
	}
	return settings, nil
}

// hydrateSetting converts a single row into a *types.Setting.
func hydrateSetting(row *sql.Row) (*types.Setting, error) {
	var (
		st        types.Setting
		createdAt string
		updatedAt string
	)
	if err := row.Scan(&st.ID, &st.UserID, &st.Key, &st.Value, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, types.Storef(err, "scanning setting")
	}
	var err error
	st.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, types.Storef(err, "parsing created_at")
	}
	st.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, types.Storef(err, "parsing updated_at")
	}
	return &st, nil
}

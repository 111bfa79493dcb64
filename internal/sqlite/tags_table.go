// Tag accessors and entry-tag association management. Tag names are unique
// per owner; deleting a tag cascades to its entry_tags rows.
package sqlite

import (
	"database/sql"
	"errors"

	"github.com/quietloom/daybook/pkg/types"
)

// CreateTag creates a tag for the owner. Duplicate names are a validation
// error.
func (s *Store) CreateTag(ownerID int64, draft *types.Tag) (*types.Tag, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	var one int
	err := s.db.QueryRow(
		"SELECT 1 FROM tags WHERE user_id = ? AND name = ?", ownerID, draft.Name,
	).Scan(&one)
	if err == nil {
		return nil, types.Invalidf("tag %q already exists", draft.Name)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, types.Storef(err, "checking tag name")
	}

	res, err := s.db.Exec(
		"INSERT INTO tags (user_id, name, color, created_at) VALUES (?, ?, ?, ?)",
		ownerID, draft.Name, draft.Color, formatTime(s.nowUTC()),
	)
	if err != nil {
		return nil, types.Storef(err, "creating tag")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, types.Storef(err, "reading new tag id")
	}
	return s.GetTag(ownerID, id)
}

// UpdateTag renames or recolors an owned tag.
func (s *Store) UpdateTag(ownerID int64, tag *types.Tag) (*types.Tag, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if err := tag.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.GetTag(ownerID, tag.ID); err != nil {
		return nil, err
	}

	var dupID int64
	err := s.db.QueryRow(
		"SELECT id FROM tags WHERE user_id = ? AND name = ? AND id != ?", ownerID, tag.Name, tag.ID,
	).Scan(&dupID)
	if err == nil {
		return nil, types.Invalidf("tag %q already exists", tag.Name)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, types.Storef(err, "checking tag name")
	}

	_, err = s.db.Exec(
		"UPDATE tags SET name = ?, color = ? WHERE id = ?", tag.Name, tag.Color, tag.ID,
	)
	if err != nil {
		return nil, types.Storef(err, "updating tag")
	}
	return s.GetTag(ownerID, tag.ID)
}

// GetTag retrieves a tag by id, enforcing ownership.
func (s *Store) GetTag(ownerID, id int64) (*types.Tag, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	row := s.db.QueryRow(
		"SELECT id, user_id, name, color, created_at FROM tags WHERE id = ?", id,
	)
	tag, err := hydrateTag(row)
	if err != nil {
		return nil, err
	}
	if tag.UserID != ownerID {
		return nil, types.ErrUnauthorized
	}
	return tag, nil
}

// ListTags lists the owner's tags by name.
func (s *Store) ListTags(ownerID int64) ([]*types.Tag, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(
		"SELECT id, user_id, name, color, created_at FROM tags WHERE user_id = ? ORDER BY name ASC", ownerID,
	)
	if err != nil {
		return nil, types.Storef(err, "querying tags")
	}
	defer rows.Close()

	tags := []*types.Tag{}
	for rows.Next() {
		var (
			t         types.Tag
			createdAt string
		)
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.Color, &createdAt); err != nil {
			return nil, types.Storef(err, "scanning tag")
		}
		t.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, types.Storef(err, "parsing created_at")
		}
		tags = append(tags, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, types.Storef(err, "iterating tags")
	}
	return tags, nil
}

// DeleteTag removes a tag and every entry_tags row that references it.
func (s *Store) DeleteTag(ownerID, id int64) error {
	if err := s.ready(); err != nil {
		return err
	}
	if _, err := s.GetTag(ownerID, id); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return types.Storef(err, "beginning transaction")
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM entry_tags WHERE tag_id = ?", id); err != nil {
		return types.Storef(err, "deleting tag associations")
	}
	if _, err := tx.Exec("DELETE FROM tags WHERE id = ?", id); err != nil {
		return types.Storef(err, "deleting tag")
	}

	if err := tx.Commit(); err != nil {
		return types.Storef(err, "committing tag delete")
	}
	return nil
}

// AttachTag associates an owned tag with an owned entry. Attaching an
// already-attached pair is a no-op.
func (s *Store) AttachTag(ownerID, entryID, tagID int64) error {
	if err := s.ready(); err != nil {
		return err
	}
	if _, err := s.GetEntry(ownerID, entryID); err != nil {
		return err
	}
	if _, err := s.GetTag(ownerID, tagID); err != nil {
		return err
	}

	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO entry_tags (entry_id, tag_id, created_at) VALUES (?, ?, ?)",
		entryID, tagID, formatTime(s.nowUTC()),
	)
	if err != nil {
		return types.Storef(err, "attaching tag")
	}
	return nil
}

// DetachTag removes a tag association from an owned entry.
func (s *Store) DetachTag(ownerID, entryID, tagID int64) error {
	if err := s.ready(); err != nil {
		return err
	}
	if _, err := s.GetEntry(ownerID, entryID); err != nil {
		return err
	}

	res, err := s.db.Exec(
		"DELETE FROM entry_tags WHERE entry_id = ? AND tag_id = ?", entryID, tagID,
	)
	if err != nil {
		return types.Storef(err, "detaching tag")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// TagsForEntry lists the tags attached to an owned entry, by name.
func (s *Store) TagsForEntry(ownerID, entryID int64) ([]*types.Tag, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if _, err := s.GetEntry(ownerID, entryID); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		`SELECT t.id, t.user_id, t.name, t.color, t.created_at
		 FROM tags t JOIN entry_tags et ON et.tag_id = t.id
		 WHERE et.entry_id = ? ORDER BY t.name ASC`, entryID,
	)
	if err != nil {
		return nil, types.Storef(err, "querying entry tags")
	}
	defer rows.Close()

	tags := []*types.Tag{}
	for rows.Next() {
		var (
			t         types.Tag
			createdAt string
		)
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.Color, &createdAt); err != nil {
			return nil, types.Storef(err, "scanning tag")
		}
		t.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, types.Storef(err, "parsing created_at")
		}
		tags = append(tags, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, types.Storef(err, "iterating tags")
	}
	return tags, nil
}

// hydrateTag converts a single row into a *types.Tag.
func hydrateTag(row *sql.Row) (*types.Tag, error) {
	var (
		t         types.Tag
		createdAt string
	)
	if err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Color, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, types.Storef(err, "scanning tag")
	}
	var err error
	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, types.Storef(err, "parsing created_at")
	}
	return &t, nil
}

// Entry accessors. Entries are keyed logically on (user, entry date):
// writes go through an upsert on that pair, so a day never holds more than
// one entry. Word count and timestamps are set here, never by callers.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/quietloom/daybook/pkg/types"
)

const entryColumns = "id, user_id, title, content, entry_date, category_id, word_count, created_at, updated_at"

// UpsertEntry creates or updates the owner's entry for draft.EntryDate.
// The returned entry carries the stored id, word count, and timestamps.
func (s *Store) UpsertEntry(ownerID int64, draft *types.Entry) (*types.Entry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	var one int
	err := s.db.QueryRow("SELECT 1 FROM users WHERE id = ?", ownerID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, types.Storef(err, "checking owner")
	}

	day := types.FormatDate(draft.EntryDate)
	now := formatTime(s.nowUTC())
	words := types.CountWords(draft.Content)

	var existingID int64
	err = s.db.QueryRow(
		"SELECT id FROM entries WHERE user_id = ? AND entry_date = ?", ownerID, day,
	).Scan(&existingID)
	switch {
	case err == nil:
		_, err = s.db.Exec(
			"UPDATE entries SET title = ?, content = ?, category_id = ?, word_count = ?, updated_at = ? WHERE id = ?",
			draft.Title, draft.Content, draft.CategoryID, words, now, existingID,
		)
		if err != nil {
			return nil, types.Storef(err, "updating entry")
		}
		return s.GetEntry(ownerID, existingID)
	case errors.Is(err, sql.ErrNoRows):
		res, err := s.db.Exec(
			`INSERT INTO entries (user_id, title, content, entry_date, category_id, word_count, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			ownerID, draft.Title, draft.Content, day, draft.CategoryID, words, now, now,
		)
		if err != nil {
			return nil, types.Storef(err, "inserting entry")
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, types.Storef(err, "reading new entry id")
		}
		return s.GetEntry(ownerID, id)
	default:
		return nil, types.Storef(err, "checking existing entry")
	}
}

// GetEntry retrieves an entry by id, enforcing ownership.
func (s *Store) GetEntry(ownerID, id int64) (*types.Entry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	row := s.db.QueryRow("SELECT "+entryColumns+" FROM entries WHERE id = ?", id)
	entry, err := hydrateEntry(row)
	if err != nil {
		return nil, err
	}
	if entry.UserID != ownerID {
		return nil, types.ErrUnauthorized
	}
	return entry, nil
}

// GetEntryByDate retrieves the owner's entry for a calendar day.
func (s *Store) GetEntryByDate(ownerID int64, date time.Time) (*types.Entry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	row := s.db.QueryRow(
		"SELECT "+entryColumns+" FROM entries WHERE user_id = ? AND entry_date = ?",
		ownerID, types.FormatDate(date),
	)
	return hydrateEntry(row)
}

// EntriesByRange lists the owner's entries with dates in [from, to],
// newest first.
func (s *Store) EntriesByRange(ownerID int64, from, to time.Time) ([]*types.Entry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.listEntries(
		"SELECT "+entryColumns+" FROM entries WHERE user_id = ? AND entry_date >= ? AND entry_date <= ? ORDER BY entry_date DESC, id DESC",
		ownerID, types.FormatDate(from), types.FormatDate(to),
	)
}

// EntriesByMonth lists the owner's entries within one calendar month,
// newest first.
func (s *Store) EntriesByMonth(ownerID int64, year int, month time.Month) ([]*types.Entry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	prefix := fmt.Sprintf("%04d-%02d-", year, month)
	return s.listEntries(
		"SELECT "+entryColumns+" FROM entries WHERE user_id = ? AND entry_date LIKE ? ORDER BY entry_date DESC, id DESC",
		ownerID, prefix+"%",
	)
}

// DeleteEntry removes an entry by id and its join rows.
func (s *Store) DeleteEntry(ownerID, id int64) error {
	if err := s.ready(); err != nil {
		return err
	}
	if _, err := s.GetEntry(ownerID, id); err != nil {
		return err
	}
	return s.deleteEntryRow(id)
}

// DeleteEntryByDate removes the owner's entry for a calendar day and its
// join rows.
func (s *Store) DeleteEntryByDate(ownerID int64, date time.Time) error {
	if err := s.ready(); err != nil {
		return err
	}
	entry, err := s.GetEntryByDate(ownerID, date)
	if err != nil {
		return err
	}
	return s.deleteEntryRow(entry.ID)
}

// deleteEntryRow cascades the delete to entry_tags and entry_moods.
func (s *Store) deleteEntryRow(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return types.Storef(err, "beginning transaction")
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM entry_tags WHERE entry_id = ?", id); err != nil {
		return types.Storef(err, "deleting entry tags")
	}
	if _, err := tx.Exec("DELETE FROM entry_moods WHERE entry_id = ?", id); err != nil {
		return types.Storef(err, "deleting entry moods")
	}
	if _, err := tx.Exec("DELETE FROM entries WHERE id = ?", id); err != nil {
		return types.Storef(err, "deleting entry")
	}

	if err := tx.Commit(); err != nil {
		return types.Storef(err, "committing entry delete")
	}
	return nil
}

// listEntries runs an entry query and hydrates every row.
func (s *Store) listEntries(query string, args ...any) ([]*types.Entry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, types.Storef(err, "querying entries")
	}
	defer rows.Close()

	entries := []*types.Entry{}
	for rows.Next() {
		entry, err := hydrateEntryFromRows(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, types.Storef(err, "iterating entries")
	}
	return entries, nil
}

// hydrateEntry converts a single row into a *types.Entry.
func hydrateEntry(row *sql.Row) (*types.Entry, error) {
	var (
		e         types.Entry
		day       string
		category  sql.NullInt64
		createdAt string
		updatedAt string
	)
	err := row.Scan(&e.ID, &e.UserID, &e.Title, &e.Content, &day, &category, &e.WordCount, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, types.Storef(err, "scanning entry")
	}
	return finishEntry(&e, day, category, createdAt, updatedAt)
}

// hydrateEntryFromRows converts a row from sql.Rows into a *types.Entry.
func hydrateEntryFromRows(rows *sql.Rows) (*types.Entry, error) {
	var (
		e         types.Entry
		day       string
		category  sql.NullInt64
		createdAt string
		updatedAt string
	)
	err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.Content, &day, &category, &e.WordCount, &createdAt, &updatedAt)
	if err != nil {
		return nil, types.Storef(err, "scanning entry")
	}
	return finishEntry(&e, day, category, createdAt, updatedAt)
}

func finishEntry(e *types.Entry, day string, category sql.NullInt64, createdAt, updatedAt string) (*types.Entry, error) {
	var err error
	e.EntryDate, err = types.ParseDate(day)
	if err != nil {
		return nil, types.Storef(err, "parsing entry_date")
	}
	if category.Valid {
		c := category.Int64
		e.CategoryID = &c
	}
	e.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, types.Storef(err, "parsing created_at")
	}
	e.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, types.Storef(err, "parsing updated_at")
	}
	return e, nil
}

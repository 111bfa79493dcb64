// Unit tests for entry accessors: the one-entry-per-day upsert, date and
// month listing, ownership enforcement, and the cascading delete.
package sqlite

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietloom/daybook/pkg/types"
)

func TestUpsertEntry(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T, s *Store)
	}{
		{
			name: "insert populates id, word count, and timestamps",
			check: func(t *testing.T, s *Store) {
				u := createBareUser(t, s, "ada")
				entry := mustEntry(t, s, u.ID, "2025-03-01", "three words here")
				assert.NotZero(t, entry.ID)
				assert.Equal(t, 3, entry.WordCount)
				assert.Equal(t, "2025-03-01", types.FormatDate(entry.EntryDate))
				assert.False(t, entry.CreatedAt.IsZero())
			},
		},
		{
			name: "second write for the same day updates in place",
			check: func(t *testing.T, s *Store) {
				u := createBareUser(t, s, "ada")
				first := mustEntry(t, s, u.ID, "2025-03-01", "draft")

				s.now = func() time.Time { return testToday.Add(2 * time.Hour) }
				second := mustEntry(t, s, u.ID, "2025-03-01", "a longer final version")

				assert.Equal(t, first.ID, second.ID)
				assert.Equal(t, 4, second.WordCount)
				assert.Equal(t, first.CreatedAt, second.CreatedAt)
				assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
				assert.Equal(t, 1, countRows(t, s,
					"SELECT COUNT(*) FROM entries WHERE user_id = ? AND entry_date = ?", u.ID, "2025-03-01"))
			},
		},
		{
			name: "time of day is irrelevant to the upsert key",
			check: func(t *testing.T, s *Store) {
				u := createBareUser(t, s, "ada")
				morning := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
				evening := time.Date(2025, 3, 1, 22, 30, 0, 0, time.UTC)

				_, err := s.UpsertEntry(u.ID, &types.Entry{Title: "am", Content: "x", EntryDate: morning})
				require.NoError(t, err)
				_, err = s.UpsertEntry(u.ID, &types.Entry{Title: "pm", Content: "y", EntryDate: evening})
				require.NoError(t, err)

				entries, err := s.EntriesByMonth(u.ID, 2025, time.March)
				require.NoError(t, err)
				require.Len(t, entries, 1)
				assert.Equal(t, "pm", entries[0].Title)
			},
		},
		{
			name: "unknown owner returns ErrNotFound",
			check: func(t *testing.T, s *Store) {
				_, err := s.UpsertEntry(9999, &types.Entry{
					Title: "x", Content: "y", EntryDate: testToday,
				})
				assert.ErrorIs(t, err, types.ErrNotFound)
			},
		},
		{
			name: "empty title rejected",
			check: func(t *testing.T, s *Store) {
				u := createBareUser(t, s, "ada")
				_, err := s.UpsertEntry(u.ID, &types.Entry{Title: "  ", Content: "y", EntryDate: testToday})
				assert.ErrorIs(t, err, types.ErrValidation)
			},
		},
		{
			name: "overlong title rejected",
			check: func(t *testing.T, s *Store) {
				u := createBareUser(t, s, "ada")
				_, err := s.UpsertEntry(u.ID, &types.Entry{
					Title:     strings.Repeat("t", types.MaxEntryTitleLen+1),
					Content:   "y",
					EntryDate: testToday,
				})
				assert.ErrorIs(t, err, types.ErrValidation)
			},
		},
		{
			name: "zero entry date rejected",
			check: func(t *testing.T, s *Store) {
				u := createBareUser(t, s, "ada")
				_, err := s.UpsertEntry(u.ID, &types.Entry{Title: "x", Content: "y"})
				assert.ErrorIs(t, err, types.ErrValidation)
			},
		},
		{
			name: "category id round-trips",
			check: func(t *testing.T, s *Store) {
				u := createBareUser(t, s, "ada")
				cat := int64(7)
				entry, err := s.UpsertEntry(u.ID, &types.Entry{
					Title: "x", Content: "y", EntryDate: testToday, CategoryID: &cat,
				})
				require.NoError(t, err)
				require.NotNil(t, entry.CategoryID)
				assert.Equal(t, int64(7), *entry.CategoryID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setupStore(t)
			tt.check(t, s)
		})
	}
}

func TestGetEntryOwnership(t *testing.T) {
	s := setupStore(t)
	ada := createBareUser(t, s, "ada")
	bo := createBareUser(t, s, "bo")
	entry := mustEntry(t, s, ada.ID, "2025-03-01", "private")

	_, err := s.GetEntry(bo.ID, entry.ID)
	assert.ErrorIs(t, err, types.ErrUnauthorized)

	_, err = s.GetEntry(ada.ID, 9999)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestEntriesByRange(t *testing.T) {
	s := setupStore(t)
	u := createBareUser(t, s, "ada")
	for _, day := range []string{"2025-02-27", "2025-03-01", "2025-03-02", "2025-03-05"} {
		mustEntry(t, s, u.ID, day, "words")
	}

	entries, err := s.EntriesByRange(u.ID, mustDate(t, "2025-03-01"), mustDate(t, "2025-03-05"))
	require.NoError(t, err)
	require.Len(t, entries, 3)
	// Newest first.
	assert.Equal(t, "2025-03-05", types.FormatDate(entries[0].EntryDate))
	assert.Equal(t, "2025-03-01", types.FormatDate(entries[2].EntryDate))

	// Inverted range matches nothing.
	entries, err = s.EntriesByRange(u.ID, mustDate(t, "2025-03-05"), mustDate(t, "2025-03-01"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEntriesByMonth(t *testing.T) {
	s := setupStore(t)
	u := createBareUser(t, s, "ada")
	for _, day := range []string{"2025-02-28", "2025-03-01", "2025-03-31", "2025-04-01"} {
		mustEntry(t, s, u.ID, day, "words")
	}

	entries, err := s.EntriesByMonth(u.ID, 2025, time.March)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2025-03-31", types.FormatDate(entries[0].EntryDate))
	assert.Equal(t, "2025-03-01", types.FormatDate(entries[1].EntryDate))
}

func TestDeleteEntryCascades(t *testing.T) {
	s := setupStore(t)
	u := createTestUser(t, s, "ada")
	entry := mustEntry(t, s, u.ID, "2025-03-01", "words")

	tags, err := s.ListTags(u.ID)
	require.NoError(t, err)
	require.NoError(t, s.AttachTag(u.ID, entry.ID, tags[0].ID))
	moods, err := s.ListMoods()
	require.NoError(t, err)
	require.NoError(t, s.AttachMood(u.ID, entry.ID, moods[0].ID, nil, false))

	require.NoError(t, s.DeleteEntry(u.ID, entry.ID))

	_, err = s.GetEntry(u.ID, entry.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Zero(t, countRows(t, s, "SELECT COUNT(*) FROM entry_tags WHERE entry_id = ?", entry.ID))
	assert.Zero(t, countRows(t, s, "SELECT COUNT(*) FROM entry_moods WHERE entry_id = ?", entry.ID))

	// The tag itself survives.
	_, err = s.GetTag(u.ID, tags[0].ID)
	assert.NoError(t, err)
}

func TestDeleteEntryByDate(t *testing.T) {
	s := setupStore(t)
	u := createBareUser(t, s, "ada")
	mustEntry(t, s, u.ID, "2025-03-01", "words")

	require.NoError(t, s.DeleteEntryByDate(u.ID, mustDate(t, "2025-03-01")))
	_, err := s.GetEntryByDate(u.ID, mustDate(t, "2025-03-01"))
	assert.ErrorIs(t, err, types.ErrNotFound)

	assert.ErrorIs(t, s.DeleteEntryByDate(u.ID, mustDate(t, "2025-03-01")), types.ErrNotFound)
}

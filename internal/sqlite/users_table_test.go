// Unit tests for user accounts: creation, password verification, login
// stamping, and the cascading delete.
package sqlite

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietloom/daybook/pkg/types"
)

func TestCreateUser(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T, s *Store)
	}{
		{
			name: "create populates id and hashes the password",
			check: func(t *testing.T, s *Store) {
				u, err := s.CreateUser("ada", "s3cret-enough")
				require.NoError(t, err)
				assert.NotZero(t, u.ID)
				assert.Equal(t, "ada", u.Username)
				assert.NotEqual(t, "s3cret-enough", u.PasswordHash)
				assert.Nil(t, u.LastLoginAt)
			},
		},
		{
			name: "create seeds starter content",
			check: func(t *testing.T, s *Store) {
				u, err := s.CreateUser("ada", "s3cret-enough")
				require.NoError(t, err)

				tags, err := s.ListTags(u.ID)
				require.NoError(t, err)
				assert.Len(t, tags, len(defaultTags))

				settings, err := s.ListSettings(u.ID)
				require.NoError(t, err)
				keys := make([]string, 0, len(settings))
				for _, st := range settings {
					keys = append(keys, st.Key)
				}
				assert.Contains(t, keys, settingSeededAt)
				assert.Contains(t, keys, settingClientID)

				// The sample entry lands on today per the store clock.
				entry, err := s.GetEntryByDate(u.ID, s.today())
				require.NoError(t, err)
				assert.NotZero(t, entry.WordCount)
			},
		},
		{
			name: "duplicate username is a validation error",
			check: func(t *testing.T, s *Store) {
				_, err := s.CreateUser("ada", "one")
				require.NoError(t, err)
				_, err = s.CreateUser("ada", "two")
				assert.ErrorIs(t, err, types.ErrValidation)
			},
		},
		{
			name: "username matching is case-sensitive",
			check: func(t *testing.T, s *Store) {
				_, err := s.CreateUser("ada", "one")
				require.NoError(t, err)
				_, err = s.CreateUser("Ada", "two")
				require.NoError(t, err)

				_, err = s.GetUserByUsername("ADA")
				assert.ErrorIs(t, err, types.ErrNotFound)
			},
		},
		{
			name: "empty username rejected",
			check: func(t *testing.T, s *Store) {
				_, err := s.CreateUser("", "pw")
				assert.ErrorIs(t, err, types.ErrValidation)
			},
		},
		{
			name: "overlong username rejected",
			check: func(t *testing.T, s *Store) {
				_, err := s.CreateUser(strings.Repeat("a", types.MaxUsernameLen+1), "pw")
				assert.ErrorIs(t, err, types.ErrValidation)
			},
		},
		{
			name: "empty password rejected",
			check: func(t *testing.T, s *Store) {
				_, err := s.CreateUser("ada", "")
				assert.ErrorIs(t, err, types.ErrValidation)
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

func TestVerifyPassword(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T, s *Store)
	}{
		{
			name: "correct password returns the user",
			check: func(t *testing.T, s *Store) {
				createTestUser(t, s, "ada")
				u, err := s.VerifyPassword("ada", "correct horse battery staple")
				require.NoError(t, err)
				assert.Equal(t, "ada", u.Username)
			},
		},
		{
			name: "wrong password returns ErrUnauthorized",
			check: func(t *testing.T, s *Store) {
				createTestUser(t, s, "ada")
				_, err := s.VerifyPassword("ada", "incorrect horse")
				assert.ErrorIs(t, err, types.ErrUnauthorized)
			},
		},
		{
			name: "unknown username returns ErrNotFound",
			check: func(t *testing.T, s *Store) {
				_, err := s.VerifyPassword("nobody", "pw")
				assert.ErrorIs(t, err, types.ErrNotFound)
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

func TestRecordLogin(t *testing.T) {
	s := setupStore(t)
	u := createTestUser(t, s, "ada")

	require.NoError(t, s.RecordLogin(u.ID))
	got, err := s.GetUser(u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastLoginAt)
	assert.Equal(t, types.FormatDate(testToday), types.FormatDate(*got.LastLoginAt))

	assert.ErrorIs(t, s.RecordLogin(9999), types.ErrNotFound)
}

func TestDeleteUser(t *testing.T) {
	s := setupStore(t)
	u := createTestUser(t, s, "ada")
	other := createTestUser(t, s, "bo")

	// Give ada an entry with a tag and a mood attached.
	entry := mustEntry(t, s, u.ID, "2025-03-01", "march first")
	tags, err := s.ListTags(u.ID)
	require.NoError(t, err)
	require.NoError(t, s.AttachTag(u.ID, entry.ID, tags[0].ID))
	moods, err := s.ListMoods()
	require.NoError(t, err)
	require.NoError(t, s.AttachMood(u.ID, entry.ID, moods[0].ID, nil, true))
	_, err = s.RecalculateStreak(u.ID)
	require.NoError(t, err)

	require.NoError(t, s.DeleteUser(u.ID))

	_, err = s.GetUser(u.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
	for _, table := range []string{"entries", "tags", "streaks", "settings"} {
		assert.Zero(t, countRows(t, s, "SELECT COUNT(*) FROM "+table+" WHERE user_id = ?", u.ID),
			"table %s should be empty for the deleted user", table)
	}
	assert.Zero(t, countRows(t, s, "SELECT COUNT(*) FROM entry_tags WHERE entry_id = ?", entry.ID))
	assert.Zero(t, countRows(t, s, "SELECT COUNT(*) FROM entry_moods WHERE entry_id = ?", entry.ID))

	// The other account is untouched.
	got, err := s.GetUser(other.ID)
	require.NoError(t, err)
	assert.Equal(t, "bo", got.Username)

	assert.ErrorIs(t, s.DeleteUser(u.ID), types.ErrNotFound)
}

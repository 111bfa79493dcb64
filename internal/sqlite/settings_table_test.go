// Unit tests for the per-user settings key-value store.
package sqlite

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietloom/daybook/pkg/types"
)

func TestSetSetting(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T, s *Store)
	}{
		{
			name: "set and get round-trip",
			check: func(t *testing.T, s *Store) {
				u := createTestUser(t, s, "ada")
				_, err := s.SetSetting(u.ID, "locale", "de")
				require.NoError(t, err)

				got, err := s.GetSetting(u.ID, "locale")
				require.NoError(t, err)
				assert.Equal(t, "de", got.Value)
			},
		},
		{
			name: "second set for the same key updates in place",
			check: func(t *testing.T, s *Store) {
				u := createTestUser(t, s, "ada")
				first, err := s.SetSetting(u.ID, "theme", "dark")
				require.NoError(t, err)

				s.now = func() time.Time { return testToday.Add(time.Hour) }
				second, err := s.SetSetting(u.ID, "theme", "light")
				require.NoError(t, err)

				assert.Equal(t, first.ID, second.ID)
				assert.Equal(t, "light", second.Value)
				assert.Equal(t, first.CreatedAt, second.CreatedAt)
				assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
			},
		},
		{
			name: "several keys per user coexist",
			check: func(t *testing.T, s *Store) {
				u := createTestUser(t, s, "ada")
				_, err := s.SetSetting(u.ID, "locale", "de")
				require.NoError(t, err)
				_, err = s.SetSetting(u.ID, "font", "serif")
				require.NoError(t, err)

				settings, err := s.ListSettings(u.ID)
				require.NoError(t, err)
				// Seeded defaults plus the two just written.
				assert.Len(t, settings, 6)
			},
		},
		{
			name: "same key is independent per user",
			check: func(t *testing.T, s *Store) {
				ada := createTestUser(t, s, "ada")
				bo := createTestUser(t, s, "bo")
				_, err := s.SetSetting(ada.ID, "locale", "de")
				require.NoError(t, err)
				_, err = s.SetSetting(bo.ID, "locale", "fr")
				require.NoError(t, err)

				got, err := s.GetSetting(ada.ID, "locale")
				require.NoError(t, err)
				assert.Equal(t, "de", got.Value)
			},
		},
		{
			name: "empty key rejected",
			check: func(t *testing.T, s *Store) {
				u := createTestUser(t, s, "ada")
				_, err := s.SetSetting(u.ID, "", "v")
				assert.ErrorIs(t, err, types.ErrValidation)
			},
		},
		{
			name: "overlong key rejected",
			check: func(t *testing.T, s *Store) {
				u := createTestUser(t, s, "ada")
				_, err := s.SetSetting(u.ID, strings.Repeat("k", types.MaxSettingKeyLen+1), "v")
				assert.ErrorIs(t, err, types.ErrValidation)
			},
		},
		{
			name: "unknown key returns ErrNotFound",
			check: func(t *testing.T, s *Store) {
				u := createTestUser(t, s, "ada")
				_, err := s.GetSetting(u.ID, "missing")
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

// Unit tests for the mood taxonomy and entry-mood associations.
package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietloom/daybook/pkg/types"
)

func TestMoodTaxonomy(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T, s *Store)
	}{
		{
			name: "seeded taxonomy is ordered by intensity descending",
			check: func(t *testing.T, s *Store) {
				moods, err := s.ListMoods()
				require.NoError(t, err)
				require.Len(t, moods, len(moodTaxonomy))
				for i := 1; i < len(moods); i++ {
					assert.GreaterOrEqual(t, moods[i-1].Intensity, moods[i].Intensity)
				}
			},
		},
		{
			name: "create rejects duplicate names",
			check: func(t *testing.T, s *Store) {
				_, err := s.CreateMood(&types.Mood{
					Name: "happy", Intensity: 5, Category: types.MoodPositive,
				})
				assert.ErrorIs(t, err, types.ErrValidation)
			},
		},
		{
			name: "create rejects out-of-range intensity",
			check: func(t *testing.T, s *Store) {
				_, err := s.CreateMood(&types.Mood{
					Name: "ecstatic", Intensity: 11, Category: types.MoodPositive,
				})
				assert.ErrorIs(t, err, types.ErrValidation)
			},
		},
		{
			name: "create rejects unknown category",
			check: func(t *testing.T, s *Store) {
				_, err := s.CreateMood(&types.Mood{
					Name: "odd", Intensity: 5, Category: "sideways",
				})
				assert.ErrorIs(t, err, types.ErrValidation)
			},
		},
		{
			name: "delete cascades to associations",
			check: func(t *testing.T, s *Store) {
				u := createTestUser(t, s, "ada")
				entry := mustEntry(t, s, u.ID, "2025-03-01", "words")
				moods, err := s.ListMoods()
				require.NoError(t, err)
				require.NoError(t, s.AttachMood(u.ID, entry.ID, moods[0].ID, nil, false))

				require.NoError(t, s.DeleteMood(moods[0].ID))
				assocs, err := s.MoodsForEntry(u.ID, entry.ID)
				require.NoError(t, err)
				assert.Empty(t, assocs)
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

func TestAttachMood(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T, s *Store)
	}{
		{
			name: "attach with intensity override round-trips",
			check: func(t *testing.T, s *Store) {
				u := createTestUser(t, s, "ada")
				entry := mustEntry(t, s, u.ID, "2025-03-01", "words")
				moods, err := s.ListMoods()
				require.NoError(t, err)

				intensity := 8
				require.NoError(t, s.AttachMood(u.ID, entry.ID, moods[0].ID, &intensity, true))

				assocs, err := s.MoodsForEntry(u.ID, entry.ID)
				require.NoError(t, err)
				require.Len(t, assocs, 1)
				require.NotNil(t, assocs[0].Intensity)
				assert.Equal(t, 8, *assocs[0].Intensity)
				assert.True(t, assocs[0].IsPrimary)
			},
		},
		{
			name: "attach without override leaves intensity nil",
			check: func(t *testing.T, s *Store) {
				u := createTestUser(t, s, "ada")
				entry := mustEntry(t, s, u.ID, "2025-03-01", "words")
				moods, err := s.ListMoods()
				require.NoError(t, err)

				require.NoError(t, s.AttachMood(u.ID, entry.ID, moods[0].ID, nil, false))
				assocs, err := s.MoodsForEntry(u.ID, entry.ID)
				require.NoError(t, err)
				require.Len(t, assocs, 1)
				assert.Nil(t, assocs[0].Intensity)
			},
		},
		{
			name: "new primary demotes the previous primary",
			check: func(t *testing.T, s *Store) {
				u := createTestUser(t, s, "ada")
				entry := mustEntry(t, s, u.ID, "2025-03-01", "words")
				moods, err := s.ListMoods()
				require.NoError(t, err)

				require.NoError(t, s.AttachMood(u.ID, entry.ID, moods[0].ID, nil, true))
				require.NoError(t, s.AttachMood(u.ID, entry.ID, moods[1].ID, nil, true))

				assocs, err := s.MoodsForEntry(u.ID, entry.ID)
				require.NoError(t, err)
				require.Len(t, assocs, 2)
				// Primary sorts first; exactly one row is primary.
				assert.True(t, assocs[0].IsPrimary)
				assert.Equal(t, moods[1].ID, assocs[0].MoodID)
				assert.False(t, assocs[1].IsPrimary)
			},
		},
		{
			name: "re-attach updates the existing association",
			check: func(t *testing.T, s *Store) {
				u := createTestUser(t, s, "ada")
				entry := mustEntry(t, s, u.ID, "2025-03-01", "words")
				moods, err := s.ListMoods()
				require.NoError(t, err)

				low := 2
				require.NoError(t, s.AttachMood(u.ID, entry.ID, moods[0].ID, &low, false))
				high := 9
				require.NoError(t, s.AttachMood(u.ID, entry.ID, moods[0].ID, &high, true))

				assocs, err := s.MoodsForEntry(u.ID, entry.ID)
				require.NoError(t, err)
				require.Len(t, assocs, 1)
				assert.Equal(t, 9, *assocs[0].Intensity)
				assert.True(t, assocs[0].IsPrimary)
			},
		},
		{
			name: "out-of-range override rejected",
			check: func(t *testing.T, s *Store) {
				u := createTestUser(t, s, "ada")
				entry := mustEntry(t, s, u.ID, "2025-03-01", "words")
				moods, err := s.ListMoods()
				require.NoError(t, err)

				bad := 0
				err = s.AttachMood(u.ID, entry.ID, moods[0].ID, &bad, false)
				assert.ErrorIs(t, err, types.ErrValidation)
			},
		},
		{
			name: "unknown mood returns ErrNotFound",
			check: func(t *testing.T, s *Store) {
				u := createTestUser(t, s, "ada")
				entry := mustEntry(t, s, u.ID, "2025-03-01", "words")
				err := s.AttachMood(u.ID, entry.ID, 9999, nil, false)
				assert.ErrorIs(t, err, types.ErrNotFound)
			},
		},
		{
			name: "foreign entry returns ErrUnauthorized",
			check: func(t *testing.T, s *Store) {
				ada := createTestUser(t, s, "ada")
				bo := createTestUser(t, s, "bo")
				entry := mustEntry(t, s, ada.ID, "2025-03-01", "words")
				moods, err := s.ListMoods()
				require.NoError(t, err)
				err = s.AttachMood(bo.ID, entry.ID, moods[0].ID, nil, false)
				assert.ErrorIs(t, err, types.ErrUnauthorized)
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

func TestDetachMood(t *testing.T) {
	s := setupStore(t)
	u := createTestUser(t, s, "ada")
	entry := mustEntry(t, s, u.ID, "2025-03-01", "words")
	moods, err := s.ListMoods()
	require.NoError(t, err)

	require.NoError(t, s.AttachMood(u.ID, entry.ID, moods[0].ID, nil, false))
	require.NoError(t, s.DetachMood(u.ID, entry.ID, moods[0].ID))
	assert.ErrorIs(t, s.DetachMood(u.ID, entry.ID, moods[0].ID), types.ErrNotFound)
}

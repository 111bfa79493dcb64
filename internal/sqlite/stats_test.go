// Unit tests for aggregate reporting.
package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietloom/daybook/pkg/types"
)

func TestWordCountStats(t *testing.T) {
	s := setupStore(t)
	u := createBareUser(t, s, "ada")

	stats, err := s.WordCountStats(u.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.EntryCount)
	assert.Zero(t, stats.TotalWords)
	assert.Zero(t, stats.AverageWords)

	mustEntry(t, s, u.ID, "2025-03-01", "two words")
	mustEntry(t, s, u.ID, "2025-03-02", "four words in here")

	stats, err = s.WordCountStats(u.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.EntryCount)
	assert.Equal(t, 6, stats.TotalWords)
	assert.InDelta(t, 3.0, stats.AverageWords, 0.001)
}

func TestEntriesByMonthCounts(t *testing.T) {
	s := setupStore(t)
	u := createBareUser(t, s, "ada")
	for _, day := range []string{"2025-02-27", "2025-02-28", "2025-03-01", "2025-03-15", "2025-03-31"} {
		mustEntry(t, s, u.ID, day, "words")
	}

	counts, err := s.EntriesByMonthCounts(u.ID)
	require.NoError(t, err)
	require.Len(t, counts, 2)
	// Newest month first.
	assert.Equal(t, "2025-03", counts[0].Month)
	assert.Equal(t, 3, counts[0].Count)
	assert.Equal(t, "2025-02", counts[1].Month)
	assert.Equal(t, 2, counts[1].Count)
}

func TestEntriesByCategoryCounts(t *testing.T) {
	s := setupStore(t)
	u := createBareUser(t, s, "ada")
	cat := int64(7)
	_, err := s.UpsertEntry(u.ID, &types.Entry{
		Title: "a", Content: "x", EntryDate: mustDate(t, "2025-03-01"), CategoryID: &cat,
	})
	require.NoError(t, err)
	_, err = s.UpsertEntry(u.ID, &types.Entry{
		Title: "b", Content: "x", EntryDate: mustDate(t, "2025-03-02"), CategoryID: &cat,
	})
	require.NoError(t, err)
	mustEntry(t, s, u.ID, "2025-03-03", "uncategorized")

	counts, err := s.EntriesByCategoryCounts(u.ID)
	require.NoError(t, err)
	require.Len(t, counts, 2)
	// Largest bucket first.
	require.NotNil(t, counts[0].CategoryID)
	assert.Equal(t, int64(7), *counts[0].CategoryID)
	assert.Equal(t, 2, counts[0].Count)
	assert.Nil(t, counts[1].CategoryID)
	assert.Equal(t, 1, counts[1].Count)
}

func TestTagUsageCounts(t *testing.T) {
	s := setupStore(t)
	u := createBareUser(t, s, "ada")
	e1 := mustEntry(t, s, u.ID, "2025-03-01", "words")
	e2 := mustEntry(t, s, u.ID, "2025-03-02", "words")

	busy, err := s.CreateTag(u.ID, &types.Tag{Name: "busy"})
	require.NoError(t, err)
	idle, err := s.CreateTag(u.ID, &types.Tag{Name: "idle"})
	require.NoError(t, err)
	require.NoError(t, s.AttachTag(u.ID, e1.ID, busy.ID))
	require.NoError(t, s.AttachTag(u.ID, e2.ID, busy.ID))

	usage, err := s.TagUsageCounts(u.ID)
	require.NoError(t, err)
	// Seeded default tags plus the two created here, unused ones included.
	require.Len(t, usage, len(defaultTags)+2)
	assert.Equal(t, busy.ID, usage[0].TagID)
	assert.Equal(t, 2, usage[0].Count)

	var idleCount = -1
	for _, tu := range usage {
		if tu.TagID == idle.ID {
			idleCount = tu.Count
		}
	}
	assert.Zero(t, idleCount)
}

// Aggregate reporting over a user's entries.
package sqlite

import (
	"database/sql"

	"github.com/quietloom/daybook/pkg/types"
)

// WordCountStats returns entry and word totals for the owner, with the
// average computed over all entries. A user with no entries gets zeroes.
func (s *Store) WordCountStats(ownerID int64) (*types.WordCountStats, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	row := s.db.QueryRow(
		"SELECT COUNT(*), COALESCE(SUM(word_count), 0) FROM entries WHERE user_id = ?", ownerID,
	)
	stats := &types.WordCountStats{}
	if err := row.Scan(&stats.EntryCount, &stats.TotalWords); err != nil {
		return nil, types.Storef(err, "scanning word count stats")
	}
	if stats.EntryCount > 0 {
		stats.AverageWords = float64(stats.TotalWords) / float64(stats.EntryCount)
	}
	return stats, nil
}

// EntriesByMonthCounts returns per-month entry counts for the owner,
// newest month first. Months with no entries are absent.
func (s *Store) EntriesByMonthCounts(ownerID int64) ([]types.MonthCount, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(
		`SELECT substr(entry_date, 1, 7) AS month, COUNT(*)
		 FROM entries WHERE user_id = ?
		 GROUP BY month ORDER BY month DESC`,
		ownerID,
	)
	if err != nil {
		return nil, types.Storef(err, "querying month counts")
	}
	defer rows.Close()

	counts := []types.MonthCount{}
	for rows.Next() {
		var mc types.MonthCount
		if err := rows.Scan(&mc.Month, &mc.Count); err != nil {
			return nil, types.Storef(err, "scanning month count")
		}
		counts = append(counts, mc)
	}
	if err := rows.Err(); err != nil {
		return nil, types.Storef(err, "iterating month counts")
	}
	return counts, nil
}

// EntriesByCategoryCounts returns per-category entry counts for the owner,
// largest first. Uncategorized entries report a nil category id.
func (s *Store) EntriesByCategoryCounts(ownerID int64) ([]types.CategoryCount, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(
		`SELECT category_id, COUNT(*) FROM entries WHERE user_id = ?
		 GROUP BY category_id ORDER BY COUNT(*) DESC`,
		ownerID,
	)
	if err != nil {
		return nil, types.Storef(err, "querying category counts")
	}
	defer rows.Close()

	counts := []types.CategoryCount{}
	for rows.Next() {
		var (
			cc       types.CategoryCount
			category sql.NullInt64
		)
		if err := rows.Scan(&category, &cc.Count); err != nil {
			return nil, types.Storef(err, "scanning category count")
		}
		if category.Valid {
			id := category.Int64
			cc.CategoryID = &id
		}
		counts = append(counts, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, types.Storef(err, "iterating category counts")
	}
	return counts, nil
}

// TagUsageCounts returns, for each of the owner's tags, how many entries
// carry it, most used first. Unused tags appear with a zero count.
func (s *Store) TagUsageCounts(ownerID int64) ([]types.TagUsage, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(
		`SELECT t.id, t.name, COUNT(et.entry_id)
		 FROM tags t LEFT JOIN entry_tags et ON et.tag_id = t.id
		 WHERE t.user_id = ?
		 GROUP BY t.id, t.name ORDER BY COUNT(et.entry_id) DESC, t.name ASC`,
		ownerID,
	)
	if err != nil {
		return nil, types.Storef(err, "querying tag usage")
	}
	defer rows.Close()

	usage := []types.TagUsage{}
	for rows.Next() {
		var tu types.TagUsage
		if err := rows.Scan(&tu.TagID, &tu.Name, &tu.Count); err != nil {
			return nil, types.Storef(err, "scanning tag usage")
		}
		usage = append(usage, tu)
	}
	if err := rows.Err(); err != nil {
		return nil, types.Storef(err, "iterating tag usage")
	}
	return usage, nil
}

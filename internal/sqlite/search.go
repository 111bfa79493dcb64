package sqlite

import (
	"strings"

	"github.com/quietloom/daybook/pkg/types"
)

// SearchEntries runs a multi-criteria search over the owner's entries.
// All filter fields are optional and combine with AND; tag and mood lists
// match entries carrying any of the listed ids. Results are ordered newest
// first (entry_date DESC, id DESC) and paged; Total always counts the full
// match set regardless of the page requested.
func (s *Store) SearchEntries(ownerID int64, filter types.EntryFilter, page, pageSize int) (*types.SearchResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if page < 1 {
		return nil, types.Invalidf("page must be positive, got %d", page)
	}
	if pageSize < 1 {
		return nil, types.Invalidf("page size must be positive, got %d", pageSize)
	}

	where, args := searchPredicate(ownerID, filter)

	result := &types.SearchResult{Entries: []*types.Entry{}}
	row := s.db.QueryRow("SELECT COUNT(*) FROM entries e WHERE "+where, args...)
	if err := row.Scan(&result.Total); err != nil {
		return nil, types.Storef(err, "counting search results")
	}

	query := "SELECT " + prefixColumns("e", entryColumns) + " FROM entries e WHERE " + where +
		" ORDER BY e.entry_date DESC, e.id DESC LIMIT ? OFFSET ?"
	pageArgs := append(append([]any{}, args...), pageSize, (page-1)*pageSize)

	rows, err := s.db.Query(query, pageArgs...)
	if err != nil {
		return nil, types.Storef(err, "querying search results")
	}
	defer rows.Close()

	for rows.Next() {
		entry, err := hydrateEntryFromRows(rows)
		if err != nil {
			return nil, err
		}
		result.Entries = append(result.Entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, types.Storef(err, "iterating search results")
	}
	return result, nil
}

// searchPredicate builds the WHERE clause shared by the count and item
// queries. Tag and mood membership use EXISTS subqueries so that entries
// matching several listed ids still appear once.
func searchPredicate(ownerID int64, filter types.EntryFilter) (string, []any) {
	conditions := []string{"e.user_id = ?"}
	args := []any{ownerID}

	if text := strings.TrimSpace(filter.Text); text != "" {
		conditions = append(conditions, "(e.title LIKE ? OR e.content LIKE ?)")
		pattern := "%" + text + "%"
		args = append(args, pattern, pattern)
	}
	if len(filter.TagIDs) > 0 {
		sub := "EXISTS (SELECT 1 FROM entry_tags et WHERE et.entry_id = e.id AND et.tag_id IN (" +
			placeholders(len(filter.TagIDs)) + "))"
		conditions = append(conditions, sub)
		for _, id := range filter.TagIDs {
			args = append(args, id)
		}
	}
	if len(filter.MoodIDs) > 0 {
		sub := "EXISTS (SELECT 1 FROM entry_moods em WHERE em.entry_id = e.id AND em.mood_id IN (" +
			placeholders(len(filter.MoodIDs)) + "))"
		conditions = append(conditions, sub)
		for _, id := range filter.MoodIDs {
			args = append(args, id)
		}
	}
	if filter.CategoryID != nil {
		conditions = append(conditions, "e.category_id = ?")
		args = append(args, *filter.CategoryID)
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, "e.entry_date >= ?")
		args = append(args, types.FormatDate(*filter.DateFrom))
	}
	if filter.DateTo != nil {
		conditions = append(conditions, "e.entry_date <= ?")
		args = append(args, types.FormatDate(*filter.DateTo))
	}

	return strings.Join(conditions, " AND "), args
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// prefixColumns qualifies each column in a comma-separated list with a
// table alias.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ", ")
	for i, p := range parts {
		parts[i] = alias + "." + p
	}
	return strings.Join(parts, ", ")
}

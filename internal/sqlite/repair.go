// Schema self-repair. The repair pass runs once per store open: it inspects
// the stored table definitions, detects the known historical defects, and
// rewrites affected tables in place without losing committed rows (except
// for the settings reset, which is lossy by design). Failures are logged
// and recorded; they never abort the open.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/quietloom/daybook/pkg/types"
)

// Rename-aside table names used by the rebuild recipes. A leftover aside
// table on open means a previous rebuild was interrupted; the pass resumes
// it before anything else.
const (
	asideEntryTags  = "entry_tags_legacy"
	asideEntryMoods = "entry_moods_legacy"
)

// Phantom tables left over from earlier defect patterns.
var phantomTables = []string{"user", "entry_labels"}

// defaultMoodIntensity fills the intensity column when rebuilding an
// entry_moods table that predates it.
const defaultMoodIntensity = 5

// repair runs the full repair pass and returns its report. The caller
// holds the store lock. A repair flag suppresses re-entry until reopen.
func (s *Store) repair() *types.RepairReport {
	report := &types.RepairReport{OpenedAt: s.nowUTC()}
	if s.repaired {
		return report
	}
	s.repaired = true

	s.resumeInterrupted(report)
	s.ensureTables(report)
	s.repairEntryTags(report)
	s.repairEntryMoods(report)
	s.repairSettings(report)
	s.dropPhantoms(report)
	s.ensureIndexes()

	for _, a := range report.Actions {
		s.log.Info("schema repair",
			zap.String("table", a.Table),
			zap.String("defect", a.Defect),
			zap.String("outcome", a.Outcome),
			zap.Bool("lossy", a.Lossy),
		)
	}
	return report
}

// resumeInterrupted finishes a rebuild that crashed between rename and
// drop. An aside table without its canonical counterpart means the crash
// hit before recreation: recreate and copy. With both present, the copy may
// be partial: re-copy with OR IGNORE, then finish the drop.
func (s *Store) resumeInterrupted(report *types.RepairReport) {
	type rebuild struct {
		canonical string
		aside     string
		copyRows  func(aside string) error
	}
	rebuilds := []rebuild{
		{types.TableEntryTags, asideEntryTags, s.copyEntryTagRows},
		{types.TableEntryMoods, asideEntryMoods, s.copyEntryMoodRows},
	}

	for _, r := range rebuilds {
		exists, err := s.tableExists(r.aside)
		if err != nil {
			s.recordFailure(report, r.canonical, "interrupted rebuild", err)
			continue
		}
		if !exists {
			continue
		}

		canonicalExists, err := s.tableExists(r.canonical)
		if err != nil {
			s.recordFailure(report, r.canonical, "interrupted rebuild", err)
			continue
		}
		if !canonicalExists {
			if _, err := s.db.Exec(tableDDL[r.canonical]); err != nil {
				s.recordFailure(report, r.canonical, "interrupted rebuild", err)
				continue
			}
		}
		if err := r.copyRows(r.aside); err != nil {
			s.recordFailure(report, r.canonical, "interrupted rebuild", err)
			continue
		}
		if _, err := s.db.Exec("DROP TABLE " + quoteIdent(r.aside)); err != nil {
			s.recordFailure(report, r.canonical, "interrupted rebuild", err)
			continue
		}
		report.Actions = append(report.Actions, types.RepairAction{
			Table:   r.canonical,
			Defect:  "interrupted rebuild",
			Outcome: types.RepairResumed,
		})
	}
}

// ensureTables creates any missing logical table from the canonical DDL.
func (s *Store) ensureTables(report *types.RepairReport) {
	for _, name := range types.TableNames {
		exists, err := s.tableExists(name)
		if err != nil {
			s.recordFailure(report, name, "missing table", err)
			continue
		}
		if exists {
			continue
		}
		if _, err := s.db.Exec(tableDDL[name]); err != nil {
			s.recordFailure(report, name, "missing table", err)
			continue
		}
		report.Actions = append(report.Actions, types.RepairAction{
			Table:   name,
			Defect:  "missing table",
			Outcome: types.RepairCreated,
		})
	}
}

// repairEntryTags rebuilds the entry_tags join table when its stored
// definition still references the retired labels table. Rows are carried
// forward by column position: entry id, tag id, created time.
func (s *Store) repairEntryTags(report *types.RepairReport) {
	const defect = "references retired labels table"

	ddl, err := s.storedDDL(types.TableEntryTags)
	if err != nil {
		s.recordFailure(report, types.TableEntryTags, defect, err)
		return
	}
	if ddl == "" || !strings.Contains(strings.ToLower(ddl), "label") {
		return
	}

	err = s.rebuildTable(types.TableEntryTags, asideEntryTags, s.copyEntryTagRows)
	if err != nil {
		s.recordFailure(report, types.TableEntryTags, defect, err)
		return
	}
	report.Actions = append(report.Actions, types.RepairAction{
		Table:   types.TableEntryTags,
		Defect:  defect,
		Outcome: types.RepairCopied,
	})
}

// repairEntryMoods rebuilds the entry_moods join table when its stored
// shape predates the intensity or created_at column. Missing intensity
// defaults to the neutral value; missing created times take the repair
// timestamp.
func (s *Store) repairEntryMoods(report *types.RepairReport) {
	missing, err := s.missingEntryMoodColumns()
	if err != nil {
		s.recordFailure(report, types.TableEntryMoods, "legacy column set", err)
		return
	}
	if len(missing) == 0 {
		return
	}
	defect := "missing columns: " + strings.Join(missing, ", ")

	err = s.rebuildTable(types.TableEntryMoods, asideEntryMoods, s.copyEntryMoodRows)
	if err != nil {
		s.recordFailure(report, types.TableEntryMoods, defect, err)
		return
	}
	report.Actions = append(report.Actions, types.RepairAction{
		Table:   types.TableEntryMoods,
		Defect:  defect,
		Outcome: types.RepairCopied,
	})
}

// repairSettings drops and recreates the settings table when its stored
// definition enforces uniqueness on user_id alone, which would prevent a
// user from holding more than one setting. Settings are reconstructible
// defaults, so this repair is lossy by design.
func (s *Store) repairSettings(report *types.RepairReport) {
	const defect = "unique constraint on user_id alone"

	defective, err := s.hasUniqueIndexOnExactly(types.TableSettings, "user_id")
	if err != nil {
		s.recordFailure(report, types.TableSettings, defect, err)
		return
	}
	if !defective {
		return
	}

	if _, err := s.db.Exec("DROP TABLE " + types.TableSettings); err != nil {
		s.recordFailure(report, types.TableSettings, defect, err)
		return
	}
	if _, err := s.db.Exec(createSettings); err != nil {
		s.recordFailure(report, types.TableSettings, defect, err)
		return
	}
	report.Actions = append(report.Actions, types.RepairAction{
		Table:   types.TableSettings,
		Defect:  defect,
		Outcome: types.RepairReset,
		Lossy:   true,
		Detail:  "settings rebuilt empty; defaults reseed per user",
	})
}

// dropPhantoms removes known-obsolete tables left over from earlier
// defect patterns.
func (s *Store) dropPhantoms(report *types.RepairReport) {
	for _, name := range phantomTables {
		exists, err := s.tableExists(name)
		if err != nil {
			s.recordFailure(report, name, "obsolete table", err)
			continue
		}
		if !exists {
			continue
		}
		if _, err := s.db.Exec("DROP TABLE " + quoteIdent(name)); err != nil {
			s.recordFailure(report, name, "obsolete table", err)
			continue
		}
		report.Actions = append(report.Actions, types.RepairAction{
			Table:   name,
			Defect:  "obsolete table",
			Outcome: types.RepairDropped,
		})
	}
}

// ensureIndexes creates the query indexes. Failures are logged only; a
// missing index degrades performance, not correctness.
func (s *Store) ensureIndexes() {
	for _, ddl := range indexDDL {
		if _, err := s.db.Exec(ddl); err != nil {
			s.log.Warn("index creation failed", zap.Error(err))
		}
	}
}

// rebuildTable performs the lossless rename → recreate → copy → drop
// sequence shared by the join-table repairs.
func (s *Store) rebuildTable(canonical, aside string, copyRows func(aside string) error) error {
	q := fmt.Sprintf("ALTER TABLE %s RENAME TO %s", quoteIdent(canonical), quoteIdent(aside))
	if _, err := s.db.Exec(q); err != nil {
		return fmt.Errorf("renaming %s aside: %w", canonical, err)
	}
	if _, err := s.db.Exec(tableDDL[canonical]); err != nil {
		return fmt.Errorf("recreating %s: %w", canonical, err)
	}
	if err := copyRows(aside); err != nil {
		return fmt.Errorf("copying rows into %s: %w", canonical, err)
	}
	if _, err := s.db.Exec("DROP TABLE " + quoteIdent(aside)); err != nil {
		return fmt.Errorf("dropping %s: %w", aside, err)
	}
	return nil
}

// copyEntryTagRows carries entry_tags rows forward from the aside table by
// column position: after the id column come entry id, tag id, created time.
// OR IGNORE makes a resumed copy idempotent under the (entry, tag) unique
// constraint.
func (s *Store) copyEntryTagRows(aside string) error {
	cols, err := s.tableColumns(aside)
	if err != nil {
		return err
	}
	if len(cols) < 4 {
		return fmt.Errorf("aside table %s has %d columns, want at least 4", aside, len(cols))
	}

	q := fmt.Sprintf(
		"INSERT OR IGNORE INTO entry_tags (entry_id, tag_id, created_at) SELECT %s, %s, %s FROM %s",
		quoteIdent(cols[1]), quoteIdent(cols[2]), quoteIdent(cols[3]), quoteIdent(aside),
	)
	_, err = s.db.Exec(q)
	return err
}

// copyEntryMoodRows carries entry_moods rows forward from the aside table.
// Columns absent from the legacy shape are filled with defaults: intensity
// 5, is_primary 0, created_at the repair timestamp.
func (s *Store) copyEntryMoodRows(aside string) error {
	cols, err := s.tableColumns(aside)
	if err != nil {
		return err
	}
	if len(cols) < 3 {
		return fmt.Errorf("aside table %s has %d columns, want at least 3", aside, len(cols))
	}
	has := make(map[string]bool, len(cols))
	for _, c := range cols {
		has[c] = true
	}

	selects := []string{quoteIdent(cols[1]), quoteIdent(cols[2])}
	var args []any

	if has["intensity"] {
		selects = append(selects, "intensity")
	} else {
		selects = append(selects, "?")
		args = append(args, defaultMoodIntensity)
	}
	if has["is_primary"] {
		selects = append(selects, "is_primary")
	} else {
		selects = append(selects, "0")
	}
	if has["created_at"] {
		selects = append(selects, "created_at")
	} else {
		selects = append(selects, "?")
		args = append(args, formatTime(s.nowUTC()))
	}

	q := fmt.Sprintf(
		"INSERT OR IGNORE INTO entry_moods (entry_id, mood_id, intensity, is_primary, created_at) SELECT %s FROM %s",
		strings.Join(selects, ", "), quoteIdent(aside),
	)
	_, err = s.db.Exec(q, args...)
	return err
}

// missingEntryMoodColumns lists the canonical entry_moods columns absent
// from the stored shape. A missing table reports no missing columns; the
// ensure pass creates it.
func (s *Store) missingEntryMoodColumns() ([]string, error) {
	exists, err := s.tableExists(types.TableEntryMoods)
	if err != nil || !exists {
		return nil, err
	}
	cols, err := s.tableColumns(types.TableEntryMoods)
	if err != nil {
		return nil, err
	}
	has := make(map[string]bool, len(cols))
	for _, c := range cols {
		has[c] = true
	}
	var missing []string
	for _, want := range []string{"intensity", "created_at"} {
		if !has[want] {
			missing = append(missing, want)
		}
	}
	return missing, nil
}

// recordFailure logs a repair failure and records it as skipped. The store
// proceeds in degraded mode rather than refusing to open.
func (s *Store) recordFailure(report *types.RepairReport, table, defect string, err error) {
	s.log.Warn("schema repair step failed",
		zap.String("table", table),
		zap.String("defect", defect),
		zap.Error(err),
	)
	report.Actions = append(report.Actions, types.RepairAction{
		Table:   table,
		Defect:  defect,
		Outcome: types.RepairSkipped,
		Detail:  err.Error(),
	})
}

// tableExists reports whether a table with the given name is defined.
func (s *Store) tableExists(name string) (bool, error) {
	var one int
	err := s.db.QueryRow(
		"SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ?", name,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// storedDDL returns the stored CREATE TABLE statement for a table, or ""
// when the table does not exist.
func (s *Store) storedDDL(name string) (string, error) {
	var ddl sql.NullString
	err := s.db.QueryRow(
		"SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?", name,
	).Scan(&ddl)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return ddl.String, nil
}

// tableColumns returns a table's column names in declaration order.
func (s *Store) tableColumns(name string) ([]string, error) {
	rows, err := s.db.Query(fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(name)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var (
			cid        int
			colName    string
			colType    string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &colName, &colType, &notNull, &defaultVal, &pk); err != nil {
			return nil, err
		}
		cols = append(cols, colName)
	}
	return cols, rows.Err()
}

// hasUniqueIndexOnExactly reports whether the table carries a unique index
// (including ones from inline UNIQUE constraints) covering exactly the
// given columns.
func (s *Store) hasUniqueIndexOnExactly(table string, columns ...string) (bool, error) {
	exists, err := s.tableExists(table)
	if err != nil || !exists {
		return false, err
	}

	rows, err := s.db.Query(fmt.Sprintf("PRAGMA index_list(%s)", quoteIdent(table)))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	var uniqueIndexes []string
	for rows.Next() {
		var (
			seq     int
			name    string
			unique  int
			origin  string
			partial int
		)
		if err := rows.Scan(&seq, &name, &unique, &origin, &partial); err != nil {
			return false, err
		}
		if unique == 1 {
			uniqueIndexes = append(uniqueIndexes, name)
		}
	}
	if err := rows.Err(); err != nil {
		return false, err
	}

	for _, idx := range uniqueIndexes {
		cols, err := s.indexColumns(idx)
		if err != nil {
			return false, err
		}
		if equalStrings(cols, columns) {
			return true, nil
		}
	}
	return false, nil
}

// indexColumns returns the column names covered by an index, in order.
func (s *Store) indexColumns(index string) ([]string, error) {
	rows, err := s.db.Query(fmt.Sprintf("PRAGMA index_info(%s)", quoteIdent(index)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var (
			seqno int
			cid   int
			name  sql.NullString
		)
		if err := rows.Scan(&seqno, &cid, &name); err != nil {
			return nil, err
		}
		cols = append(cols, name.String)
	}
	return cols, rows.Err()
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// quoteIdent quotes a SQL identifier.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

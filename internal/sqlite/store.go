// Package sqlite implements the SQLite-backed storage core for Daybook:
// typed CRUD over journal entities, schema self-repair at open, reference
// data seeding, multi-criteria entry search, and streak persistence.
package sqlite

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/quietloom/daybook/internal/streak"
	"github.com/quietloom/daybook/pkg/types"
)

// DBFileName is the journal database file created inside DataDir.
const DBFileName = "daybook.db"

// Store lifecycle states. Only stateReady accepts entity operations.
type storeState int

const (
	stateUnopened storeState = iota
	stateOpening
	stateRepairing
	stateSeeding
	stateReady
	stateClosed
)

// Store is the journal storage core. A Store is created with NewStore,
// opened once with Open (which runs the repair and seed passes), used from
// logically serialized callers, and closed at process teardown.
type Store struct {
	mu     sync.RWMutex
	state  storeState
	db     *sql.DB
	config types.Config
	log    *zap.Logger
	anchor streak.Anchor

	// repaired suppresses re-entry into the repair pass until reopen.
	repaired bool

	// now is the clock; tests override it to pin "today".
	now func() time.Time
}

// NewStore creates an unopened Store. A nil logger disables logging.
func NewStore(log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		state: stateUnopened,
		log:   log,
		now:   time.Now,
	}
}

// Open opens (creating if needed) the database file under config.DataDir,
// runs the one-time schema repair pass, seeds reference data, and moves the
// store to Ready. Repair failures are logged and reported, not fatal: the
// store still opens so that sound tables remain usable.
func (s *Store) Open(config types.Config) (*types.RepairReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == stateReady {
		return nil, types.Invalidf("store is already open")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	s.state = stateOpening

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		s.state = stateUnopened
		return nil, types.Storef(err, "creating data dir %s", dataDir)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, DBFileName))
	if err != nil {
		s.state = stateUnopened
		return nil, types.Storef(err, "opening database")
	}

	s.db = db
	s.config = config
	s.anchor = streak.AnchorFromConfig(config.StreakAnchor)

	s.state = stateRepairing
	report := s.repair()

	s.state = stateSeeding
	if err := s.seedReferenceData(); err != nil {
		s.log.Warn("reference data seeding failed", zap.Error(err))
	}

	s.state = stateReady
	return report, nil
}

// Close releases the database handle. Idempotent. After Close, operations
// return ErrStoreClosed until the store is reopened.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != stateReady {
		return nil
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return types.Storef(err, "closing database")
		}
		s.db = nil
	}
	s.state = stateClosed
	s.repaired = false
	return nil
}

// ready gates entity operations on the Ready state.
func (s *Store) ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != stateReady {
		return types.ErrStoreClosed
	}
	return nil
}

// today returns the current calendar day per the store clock.
func (s *Store) today() time.Time {
	return types.Day(s.now())
}

// nowUTC returns the store clock in UTC, for timestamp fields.
func (s *Store) nowUTC() time.Time {
	return s.now().UTC()
}

// formatTime renders a timestamp for storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// parseTime parses a stored timestamp.
func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

package types

// Streak anchor policies. The product observed both rules in use; the
// choice is configuration rather than a hardcoded pick.
const (
	// AnchorToday counts the current streak strictly from today: a user who
	// last journaled yesterday sees a current streak of 0.
	AnchorToday = "today"

	// AnchorTodayOrYesterday treats a run ending yesterday as still active.
	AnchorTodayOrYesterday = "today_or_yesterday"
)

// knownAnchors lists the streak anchor policies Validate accepts.
var knownAnchors = map[string]bool{
	AnchorToday:            true,
	AnchorTodayOrYesterday: true,
}

// Config holds store parameters for Open.
type Config struct {
	// DataDir is the directory holding the journal database file.
	// Empty means the current directory.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// StreakAnchor selects the current-streak anchor policy. Empty defaults
	// to AnchorTodayOrYesterday.
	StreakAnchor string `json:"streak_anchor" yaml:"streak_anchor"`
}

// Validate checks that the Config is well-formed.
func (c Config) Validate() error {
	if c.StreakAnchor != "" && !knownAnchors[c.StreakAnchor] {
		return Invalidf("unknown streak anchor %q", c.StreakAnchor)
	}
	return nil
}

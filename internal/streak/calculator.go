// Package streak reduces a user's entry dates into contiguous-run
// statistics: current streak, longest streak, and total missed days.
// Calculation is pure; persistence of the results lives in the store.
package streak

import (
	"sort"
	"time"

	"github.com/quietloom/daybook/pkg/types"
)

// Anchor selects the current-streak anchor rule.
type Anchor int

const (
	// AnchorToday starts the backward walk strictly at today. A run that
	// ended yesterday reports a current streak of 0.
	AnchorToday Anchor = iota

	// AnchorTodayOrYesterday falls back to yesterday when today has no
	// entry, so a run ending yesterday is still reported as active.
	AnchorTodayOrYesterday
)

// AnchorFromConfig maps a config string to an Anchor. Unknown or empty
// values fall back to AnchorTodayOrYesterday.
func AnchorFromConfig(s string) Anchor {
	if s == types.AnchorToday {
		return AnchorToday
	}
	return AnchorTodayOrYesterday
}

// Stats holds the three derived statistics.
type Stats struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
	Missed  int `json:"missed"`
}

// Calculate reduces dates into Stats relative to today. Input need not be
// sorted or deduplicated; only the calendar day of each value matters.
// Empty input yields the zero Stats.
func Calculate(dates []time.Time, today time.Time, anchor Anchor) Stats {
	days := normalize(dates)
	if len(days) == 0 {
		return Stats{}
	}

	var s Stats

	// Longest run and missed days in a single pass over adjacent pairs.
	run := 1
	s.Longest = 1
	for i := 1; i < len(days); i++ {
		gap := days[i] - days[i-1]
		if gap == 1 {
			run++
			if run > s.Longest {
				s.Longest = run
			}
		} else {
			s.Missed += gap - 1
			run = 1
		}
	}

	s.Current = currentRunLength(days, today, anchor)
	return s
}

// CurrentRun returns the first and last day of the run counted by the
// current-streak rule, plus its length. A zero length means no active run;
// the returned times are then zero values.
func CurrentRun(dates []time.Time, today time.Time, anchor Anchor) (start, end time.Time, length int) {
	days := normalize(dates)
	length = currentRunLength(days, today, anchor)
	if length == 0 {
		return time.Time{}, time.Time{}, 0
	}

	endDay := types.DayNumber(today)
	if !contains(days, endDay) {
		endDay--
	}
	startDay := endDay - length + 1
	return dayToTime(startDay), dayToTime(endDay), length
}

// currentRunLength walks backward from the anchor day counting consecutive
// present days. days must be normalized.
func currentRunLength(days []int, today time.Time, anchor Anchor) int {
	if len(days) == 0 {
		return 0
	}

	day := types.DayNumber(today)
	if !contains(days, day) {
		if anchor == AnchorToday {
			return 0
		}
		day--
	}

	count := 0
	for contains(days, day) {
		count++
		day--
	}
	return count
}

// normalize deduplicates and sorts dates ascending as day numbers.
func normalize(dates []time.Time) []int {
	seen := make(map[int]bool, len(dates))
	days := make([]int, 0, len(dates))
	for _, d := range dates {
		n := types.DayNumber(d)
		if !seen[n] {
			seen[n] = true
			days = append(days, n)
		}
	}
	sort.Ints(days)
	return days
}

func contains(sorted []int, day int) bool {
	i := sort.SearchInts(sorted, day)
	return i < len(sorted) && sorted[i] == day
}

func dayToTime(day int) time.Time {
	return time.Unix(int64(day)*86400, 0).UTC()
}

// Unit tests for the streak calculator: run statistics, anchor policies,
// and order/duplicate independence.
package streak

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/quietloom/daybook/pkg/types"
)

// d builds a UTC calendar day from an ISO date string.
func d(t *testing.T, s string) time.Time {
	t.Helper()
	day, err := types.ParseDate(s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return day
}

func days(t *testing.T, ss ...string) []time.Time {
	t.Helper()
	out := make([]time.Time, 0, len(ss))
	for _, s := range ss {
		out = append(out, d(t, s))
	}
	return out
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name   string
		dates  []string
		today  string
		anchor Anchor
		want   Stats
	}{
		{
			name:  "empty input yields zero stats",
			today: "2024-01-06",
			want:  Stats{},
		},
		{
			name:   "single entry today",
			dates:  []string{"2024-01-06"},
			today:  "2024-01-06",
			anchor: AnchorToday,
			want:   Stats{Current: 1, Longest: 1, Missed: 0},
		},
		{
			name:   "run with one gap",
			dates:  []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-06"},
			today:  "2024-01-06",
			anchor: AnchorToday,
			want:   Stats{Current: 1, Longest: 3, Missed: 2},
		},
		{
			name:   "strict anchor reports zero when today absent",
			dates:  []string{"2024-01-03", "2024-01-04", "2024-01-05"},
			today:  "2024-01-06",
			anchor: AnchorToday,
			want:   Stats{Current: 0, Longest: 3, Missed: 0},
		},
		{
			name:   "lenient anchor keeps a run ending yesterday",
			dates:  []string{"2024-01-03", "2024-01-04", "2024-01-05"},
			today:  "2024-01-06",
			anchor: AnchorTodayOrYesterday,
			want:   Stats{Current: 3, Longest: 3, Missed: 0},
		},
		{
			name:   "lenient anchor still zero when run ended before yesterday",
			dates:  []string{"2024-01-01", "2024-01-02"},
			today:  "2024-01-06",
			anchor: AnchorTodayOrYesterday,
			want:   Stats{Current: 0, Longest: 2, Missed: 0},
		},
		{
			name:   "current run spans today backward",
			dates:  []string{"2024-01-02", "2024-01-04", "2024-01-05", "2024-01-06"},
			today:  "2024-01-06",
			anchor: AnchorToday,
			want:   Stats{Current: 3, Longest: 3, Missed: 1},
		},
		{
			name:   "no adjacent dates",
			dates:  []string{"2024-01-01", "2024-01-03", "2024-01-05"},
			today:  "2024-01-05",
			anchor: AnchorToday,
			want:   Stats{Current: 1, Longest: 1, Missed: 2},
		},
		{
			name:   "runs across a month boundary",
			dates:  []string{"2024-01-30", "2024-01-31", "2024-02-01", "2024-02-02"},
			today:  "2024-02-02",
			anchor: AnchorToday,
			want:   Stats{Current: 4, Longest: 4, Missed: 0},
		},
		{
			name:   "runs across a leap day",
			dates:  []string{"2024-02-28", "2024-02-29", "2024-03-01"},
			today:  "2024-03-01",
			anchor: AnchorToday,
			want:   Stats{Current: 3, Longest: 3, Missed: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(days(t, tt.dates...), d(t, tt.today), tt.anchor)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculateOrderAndDuplicateIndependence(t *testing.T) {
	base := days(t,
		"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-05",
		"2024-03-09", "2024-03-10", "2024-03-14",
	)
	today := d(t, "2024-03-14")
	want := Calculate(base, today, AnchorToday)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]time.Time(nil), base...)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		// Duplicate a few dates at random positions.
		for j := 0; j < 3; j++ {
			shuffled = append(shuffled, shuffled[rng.Intn(len(base))])
		}
		assert.Equal(t, want, Calculate(shuffled, today, AnchorToday))
	}
}

// Missed gaps and present runs partition the observed span.
func TestCalculatePartitionProperty(t *testing.T) {
	sets := [][]string{
		{"2024-01-01"},
		{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-06"},
		{"2024-01-01", "2024-01-05", "2024-01-09"},
		{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01", "2024-03-04"},
		{"2023-12-29", "2023-12-30", "2024-01-02"},
	}

	for _, set := range sets {
		dates := days(t, set...)
		stats := Calculate(dates, d(t, "2024-06-01"), AnchorToday)

		present := len(dates) // sets above carry no duplicates
		span := types.DayNumber(dates[len(dates)-1]) - types.DayNumber(dates[0]) + 1
		assert.Equal(t, span, present+stats.Missed, "set %v", set)
	}
}

func TestCurrentRun(t *testing.T) {
	tests := []struct {
		name       string
		dates      []string
		today      string
		anchor     Anchor
		wantStart  string
		wantEnd    string
		wantLength int
	}{
		{
			name:       "run ending today",
			dates:      []string{"2024-01-04", "2024-01-05", "2024-01-06"},
			today:      "2024-01-06",
			anchor:     AnchorToday,
			wantStart:  "2024-01-04",
			wantEnd:    "2024-01-06",
			wantLength: 3,
		},
		{
			name:       "lenient run ending yesterday",
			dates:      []string{"2024-01-04", "2024-01-05"},
			today:      "2024-01-06",
			anchor:     AnchorTodayOrYesterday,
			wantStart:  "2024-01-04",
			wantEnd:    "2024-01-05",
			wantLength: 2,
		},
		{
			name:   "no active run",
			dates:  []string{"2024-01-01"},
			today:  "2024-01-06",
			anchor: AnchorTodayOrYesterday,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, length := CurrentRun(days(t, tt.dates...), d(t, tt.today), tt.anchor)
			assert.Equal(t, tt.wantLength, length)
			if tt.wantLength == 0 {
				assert.True(t, start.IsZero())
				assert.True(t, end.IsZero())
				return
			}
			assert.Equal(t, d(t, tt.wantStart), start)
			assert.Equal(t, d(t, tt.wantEnd), end)
		})
	}
}

func TestAnchorFromConfig(t *testing.T) {
	assert.Equal(t, AnchorToday, AnchorFromConfig(types.AnchorToday))
	assert.Equal(t, AnchorTodayOrYesterday, AnchorFromConfig(types.AnchorTodayOrYesterday))
	assert.Equal(t, AnchorTodayOrYesterday, AnchorFromConfig(""))
}

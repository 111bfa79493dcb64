package types

import "time"

// DateLayout is the stored form of an entry date: a calendar day with no
// time component.
const DateLayout = "2006-01-02"

// FormatDate renders t as a stored entry date, in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ParseDate parses a stored entry date. The result is midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Day truncates t to its calendar day at midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayNumber returns the number of whole days between the Unix epoch and t's
// calendar day. Adjacent days differ by exactly 1 regardless of DST.
func DayNumber(t time.Time) int {
	sec := Day(t).Unix()
	if sec < 0 {
		// Floor division for pre-epoch days.
		return int((sec - 86399) / 86400)
	}
	return int(sec / 86400)
}

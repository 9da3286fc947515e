package probable

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the format of resolved start dates
const DateLayout = "2006-01-02"

// headerDatePattern finds a weekday abbreviation followed by month/day, e.g. "Mon 3/10"
var headerDatePattern = regexp.MustCompile(`([\p{L}\p{N}_]{3})\s*(\d+/\d+)`)

// ColumnDates maps a 1-based grid column to its resolved date.
// Columns whose header did not resolve have no entry.
type ColumnDates map[int]string

// Lookup returns the date for a column, or UnknownDate
func (c ColumnDates) Lookup(column int) string {
	if date, ok := c[column]; ok {
		return date
	}
	return UnknownDate
}

// ResolveHeaderDate extracts the month/day token from a column header and
// resolves it to a YYYY-MM-DD date relative to now.
//
// Headers carry no year. A month earlier than now's month is taken to be in
// the following year, otherwise the current year is used. Only months are
// compared, so a header in the current month always resolves to the current
// year even when its day has already passed.
//
// Returns false when the header has no date token or the token is not a
// valid calendar date.
func ResolveHeaderDate(header string, now time.Time) (string, bool) {
	matches := headerDatePattern.FindStringSubmatch(strings.TrimSpace(normalizeSpace(header)))
	if matches == nil {
		return "", false
	}

	parts := strings.SplitN(matches[2], "/", 2)
	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", false
	}
	day, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", false
	}

	year := yearForMonth(month, now)

	// time.Date normalizes out-of-range values, so round-trip to reject them
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return "", false
	}

	return t.Format(DateLayout), true
}

// yearForMonth returns now's year, or the next one if month has already passed
func yearForMonth(month int, now time.Time) int {
	year := now.Year()
	if month < int(now.Month()) {
		year++
	}
	return year
}

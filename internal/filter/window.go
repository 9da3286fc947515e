package filter

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the format of date inputs
const DateLayout = "2006-01-02"

// DefaultMaxWindowDays is how far past today the end date may reach
const DefaultMaxWindowDays = 10

// Window is the start/end date pair collected alongside a search.
// It is reported back with the results but does not bound extraction.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DefaultWindow returns a window starting and ending today
func DefaultWindow(today time.Time) Window {
	day := truncateDay(today)
	return Window{Start: day, End: day}
}

// MaxEnd returns the latest allowed end date for today
func MaxEnd(today time.Time, maxDays int) time.Time {
	return truncateDay(today).AddDate(0, 0, maxDays)
}

// ParseWindow parses start and end dates in YYYY-MM-DD form.
// Blank inputs default to today, and an end date past today+maxDays is
// capped to that day.
func ParseWindow(start, end string, today time.Time, maxDays int) (Window, error) {
	w := DefaultWindow(today)

	if s := strings.TrimSpace(start); s != "" {
		t, err := time.Parse(DateLayout, s)
		if err != nil {
			return Window{}, fmt.Errorf("invalid start date %q: use YYYY-MM-DD", start)
		}
		w.Start = t
	}

	if e := strings.TrimSpace(end); e != "" {
		t, err := time.Parse(DateLayout, e)
		if err != nil {
			return Window{}, fmt.Errorf("invalid end date %q: use YYYY-MM-DD", end)
		}
		w.End = t
	}

	if limit := MaxEnd(today, maxDays); w.End.After(limit) {
		w.End = limit
	}

	return w, nil
}

// String formats the window for display
func (w Window) String() string {
	return fmt.Sprintf("%s to %s", w.Start.Format(DateLayout), w.End.Format(DateLayout))
}

// truncateDay drops the clock part, keeping the calendar day of t
func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

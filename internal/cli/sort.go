package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pfrederiksen/sp-probables/internal/probable"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByDate     SortOrder = "date"
	SortByPitcher  SortOrder = "pitcher"
	SortByOpponent SortOrder = "opponent"
)

// ParseSortOrder validates a --sort value
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(s)); o {
	case SortByDate, SortByPitcher, SortByOpponent:
		return o, nil
	default:
		return "", fmt.Errorf("invalid sort: %s (must be 'date', 'pitcher' or 'opponent')", s)
	}
}

// sortStarts reorders starts. All orders are stable and fall back to date.
// Starts arrive sorted by date, so SortByDate leaves them untouched.
func sortStarts(starts []*probable.Start, order SortOrder) {
	switch order {
	case SortByPitcher:
		sort.SliceStable(starts, func(i, j int) bool {
			pi, pj := strings.ToLower(starts[i].Pitcher), strings.ToLower(starts[j].Pitcher)
			if pi != pj {
				return pi < pj
			}
			return starts[i].Date < starts[j].Date
		})
	case SortByOpponent:
		sort.SliceStable(starts, func(i, j int) bool {
			oi, oj := opponentCode(starts[i]), opponentCode(starts[j])
			if oi != oj {
				return oi < oj
			}
			return starts[i].Date < starts[j].Date
		})
	}
}

// opponentCode strips the home/away marker from an opponent
func opponentCode(s *probable.Start) string {
	if i := strings.LastIndexByte(s.Opponent, ' '); i >= 0 {
		return s.Opponent[i+1:]
	}
	return s.Opponent
}

// Package filter provides the user-supplied search inputs for pitcher starts.
//
// Players is the optional allow-list of pitcher names, matched
// case-insensitively. Window is the start/end date pair collected by the
// search form. The end date may reach at most ten days past today by default.
//
// Example usage:
//
//	players := filter.ParsePlayers("Tarik Skubal\nlogan webb\n")
//	players.Matches("Logan Webb") // true
//
//	w, err := filter.ParseWindow("2026-10-17", "2026-11-30", time.Now(), filter.DefaultMaxWindowDays)
//	// w.End is capped to 2026-10-27
package filter

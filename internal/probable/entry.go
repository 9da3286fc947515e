package probable

import (
	"regexp"
	"strings"
	"unicode"
)

// entryPattern matches a full grid cell: optional "@", a three-letter opponent
// code, the pitcher's name and "(L)" or "(R)" at the very end.
var entryPattern = regexp.MustCompile(`^\s*(@)?\s*([A-Z]{3})\s*([A-Za-z\s]+)\s*\(([LR])\)$`)

// ParseEntry parses the text of a single grid cell.
// Returns false for blank cells and anything else that does not match the
// entry grammar in full. A cell whose name is only whitespace, such as
// "NYY (L)", still matches and yields an empty Pitcher.
func ParseEntry(text string) (*Entry, bool) {
	matches := entryPattern.FindStringSubmatch(normalizeSpace(text))
	if matches == nil {
		return nil, false
	}

	marker := "v"
	if matches[1] == "@" {
		marker = "@"
	}

	return &Entry{
		Handedness: Handedness(matches[4]),
		Pitcher:    strings.TrimSpace(matches[3]),
		Opponent:   marker + " " + matches[2],
	}, true
}

// normalizeSpace replaces every Unicode space, such as the no-break space of
// &nbsp;, with an ASCII space. Go's \s only matches ASCII whitespace.
func normalizeSpace(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, text)
}

package filter

import (
	"sort"
	"strings"
)

// Players is a case-insensitive allow-list of pitcher names.
// An empty list matches every pitcher.
type Players map[string]struct{}

// NewPlayers builds an allow-list from names, lowercasing and trimming each
// and skipping blanks.
func NewPlayers(names ...string) Players {
	p := make(Players, len(names))
	for _, name := range names {
		name = normalizeName(name)
		if name == "" {
			continue
		}
		p[name] = struct{}{}
	}
	return p
}

// ParsePlayers parses a newline-delimited list of names, as typed into the
// player text area.
func ParsePlayers(text string) Players {
	return NewPlayers(strings.Split(text, "\n")...)
}

// ParsePlayerCSV parses a comma-separated list of names
func ParsePlayerCSV(text string) Players {
	return NewPlayers(strings.Split(text, ",")...)
}

// Merge adds every name of other to p
func (p Players) Merge(other Players) {
	for name := range other {
		p[name] = struct{}{}
	}
}

// IsEmpty reports whether the list places no restriction
func (p Players) IsEmpty() bool {
	return len(p) == 0
}

// Contains reports whether pitcher is on the list. The comparison lowercases
// pitcher but does not otherwise normalize it.
func (p Players) Contains(pitcher string) bool {
	_, ok := p[strings.ToLower(pitcher)]
	return ok
}

// Matches reports whether a pitcher passes the filter
func (p Players) Matches(pitcher string) bool {
	return p.IsEmpty() || p.Contains(pitcher)
}

// Names returns the list's names in sorted order
func (p Players) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

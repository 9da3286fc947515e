// Package probable provides the record types and text grammars for probable
// pitcher starts.
//
// A probables grid lists, per team row and per date column, the pitcher expected
// to start that day. Each populated cell reads like "@ NYY John Smith (L)": an
// optional away marker, the opponent's three-letter code, the pitcher's name and
// their handedness. Column headers read like "Mon 3/10" and carry no year, so the
// year is inferred relative to a caller-supplied current date.
package probable

// Package cli implements the command-line interface for sp-probables.
//
// The root command runs the probables pipeline once and prints the pitcher
// starts as a table, JSON or an iCalendar feed. The serve subcommand starts
// the interactive web form. Settings come from the config package; flags
// override the player list, date window, output format and sort order.
package cli

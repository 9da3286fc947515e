package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/pfrederiksen/sp-probables/internal/calendar"
	"github.com/pfrederiksen/sp-probables/internal/tracker"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatICS  OutputFormat = "ics"
)

// ParseFormat validates a --format value
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case FormatText, FormatJSON, FormatICS:
		return f, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be 'text', 'json' or 'ics')", s)
	}
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *tracker.Result, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	case FormatICS:
		_, err := io.WriteString(w, calendar.GenerateICS(result.Starts, result.CheckedAt))
		return err
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *tracker.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as an aligned table
func writeText(w io.Writer, result *tracker.Result, verbose bool) error {
	if verbose {
		fmt.Fprintf(w, "Run:     %s\n", result.RunID)
		fmt.Fprintf(w, "Source:  %s\n", result.Source)
		fmt.Fprintf(w, "Checked: %s\n", result.CheckedAt.Format(time.RFC3339))
		fmt.Fprintf(w, "Window:  %s\n", result.Window)
		if len(result.Players) > 0 {
			fmt.Fprintf(w, "Players: %d\n", len(result.Players))
		}
		fmt.Fprintln(w)
	}

	if !result.Found() {
		fmt.Fprintln(w, "No pitcher starts found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tHAND\tPITCHER\tOPPONENT")
	for _, s := range result.Starts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Date, s.Handedness, s.Pitcher, s.Opponent)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	label := "starts"
	if len(result.Starts) == 1 {
		label = "start"
	}
	fmt.Fprintf(w, "\nTotal: %d %s\n", len(result.Starts), label)

	return nil
}

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/sp-probables/internal/config"
	"github.com/pfrederiksen/sp-probables/internal/filter"
	"github.com/pfrederiksen/sp-probables/internal/logger"
	"github.com/pfrederiksen/sp-probables/internal/scraper"
	"github.com/pfrederiksen/sp-probables/internal/tracker"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig      string
	flagPlayers     string
	flagPlayersFile string
	flagStart       string
	flagEnd         string
	flagFormat      string
	flagSort        string
	flagFile        string
	flagVerbose     bool
)

// cfg is loaded once per invocation by setup
var cfg *config.Config

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probables",
		Short: "List probable starting pitchers",
		Long: `A CLI tool to list probable pitcher starts from the RosterResource probables grid.
Fetches the grid once, optionally keeps only the named pitchers, and prints the
starts sorted by date.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		RunE:              runFind,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default ./probables.yaml or ~/.probables/probables.yaml)")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.Flags().StringVar(&flagPlayers, "players", "", "Comma-separated pitcher names to keep (default: all)")
	cmd.Flags().StringVar(&flagPlayersFile, "players-file", "", "File with one pitcher name per line, or - for stdin")
	cmd.Flags().StringVar(&flagStart, "start", "", "Start date, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&flagEnd, "end", "", "End date, YYYY-MM-DD (default today, at most max_window_days ahead)")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text, json or ics")
	cmd.Flags().StringVar(&flagSort, "sort", "date", "Sort order: date, pitcher or opponent")
	cmd.Flags().StringVar(&flagFile, "file", "", "Read the grid from a saved HTML page instead of fetching it")

	cmd.AddCommand(newServeCmd())

	return cmd
}

// setup loads configuration and configures the default logger
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg = loaded

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if flagVerbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))

	logger.Debug("Loaded configuration", logger.Fields{
		"url":      cfg.URL,
		"attempts": cfg.Attempts,
		"timeout":  cfg.Timeout.String(),
	})

	return nil
}

// runFind is the main command logic
func runFind(cmd *cobra.Command, args []string) error {
	format, err := ParseFormat(flagFormat)
	if err != nil {
		return err
	}
	order, err := ParseSortOrder(flagSort)
	if err != nil {
		return err
	}

	players, err := loadPlayers(cmd.InOrStdin())
	if err != nil {
		return err
	}

	window, err := filter.ParseWindow(flagStart, flagEnd, time.Now(), cfg.MaxWindowDays)
	if err != nil {
		return err
	}

	req := tracker.Request{Players: players, Window: window}
	tr := tracker.New(scraper.NewWithOptions(cfg.ScraperOptions()))

	var result *tracker.Result
	if flagFile != "" {
		result, err = extractFromFile(tr, flagFile, req)
	} else {
		result, err = tr.FindStarts(cmd.Context(), req)
	}
	if err != nil {
		return fmt.Errorf("finding starts: %w", err)
	}

	if result.Warning != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", result.Warning)
	}

	sortStarts(result.Starts, order)

	if err := WriteOutput(cmd.OutOrStdout(), result, format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}

// loadPlayers merges --players and --players-file
func loadPlayers(stdin io.Reader) (filter.Players, error) {
	players := filter.ParsePlayerCSV(flagPlayers)

	if flagPlayersFile == "" {
		return players, nil
	}

	var data []byte
	var err error
	if flagPlayersFile == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(flagPlayersFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading players file: %w", err)
	}

	players.Merge(filter.ParsePlayers(string(data)))
	return players, nil
}

// extractFromFile runs extraction against a saved copy of the grid page
func extractFromFile(tr *tracker.Tracker, path string, req tracker.Request) (*tracker.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}
	defer f.Close() // nolint:errcheck

	doc, err := scraper.ParseDocument(f)
	if err != nil {
		return nil, err
	}

	result := tr.Extract(doc, req)
	result.Source = path
	return result, nil
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(ExitError)
	}
}

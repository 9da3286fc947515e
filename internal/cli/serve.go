package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/sp-probables/internal/logger"
	"github.com/pfrederiksen/sp-probables/internal/scraper"
	"github.com/pfrederiksen/sp-probables/internal/tracker"
	"github.com/pfrederiksen/sp-probables/internal/web"
)

const shutdownTimeout = 10 * time.Second

var flagAddr string

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the pitcher starts search form",
		Long: `Starts a web server with the search form: pick a date window, paste
pitcher names one per line and press "Find Pitcher Starts".`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default from listen_addr, :8080)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := cfg.ListenAddr
	if flagAddr != "" {
		addr = flagAddr
	}

	tr := tracker.New(scraper.NewWithOptions(cfg.ScraperOptions()))
	srv := web.NewServer(addr, tr, cfg.MaxWindowDays)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	logger.Info("Web UI listening", logger.Fields{"addr": srv.Addr(), "source": cfg.URL})

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	case <-cmd.Context().Done():
	}

	logger.Info("Shutting down web UI", nil)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return <-errCh
}

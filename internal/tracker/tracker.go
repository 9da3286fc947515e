// Package tracker runs the probables pipeline: fetch the grid page, extract
// the pitcher starts and classify failures for the presentation layer.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/pfrederiksen/sp-probables/internal/filter"
	"github.com/pfrederiksen/sp-probables/internal/logger"
	"github.com/pfrederiksen/sp-probables/internal/probable"
	"github.com/pfrederiksen/sp-probables/internal/scraper"
)

// Fetcher retrieves the grid page
type Fetcher interface {
	Fetch(ctx context.Context) (*goquery.Document, error)
	URL() string
}

// Request holds the user's search inputs
type Request struct {
	Players filter.Players
	Window  filter.Window
}

// Result is the outcome of one pipeline run
type Result struct {
	RunID     string            `json:"run_id"`
	CheckedAt time.Time         `json:"checked_at"`
	Source    string            `json:"source"`
	Window    filter.Window     `json:"window"`
	Players   []string          `json:"players"`
	Starts    []*probable.Start `json:"starts"`
	Warning   string            `json:"warning,omitempty"`
}

// Tracker runs the pipeline against a Fetcher
type Tracker struct {
	fetcher Fetcher
	now     func() time.Time
}

// New creates a Tracker reading the clock from time.Now
func New(fetcher Fetcher) *Tracker {
	return &Tracker{
		fetcher: fetcher,
		now:     time.Now,
	}
}

// WithClock returns a copy of t that uses now instead of time.Now
func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	return &Tracker{fetcher: t.fetcher, now: now}
}

// Now returns the tracker's current time
func (t *Tracker) Now() time.Time {
	return t.now()
}

// FindStarts fetches the grid and extracts the starts matching req.
//
// A failed fetch is returned as an error wrapping *scraper.FetchError. A page
// without the grid is not an error: the result has no starts and carries the
// problem in Warning.
func (t *Tracker) FindStarts(ctx context.Context, req Request) (*Result, error) {
	runID := uuid.NewString()
	fields := logger.Fields{"run_id": runID, "url": t.fetcher.URL()}
	logger.IncrCounter("runs.total")

	begin := time.Now()
	doc, err := t.fetcher.Fetch(ctx)
	logger.RecordTiming("fetch", time.Since(begin))
	if err != nil {
		logger.IncrCounter("runs.fetch_failed")
		logger.Error("Page fetch failed", fields, err)
		return nil, fmt.Errorf("fetching probables grid: %w", err)
	}

	result := t.Extract(doc, req)
	result.RunID = runID
	result.Source = t.fetcher.URL()

	if result.Warning != "" {
		logger.IncrCounter("runs.structure_warning")
	}
	logger.SetGauge("starts.last_run", float64(len(result.Starts)))
	logger.Info("Found pitcher starts", logger.Fields{
		"run_id":  runID,
		"starts":  len(result.Starts),
		"players": len(result.Players),
	})

	return result, nil
}

// Extract runs the extraction half of the pipeline on an already parsed page
func (t *Tracker) Extract(doc *goquery.Document, req Request) *Result {
	now := t.now()
	result := &Result{
		CheckedAt: now.UTC(),
		Window:    req.Window,
		Players:   req.Players.Names(),
	}

	starts, err := scraper.ExtractStarts(doc, req.Players, now)
	if err != nil {
		fields := logger.Fields{"reason": err.Error()}
		var structErr *scraper.StructureError
		if errors.As(err, &structErr) {
			fields["selector"] = structErr.Selector
		}
		logger.Warn("Probables grid not found", fields)
		result.Warning = err.Error()
	}
	result.Starts = starts

	return result
}

// Found reports whether the run produced any starts
func (r *Result) Found() bool {
	return len(r.Starts) > 0
}

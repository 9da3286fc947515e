package tracker

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/sp-probables/internal/filter"
	"github.com/pfrederiksen/sp-probables/internal/logger"
	"github.com/pfrederiksen/sp-probables/internal/scraper"
)

var testNow = time.Date(2026, time.October, 17, 9, 0, 0, 0, time.UTC)

type stubFetcher struct {
	page string
	err  error
}

func (f *stubFetcher) Fetch(ctx context.Context) (*goquery.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return scraper.ParseDocument(strings.NewReader(f.page))
}

func (f *stubFetcher) URL() string {
	return "https://example.test/grid"
}

func quietLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous := logger.Default()
	logger.SetDefault(logger.New(logger.LevelDebug, &buf))
	t.Cleanup(func() { logger.SetDefault(previous) })
	return &buf
}

func loadFixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("../../testdata/fixtures/probables_grid.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}
	return string(data)
}

func fixedClock() time.Time {
	return testNow
}

func TestFindStarts(t *testing.T) {
	quietLogs(t)
	tr := New(&stubFetcher{page: loadFixture(t)}).WithClock(fixedClock)

	window := filter.DefaultWindow(testNow)
	result, err := tr.FindStarts(context.Background(), Request{
		Players: filter.ParsePlayers("Tarik Skubal\nYu Darvish"),
		Window:  window,
	})
	if err != nil {
		t.Fatalf("FindStarts() error: %v", err)
	}

	if result.RunID == "" {
		t.Error("RunID is empty")
	}
	if result.Source != "https://example.test/grid" {
		t.Errorf("Source = %q", result.Source)
	}
	if !result.CheckedAt.Equal(testNow) {
		t.Errorf("CheckedAt = %v, want %v", result.CheckedAt, testNow)
	}
	if result.Window != window {
		t.Errorf("Window = %v, want %v", result.Window, window)
	}
	if strings.Join(result.Players, ",") != "tarik skubal,yu darvish" {
		t.Errorf("Players = %v", result.Players)
	}
	if result.Warning != "" {
		t.Errorf("Warning = %q, want none", result.Warning)
	}
	if !result.Found() || len(result.Starts) != 2 {
		t.Fatalf("Starts = %d, want 2", len(result.Starts))
	}
	if result.Starts[0].Pitcher != "Yu Darvish" || result.Starts[1].Pitcher != "Tarik Skubal" {
		t.Errorf("Starts = %+v, %+v", *result.Starts[0], *result.Starts[1])
	}
}

func TestFindStarts_UniqueRunIDs(t *testing.T) {
	quietLogs(t)
	tr := New(&stubFetcher{page: loadFixture(t)})

	first, err := tr.FindStarts(context.Background(), Request{})
	if err != nil {
		t.Fatalf("FindStarts() error: %v", err)
	}
	second, err := tr.FindStarts(context.Background(), Request{})
	if err != nil {
		t.Fatalf("FindStarts() error: %v", err)
	}
	if first.RunID == second.RunID {
		t.Errorf("run IDs should differ, both %q", first.RunID)
	}
}

func TestFindStarts_FetchError(t *testing.T) {
	logs := quietLogs(t)
	cause := &scraper.FetchError{URL: "https://example.test/grid", StatusCode: http.StatusServiceUnavailable}
	tr := New(&stubFetcher{err: cause})

	result, err := tr.FindStarts(context.Background(), Request{})
	if err == nil {
		t.Fatal("FindStarts() expected error, got nil")
	}
	if result != nil {
		t.Errorf("result = %+v, want nil", result)
	}

	var fetchErr *scraper.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("error = %v, want wrapped *scraper.FetchError", err)
	}
	if !strings.Contains(logs.String(), `"level":"ERROR"`) {
		t.Error("fetch failure should be logged at ERROR")
	}
}

func TestFindStarts_MissingGrid(t *testing.T) {
	logs := quietLogs(t)
	tr := New(&stubFetcher{page: `<html><body><p>Maintenance</p></body></html>`})

	result, err := tr.FindStarts(context.Background(), Request{})
	if err != nil {
		t.Fatalf("FindStarts() error: %v", err)
	}
	if result.Warning != "could not find table with class 'table-scroll'" {
		t.Errorf("Warning = %q", result.Warning)
	}
	if result.Starts == nil || result.Found() {
		t.Errorf("Starts = %v, want empty non-nil", result.Starts)
	}
	if !strings.Contains(logs.String(), `"level":"WARN"`) {
		t.Error("missing grid should be logged at WARN")
	}
}

func TestFindStarts_HTTP(t *testing.T) {
	quietLogs(t)
	page := loadFixture(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page)) // nolint:errcheck
	}))
	defer server.Close()

	tr := New(scraper.NewWithOptions(scraper.Options{URL: server.URL})).WithClock(fixedClock)

	result, err := tr.FindStarts(context.Background(), Request{})
	if err != nil {
		t.Fatalf("FindStarts() error: %v", err)
	}
	if len(result.Starts) != 6 {
		t.Errorf("Starts = %d, want 6", len(result.Starts))
	}
	if result.Source != server.URL {
		t.Errorf("Source = %q, want %q", result.Source, server.URL)
	}
}

func TestExtract(t *testing.T) {
	quietLogs(t)
	doc, err := scraper.ParseDocument(strings.NewReader(loadFixture(t)))
	if err != nil {
		t.Fatalf("ParseDocument() error: %v", err)
	}

	result := New(&stubFetcher{}).WithClock(fixedClock).Extract(doc, Request{})

	if result.RunID != "" {
		t.Errorf("Extract() should not assign a run ID, got %q", result.RunID)
	}
	if len(result.Starts) != 6 {
		t.Errorf("Starts = %d, want 6", len(result.Starts))
	}
	if len(result.Players) != 0 {
		t.Errorf("Players = %v, want none", result.Players)
	}
}

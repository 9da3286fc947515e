package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/avast/retry-go/v4"

	"github.com/pfrederiksen/sp-probables/internal/logger"
)

const (
	ProbablesGridURL = "https://www.fangraphs.com/roster-resource/probables-grid"
	UserAgent        = "sp-probables/1.0 (github.com/pfrederiksen/sp-probables)"
	Timeout          = 30 * time.Second
)

// FetchError reports a failed page fetch: a transport failure, a non-2xx
// response or an unparsable body.
type FetchError struct {
	URL        string
	StatusCode int // zero when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: unexpected status code: %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Options configures a Scraper. Zero values fall back to the package defaults.
type Options struct {
	URL        string
	UserAgent  string
	Timeout    time.Duration
	Attempts   uint
	RetryDelay time.Duration
}

// Scraper fetches the probables grid page
type Scraper struct {
	client     *http.Client
	url        string
	userAgent  string
	attempts   uint
	retryDelay time.Duration
}

// New creates a Scraper with the default options
func New() *Scraper {
	return NewWithOptions(Options{})
}

// NewWithOptions creates a Scraper from opts
func NewWithOptions(opts Options) *Scraper {
	if opts.URL == "" {
		opts.URL = ProbablesGridURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = UserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = Timeout
	}
	// retry-go treats zero attempts as unlimited
	if opts.Attempts == 0 {
		opts.Attempts = 1
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = time.Second
	}

	return &Scraper{
		client: &http.Client{
			Timeout: opts.Timeout,
		},
		url:        opts.URL,
		userAgent:  opts.UserAgent,
		attempts:   opts.Attempts,
		retryDelay: opts.RetryDelay,
	}
}

// URL returns the page the scraper fetches
func (s *Scraper) URL() string {
	return s.url
}

// Fetch downloads the grid page and parses it into a document.
// All failures are returned as *FetchError.
func (s *Scraper) Fetch(ctx context.Context) (*goquery.Document, error) {
	var doc *goquery.Document

	err := retry.Do(
		func() error {
			d, err := s.fetchOnce(ctx)
			if err != nil {
				return err
			}
			doc = d
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(s.attempts),
		retry.Delay(s.retryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn("Retrying page fetch", logger.Fields{
				"url":     s.url,
				"attempt": n + 1,
				"error":   err.Error(),
			})
		}),
	)
	if err != nil {
		var fetchErr *FetchError
		if errors.As(err, &fetchErr) {
			return nil, fetchErr
		}
		return nil, &FetchError{URL: s.url, Err: err}
	}

	return doc, nil
}

func (s *Scraper) fetchOnce(ctx context.Context) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, &FetchError{URL: s.url, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: s.url, Err: err}
	}
	defer resp.Body.Close() // nolint:errcheck

	// Any 2xx carries the page
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{
			URL:        s.url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status code: %d", resp.StatusCode),
		}
	}

	doc, err := ParseDocument(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: s.url, Err: err}
	}
	return doc, nil
}

// ParseDocument parses an HTML page
func ParseDocument(r io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

// isRetryable rejects client errors, which will not change on a retry
func isRetryable(err error) bool {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) && fetchErr.StatusCode >= 400 && fetchErr.StatusCode < 500 {
		return false
	}
	return !errors.Is(err, context.Canceled)
}

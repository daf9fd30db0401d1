package scraper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hyp3rd/ewrap"

	"github.com/liveprogress/expectancy/internal/config"
	"github.com/liveprogress/expectancy/internal/sentinel"
	"github.com/liveprogress/expectancy/pkg/types"
)

// maxBodyBytes caps how much of the response body is read. The source page
// is a few hundred kilobytes.
const maxBodyBytes = 16 << 20

// Scraper produces a country table from a remote source.
type Scraper interface {
	Scrape(ctx context.Context) (types.Table, error)
}

// Fetcher performs a plain GET of one URL and returns the body text.
type Fetcher struct {
	url       string
	userAgent string
	client    *http.Client
}

// NewFetcher builds a Fetcher for src. The http.Client is created once and
// reused across calls.
func NewFetcher(src config.Source) *Fetcher {
	timeout := src.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}
	return &Fetcher{
		url:       src.URL,
		userAgent: src.UserAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

// WithClient replaces the HTTP client, mostly for tests.
func (f *Fetcher) WithClient(c *http.Client) *Fetcher {
	f.client = c
	return f
}

// URL returns the address the Fetcher requests.
func (f *Fetcher) URL() string { return f.url }

// Fetch GETs the configured URL. Any transport failure, a non-200 status or
// a body read error is reported as sentinel.ErrNetwork. The underlying
// error stays in the chain, so errors.Is(err, context.DeadlineExceeded) and
// errors.As(err, **url.Error) keep working.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: build request: %w", sentinel.ErrNetwork, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: http get %s: %w", sentinel.ErrNetwork, f.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", ewrap.Wrapf(sentinel.ErrNetwork, "http get %s: unexpected status %d", f.url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %w", sentinel.ErrNetwork, err)
	}

	slog.Debug("scraper: page fetched", "url", f.url, "bytes", len(body), "elapsed", time.Since(start))
	return string(body), nil
}

// PageScraper fetches the source page and parses its statistics table.
type PageScraper struct {
	fetcher *Fetcher
	parser  *Parser
}

// New returns a PageScraper configured from src.
func New(src config.Source) *PageScraper {
	return &PageScraper{
		fetcher: NewFetcher(src),
		parser:  NewParser(src),
	}
}

// NewPageScraper combines an existing Fetcher and Parser.
func NewPageScraper(f *Fetcher, p *Parser) *PageScraper {
	return &PageScraper{fetcher: f, parser: p}
}

// Scrape fetches and parses the page. The returned table has no Common entry.
func (s *PageScraper) Scrape(ctx context.Context) (types.Table, error) {
	body, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	t, err := s.parser.Parse(body)
	if err != nil {
		return nil, err
	}
	slog.Info("scraper: table parsed", "url", s.fetcher.URL(), "countries", len(t))
	return t, nil
}

package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pfrederiksen/ticketwatch/internal/logger"
)

const (
	UserAgent = "ticketwatch/1.0 (github.com/pfrederiksen/ticketwatch)"
	Timeout   = 30 * time.Second
)

// Scraper fetches event pages
type Scraper struct {
	client    *http.Client
	userAgent string
}

// Option configures a Scraper
type Option func(*Scraper)

// WithTimeout sets the HTTP client timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		s.client.Timeout = d
	}
}

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(s *Scraper) {
		s.client = c
	}
}

// New creates a new Scraper instance
func New(opts ...Option) *Scraper {
	s := &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		userAgent: UserAgent,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchPage retrieves the page at url and returns its body as text
func (s *Scraper) FetchPage(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading body: %w", err)
	}

	logger.RecordTiming("fetch", time.Since(start))
	logger.Debug("Fetched page", logger.Fields{
		"url":   url,
		"bytes": len(body),
	})

	return string(body), nil
}

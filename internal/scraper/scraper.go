package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
)

const (
	UserAgent = "mlb-hometowns/1.0 (github.com/pfrederiksen/mlb-hometowns)"
	Timeout   = 10 * time.Second
)

// FetchError reports a roster or profile page that could not be retrieved.
// StatusCode is zero for transport errors and timeouts.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Scraper fetches mlb.com pages and parses them into documents
type Scraper struct {
	client    *http.Client
	userAgent string
	timeout   time.Duration
	retries   int
}

// Option configures a Scraper
type Option func(*Scraper)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(s *Scraper) {
		s.client = client
	}
}

// WithUserAgent sets the User-Agent header sent with every request
func WithUserAgent(ua string) Option {
	return func(s *Scraper) {
		if ua != "" {
			s.userAgent = ua
		}
	}
}

// WithTimeout sets the per-attempt timeout
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithRetries sets how many extra attempts a failed fetch gets. Zero means
// a single attempt.
func WithRetries(n int) Option {
	return func(s *Scraper) {
		if n >= 0 {
			s.retries = n
		}
	}
}

// New creates a new Scraper instance
func New(opts ...Option) *Scraper {
	s := &Scraper{
		client:    &http.Client{},
		userAgent: UserAgent,
		timeout:   Timeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch downloads pageURL and parses it. Every failure is returned as a
// *FetchError.
func (s *Scraper) Fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	var doc *goquery.Document

	operation := func() error {
		d, err := s.fetchOnce(ctx, pageURL)
		if err != nil {
			var fe *FetchError
			// Client errors other than rate limiting will not change on retry.
			if errors.As(err, &fe) && fe.StatusCode >= 400 && fe.StatusCode < 500 && fe.StatusCode != http.StatusTooManyRequests {
				return backoff.Permanent(err)
			}
			return err
		}
		doc = d
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(s.retries)),
		ctx,
	)

	if err := backoff.Retry(operation, policy); err != nil {
		var fe *FetchError
		if errors.As(err, &fe) {
			return nil, fe
		}
		return nil, &FetchError{URL: pageURL, Err: err}
	}

	return doc, nil
}

func (s *Scraper) fetchOnce(ctx context.Context, pageURL string) (*goquery.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{
			URL:        pageURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status code: %d", resp.StatusCode),
		}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: fmt.Errorf("parsing HTML: %w", err)}
	}

	return doc, nil
}

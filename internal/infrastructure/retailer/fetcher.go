package retailer

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/skinpredict/backend/internal/domain"
)

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Fetcher retrieves retailer pages with browser-like headers and a randomized
// politeness delay before each request. Retailers throttle obvious bots, so
// the delay is deliberate and must stay configurable.
type Fetcher struct {
	client   *http.Client
	log      *logrus.Entry
	minDelay time.Duration
	maxDelay time.Duration
}

// NewFetcher creates a fetcher with the given timeout and delay bounds
func NewFetcher(timeout, minDelay, maxDelay time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		log:      logrus.WithField("component", "retailer.fetcher"),
		minDelay: minDelay,
		maxDelay: maxDelay,
	}
}

// GetDocument performs a GET against the given URL and parses the body as HTML.
// Non-200 responses and transport errors both come back as errors wrapping
// domain.ErrRetailerUnavailable; the adapter boundary converts them to empty
// results.
func (f *Fetcher) GetDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	if err := f.politenessDelay(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	f.log.Debugf("Fetching %s", pageURL)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRetailerUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrRetailerUnavailable, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse: %v", domain.ErrRetailerUnavailable, err)
	}

	return doc, nil
}

// politenessDelay sleeps a random duration between minDelay and maxDelay,
// honoring context cancellation
func (f *Fetcher) politenessDelay(ctx context.Context) error {
	if f.maxDelay <= 0 {
		return nil
	}

	delay := f.minDelay
	if spread := f.maxDelay - f.minDelay; spread > 0 {
		delay += time.Duration(rand.Int63n(int64(spread)))
	}
	if delay <= 0 {
		return nil
	}

	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Package news fetches market headlines from Indian financial RSS feeds.
// It is independent of the hora pipeline: a failed fetch degrades to a
// single placeholder item and never blocks a schedule.
package news

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultTimeout bounds each source request.
	DefaultTimeout = 5 * time.Second

	// DefaultTTL is how long a successful result is reused.
	DefaultTTL = 60 * time.Second

	// DefaultPerSource caps the items taken from one feed.
	DefaultPerSource = 3

	// UserAgent mimics a desktop browser; several feeds reject bots.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Source is a named RSS feed.
type Source struct {
	Name string
	URL  string
}

// DefaultSources are queried in display order.
var DefaultSources = []Source{
	{Name: "Economic Times", URL: "https://economictimes.indiatimes.com/markets/stocks/rssfeeds/2146842.cms"},
	{Name: "MoneyControl", URL: "https://www.moneycontrol.com/rss/marketreports.xml"},
	{Name: "5paisa", URL: "https://www.5paisa.com/rss/latest-share-market-news-moving-stocks.xml"},
	{Name: "LiveMint", URL: "https://www.livemint.com/rss/markets"},
}

// Item is one headline.
type Item struct {
	Title     string     `json:"title"`
	Link      string     `json:"link"`
	Source    string     `json:"source"`
	Published *time.Time `json:"published,omitempty"`
}

// Unavailable is returned when no source produced a headline.
var Unavailable = Item{
	Title:  "News feed unavailable. Check internet connection.",
	Link:   "#",
	Source: "System",
}

// Fetcher retrieves and caches headlines.
type Fetcher struct {
	client    *http.Client
	sources   []Source
	timeout   time.Duration
	ttl       time.Duration
	perSource int
	now       func() time.Time

	mu       sync.Mutex
	cached   []Item
	cachedAt time.Time
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithSources replaces the default feeds.
func WithSources(sources ...Source) FetcherOption {
	return func(f *Fetcher) {
		f.sources = append([]Source(nil), sources...)
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithTTL sets how long results are cached. Zero disables caching.
func WithTTL(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.ttl = d
	}
}

// WithPerSource caps the number of items taken from each feed.
func WithPerSource(n int) FetcherOption {
	return func(f *Fetcher) {
		f.perSource = n
	}
}

// NewFetcher creates a headline fetcher.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		sources:   DefaultSources,
		timeout:   DefaultTimeout,
		ttl:       DefaultTTL,
		perSource: DefaultPerSource,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{
			Timeout: f.timeout,
		}
	}

	return f
}

// Result is the outcome of a Fetch.
type Result struct {
	Items     []Item
	FetchedAt time.Time
	Duration  time.Duration
	Cached    bool
	Error     error // Joined per-source failures; Items is still usable
}

// Fetch returns up to perSource items from every source, deduplicated by
// title. Failing sources are skipped; if none succeed the result holds only
// the Unavailable item. Successful results are reused until the TTL expires.
func (f *Fetcher) Fetch(ctx context.Context) Result {
	start := f.now()

	f.mu.Lock()
	if f.cached != nil && f.ttl > 0 && start.Sub(f.cachedAt) < f.ttl {
		items := append([]Item(nil), f.cached...)
		at := f.cachedAt
		f.mu.Unlock()
		return Result{Items: items, FetchedAt: at, Cached: true}
	}
	f.mu.Unlock()

	perSource := make([][]Item, len(f.sources))
	errs := make([]error, len(f.sources))

	var g errgroup.Group
	for i, src := range f.sources {
		g.Go(func() error {
			items, err := f.fetchSource(ctx, src)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", src.Name, err)
				return nil
			}
			perSource[i] = items
			return nil
		})
	}
	_ = g.Wait()

	result := Result{
		Items:     dedupe(perSource),
		FetchedAt: start,
		Duration:  f.now().Sub(start),
		Error:     errors.Join(errs...),
	}

	if len(result.Items) == 0 {
		result.Items = []Item{Unavailable}
		return result
	}

	f.mu.Lock()
	f.cached = append([]Item(nil), result.Items...)
	f.cachedAt = start
	f.mu.Unlock()

	return result
}

// Invalidate drops the cached result.
func (f *Fetcher) Invalidate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cached = nil
}

// Sources returns the configured feeds.
func (f *Fetcher) Sources() []Source {
	return append([]Source(nil), f.sources...)
}

func (f *Fetcher) fetchSource(ctx context.Context, src Source) ([]Item, error) {
	body, err := f.fetchRaw(ctx, src.URL)
	if err != nil {
		return nil, err
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	var items []Item
	for _, it := range feed.Items {
		if len(items) >= f.perSource {
			break
		}
		title := strings.TrimSpace(it.Title)
		if title == "" {
			continue
		}
		items = append(items, Item{
			Title:     title,
			Link:      it.Link,
			Source:    src.Name,
			Published: it.PublishedParsed,
		})
	}
	return items, nil
}

func (f *Fetcher) fetchRaw(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return body, nil
}

// dedupe flattens per-source lists in source order, keeping the first
// occurrence of each title.
func dedupe(lists [][]Item) []Item {
	seen := make(map[string]bool)
	var out []Item
	for _, list := range lists {
		for _, it := range list {
			if seen[it.Title] {
				continue
			}
			seen[it.Title] = true
			out = append(out, it)
		}
	}
	return out
}

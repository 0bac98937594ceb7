// Package fetch provides the shared polite HTTP client used by every
// source adapter: jittered inter-request delay, per-host rate limiting,
// and bounded retry with escalating backoff on rate-limit responses.
package fetch

import (
	"context"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
}

// Options configures the fetch client.
type Options struct {
	// DelayMin/DelayMax bound the random jitter applied before every
	// request, keeping the aggregate request rate to any host polite.
	DelayMin   time.Duration
	DelayMax   time.Duration
	MaxRetries int
	Timeout    time.Duration
}

func (o Options) withDefaults() Options {
	if o.DelayMin <= 0 {
		o.DelayMin = 300 * time.Millisecond
	}
	if o.DelayMax < o.DelayMin {
		o.DelayMax = o.DelayMin + 500*time.Millisecond
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = 3
	}
	if o.Timeout <= 0 {
		o.Timeout = 15 * time.Second
	}
	return o
}

// Client fetches pages on behalf of source adapters. A single Client is
// shared by all sources in a run so the delay policy is global.
type Client struct {
	http *http.Client
	opts Options

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewClient creates a Client with the given options.
func NewClient(opts Options) *Client {
	opts = opts.withDefaults()
	return &Client{
		http: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		opts:     opts,
		limiters: make(map[string]*rate.Limiter),
	}
}

// limiterFor returns the per-host limiter, creating a conservative one
// on first use. Combined with the random delay this bounds the rate to
// any single directory host. The map is guarded because one Client is
// shared by every adapter across the per-location goroutines.
func (c *Client) limiterFor(rawURL string) *rate.Limiter {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rate.NewLimiter(2, 1)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	lim, ok := c.limiters[u.Host]
	if !ok {
		lim = rate.NewLimiter(2, 1)
		c.limiters[u.Host] = lim
	}
	return lim
}

func (c *Client) jitter(ctx context.Context) error {
	span := c.opts.DelayMax - c.opts.DelayMin
	d := c.opts.DelayMin
	if span > 0 {
		d += time.Duration(rand.Int64N(int64(span)))
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Get fetches the URL and returns the response body as a string.
// Rate-limit responses (429) are retried with escalating backoff; any
// other failure aborts this single request. Callers treat an error as
// "no content from this page", never as a run failure.
func (c *Client) Get(ctx context.Context, rawURL string) (string, error) {
	var lastErr error

	for attempt := 0; attempt < c.opts.MaxRetries; attempt++ {
		if err := c.jitter(ctx); err != nil {
			return "", eris.Wrap(err, "fetch: jitter wait")
		}
		if err := c.limiterFor(rawURL).Wait(ctx); err != nil {
			return "", eris.Wrap(err, "fetch: rate limiter wait")
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return "", eris.Wrap(err, "fetch: create request")
		}
		req.Header.Set("User-Agent", userAgents[rand.IntN(len(userAgents))])
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		req.Header.Set("Accept-Language", "en-US,en;q=0.5")

		resp, err := c.http.Do(req)
		if err != nil {
			return "", eris.Wrapf(err, "fetch: get %s", rawURL)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			_ = resp.Body.Close()
			lastErr = eris.Errorf("fetch: 429 from %s", rawURL)
			zap.L().Warn("rate limited, backing off",
				zap.String("url", rawURL),
				zap.Int("attempt", attempt+1),
			)
			if err := c.backoff(ctx, attempt); err != nil {
				return "", lastErr
			}
			continue
		}

		if resp.StatusCode != http.StatusOK {
			_ = resp.Body.Close()
			return "", eris.Errorf("fetch: unexpected status %d from %s", resp.StatusCode, rawURL)
		}

		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return "", eris.Wrapf(err, "fetch: read body %s", rawURL)
		}
		return string(body), nil
	}

	return "", eris.Wrap(lastErr, "fetch: retries exhausted")
}

// backoff sleeps 5s, 10s, 15s... matching the escalating wait applied
// after successive 429 responses.
func (c *Client) backoff(ctx context.Context, attempt int) error {
	d := time.Duration(attempt+1) * 5 * time.Second
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"

	"golang.org/x/time/rate"

	"MarketPulse/internal/config"
)

const maxBodyBytes = 8 << 20

// HostLimiter hands out one token bucket per upstream host.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
	burst    int
}

// NewHostLimiter allows rps requests per second per host with the given burst.
func NewHostLimiter(rps float64, burst int) *HostLimiter {
	return &HostLimiter{limiters: make(map[string]*rate.Limiter), rps: rps, burst: burst}
}

// Wait blocks until a request to host is allowed or ctx is done.
func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	l.mu.Lock()
	lim, ok := l.limiters[host]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(l.rps), l.burst)
		l.limiters[host] = lim
	}
	l.mu.Unlock()
	return lim.Wait(ctx)
}

// Client is the HTTP client shared by all scraping sources.
type Client struct {
	HTTP      *http.Client
	UserAgent string
	Limiter   *HostLimiter
}

// NewClient builds a client with optional proxy, cookie jar and per-host rate limit.
func NewClient(cfg config.HTTP) *Client {
	transport := &http.Transport{Proxy: http.ProxyFromEnvironment}
	if cfg.Proxy != "" {
		if u, err := url.Parse(cfg.Proxy); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	jar, _ := cookiejar.New(nil)
	return &Client{
		HTTP: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
			Jar:       jar,
		},
		UserAgent: cfg.UserAgent,
		Limiter:   NewHostLimiter(cfg.RatePerSecond, cfg.Burst),
	}
}

// Get fetches rawURL and returns the body of a 200 response.
func (c *Client) Get(ctx context.Context, rawURL, accept string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx, u.Host); err != nil {
			return nil, fmt.Errorf("rate limit %s: %w", u.Host, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", u.Host, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: status %d", u.Host, resp.StatusCode)
	}
	return body, nil
}

package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"MarketPulse/internal/config"
)

// Renderer returns the HTML of a page once waitSelector is present.
type Renderer interface {
	Render(ctx context.Context, url, waitSelector string) (string, error)
}

// ChromeRenderer drives a headless Chrome per call. Nothing is kept between
// calls, so no browser outlives a run.
type ChromeRenderer struct {
	Headless  bool
	ExecPath  string
	UserAgent string
	Timeout   time.Duration
}

// NewChromeRenderer returns a renderer that starts a browser per call.
func NewChromeRenderer(cfg config.Browser, userAgent string) *ChromeRenderer {
	return &ChromeRenderer{
		Headless:  cfg.Headless,
		ExecPath:  cfg.ExecPath,
		UserAgent: userAgent,
		Timeout:   cfg.Timeout,
	}
}

func (r *ChromeRenderer) Render(ctx context.Context, url, waitSelector string) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", r.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.NoSandbox,
		chromedp.UserAgent(r.UserAgent),
	)
	if r.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()
	runCtx, cancelRun := context.WithTimeout(browserCtx, r.Timeout)
	defer cancelRun()

	var html string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(waitSelector, chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", url, err)
	}
	return html, nil
}

// StaticRenderer fetches raw HTML without running scripts. Used when the
// browser is disabled.
type StaticRenderer struct {
	Client *Client
}

func (r *StaticRenderer) Render(ctx context.Context, url, _ string) (string, error) {
	body, err := r.Client.Get(ctx, url, "text/html,application/xhtml+xml")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

package collector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"MarketPulse/internal/model"
)

const (
	mmiValueSelector  = "[data-testid='mmi-value']"
	mmiStatusSelector = "[data-testid='mmi-status']"
)

// TickertapeSource reads the Market Mood Index page, which fills its values
// from script. The renderer decides whether scripts run.
type TickertapeSource struct {
	Renderer Renderer
	URL      string
}

// NewTickertapeSource returns a source for the rendered MMI page.
func NewTickertapeSource(renderer Renderer, url string) *TickertapeSource {
	return &TickertapeSource{Renderer: renderer, URL: url}
}

func (s *TickertapeSource) Name() string { return "tickertape" }

func (s *TickertapeSource) Fetch(ctx context.Context) (*model.Reading, error) {
	html, err := s.Renderer.Render(ctx, s.URL, mmiValueSelector)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("tickertape parse: %w", err)
	}

	value := strings.TrimSpace(doc.Find(mmiValueSelector).First().Text())
	if value == "" {
		return nil, fmt.Errorf("tickertape: mmi value not found")
	}
	return &model.Reading{
		Name:      "Market Mood Index",
		Value:     value,
		Status:    strings.TrimSpace(doc.Find(mmiStatusSelector).First().Text()),
		Source:    "Tickertape",
		FetchedAt: time.Now(),
	}, nil
}

package collector

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/PuerkitoBio/goquery"

	"MarketPulse/internal/model"
)

// Tried in order against the page text; the first in-range match wins.
var mmiPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)MMI.*?(\d+)`),
	regexp.MustCompile(`(?i)Market Mood Index.*?(\d+)`),
	regexp.MustCompile(`(?i)Index.*?(\d+)`),
	regexp.MustCompile(`(?i)current.*?(\d+)`),
}

// GoodReturnsSource scrapes the Market Mood Index from a static article page.
type GoodReturnsSource struct {
	Client *Client
	URL    string
}

// NewGoodReturnsSource returns a source reading the MMI article at url.
func NewGoodReturnsSource(client *Client, url string) *GoodReturnsSource {
	return &GoodReturnsSource{Client: client, URL: url}
}

func (s *GoodReturnsSource) Name() string { return "goodreturns" }

func (s *GoodReturnsSource) Fetch(ctx context.Context) (*model.Reading, error) {
	body, err := s.Client.Get(ctx, s.URL, "text/html,application/xhtml+xml")
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("goodreturns parse: %w", err)
	}

	v, ok := findMMI(doc.Text())
	if !ok {
		return nil, fmt.Errorf("goodreturns: mmi value not found")
	}
	return &model.Reading{
		Name:      "Market Mood Index",
		Value:     strconv.Itoa(v),
		Source:    "GoodReturns",
		FetchedAt: time.Now(),
	}, nil
}

func findMMI(text string) (int, bool) {
	for _, re := range mmiPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v, err := strconv.Atoi(m[1])
		if err == nil && v >= 0 && v <= 100 {
			return v, true
		}
	}
	return 0, false
}

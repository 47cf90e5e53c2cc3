package collector

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"MarketPulse/internal/model"
)

// MoneycontrolSource scrapes the NIFTY 50 quote page. Used as an HTML
// fallback when the JSON feeds are unavailable.
type MoneycontrolSource struct {
	Client *Client
	URL    string
}

// changePercentPattern matches the percent token of "abs (pct%)".
var changePercentPattern = regexp.MustCompile(`\(?([-+]?[\d.,]+)%\)?`)

// NewMoneycontrolSource returns a source reading the quote page at url.
func NewMoneycontrolSource(client *Client, url string) *MoneycontrolSource {
	return &MoneycontrolSource{Client: client, URL: url}
}

func (s *MoneycontrolSource) Name() string { return "moneycontrol" }

func (s *MoneycontrolSource) Fetch(ctx context.Context) (*model.Reading, error) {
	body, err := s.Client.Get(ctx, s.URL, "text/html,application/xhtml+xml")
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("moneycontrol parse: %w", err)
	}

	price := strings.TrimSpace(doc.Find("span.span_price_wrap").First().Text())
	change := strings.TrimSpace(doc.Find("span.span_price_change_prcnt").First().Text())
	if price == "" || change == "" {
		return nil, fmt.Errorf("moneycontrol: price elements not found")
	}

	abs, pct := splitChange(change)
	return &model.Reading{
		Name:          "NIFTY 50",
		Value:         price,
		Change:        abs,
		ChangePercent: pct,
		Source:        "Moneycontrol",
		FetchedAt:     time.Now(),
	}, nil
}

// splitChange separates "-597.30 (-2.35%)" into "-597.30" and "-2.35%".
// Text without a percent token is returned unchanged in both positions.
func splitChange(text string) (abs, pct string) {
	loc := changePercentPattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return text, text
	}
	pct = text[loc[2]:loc[3]] + "%"
	abs = strings.TrimSpace(text[:loc[0]])
	return abs, pct
}

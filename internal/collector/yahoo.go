package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"MarketPulse/internal/calculator"
	"MarketPulse/internal/model"
)

// YahooSource reads the Yahoo Finance chart API for one symbol.
type YahooSource struct {
	Client    *Client
	BaseURL   string
	Symbol    string
	Indicator model.Indicator
}

// NewYahooSource returns a source for symbol from the chart API at baseURL.
func NewYahooSource(client *Client, baseURL, symbol string, indicator model.Indicator) *YahooSource {
	return &YahooSource{Client: client, BaseURL: baseURL, Symbol: symbol, Indicator: indicator}
}

func (s *YahooSource) Name() string { return "yahoo" }

type yahooQuote struct {
	Close []*float64 `json:"close"`
}

// yahooChart is the subset of the chart response we read.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
				PreviousClose      float64 `json:"previousClose"`
			} `json:"meta"`
			Indicators struct {
				Quote []yahooQuote `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (s *YahooSource) Fetch(ctx context.Context) (*model.Reading, error) {
	u := fmt.Sprintf("%s/%s?interval=1d&range=5d", s.BaseURL, url.PathEscape(s.Symbol))
	body, err := s.Client.Get(ctx, u, "application/json")
	if err != nil {
		return nil, err
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned")
	}

	result := chart.Chart.Result[0]
	price := result.Meta.RegularMarketPrice
	if price == 0 {
		return nil, fmt.Errorf("yahoo: no price for %s", s.Symbol)
	}

	r := &model.Reading{
		Name:      s.displayName(),
		Value:     fmt.Sprintf("%.2f", price),
		Source:    "Yahoo Finance",
		FetchedAt: time.Now(),
	}
	if prev := previousClose(result.Meta.ChartPreviousClose, result.Meta.PreviousClose, result.Indicators.Quote); prev > 0 {
		if abs, pct, err := calculator.Change(price, prev); err == nil {
			r.Change = fmt.Sprintf("%.2f", abs)
			r.ChangePercent = calculator.FormatPercent(pct)
		}
	}
	return r, nil
}

// previousClose prefers the close reported in meta and falls back to the
// second to last daily close.
func previousClose(chartPrev, prev float64, quotes []yahooQuote) float64 {
	if prev > 0 {
		return prev
	}
	if len(quotes) > 0 {
		closes := make([]float64, 0, len(quotes[0].Close))
		for _, c := range quotes[0].Close {
			if c != nil {
				closes = append(closes, *c)
			}
		}
		if p, err := calculator.PreviousClose(closes); err == nil {
			return p
		}
	}
	return chartPrev
}

func (s *YahooSource) displayName() string {
	if s.Indicator == model.IndicatorVolatility {
		return "NIFTY VIX"
	}
	return "NIFTY 50"
}

package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"MarketPulse/internal/calculator"
	"MarketPulse/internal/model"
	"MarketPulse/internal/strategy"
)

// NSESource reads the NSE allIndices feed. The same feed serves both the
// NIFTY 50 row and the India VIX row.
type NSESource struct {
	Client    *Client
	URL       string
	Indicator model.Indicator
}

// NewNSESource returns a source reading the allIndices feed for indicator.
func NewNSESource(client *Client, url string, indicator model.Indicator) *NSESource {
	return &NSESource{Client: client, URL: url, Indicator: indicator}
}

func (s *NSESource) Name() string { return "nse" }

// flexString accepts JSON numbers or strings; NSE mixes both.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

type nseIndex struct {
	Index         string     `json:"index"`
	Last          flexString `json:"last"`
	Variation     flexString `json:"variation"`
	PercentChange flexString `json:"percentChange"`
	PE            flexString `json:"pe"`
}

func (s *NSESource) Fetch(ctx context.Context) (*model.Reading, error) {
	body, err := s.Client.Get(ctx, s.URL, "application/json")
	if err != nil {
		return nil, err
	}
	var payload struct {
		Data []nseIndex `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("nse decode: %w", err)
	}

	for _, row := range payload.Data {
		if !s.matches(row.Index) {
			continue
		}
		r := &model.Reading{
			Name:          s.displayName(),
			Value:         string(row.Last),
			Change:        string(row.Variation),
			ChangePercent: percentText(string(row.PercentChange)),
			Source:        "NSE",
			FetchedAt:     time.Now(),
		}
		if s.Indicator == model.IndicatorIndex {
			r.PERatio = string(row.PE)
		}
		return r, nil
	}
	return nil, fmt.Errorf("nse: %s row not found", s.displayName())
}

func (s *NSESource) matches(name string) bool {
	if s.Indicator == model.IndicatorVolatility {
		return strings.Contains(name, "VIX")
	}
	return name == "NIFTY 50"
}

func (s *NSESource) displayName() string {
	if s.Indicator == model.IndicatorVolatility {
		return "NIFTY VIX"
	}
	return "NIFTY 50"
}

// percentText marks bare numeric percent changes with a percent sign so
// they are recognized downstream.
func percentText(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.Contains(raw, "%") {
		return raw
	}
	if v, ok := strategy.ParseNumber(raw); ok {
		return calculator.FormatPercent(v)
	}
	return raw
}

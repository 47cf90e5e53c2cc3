package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"MarketPulse/internal/config"
	"MarketPulse/internal/model"
	"MarketPulse/internal/strategy"
)

// Collector fetches the three readings of a report, each through its own
// fallback chain.
type Collector struct {
	Index      *Chain
	Volatility *Chain
	Sentiment  *Chain
}

// New builds the source chains named in cfg.Sources.
func New(cfg *config.Config, log zerolog.Logger, obs Observer) (*Collector, error) {
	client := NewClient(cfg.HTTP)
	var renderer Renderer = &StaticRenderer{Client: client}
	if cfg.Browser.Enabled {
		renderer = NewChromeRenderer(cfg.Browser, cfg.HTTP.UserAgent)
	}
	log = log.With().Str("component", "collector").Logger()

	build := func(indicator model.Indicator, names []string) (*Chain, error) {
		sources := make([]Source, 0, len(names))
		for _, name := range names {
			s, err := newSource(name, indicator, cfg.Sources, client, renderer)
			if err != nil {
				return nil, err
			}
			sources = append(sources, s)
		}
		return NewChain(indicator, sources, cfg.Breaker, log, obs), nil
	}

	index, err := build(model.IndicatorIndex, cfg.Sources.Index)
	if err != nil {
		return nil, err
	}
	vol, err := build(model.IndicatorVolatility, cfg.Sources.Volatility)
	if err != nil {
		return nil, err
	}
	sent, err := build(model.IndicatorSentiment, cfg.Sources.Sentiment)
	if err != nil {
		return nil, err
	}
	return &Collector{Index: index, Volatility: vol, Sentiment: sent}, nil
}

func newSource(name string, indicator model.Indicator, sc config.Sources, client *Client, renderer Renderer) (Source, error) {
	switch {
	case name == "nse" && indicator != model.IndicatorSentiment:
		return NewNSESource(client, sc.NSEURL, indicator), nil
	case name == "yahoo" && indicator == model.IndicatorIndex:
		return NewYahooSource(client, sc.YahooURL, sc.IndexSymbol, indicator), nil
	case name == "yahoo" && indicator == model.IndicatorVolatility:
		return NewYahooSource(client, sc.YahooURL, sc.VIXSymbol, indicator), nil
	case name == "moneycontrol" && indicator == model.IndicatorIndex:
		return NewMoneycontrolSource(client, sc.Moneycontrol), nil
	case name == "tickertape" && indicator == model.IndicatorSentiment:
		return NewTickertapeSource(renderer, sc.Tickertape), nil
	case name == "goodreturns" && indicator == model.IndicatorSentiment:
		return NewGoodReturnsSource(client, sc.GoodReturns), nil
	}
	return nil, fmt.Errorf("source %q cannot serve %s", name, indicator)
}

func (c *Collector) FetchIndex(ctx context.Context) *model.Reading {
	return c.Index.Fetch(ctx)
}

func (c *Collector) FetchVolatility(ctx context.Context) *model.Reading {
	return c.Volatility.Fetch(ctx)
}

// FetchSentiment fills in a status label when the source gave none.
func (c *Collector) FetchSentiment(ctx context.Context) *model.Reading {
	r := c.Sentiment.Fetch(ctx)
	if r != nil && r.Status == "" {
		if v, ok := strategy.ParseNumber(r.Value); ok {
			r.Status = MoodStatus(v)
		} else {
			r.Status = "Unknown"
		}
	}
	return r
}

// Collect fetches all three readings in sequence.
func (c *Collector) Collect(ctx context.Context) *model.Snapshot {
	return &model.Snapshot{
		Index:       c.FetchIndex(ctx),
		Volatility:  c.FetchVolatility(ctx),
		Sentiment:   c.FetchSentiment(ctx),
		CollectedAt: time.Now(),
	}
}

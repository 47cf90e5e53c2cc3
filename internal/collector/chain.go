package collector

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"MarketPulse/internal/config"
	"MarketPulse/internal/model"
)

// Observer is told about every source attempt.
type Observer interface {
	ObserveFetch(indicator model.Indicator, source string, err error, elapsed time.Duration)
}

// guardedSource pairs a source with its circuit breaker.
type guardedSource struct {
	Source
	cb *gobreaker.CircuitBreaker
}

func (g guardedSource) Fetch(ctx context.Context) (*model.Reading, error) {
	out, err := g.cb.Execute(func() (interface{}, error) {
		r, err := g.Source.Fetch(ctx)
		if err != nil {
			return nil, err
		}
		if !r.Usable() {
			return nil, ErrUnusable
		}
		return r, nil
	})
	if err != nil {
		return nil, err
	}
	return out.(*model.Reading), nil
}

// Chain tries its sources in priority order and returns the first usable
// reading. Failures are logged, never returned.
type Chain struct {
	Indicator model.Indicator
	sources   []guardedSource
	log       zerolog.Logger
	observer  Observer
}

// NewChain wraps every source in a breaker that opens after
// MaxFailures consecutive failures.
func NewChain(indicator model.Indicator, sources []Source, bcfg config.Breaker, log zerolog.Logger, obs Observer) *Chain {
	c := &Chain{
		Indicator: indicator,
		log:       log.With().Str("indicator", string(indicator)).Logger(),
		observer:  obs,
	}
	for _, s := range sources {
		c.sources = append(c.sources, guardedSource{
			Source: s,
			cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
				Name:    string(indicator) + "/" + s.Name(),
				Timeout: bcfg.OpenTimeout,
				ReadyToTrip: func(counts gobreaker.Counts) bool {
					return counts.ConsecutiveFailures >= bcfg.MaxFailures
				},
			}),
		})
	}
	return c
}

// Fetch returns the first usable reading, or nil when every source failed.
func (c *Chain) Fetch(ctx context.Context) *model.Reading {
	for _, s := range c.sources {
		if ctx.Err() != nil {
			c.log.Warn().Err(ctx.Err()).Msg("collection cancelled")
			return nil
		}
		start := time.Now()
		r, err := s.Fetch(ctx)
		if c.observer != nil {
			c.observer.ObserveFetch(c.Indicator, s.Name(), err, time.Since(start))
		}
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				c.log.Debug().Str("source", s.Name()).Msg("breaker open, skipping source")
			} else {
				c.log.Warn().Err(err).Str("source", s.Name()).Msg("source failed")
			}
			continue
		}
		c.log.Info().Str("source", s.Name()).Str("value", r.Value).Msg("reading fetched")
		return r
	}
	c.log.Error().Int("sources", len(c.sources)).Msg("all sources exhausted")
	return nil
}

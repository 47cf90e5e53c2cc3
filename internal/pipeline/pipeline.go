package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"MarketPulse/internal/model"
	"MarketPulse/internal/notifier"
	"MarketPulse/internal/strategy"
)

// Collector supplies the readings for a run.
type Collector interface {
	Collect(ctx context.Context) *model.Snapshot
}

// Deliverer sends formatted text and reports success.
type Deliverer interface {
	Deliver(ctx context.Context, text string) bool
}

// Observer receives per-run results. Metrics implement it.
type Observer interface {
	ObserveAnalysis(a *model.Analysis)
	ObserveDelivery(ok bool)
}

// Result summarizes one run.
type Result struct {
	RunID     string
	Snapshot  *model.Snapshot
	Analysis  *model.Analysis
	Report    string
	Delivered bool
}

// Pipeline runs collect, evaluate, format and deliver once per call.
type Pipeline struct {
	Collector Collector
	Notifier  Deliverer
	Observer  Observer
	Evaluate  func(*model.Snapshot) *model.Analysis
	Now       func() time.Time
	log       zerolog.Logger
}

// New returns a pipeline using the default evaluator and clock.
func New(col Collector, n Deliverer, obs Observer, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		Collector: col,
		Notifier:  n,
		Observer:  obs,
		Evaluate:  strategy.Evaluate,
		Now:       time.Now,
		log:       log.With().Str("component", "pipeline").Logger(),
	}
}

// Run performs one full report cycle. It never fails: missing readings fall
// back to defaults, a failed evaluation falls back to a neutral
// recommendation, and a failed delivery triggers a best-effort notice.
func (p *Pipeline) Run(ctx context.Context) Result {
	res := Result{RunID: uuid.NewString()}
	log := p.log.With().Str("run_id", res.RunID).Logger()

	log.Info().Msg("collecting market data")
	res.Snapshot = p.Collector.Collect(ctx)

	log.Info().Msg("analyzing market conditions")
	res.Analysis = p.analyze(res.Snapshot, log)
	log.Info().
		Int("score", res.Analysis.Score).
		Str("action", res.Analysis.Recommendation.Action).
		Bool("degraded", res.Analysis.Degraded).
		Msg("analysis complete")
	if p.Observer != nil {
		p.Observer.ObserveAnalysis(res.Analysis)
	}

	res.Report = notifier.FormatReport(res.Snapshot, res.Analysis, p.Now())
	res.Delivered = p.Notifier.Deliver(ctx, res.Report)
	if p.Observer != nil {
		p.Observer.ObserveDelivery(res.Delivered)
	}
	if res.Delivered {
		log.Info().Msg("market update sent")
		return res
	}

	log.Error().Msg("failed to send market update")
	if !p.Notifier.Deliver(ctx, notifier.FormatFailure("Failed to deliver the daily market update. Check the bot logs.")) {
		log.Warn().Msg("failure notice was not delivered either")
	}
	return res
}

// analyze runs the evaluator and substitutes the fallback recommendation if
// it panics on an unexpected input shape.
func (p *Pipeline) analyze(snap *model.Snapshot, log zerolog.Logger) (a *model.Analysis) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Err(fmt.Errorf("%v", r)).Msg("market analysis failed, using fallback")
			a = strategy.Degraded()
		}
	}()
	a = p.Evaluate(snap)
	if a == nil {
		return strategy.Degraded()
	}
	return a
}

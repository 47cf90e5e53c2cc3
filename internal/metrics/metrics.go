package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"MarketPulse/internal/model"
)

// Metrics collects per-run figures on a private registry. A run is short
// lived, so values are pushed to a Pushgateway instead of scraped.
type Metrics struct {
	Registry *prometheus.Registry

	fetches       *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	inputs        *prometheus.GaugeVec
	score         prometheus.Gauge
	deliveries    *prometheus.CounterVec
	lastRun       prometheus.Gauge
}

// New creates the metrics on a private registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pulse_source_fetch_total",
			Help: "Source fetch attempts by indicator, source and result.",
		}, []string{"indicator", "source", "result"}),
		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pulse_source_fetch_seconds",
			Help:    "Duration of source fetch attempts.",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 20, 30},
		}, []string{"indicator", "source"}),
		inputs: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "pulse_signal_input",
			Help: "Numeric input used for each signal after defaults.",
		}, []string{"indicator"}),
		score: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pulse_score",
			Help: "Combined signal score of the last run.",
		}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pulse_delivery_total",
			Help: "Report delivery attempts by result.",
		}, []string{"result"}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pulse_last_run_timestamp_seconds",
			Help: "Unix time the last run finished.",
		}),
	}
	m.Registry.MustRegister(m.fetches, m.fetchDuration, m.inputs, m.score, m.deliveries, m.lastRun)
	return m
}

// ObserveFetch records one source attempt.
func (m *Metrics) ObserveFetch(indicator model.Indicator, source string, err error, elapsed time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.fetches.WithLabelValues(string(indicator), source, result).Inc()
	m.fetchDuration.WithLabelValues(string(indicator), source).Observe(elapsed.Seconds())
}

// ObserveAnalysis records the score and effective inputs of a run.
func (m *Metrics) ObserveAnalysis(a *model.Analysis) {
	m.score.Set(float64(a.Score))
	m.inputs.WithLabelValues(string(model.IndicatorIndex)).Set(a.Inputs.IndexChange)
	m.inputs.WithLabelValues(string(model.IndicatorVolatility)).Set(a.Inputs.Volatility)
	m.inputs.WithLabelValues(string(model.IndicatorSentiment)).Set(a.Inputs.Sentiment)
}

// ObserveDelivery records whether the report reached the chat.
func (m *Metrics) ObserveDelivery(ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	m.deliveries.WithLabelValues(result).Inc()
	m.lastRun.SetToCurrentTime()
}

// Push sends the registry to a Pushgateway. An empty url disables pushing.
func (m *Metrics) Push(url, job string) error {
	if url == "" {
		return nil
	}
	if err := push.New(url, job).Gatherer(m.Registry).Push(); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}

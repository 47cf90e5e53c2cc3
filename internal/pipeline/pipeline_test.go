package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketPulse/internal/model"
)

type fakeCollector struct{ snap *model.Snapshot }

func (f fakeCollector) Collect(context.Context) *model.Snapshot { return f.snap }

type fakeDeliverer struct {
	results []bool
	sent    []string
}

func (f *fakeDeliverer) Deliver(_ context.Context, text string) bool {
	f.sent = append(f.sent, text)
	ok := f.results[0]
	if len(f.results) > 1 {
		f.results = f.results[1:]
	}
	return ok
}

type fakeObserver struct {
	score      int
	deliveries []bool
}

func (f *fakeObserver) ObserveAnalysis(a *model.Analysis) { f.score = a.Score }
func (f *fakeObserver) ObserveDelivery(ok bool)           { f.deliveries = append(f.deliveries, ok) }

func newTestPipeline(snap *model.Snapshot, d *fakeDeliverer, obs Observer) *Pipeline {
	p := New(fakeCollector{snap: snap}, d, obs, zerolog.Nop())
	p.Now = func() time.Time { return time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC) }
	return p
}

func TestRun_DeliversReport(t *testing.T) {
	snap := &model.Snapshot{
		Index:      &model.Reading{Value: "25,100", ChangePercent: "+2.5%"},
		Volatility: &model.Reading{Value: "12"},
		Sentiment:  &model.Reading{Value: "20", Status: "Extreme Fear"},
	}
	d := &fakeDeliverer{results: []bool{true}}
	obs := &fakeObserver{}

	res := newTestPipeline(snap, d, obs).Run(context.Background())

	require.True(t, res.Delivered)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 5, res.Analysis.Score)
	assert.Equal(t, "BUY", res.Analysis.Recommendation.Action)
	require.Len(t, d.sent, 1)
	assert.Contains(t, d.sent[0], "Recommendation: *BUY*")
	assert.Equal(t, 5, obs.score)
	assert.Equal(t, []bool{true}, obs.deliveries)
}

func TestRun_DeliveryFailureSendsNotice(t *testing.T) {
	d := &fakeDeliverer{results: []bool{false, false}}

	res := newTestPipeline(&model.Snapshot{}, d, nil).Run(context.Background())

	assert.False(t, res.Delivered)
	require.Len(t, d.sent, 2)
	assert.Contains(t, d.sent[1], "Market Update Error")
}

func TestRun_EvaluationPanicUsesFallback(t *testing.T) {
	d := &fakeDeliverer{results: []bool{true}}
	p := newTestPipeline(&model.Snapshot{}, d, nil)
	p.Evaluate = func(*model.Snapshot) *model.Analysis { panic("unexpected shape") }

	res := p.Run(context.Background())

	require.True(t, res.Analysis.Degraded)
	assert.Equal(t, "Unable to analyze", res.Analysis.Recommendation.Condition)
	assert.Contains(t, d.sent[0], "Recommendation: *Hold current positions*")
}

func TestRun_AllReadingsAbsent(t *testing.T) {
	d := &fakeDeliverer{results: []bool{true}}

	res := newTestPipeline(&model.Snapshot{}, d, nil).Run(context.Background())

	assert.Equal(t, 0, res.Analysis.Score)
	assert.Equal(t, "HOLD", res.Analysis.Recommendation.Action)
	assert.Contains(t, res.Report, "Unavailable: NIFTY 50, NIFTY VIX, Market Mood Index")
}

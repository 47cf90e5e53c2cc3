package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketPulse/internal/model"
)

func TestObserve(t *testing.T) {
	m := New()
	m.ObserveFetch(model.IndicatorIndex, "nse", nil, time.Second)
	m.ObserveFetch(model.IndicatorIndex, "nse", errors.New("down"), time.Second)
	m.ObserveFetch(model.IndicatorIndex, "yahoo", nil, time.Second)
	m.ObserveAnalysis(&model.Analysis{Score: -4, Inputs: model.Inputs{IndexChange: -2.5, Volatility: 31, Sentiment: 80}})
	m.ObserveDelivery(true)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.fetches.WithLabelValues("index", "nse", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fetches.WithLabelValues("index", "yahoo", "ok")))
	assert.Equal(t, -4.0, testutil.ToFloat64(m.score))
	assert.Equal(t, 31.0, testutil.ToFloat64(m.inputs.WithLabelValues("volatility")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.deliveries.WithLabelValues("ok")))
}

func TestPush(t *testing.T) {
	var method, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := New()
	m.ObserveDelivery(false)
	require.NoError(t, m.Push(srv.URL, "market_pulse"))
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/metrics/job/market_pulse", path)

	assert.NoError(t, m.Push("", "market_pulse"))
}

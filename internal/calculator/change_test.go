package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChange(t *testing.T) {
	abs, pct, err := Change(102.5, 100)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, abs, 1e-9)
	assert.InDelta(t, 2.5, pct, 1e-9)

	_, _, err = Change(10, 0)
	assert.Error(t, err)
}

func TestPreviousClose(t *testing.T) {
	prev, err := PreviousClose([]float64{98, 0, 100, 0, 101})
	require.NoError(t, err)
	assert.Equal(t, 100.0, prev)

	_, err = PreviousClose([]float64{0, 101})
	assert.Error(t, err)
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "-0.43%", FormatPercent(-0.4321))
	assert.Equal(t, "2.50%", FormatPercent(2.5))
}

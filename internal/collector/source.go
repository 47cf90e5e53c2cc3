package collector

import (
	"context"
	"errors"

	"MarketPulse/internal/model"
)

// Source fetches one indicator from one upstream site.
type Source interface {
	Name() string
	Fetch(ctx context.Context) (*model.Reading, error)
}

// ErrUnusable is returned when an upstream answered but carried no value.
var ErrUnusable = errors.New("reading has no usable value")

// MoodStatus labels a Market Mood Index value.
func MoodStatus(v float64) string {
	switch {
	case v >= 75:
		return "Extreme Greed"
	case v >= 60:
		return "Greed"
	case v >= 40:
		return "Neutral"
	case v >= 25:
		return "Fear"
	default:
		return "Extreme Fear"
	}
}

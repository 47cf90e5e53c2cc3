package model

import "time"

// Indicator identifies which market reading a source produces.
type Indicator string

const (
	IndicatorIndex      Indicator = "index"
	IndicatorVolatility Indicator = "volatility"
	IndicatorSentiment  Indicator = "sentiment"
)

// Reading is one indicator value as reported upstream. Numeric fields are kept
// as text; parsing and defaulting happen in the classifier.
type Reading struct {
	Name          string
	Value         string
	Change        string
	ChangePercent string
	PERatio       string
	Status        string
	Source        string
	FetchedAt     time.Time
}

// Usable reports whether the reading carries a value worth classifying.
func (r *Reading) Usable() bool {
	if r == nil {
		return false
	}
	switch r.Value {
	case "", "N/A", "Error":
		return false
	}
	return true
}

// Snapshot holds the readings collected for one run. A nil field means the
// indicator could not be fetched from any source.
type Snapshot struct {
	Index       *Reading
	Volatility  *Reading
	Sentiment   *Reading
	CollectedAt time.Time
}

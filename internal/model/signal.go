package model

// IndexSignal buckets the index percent change.
type IndexSignal string

const (
	IndexStrongBullish IndexSignal = "strong_bullish"
	IndexBullish       IndexSignal = "bullish"
	IndexNeutral       IndexSignal = "neutral"
	IndexBearish       IndexSignal = "bearish"
	IndexStrongBearish IndexSignal = "strong_bearish"
)

// VolatilitySignal buckets the volatility index level.
type VolatilitySignal string

const (
	VolatilityLow    VolatilitySignal = "low_volatility"
	VolatilityNormal VolatilitySignal = "normal_volatility"
	VolatilityHigh   VolatilitySignal = "high_volatility"
)

// SentimentSignal buckets the fear/greed reading.
type SentimentSignal string

const (
	SentimentExtremeFear  SentimentSignal = "extreme_fear"
	SentimentFear         SentimentSignal = "fear"
	SentimentNeutral      SentimentSignal = "neutral"
	SentimentGreed        SentimentSignal = "greed"
	SentimentExtremeGreed SentimentSignal = "extreme_greed"
)

// Recommendation is the final advice tuple shown to the user.
type Recommendation struct {
	Condition  string
	Action     string
	Risk       string
	Allocation string
}

// Inputs are the numeric values the classifier actually used, after defaults.
type Inputs struct {
	IndexChange float64
	Volatility  float64
	Sentiment   float64
}

// Analysis is the output of the strategy engine for one snapshot.
type Analysis struct {
	Index          IndexSignal
	Volatility     VolatilitySignal
	Sentiment      SentimentSignal
	Inputs         Inputs
	Score          int
	Recommendation Recommendation
	Reasoning      []string
	Degraded       bool
}

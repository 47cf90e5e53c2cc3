package strategy

import "MarketPulse/internal/model"

var indexPoints = map[model.IndexSignal]int{
	model.IndexStrongBullish: 2,
	model.IndexBullish:       1,
	model.IndexBearish:       -1,
	model.IndexStrongBearish: -2,
}

var volatilityPoints = map[model.VolatilitySignal]int{
	model.VolatilityLow:  1,
	model.VolatilityHigh: -2,
}

// Sentiment is read contrarian: fear adds points, greed removes them.
var sentimentPoints = map[model.SentimentSignal]int{
	model.SentimentExtremeFear:  2,
	model.SentimentFear:         1,
	model.SentimentGreed:        -1,
	model.SentimentExtremeGreed: -2,
}

// Bands maps score ranges to recommendations, highest first.
var Bands = []struct {
	MinScore       int
	Recommendation model.Recommendation
}{
	{3, model.Recommendation{Condition: "Bullish", Action: "BUY", Risk: "Medium", Allocation: "70% Equity / 30% Debt"}},
	{1, model.Recommendation{Condition: "Moderately Bullish", Action: "ACCUMULATE", Risk: "Medium", Allocation: "60% Equity / 40% Debt"}},
	{0, model.Recommendation{Condition: "Neutral", Action: "HOLD", Risk: "Medium", Allocation: "50% Equity / 50% Debt"}},
	{-2, model.Recommendation{Condition: "Moderately Bearish", Action: "HOLD/REDUCE", Risk: "Medium-High", Allocation: "40% Equity / 60% Debt"}},
}

// DefaultBand is the recommendation for scores of -3 and below.
var DefaultBand = model.Recommendation{Condition: "Bearish", Action: "SELL/REDUCE", Risk: "High", Allocation: "30% Equity / 70% Debt"}

// Fallback is used when an analysis cannot be produced at all.
var Fallback = model.Recommendation{Condition: "Unable to analyze", Action: "Hold current positions", Risk: "Medium", Allocation: "50% Equity / 50% Debt"}

// Score sums the independent point contributions of the three buckets.
// Buckets missing from the tables contribute zero.
func Score(index model.IndexSignal, vol model.VolatilitySignal, sentiment model.SentimentSignal) int {
	return indexPoints[index] + volatilityPoints[vol] + sentimentPoints[sentiment]
}

// Recommend maps a total score to its recommendation band.
func Recommend(score int) model.Recommendation {
	for _, b := range Bands {
		if score >= b.MinScore {
			return b.Recommendation
		}
	}
	return DefaultBand
}

// Evaluate classifies the snapshot and scores the resulting buckets.
func Evaluate(snap *model.Snapshot) *model.Analysis {
	c := Classify(snap)
	score := Score(c.Index, c.Volatility, c.Sentiment)
	return &model.Analysis{
		Index:          c.Index,
		Volatility:     c.Volatility,
		Sentiment:      c.Sentiment,
		Inputs:         c.Inputs,
		Score:          score,
		Recommendation: Recommend(score),
		Reasoning:      c.Reasoning,
	}
}

// Degraded returns the analysis used when evaluation failed.
func Degraded() *model.Analysis {
	return &model.Analysis{
		Index:          model.IndexNeutral,
		Volatility:     model.VolatilityNormal,
		Sentiment:      model.SentimentNeutral,
		Inputs:         model.Inputs{IndexChange: DefaultIndexChange, Volatility: DefaultVolatility, Sentiment: DefaultSentiment},
		Recommendation: Fallback,
		Degraded:       true,
	}
}

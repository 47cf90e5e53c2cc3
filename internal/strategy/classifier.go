package strategy

import (
	"math"
	"strconv"
	"strings"

	"MarketPulse/internal/model"
)

// Defaults used when a reading is absent or cannot be parsed.
const (
	DefaultIndexChange = 0.0
	DefaultVolatility  = 20.0
	DefaultSentiment   = 50.0
)

// ClassifyVolatility buckets a volatility index level.
func ClassifyVolatility(v float64) model.VolatilitySignal {
	switch {
	case v < 15:
		return model.VolatilityLow
	case v > 25:
		return model.VolatilityHigh
	default:
		return model.VolatilityNormal
	}
}

// ClassifySentiment buckets a 0-100 fear/greed reading.
// Extreme greed must be tested before greed.
func ClassifySentiment(m float64) model.SentimentSignal {
	switch {
	case m < 25:
		return model.SentimentExtremeFear
	case m < 40:
		return model.SentimentFear
	case m > 75:
		return model.SentimentExtremeGreed
	case m > 60:
		return model.SentimentGreed
	default:
		return model.SentimentNeutral
	}
}

// ClassifyIndex buckets the index percent change from prior close.
func ClassifyIndex(c float64) model.IndexSignal {
	switch {
	case c > 2:
		return model.IndexStrongBullish
	case c > 0.5:
		return model.IndexBullish
	case c < -2:
		return model.IndexStrongBearish
	case c < -0.5:
		return model.IndexBearish
	default:
		return model.IndexNeutral
	}
}

// Classification is the classifier output: three buckets, the inputs that
// produced them and one reasoning line per applied rule.
type Classification struct {
	Index      model.IndexSignal
	Volatility model.VolatilitySignal
	Sentiment  model.SentimentSignal
	Inputs     model.Inputs
	Reasoning  []string
}

// Classify buckets the three readings of a snapshot. It never fails: absent or
// malformed readings fall back to the package defaults.
// Reasoning order is volatility, sentiment, index.
func Classify(snap *model.Snapshot) Classification {
	if snap == nil {
		snap = &model.Snapshot{}
	}
	var c Classification

	c.Inputs.Volatility = volatilityValue(snap.Volatility)
	c.Volatility = ClassifyVolatility(c.Inputs.Volatility)
	switch c.Volatility {
	case model.VolatilityLow:
		c.Reasoning = append(c.Reasoning, "VIX below 15 indicates low volatility - market complacency")
	case model.VolatilityHigh:
		c.Reasoning = append(c.Reasoning, "VIX above 25 indicates high volatility - market fear")
	default:
		c.Reasoning = append(c.Reasoning, "VIX in normal range - moderate volatility")
	}

	c.Inputs.Sentiment = sentimentValue(snap.Sentiment)
	c.Sentiment = model.SentimentNeutral
	if snap.Sentiment != nil {
		c.Sentiment = ClassifySentiment(c.Inputs.Sentiment)
		switch c.Sentiment {
		case model.SentimentExtremeFear:
			c.Reasoning = append(c.Reasoning, "MMI below 25 - Extreme Fear zone")
		case model.SentimentFear:
			c.Reasoning = append(c.Reasoning, "MMI below 40 - Fear zone")
		case model.SentimentExtremeGreed:
			c.Reasoning = append(c.Reasoning, "MMI above 75 - Extreme Greed zone")
		case model.SentimentGreed:
			c.Reasoning = append(c.Reasoning, "MMI above 60 - Greed zone")
		default:
			c.Reasoning = append(c.Reasoning, "MMI in neutral zone")
		}
	}

	c.Inputs.IndexChange = indexChange(snap.Index)
	c.Index = model.IndexNeutral
	if snap.Index != nil {
		c.Index = ClassifyIndex(c.Inputs.IndexChange)
		switch c.Index {
		case model.IndexStrongBullish:
			c.Reasoning = append(c.Reasoning, "NIFTY up >2% - Strong bullish momentum")
		case model.IndexBullish:
			c.Reasoning = append(c.Reasoning, "NIFTY up >0.5% - Bullish trend")
		case model.IndexStrongBearish:
			c.Reasoning = append(c.Reasoning, "NIFTY down >2% - Strong bearish momentum")
		case model.IndexBearish:
			c.Reasoning = append(c.Reasoning, "NIFTY down >0.5% - Bearish trend")
		}
	}

	return c
}

func volatilityValue(r *model.Reading) float64 {
	if r == nil {
		return DefaultVolatility
	}
	if v, ok := ParseNumber(r.Value); ok {
		return v
	}
	return DefaultVolatility
}

func sentimentValue(r *model.Reading) float64 {
	if r == nil {
		return DefaultSentiment
	}
	if v, ok := ParseNumber(r.Value); ok {
		return v
	}
	return DefaultSentiment
}

// indexChange only trusts percent changes that are written as percentages.
func indexChange(r *model.Reading) float64 {
	if r == nil || !strings.Contains(r.ChangePercent, "%") {
		return DefaultIndexChange
	}
	if v, ok := ParseNumber(strings.ReplaceAll(r.ChangePercent, "%", "")); ok {
		return v
	}
	return DefaultIndexChange
}

// ParseNumber parses upstream numeric text such as "24,812.05", "+1.25" or
// " 62 ". Surrounding parentheses are ignored. NaN and infinities are rejected.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "()")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(strings.TrimSpace(s), "+")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

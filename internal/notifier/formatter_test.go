package notifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"MarketPulse/internal/model"
	"MarketPulse/internal/strategy"
)

var reportTime = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

func TestFormatReport_FullSnapshot(t *testing.T) {
	snap := &model.Snapshot{
		Index:      &model.Reading{Value: "24,812.05", Change: "110.30", ChangePercent: "0.45%", PERatio: "22.31", Source: "NSE"},
		Volatility: &model.Reading{Value: "21.5", Change: "1.2", ChangePercent: "5.91%", Source: "NSE"},
		Sentiment:  &model.Reading{Value: "62", Status: "Greed", Source: "Tickertape"},
	}
	msg := FormatReport(snap, strategy.Evaluate(snap), reportTime)

	assert.Contains(t, msg, "📊 *Daily Market Update* | 19 Oct 2026, 09:30 AM")
	assert.Contains(t, msg, "   Price: 24,812.05\n")
	assert.Contains(t, msg, "   Change: 110.30 (0.45%) 📈\n")
	assert.Contains(t, msg, "   PE Ratio: 22.31\n")
	assert.Contains(t, msg, "   Value: 21.5 😰\n")
	assert.Contains(t, msg, "   Value: 62 😊\n")
	assert.Contains(t, msg, "   Status: Greed\n")
	assert.Contains(t, msg, "Recommendation: *HOLD/REDUCE*")
	assert.Contains(t, msg, "Signal Score: -1")
	assert.Contains(t, msg, "• MMI above 60 - Greed zone\n")
	assert.Contains(t, msg, "• 🟡 Moderate PE Ratio - Fair valuation\n")
	assert.Contains(t, msg, "📍 Sources: NSE, Tickertape\n")
	assert.NotContains(t, msg, "Unavailable")
	assert.Contains(t, msg, "*Disclaimer:*")
}

func TestFormatReport_MissingReadings(t *testing.T) {
	snap := &model.Snapshot{Index: &model.Reading{Value: "24,000", Source: "Moneycontrol"}}
	msg := FormatReport(snap, strategy.Evaluate(snap), reportTime)

	assert.Contains(t, msg, "   Change: N/A (N/A)\n")
	assert.NotContains(t, msg, "PE Ratio")
	assert.NotContains(t, msg, "*NIFTY VIX*")
	assert.Contains(t, msg, "⚠️ Unavailable: NIFTY VIX, Market Mood Index (defaults used)")
	assert.Contains(t, msg, "Recommendation: *HOLD*")
}

func TestValuationInsight(t *testing.T) {
	tests := []struct {
		pe   string
		want string
	}{
		{"27.4", "🔴 High PE Ratio - Market may be overvalued"},
		{"25", "🟡 Moderate PE Ratio - Fair valuation"},
		{"20.01", "🟡 Moderate PE Ratio - Fair valuation"},
		{"20", "🟢 Low PE Ratio - Potential undervaluation"},
		{"18.2", "🟢 Low PE Ratio - Potential undervaluation"},
		{"", ""},
		{"N/A", ""},
		{"-", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, valuationInsight(&model.Reading{PERatio: tt.pe}), tt.pe)
	}
	assert.Empty(t, valuationInsight(nil))
}

func TestFormatReport_DegradedAndNil(t *testing.T) {
	msg := FormatReport(nil, strategy.Degraded(), reportTime)
	assert.Contains(t, msg, "Condition: Unable to analyze")
	assert.Contains(t, msg, "Recommendation: *Hold current positions*")
	assert.NotContains(t, msg, "Signal Score")
	assert.NotContains(t, msg, "Key Insights")
}

func TestFormatReport_StripsMarkdownFromScrapedText(t *testing.T) {
	snap := &model.Snapshot{Sentiment: &model.Reading{Value: "41", Status: "neutral_*zone*"}}
	msg := FormatReport(snap, nil, reportTime)
	assert.Contains(t, msg, "   Status: neutralzone\n")
}

func TestMoodEmoji(t *testing.T) {
	assert.Equal(t, "😱", MoodEmoji("10"))
	assert.Equal(t, "😟", MoodEmoji("30"))
	assert.Equal(t, "😐", MoodEmoji("50"))
	assert.Equal(t, "😊", MoodEmoji("70"))
	assert.Equal(t, "🤑", MoodEmoji("90"))
	assert.Equal(t, "😐", MoodEmoji("n/a"))
}

func TestFormatFailure(t *testing.T) {
	assert.Equal(t, "❌ *Market Update Error*\n\nreport delivery failed", FormatFailure("report delivery failed"))
}

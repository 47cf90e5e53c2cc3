package notifier

import (
	"fmt"
	"strings"
	"time"

	"MarketPulse/internal/model"
	"MarketPulse/internal/strategy"
)

const disclaimer = "⚠️ *Disclaimer:* This is for educational purposes only. Please consult a financial advisor before making investment decisions."

// markdownCleaner drops characters that would open an unterminated entity in
// Telegram Markdown.
var markdownCleaner = strings.NewReplacer("*", "", "_", "", "`", "", "[", "(", "]", ")")

func clean(s string) string {
	s = strings.TrimSpace(markdownCleaner.Replace(s))
	if s == "" {
		return "N/A"
	}
	return s
}

// FormatReport renders the daily update message in Telegram Markdown.
func FormatReport(snap *model.Snapshot, a *model.Analysis, now time.Time) string {
	if snap == nil {
		snap = &model.Snapshot{}
	}
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 *Daily Market Update* | %s\n", now.Format("02 Jan 2006, 03:04 PM")))
	b.WriteString(strings.Repeat("=", 30) + "\n\n")

	if r := snap.Index; r != nil {
		b.WriteString("🔹 *NIFTY 50*\n")
		b.WriteString(fmt.Sprintf("   Price: %s\n", clean(r.Value)))
		b.WriteString(fmt.Sprintf("   Change: %s (%s)%s\n", clean(r.Change), clean(r.ChangePercent), trendEmoji(r.ChangePercent)))
		if pe := strings.TrimSpace(r.PERatio); pe != "" && pe != "N/A" && pe != "-" {
			b.WriteString(fmt.Sprintf("   PE Ratio: %s\n", clean(pe)))
		}
		b.WriteString("\n")
	}

	if r := snap.Volatility; r != nil {
		b.WriteString("🔹 *NIFTY VIX*\n")
		b.WriteString(fmt.Sprintf("   Value: %s%s\n", clean(r.Value), vixEmoji(r.Value)))
		b.WriteString(fmt.Sprintf("   Change: %s (%s)\n\n", clean(r.Change), clean(r.ChangePercent)))
	}

	if r := snap.Sentiment; r != nil {
		b.WriteString("🔹 *Market Mood Index*\n")
		b.WriteString(fmt.Sprintf("   Value: %s %s\n", clean(r.Value), MoodEmoji(r.Value)))
		b.WriteString(fmt.Sprintf("   Status: %s\n\n", clean(r.Status)))
	}

	if missing := missingReadings(snap); len(missing) > 0 {
		b.WriteString(fmt.Sprintf("⚠️ Unavailable: %s (defaults used)\n\n", strings.Join(missing, ", ")))
	}

	if a != nil {
		b.WriteString("📈 *Market Analysis*\n")
		b.WriteString(strings.Repeat("-", 20) + "\n")
		b.WriteString(fmt.Sprintf("Condition: %s\n", a.Recommendation.Condition))
		b.WriteString(fmt.Sprintf("Recommendation: *%s*\n", a.Recommendation.Action))
		b.WriteString(fmt.Sprintf("Risk Level: %s\n", a.Recommendation.Risk))
		b.WriteString(fmt.Sprintf("Asset Allocation: %s\n", a.Recommendation.Allocation))
		if !a.Degraded {
			b.WriteString(fmt.Sprintf("Signal Score: %+d\n", a.Score))
		}
		b.WriteString("\n")

		insights := a.Reasoning
		if pe := valuationInsight(snap.Index); pe != "" {
			insights = append(insights[:len(insights):len(insights)], pe)
		}
		if len(insights) > 0 {
			b.WriteString("💡 *Key Insights:*\n")
			for _, reason := range insights {
				b.WriteString(fmt.Sprintf("• %s\n", reason))
			}
			b.WriteString("\n")
		}
	}

	if sources := sourceLabels(snap); len(sources) > 0 {
		b.WriteString(fmt.Sprintf("📍 Sources: %s\n\n", strings.Join(sources, ", ")))
	}

	b.WriteString(disclaimer)
	return b.String()
}

// FormatFailure renders the notice sent when the report itself could not be
// produced or delivered.
func FormatFailure(reason string) string {
	return fmt.Sprintf("❌ *Market Update Error*\n\n%s", clean(reason))
}

// FormatHelp lists the chat commands the bot answers.
func FormatHelp() string {
	return "Available commands:\n• /report - run the market update now\n• /help - show this message"
}

// MoodEmoji picks an emoji for a Market Mood Index value.
func MoodEmoji(value string) string {
	v, ok := strategy.ParseNumber(value)
	if !ok {
		return "😐"
	}
	switch {
	case v < 25:
		return "😱"
	case v < 40:
		return "😟"
	case v < 60:
		return "😐"
	case v < 75:
		return "😊"
	default:
		return "🤑"
	}
}

// valuationInsight grades the NIFTY 50 PE ratio. It is empty when the index
// reading carries no numeric PE.
func valuationInsight(r *model.Reading) string {
	if r == nil {
		return ""
	}
	pe, ok := strategy.ParseNumber(r.PERatio)
	if !ok || pe <= 0 {
		return ""
	}
	switch {
	case pe > 25:
		return "🔴 High PE Ratio - Market may be overvalued"
	case pe > 20:
		return "🟡 Moderate PE Ratio - Fair valuation"
	default:
		return "🟢 Low PE Ratio - Potential undervaluation"
	}
}

func trendEmoji(changePercent string) string {
	v, ok := strategy.ParseNumber(strings.ReplaceAll(changePercent, "%", ""))
	if !ok {
		return ""
	}
	if v > 0 {
		return " 📈"
	}
	return " 📉"
}

func vixEmoji(value string) string {
	v, ok := strategy.ParseNumber(value)
	if !ok {
		return ""
	}
	if v > 20 {
		return " 😰"
	}
	return " 😌"
}

func missingReadings(snap *model.Snapshot) []string {
	var missing []string
	if snap.Index == nil {
		missing = append(missing, "NIFTY 50")
	}
	if snap.Volatility == nil {
		missing = append(missing, "NIFTY VIX")
	}
	if snap.Sentiment == nil {
		missing = append(missing, "Market Mood Index")
	}
	return missing
}

func sourceLabels(snap *model.Snapshot) []string {
	var out []string
	seen := map[string]bool{}
	for _, r := range []*model.Reading{snap.Index, snap.Volatility, snap.Sentiment} {
		if r == nil || r.Source == "" || seen[r.Source] {
			continue
		}
		seen[r.Source] = true
		out = append(out, clean(r.Source))
	}
	return out
}

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"MarketPulse/internal/collector"
	"MarketPulse/internal/model"
	"MarketPulse/internal/notifier"
	"MarketPulse/internal/strategy"
)

var (
	analyzeChange string
	analyzeVIX    string
	analyzeMMI    string
)

// analyzeCmd evaluates hand-entered readings without any network access.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Evaluate readings offline and print the report",
	Long: `Analyze runs the classifier and scorer on readings given as flags and
prints the report that would be sent. Omitted readings are treated as
unavailable and their defaults apply. No configuration or credentials are
needed.

Examples:
  pulse analyze --change 2.5% --vix 12 --mmi 20
  pulse analyze --vix 28`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeChange, "change", "", "NIFTY 50 percent change, e.g. 1.2% or -0.8%")
	analyzeCmd.Flags().StringVar(&analyzeVIX, "vix", "", "India VIX value")
	analyzeCmd.Flags().StringVar(&analyzeMMI, "mmi", "", "Market Mood Index value (0-100)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	snap := manualSnapshot(analyzeChange, analyzeVIX, analyzeMMI, time.Now())
	a := strategy.Evaluate(snap)
	_, err := fmt.Fprintln(cmd.OutOrStdout(), notifier.FormatReport(snap, a, snap.CollectedAt))
	return err
}

// manualSnapshot builds a snapshot from flag values. An empty value leaves
// the reading unavailable.
func manualSnapshot(change, vix, mmi string, now time.Time) *model.Snapshot {
	snap := &model.Snapshot{CollectedAt: now}
	if change = strings.TrimSpace(change); change != "" {
		if !strings.HasSuffix(change, "%") {
			change += "%"
		}
		snap.Index = &model.Reading{
			Name:          string(model.IndicatorIndex),
			Value:         "N/A",
			Change:        change,
			ChangePercent: change,
			Source:        "manual",
			FetchedAt:     now,
		}
	}
	if vix = strings.TrimSpace(vix); vix != "" {
		snap.Volatility = &model.Reading{
			Name:      string(model.IndicatorVolatility),
			Value:     vix,
			Source:    "manual",
			FetchedAt: now,
		}
	}
	if mmi = strings.TrimSpace(mmi); mmi != "" {
		r := &model.Reading{
			Name:      string(model.IndicatorSentiment),
			Value:     mmi,
			Status:    "Unknown",
			Source:    "manual",
			FetchedAt: now,
		}
		if v, ok := strategy.ParseNumber(mmi); ok {
			r.Status = collector.MoodStatus(v)
		}
		snap.Sentiment = r
	}
	return snap
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"MarketPulse/internal/collector"
	"MarketPulse/internal/config"
	"MarketPulse/internal/logger"
	"MarketPulse/internal/metrics"
	"MarketPulse/internal/notifier"
	"MarketPulse/internal/pipeline"
)

var configPath string

// rootCmd is the base command for the MarketPulse CLI
var rootCmd = &cobra.Command{
	Use:   "pulse",
	Short: "Daily NIFTY 50 market update bot",
	Long: `MarketPulse collects the NIFTY 50 index, India VIX and the Market Mood
Index, turns them into a rule-based allocation recommendation and sends the
report to a Telegram chat.`,
	SilenceUsage: true,
}

func init() {
	defaultPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultPath = v
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultPath, "Path to the YAML configuration file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads and validates the configuration and builds the logger.
func loadConfig() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("config validation: %w", err)
	}
	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}, os.Stderr)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, log, nil
}

// app holds the components shared by run and serve.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	metrics  *metrics.Metrics
	notifier *notifier.TelegramNotifier
	pipeline *pipeline.Pipeline
}

func newApp() (*app, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, err
	}
	m := metrics.New()
	col, err := collector.New(cfg, log, m)
	if err != nil {
		return nil, fmt.Errorf("init collector: %w", err)
	}
	tn := notifier.NewTelegramNotifier(cfg.Telegram, cfg.HTTP, log)
	return &app{
		cfg:      cfg,
		log:      log,
		metrics:  m,
		notifier: tn,
		pipeline: pipeline.New(col, tn, m, log),
	}, nil
}

// pushMetrics sends the run metrics to the Pushgateway when one is configured.
func (a *app) pushMetrics() {
	if a.cfg.Metrics.PushgatewayURL == "" {
		return
	}
	if err := a.metrics.Push(a.cfg.Metrics.PushgatewayURL, a.cfg.Metrics.Job); err != nil {
		a.log.Warn().Err(err).Msg("push metrics failed")
	}
}

// Run performs one pipeline run and pushes its metrics.
func (a *app) Run(ctx context.Context) pipeline.Result {
	res := a.pipeline.Run(ctx)
	a.pushMetrics()
	return res
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"MarketPulse/internal/scheduler"
)

var serveRunOnStart bool

// serveCmd keeps the bot running with a cron trigger and chat commands.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Send market updates on a schedule and answer chat commands",
	Long: `Serve registers the configured cron schedule and long-polls Telegram for
/report and /help commands. Each run is independent of the previous one.

Examples:
  pulse serve
  pulse serve --run-on-start
  PULSE_CRON="0 0 16 * * 1-5" pulse serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&serveRunOnStart, "run-on-start", os.Getenv("RUN_ON_START") == "true", "Send one update immediately after starting")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	loc, err := time.LoadLocation(a.cfg.Schedule.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", a.cfg.Schedule.Timezone, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched := scheduler.NewScheduler(ctx, a, loc, a.log)
	if err := sched.Register(a.cfg.Schedule.Cron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	go a.notifier.StartPolling(ctx, sched.HandleCommand)
	a.log.Info().Msg("telegram polling started")

	if serveRunOnStart {
		a.log.Info().Msg("run-on-start enabled, sending update now")
		go sched.RunNow(ctx)
	}

	a.log.Info().Str("cron", a.cfg.Schedule.Cron).Str("timezone", loc.String()).Msg("MarketPulse is running, press Ctrl+C to stop")
	<-ctx.Done()
	a.log.Info().Msg("shutdown signal received, stopping")
	return nil
}

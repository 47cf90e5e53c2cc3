package main

import (
	"github.com/spf13/cobra"
)

// runCmd performs a single report run and exits.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Collect, analyze and send one market update",
	Long: `Run fetches the current readings, evaluates them and sends the report to
the configured Telegram chat. Fetch and delivery failures are logged and do not
change the exit status; only configuration errors do.`,
	Args: cobra.NoArgs,
	RunE: runOnce,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runOnce(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	a.log.Info().Msg("MarketPulse run starting")

	res := a.Run(cmd.Context())

	a.log.Info().
		Str("run_id", res.RunID).
		Bool("delivered", res.Delivered).
		Msg("MarketPulse run finished")
	return nil
}

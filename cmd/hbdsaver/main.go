package main

import (
	"errors"
	"log"
	"os"

	"HBDSaver/internal/model"

	"github.com/spf13/cobra"
)

const defaultConfigPath = "configs/config.yaml"

var (
	configPath string
	dryRun     bool
)

func main() {
	log.SetFlags(0)
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hbdsaver",
		Short:         "Move part of each new post reward into HBD savings",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", configPathFromEnv(), "path to the YAML config file")
	root.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "log the transfer instead of broadcasting it")

	root.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Check for a new reward once and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd.Context())
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "daemon",
		Short: "Run on the configured cron schedule until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(cmd.Context())
		},
	})
	return root
}

func configPathFromEnv() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return defaultConfigPath
}

// exitCode maps a run error to the process exit status: 1 for configuration
// problems, 2 for a failed ledger query.
func exitCode(err error) int {
	var qe *model.LedgerQueryError
	if errors.As(err, &qe) {
		return 2
	}
	return 1
}

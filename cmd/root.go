package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootOptions carries the persistent flags every subcommand reads.
type rootOptions struct {
	ConfigPath string
}

func NewRootCmd() *cobra.Command {
	ro := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "stockbacktest",
		Short:         "Monthly-rebalance equity backtesting and paper trading",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&ro.ConfigPath, "config", defaultConfigPath, "path to config file")

	cmd.AddCommand(
		newBacktestCmd(ro),
		newRankCmd(ro),
		newPreprocessCmd(ro),
		newOptimizeCmd(ro),
		newIngestPricesCmd(ro),
		newImportFundsCmd(ro),
		newBenchmarkCmd(ro),
		newPaperRebalanceCmd(ro),
		newApiCmd(ro),
	)

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

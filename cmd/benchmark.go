package cmd

import (
	"context"
	"fmt"
	"stockbacktest/internal/calculator"
	"stockbacktest/internal/report"
	"time"

	"github.com/spf13/cobra"
)

func newBenchmarkCmd(ro *rootOptions) *cobra.Command {
	var (
		symbol   string
		startStr string
		endStr   string
	)

	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Evaluate a buy-and-hold benchmark over a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			if startStr == "" || endStr == "" {
				return fmt.Errorf("--start and --end are required")
			}
			start, err := time.Parse("2006-01-02", startStr)
			if err != nil {
				return fmt.Errorf("bad --start: %w", err)
			}
			end, err := time.Parse("2006-01-02", endStr)
			if err != nil {
				return fmt.Errorf("bad --end: %w", err)
			}

			ctx := context.Background()
			deps, err := InitializeDependencies(ro.ConfigPath)
			if err != nil {
				return err
			}
			defer CloseDependencies(deps)

			if symbol == "" {
				symbol = deps.Config.BenchmarkSymbol
			}

			snapshots, err := deps.BenchmarkHandler.GetSnapshots(symbol, start, end)
			if err != nil {
				return err
			}

			metrics, err := calculator.Evaluate(snapshots, resolveRiskFreeRate(ctx, deps.Config))
			if err != nil {
				return fmt.Errorf("failed to evaluate benchmark: %w", err)
			}

			fmt.Printf("%s buy-and-hold, %s to %s (%d trading days)\n",
				symbol, start.Format("2006-01-02"), end.Format("2006-01-02"), len(snapshots))
			report.NewConsole().PrintMetrics(metrics)
			return nil
		},
	}

	cmd.Flags().StringVar(&symbol, "symbol", "", "benchmark symbol, defaults to the configured one")
	cmd.Flags().StringVar(&startStr, "start", "", "first day of the window (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endStr, "end", "", "last day of the window (YYYY-MM-DD)")

	return cmd
}

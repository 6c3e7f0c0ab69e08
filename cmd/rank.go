package cmd

import (
	"context"
	"fmt"
	"stockbacktest/internal/report"

	"github.com/spf13/cobra"
)

func newRankCmd(ro *rootOptions) *cobra.Command {
	var (
		month      int
		year       int
		symbols    []string
		expression string
	)

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Print the stock ranking for one month",
		RunE: func(cmd *cobra.Command, args []string) error {
			if month < 1 || month > 12 {
				return fmt.Errorf("--month must be between 1 and 12")
			}
			if year == 0 {
				return fmt.Errorf("--year is required")
			}

			deps, err := InitializeDependencies(ro.ConfigPath)
			if err != nil {
				return err
			}
			defer CloseDependencies(deps)

			ranked, err := deps.RankingService.GetRanking(context.Background(), month, year, symbols, expression)
			if err != nil {
				return err
			}

			report.NewConsole().PrintRanking(month, year, ranked)
			return nil
		},
	}

	cmd.Flags().IntVar(&month, "month", 0, "ranking month (1-12)")
	cmd.Flags().IntVar(&year, "year", 0, "ranking year")
	cmd.Flags().StringSliceVar(&symbols, "symbols", nil, "restrict the universe to these symbols")
	cmd.Flags().StringVar(&expression, "expression", "", "custom scoring expression")

	return cmd
}

package cmd

import (
	"context"
	"fmt"
	"stockbacktest/internal/app"
	"stockbacktest/internal/repository"

	"github.com/spf13/cobra"
)

func newPreprocessCmd(ro *rootOptions) *cobra.Command {
	var (
		startMonth int
		startYear  int
		endMonth   int
		endYear    int
		symbols    []string
	)

	cmd := &cobra.Command{
		Use:   "preprocess",
		Short: "Precompute and store monthly ranking scores",
		RunE: func(cmd *cobra.Command, args []string) error {
			if startYear == 0 || endYear == 0 {
				return fmt.Errorf("--start-year and --end-year are required")
			}

			deps, err := InitializeDependencies(ro.ConfigPath)
			if err != nil {
				return err
			}
			defer CloseDependencies(deps)

			handler := app.PreprocessHandler{
				Db:                     deps.Db,
				RankingService:         deps.RankingService,
				MonthlyScoreRepository: repository.NewMonthlyScoreRepository(deps.Db),
			}

			return handler.Preprocess(context.Background(), app.PreprocessInput{
				StartMonth: startMonth,
				StartYear:  startYear,
				EndMonth:   endMonth,
				EndYear:    endYear,
				Symbols:    symbols,
			})
		},
	}

	cmd.Flags().IntVar(&startMonth, "start-month", 1, "first month to score (1-12)")
	cmd.Flags().IntVar(&startYear, "start-year", 0, "first year to score")
	cmd.Flags().IntVar(&endMonth, "end-month", 12, "last month to score (1-12)")
	cmd.Flags().IntVar(&endYear, "end-year", 0, "last year to score")
	cmd.Flags().StringSliceVar(&symbols, "symbols", nil, "restrict the scored universe to these symbols")

	return cmd
}

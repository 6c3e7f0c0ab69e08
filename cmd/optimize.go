package cmd

import (
	"context"
	"fmt"
	"stockbacktest/internal/app"
	"stockbacktest/internal/calculator"
	"stockbacktest/internal/domain"
	"stockbacktest/internal/logger"
	"stockbacktest/internal/report"
	"time"

	"github.com/spf13/cobra"
)

func newOptimizeCmd(ro *rootOptions) *cobra.Command {
	var (
		startStr  string
		endStr    string
		studyName string
		numTrials int
		save      bool
	)

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Search backtest parameters and rerun with the best trial",
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
			if end.Before(start) {
				return fmt.Errorf("--end must not be before --start")
			}

			ctx := context.Background()
			deps, err := InitializeDependencies(ro.ConfigPath)
			if err != nil {
				return err
			}
			defer CloseDependencies(deps)
			cfg := deps.Config

			if studyName == "" {
				studyName = cfg.Optimizer.StudyName
			}
			if numTrials <= 0 {
				numTrials = cfg.Optimizer.Trials
			}

			baseParams, err := cfg.DefaultBacktestParams()
			if err != nil {
				return err
			}
			riskFreeRate := resolveRiskFreeRate(ctx, cfg)

			best, err := deps.OptimizeHandler.Optimize(ctx, app.OptimizeInput{
				StudyName:    studyName,
				Start:        start,
				End:          end,
				NumTrials:    numTrials,
				Seed:         cfg.Optimizer.Seed,
				RiskFreeRate: riskFreeRate,
				BaseParams:   baseParams,
			})
			if err != nil {
				return err
			}

			console := report.NewConsole()
			console.PrintTrials([]domain.Trial{*best})
			if best.ScoringExpression != "" {
				fmt.Printf("best scoring expression: %s\n", best.ScoringExpression)
			}

			// Rerun the window with the winning knobs for the full report.
			bestParams := baseParams
			bestParams.TrailingStopLoss = best.TrailingStopLoss
			bestParams.TakeProfit = best.TakeProfit
			bestParams.WeightScheme = best.WeightScheme

			result, err := deps.BacktestHandler.Run(ctx, app.BacktestInput{
				PortfolioName:     studyName,
				Start:             start,
				End:               end,
				Params:            bestParams,
				ScoringExpression: best.ScoringExpression,
			})
			if err != nil {
				return err
			}
			metrics, err := calculator.Evaluate(result.Snapshots, riskFreeRate)
			if err != nil {
				logger.FromContext(ctx).Warnf("failed to evaluate best trial backtest: %s", err.Error())
			}
			console.PrintBacktestSummary(studyName, result.Snapshots, result.Portfolio, metrics)

			if save {
				studyID, err := deps.OptimizeHandler.TrialRepository.GetOrCreateStudy(studyName)
				if err != nil {
					return err
				}
				trials, err := deps.OptimizeHandler.TrialRepository.ListTrials(studyID)
				if err != nil {
					return err
				}
				runDir, err := report.NewRunDir(cfg.DataDir+"/results", time.Now())
				if err != nil {
					return err
				}
				if err := report.SaveTrials(runDir, trials); err != nil {
					return err
				}
				if err := report.SaveBacktestArtifacts(runDir, result.Snapshots, result.Portfolio.Transactions, metrics); err != nil {
					return err
				}
				fmt.Printf("artifacts saved to %s\n", runDir)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&startStr, "start", "", "first day of the window (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endStr, "end", "", "last day of the window (YYYY-MM-DD)")
	cmd.Flags().StringVar(&studyName, "study", "", "study name, resumes an existing study")
	cmd.Flags().IntVar(&numTrials, "trials", 0, "total trials the study should reach")
	cmd.Flags().BoolVar(&save, "save", false, "write trial and backtest csv artifacts")

	return cmd
}

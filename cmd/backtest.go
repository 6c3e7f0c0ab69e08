package cmd

import (
	"context"
	"fmt"
	"stockbacktest/internal/app"
	"stockbacktest/internal/calculator"
	"stockbacktest/internal/domain"
	"stockbacktest/internal/logger"
	"stockbacktest/internal/report"
	l1_service "stockbacktest/internal/service/l1"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newBacktestCmd(ro *rootOptions) *cobra.Command {
	var (
		startStr   string
		endStr     string
		name       string
		symbols    []string
		expression string
		csvPath    string
		save       bool

		initialBalance float64
		numberOfStocks int
		trailingStop   float64
		takeProfit     float64
		weightScheme   string
		releaseDay     int
	)

	cmd := &cobra.Command{
		Use:   "backtest",
		Short: "Replay the strategy over a historical window",
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

			params, err := cfg.DefaultBacktestParams()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("initial-balance") {
				params.InitialBalance = decimal.NewFromFloat(initialBalance)
			}
			if cmd.Flags().Changed("stocks") {
				params.NumberOfStocks = numberOfStocks
			}
			if cmd.Flags().Changed("trailing-stop") {
				params.TrailingStopLoss = trailingStop
			}
			if cmd.Flags().Changed("take-profit") {
				params.TakeProfit = takeProfit
			}
			if cmd.Flags().Changed("release-day") {
				params.ReleaseDay = releaseDay
			}
			if cmd.Flags().Changed("weight-scheme") {
				params.WeightScheme, err = domain.ParseWeightScheme(weightScheme)
				if err != nil {
					return err
				}
			}

			backtestHandler := deps.BacktestHandler
			if csvPath != "" {
				dataset, err := l1_service.NewMarketDataService(nil).LoadFromCsv(ctx, csvPath)
				if err != nil {
					return err
				}
				backtestHandler.MarketDataset = dataset
			}

			result, err := backtestHandler.Run(ctx, app.BacktestInput{
				PortfolioName:     name,
				Start:             start,
				End:               end,
				Params:            params,
				Symbols:           symbols,
				ScoringExpression: expression,
			})
			if err != nil {
				return err
			}

			metrics, err := calculator.Evaluate(result.Snapshots, resolveRiskFreeRate(ctx, cfg))
			if err != nil {
				logger.FromContext(ctx).Warnf("failed to evaluate backtest: %s", err.Error())
			}

			console := report.NewConsole()
			console.PrintBacktestSummary(result.Portfolio.Name, result.Snapshots, result.Portfolio, metrics)
			console.PrintTransactions(result.Portfolio.Transactions)

			if save {
				runDir, err := report.NewRunDir(cfg.DataDir+"/results", time.Now())
				if err != nil {
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
	cmd.Flags().StringVar(&name, "name", "backtest", "portfolio name for reports")
	cmd.Flags().StringSliceVar(&symbols, "symbols", nil, "restrict the universe to these symbols")
	cmd.Flags().StringVar(&expression, "expression", "", "custom scoring expression")
	cmd.Flags().StringVar(&csvPath, "csv", "", "load market data from a csv export instead of the db")
	cmd.Flags().BoolVar(&save, "save", false, "write csv artifacts to a dated result directory")

	cmd.Flags().Float64Var(&initialBalance, "initial-balance", 0, "starting cash")
	cmd.Flags().IntVar(&numberOfStocks, "stocks", 0, "number of stocks to hold")
	cmd.Flags().Float64Var(&trailingStop, "trailing-stop", 0, "trailing stop loss fraction")
	cmd.Flags().Float64Var(&takeProfit, "take-profit", 0, "take profit fraction")
	cmd.Flags().StringVar(&weightScheme, "weight-scheme", "", "equal, linear or softmax")
	cmd.Flags().IntVar(&releaseDay, "release-day", 0, "day of month the fund disclosures are out")

	return cmd
}

package cmd

import (
	"context"
	"fmt"
	"stockbacktest/internal/app"
	"stockbacktest/internal/report"
	"stockbacktest/internal/repository"
	l1_service "stockbacktest/internal/service/l1"
	"time"

	"github.com/spf13/cobra"
)

func newPaperRebalanceCmd(ro *rootOptions) *cobra.Command {
	var (
		month      int
		year       int
		symbols    []string
		expression string
		execute    bool
	)

	cmd := &cobra.Command{
		Use:   "paper-rebalance",
		Short: "Rotate the paper account into this month's ranking",
		Long: "Proposes the trades that move the Alpaca paper account onto the " +
			"current ranking, using the same sizing as the simulated buy phase. " +
			"Orders are only submitted with --execute.",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now().UTC()
			if month == 0 {
				month = int(now.Month())
			}
			if year == 0 {
				year = now.Year()
			}
			if month < 1 || month > 12 {
				return fmt.Errorf("--month must be between 1 and 12")
			}

			deps, err := InitializeDependencies(ro.ConfigPath)
			if err != nil {
				return err
			}
			defer CloseDependencies(deps)
			cfg := deps.Config

			if cfg.Alpaca.ApiKey == "" || cfg.Alpaca.ApiSecret == "" {
				return fmt.Errorf("alpaca api credentials are not configured")
			}

			params, err := cfg.DefaultBacktestParams()
			if err != nil {
				return err
			}

			alpacaRepository := repository.NewAlpacaRepository(cfg.Alpaca.ApiKey, cfg.Alpaca.ApiSecret, cfg.Alpaca.Endpoint)
			handler := app.PaperRebalanceHandler{
				AlpacaRepository: alpacaRepository,
				RankingService:   deps.RankingService,
				TradeService:     l1_service.NewTradeService(alpacaRepository),
			}

			trades, err := handler.Rebalance(context.Background(), app.PaperRebalanceInput{
				Month:             month,
				Year:              year,
				Symbols:           symbols,
				ScoringExpression: expression,
				Params:            params,
				DryRun:            !execute,
			})
			if err != nil {
				return err
			}

			report.NewConsole().PrintProposedTrades(trades)
			if !execute {
				fmt.Println("dry run, no orders submitted")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&month, "month", 0, "ranking month, defaults to the current one")
	cmd.Flags().IntVar(&year, "year", 0, "ranking year, defaults to the current one")
	cmd.Flags().StringSliceVar(&symbols, "symbols", nil, "restrict the universe to these symbols")
	cmd.Flags().StringVar(&expression, "expression", "", "custom scoring expression")
	cmd.Flags().BoolVar(&execute, "execute", false, "submit the orders instead of only proposing them")

	return cmd
}

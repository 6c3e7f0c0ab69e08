package cmd

import (
	"context"
	"fmt"
	"stockbacktest/internal"
	"stockbacktest/internal/logger"

	"github.com/spf13/cobra"
)

func newIngestPricesCmd(ro *rootOptions) *cobra.Command {
	var symbols []string

	cmd := &cobra.Command{
		Use:   "ingest-prices",
		Short: "Fetch daily quotes into the db, resuming from the latest stored day",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			log := logger.FromContext(ctx)

			deps, err := InitializeDependencies(ro.ConfigPath)
			if err != nil {
				return err
			}
			defer CloseDependencies(deps)

			tx, err := deps.Db.Begin()
			if err != nil {
				return fmt.Errorf("failed to begin transaction: %w", err)
			}
			defer tx.Rollback()

			if cmd.Flags().Changed("symbols") {
				for _, symbol := range symbols {
					added, err := internal.IngestPrices(tx, symbol, deps.DailyQuoteRepository)
					if err != nil {
						return err
					}
					log.Infof("added %d quotes for %s", added, symbol)
				}
				return tx.Commit()
			}

			// No explicit symbols: refresh everything in the table, seeding
			// the benchmark series so a fresh db bootstraps.
			seeds := []string{deps.Config.BenchmarkSymbol}
			if err := internal.UpdateQuotedPrices(ctx, tx, seeds, deps.DailyQuoteRepository); err != nil {
				return err
			}

			return tx.Commit()
		},
	}

	cmd.Flags().StringSliceVar(&symbols, "symbols", nil, "symbols to ingest; default refreshes the whole quote table")

	return cmd
}

package cmd

import (
	"context"
	"fmt"
	"stockbacktest/internal"
	"stockbacktest/internal/logger"
	"stockbacktest/internal/repository"

	"github.com/spf13/cobra"
)

func newImportFundsCmd(ro *rootOptions) *cobra.Command {
	var (
		holdingsPath string
		reportsPath  string
	)

	cmd := &cobra.Command{
		Use:   "import-funds",
		Short: "Import fund holdings and financial reports from csv exports",
		RunE: func(cmd *cobra.Command, args []string) error {
			if holdingsPath == "" && reportsPath == "" {
				return fmt.Errorf("at least one of --holdings and --reports is required")
			}

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

			if holdingsPath != "" {
				added, err := internal.ImportFundHoldings(ctx, tx, holdingsPath, repository.NewFundHoldingRepository(deps.Db))
				if err != nil {
					return err
				}
				log.Infof("imported %d fund holding rows", added)
			}
			if reportsPath != "" {
				added, err := internal.ImportFinancialReports(ctx, tx, reportsPath, repository.NewFinancialReportRepository(deps.Db))
				if err != nil {
					return err
				}
				log.Infof("imported %d financial report rows", added)
			}

			return tx.Commit()
		},
	}

	cmd.Flags().StringVar(&holdingsPath, "holdings", "", "path to the fund holdings csv")
	cmd.Flags().StringVar(&reportsPath, "reports", "", "path to the financial reports csv")

	return cmd
}

package internal

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"stockbacktest/internal/db/models/postgres/public/model"
	mock_repository "stockbacktest/internal/repository/mocks"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func writeTempCsv(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestImportFundHoldings(t *testing.T) {
	ctrl := gomock.NewController(t)
	fundHoldingRepository := mock_repository.NewMockFundHoldingRepository(ctrl)

	path := writeTempCsv(t, "fund_portfolios.csv",
		`Date,Fund Code,Category,Quantity,Market Price,Value
2024-03-31,VCBF-TBF,FPT,120000,96.5,11580000
2024-03-31,VCBF-BCF,FPT,45000,96.5,4342500
2024-02-29,VCBF-TBF,MWG,80000,47.2,3776000
`)

	var added []model.FundHolding
	fundHoldingRepository.EXPECT().
		Add(gomock.Nil(), gomock.Any()).
		DoAndReturn(func(tx *sql.Tx, holdings []model.FundHolding) error {
			added = holdings
			return nil
		})

	count, err := ImportFundHoldings(context.Background(), nil, path, fundHoldingRepository)
	require.NoError(t, err)
	require.Equal(t, 3, count)

	require.Len(t, added, 3)
	require.Equal(t, "FPT", added[0].Symbol)
	require.Equal(t, "VCBF-TBF", added[0].FundCode)
	require.Equal(t, int32(3), added[0].Month)
	require.Equal(t, int32(2024), added[0].Year)
	require.Equal(t, int64(120000), added[0].Quantity)
	require.Equal(t, 96.5, added[0].MarketPrice)
	require.Equal(t, 11580000.0, added[0].Value)

	require.Equal(t, "MWG", added[2].Symbol)
	require.Equal(t, int32(2), added[2].Month)
	require.Equal(t, int32(2024), added[2].Year)
}

func TestImportFundHoldingsRejectsBadRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	fundHoldingRepository := mock_repository.NewMockFundHoldingRepository(ctrl)

	t.Run("unparseable date", func(t *testing.T) {
		path := writeTempCsv(t, "bad_date.csv",
			`Date,Fund Code,Category,Quantity,Market Price,Value
2024-03-31,VCBF-TBF,FPT,120000,96.5,11580000
March 2024,VCBF-BCF,FPT,45000,96.5,4342500
`)

		_, err := ImportFundHoldings(context.Background(), nil, path, fundHoldingRepository)
		require.ErrorContains(t, err, "row 2")
	})

	t.Run("missing symbol", func(t *testing.T) {
		path := writeTempCsv(t, "missing_symbol.csv",
			`Date,Fund Code,Category,Quantity,Market Price,Value
2024-03-31,VCBF-TBF,,120000,96.5,11580000
`)

		_, err := ImportFundHoldings(context.Background(), nil, path, fundHoldingRepository)
		require.ErrorContains(t, err, "missing symbol or fund code")
	})
}

func TestImportFinancialReports(t *testing.T) {
	ctrl := gomock.NewController(t)
	financialReportRepository := mock_repository.NewMockFinancialReportRepository(ctrl)

	path := writeTempCsv(t, "financial_reports.csv",
		`tickersymbol,quarter,year,ROE,Debt/Equity,Revenue,Cash,Liabilities,P/E
FPT,1,2024,0.28,0.55,9000000,2500000,4800000,21.4
MWG,1,2024,0.12,1.1,31000000,5200000,26000000,17.9
`)

	var added []model.FinancialReport
	financialReportRepository.EXPECT().
		Add(gomock.Nil(), gomock.Any()).
		DoAndReturn(func(tx *sql.Tx, reports []model.FinancialReport) error {
			added = reports
			return nil
		})

	count, err := ImportFinancialReports(context.Background(), nil, path, financialReportRepository)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	require.Len(t, added, 2)
	require.Equal(t, "FPT", added[0].Symbol)
	require.Equal(t, int32(1), added[0].Quarter)
	require.Equal(t, int32(2024), added[0].Year)
	require.Equal(t, 0.28, added[0].Roe)
	require.Equal(t, 0.55, added[0].DebtToEquity)
	require.Equal(t, 21.4, added[0].Pe)
}

func TestImportFinancialReportsRejectsBadQuarter(t *testing.T) {
	ctrl := gomock.NewController(t)
	financialReportRepository := mock_repository.NewMockFinancialReportRepository(ctrl)

	path := writeTempCsv(t, "bad_quarter.csv",
		`tickersymbol,quarter,year,ROE,Debt/Equity,Revenue,Cash,Liabilities,P/E
FPT,5,2024,0.28,0.55,9000000,2500000,4800000,21.4
`)

	_, err := ImportFinancialReports(context.Background(), nil, path, financialReportRepository)
	require.ErrorContains(t, err, "quarter 5 out of range")
}

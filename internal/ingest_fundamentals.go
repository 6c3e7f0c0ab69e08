package internal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"stockbacktest/internal/db/models/postgres/public/model"
	"stockbacktest/internal/logger"
	"stockbacktest/internal/repository"
	"time"

	"github.com/gocarina/gocsv"
)

// fundHoldingRow mirrors the monthly fund statement export. Category is
// the exchange symbol the fund reports the position under.
type fundHoldingRow struct {
	Date        string  `csv:"Date"`
	FundCode    string  `csv:"Fund Code"`
	Symbol      string  `csv:"Category"`
	Quantity    int64   `csv:"Quantity"`
	MarketPrice float64 `csv:"Market Price"`
	Value       float64 `csv:"Value"`
}

type financialReportRow struct {
	Symbol       string  `csv:"tickersymbol"`
	Quarter      int32   `csv:"quarter"`
	Year         int32   `csv:"year"`
	Roe          float64 `csv:"ROE"`
	DebtToEquity float64 `csv:"Debt/Equity"`
	Revenue      float64 `csv:"Revenue"`
	Cash         float64 `csv:"Cash"`
	Liabilities  float64 `csv:"Liabilities"`
	Pe           float64 `csv:"P/E"`
}

// ImportFundHoldings loads a fund statement csv and upserts one row per
// (symbol, fund, month). Statement dates collapse to month and year since
// funds publish holdings monthly.
func ImportFundHoldings(
	ctx context.Context,
	tx *sql.Tx,
	path string,
	fundHoldingRepository repository.FundHoldingRepository,
) (int, error) {
	log := logger.FromContext(ctx)

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open fund holdings file: %w", err)
	}
	defer f.Close()

	rows := []fundHoldingRow{}
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return 0, fmt.Errorf("failed to parse fund holdings file %s: %w", path, err)
	}

	holdings := make([]model.FundHolding, 0, len(rows))
	for i, r := range rows {
		if r.Symbol == "" || r.FundCode == "" {
			return 0, fmt.Errorf("fund holdings row %d is missing symbol or fund code", i+1)
		}
		date, err := parseStatementDate(r.Date)
		if err != nil {
			return 0, fmt.Errorf("fund holdings row %d: %w", i+1, err)
		}
		holdings = append(holdings, model.FundHolding{
			Symbol:      r.Symbol,
			FundCode:    r.FundCode,
			Month:       int32(date.Month()),
			Year:        int32(date.Year()),
			Quantity:    r.Quantity,
			MarketPrice: r.MarketPrice,
			Value:       r.Value,
		})
	}

	err = fundHoldingRepository.Add(tx, holdings)
	if err != nil {
		return 0, err
	}

	log.Infof("imported %d fund holdings from %s", len(holdings), path)
	return len(holdings), nil
}

// ImportFinancialReports loads quarterly report rows and upserts one per
// (symbol, quarter, year).
func ImportFinancialReports(
	ctx context.Context,
	tx *sql.Tx,
	path string,
	financialReportRepository repository.FinancialReportRepository,
) (int, error) {
	log := logger.FromContext(ctx)

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open financial reports file: %w", err)
	}
	defer f.Close()

	rows := []financialReportRow{}
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return 0, fmt.Errorf("failed to parse financial reports file %s: %w", path, err)
	}

	reports := make([]model.FinancialReport, 0, len(rows))
	for i, r := range rows {
		if r.Symbol == "" {
			return 0, fmt.Errorf("financial report row %d is missing a symbol", i+1)
		}
		if r.Quarter < 1 || r.Quarter > 4 {
			return 0, fmt.Errorf("financial report row %d has quarter %d out of range", i+1, r.Quarter)
		}
		reports = append(reports, model.FinancialReport{
			Symbol:       r.Symbol,
			Quarter:      r.Quarter,
			Year:         r.Year,
			Roe:          r.Roe,
			DebtToEquity: r.DebtToEquity,
			Revenue:      r.Revenue,
			Cash:         r.Cash,
			Liabilities:  r.Liabilities,
			Pe:           r.Pe,
		})
	}

	err = financialReportRepository.Add(tx, reports)
	if err != nil {
		return 0, err
	}

	log.Infof("imported %d financial reports from %s", len(reports), path)
	return len(reports), nil
}

func parseStatementDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateTime, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse statement date %q: %w", s, err)
	}
	return t, nil
}

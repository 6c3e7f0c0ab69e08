package repository

import (
	"database/sql"
	"fmt"
	"stockbacktest/internal/db/models/postgres/public/model"
	. "stockbacktest/internal/db/models/postgres/public/table"
	"time"

	. "github.com/go-jet/jet/v2/postgres"
)

type FinancialReportRepository interface {
	Add(tx *sql.Tx, reports []model.FinancialReport) error
	List(quarter, year int) ([]model.FinancialReport, error)
}

type financialReportRepositoryHandler struct {
	Db *sql.DB
}

func NewFinancialReportRepository(db *sql.DB) FinancialReportRepository {
	return financialReportRepositoryHandler{Db: db}
}

func (h financialReportRepositoryHandler) Add(tx *sql.Tx, reports []model.FinancialReport) error {
	if len(reports) == 0 {
		return nil
	}

	for i := range reports {
		reports[i].CreatedAt = time.Now().UTC()
	}

	query := FinancialReport.
		INSERT(FinancialReport.MutableColumns).
		MODELS(reports).
		ON_CONFLICT(
			FinancialReport.Symbol, FinancialReport.Quarter, FinancialReport.Year,
		).DO_UPDATE(
		SET(
			FinancialReport.Roe.SET(FinancialReport.EXCLUDED.Roe),
			FinancialReport.DebtToEquity.SET(FinancialReport.EXCLUDED.DebtToEquity),
			FinancialReport.Revenue.SET(FinancialReport.EXCLUDED.Revenue),
			FinancialReport.Cash.SET(FinancialReport.EXCLUDED.Cash),
			FinancialReport.Liabilities.SET(FinancialReport.EXCLUDED.Liabilities),
			FinancialReport.Pe.SET(FinancialReport.EXCLUDED.Pe),
		),
	)

	_, err := query.Exec(tx)
	if err != nil {
		return fmt.Errorf("failed to add financial reports to db: %w", err)
	}

	return nil
}

func (h financialReportRepositoryHandler) List(quarter, year int) ([]model.FinancialReport, error) {
	query := FinancialReport.
		SELECT(FinancialReport.AllColumns).
		WHERE(
			AND(
				FinancialReport.Quarter.EQ(Int(int64(quarter))),
				FinancialReport.Year.EQ(Int(int64(year))),
			),
		).
		ORDER_BY(FinancialReport.Symbol.ASC())

	result := []model.FinancialReport{}
	err := query.Query(h.Db, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to list financial reports for Q%d %d: %w", quarter, year, err)
	}

	return result, nil
}

package repository

import (
	"database/sql"
	"fmt"
	"stockbacktest/internal/db/models/postgres/public/model"
	. "stockbacktest/internal/db/models/postgres/public/table"
	"time"

	. "github.com/go-jet/jet/v2/postgres"
)

type MonthlyScoreRepository interface {
	Add(tx *sql.Tx, scores []model.MonthlyScore) error
	List(month, year int) ([]model.MonthlyScore, error)
}

type monthlyScoreRepositoryHandler struct {
	Db *sql.DB
}

func NewMonthlyScoreRepository(db *sql.DB) MonthlyScoreRepository {
	return monthlyScoreRepositoryHandler{Db: db}
}

func (h monthlyScoreRepositoryHandler) Add(tx *sql.Tx, scores []model.MonthlyScore) error {
	if len(scores) == 0 {
		return nil
	}

	for i := range scores {
		scores[i].CreatedAt = time.Now().UTC()
	}

	query := MonthlyScore.
		INSERT(MonthlyScore.MutableColumns).
		MODELS(scores).
		ON_CONFLICT(
			MonthlyScore.Symbol, MonthlyScore.Month, MonthlyScore.Year,
		).DO_UPDATE(
		SET(
			MonthlyScore.FundNetBuying.SET(MonthlyScore.EXCLUDED.FundNetBuying),
			MonthlyScore.NumberFundHoldings.SET(MonthlyScore.EXCLUDED.NumberFundHoldings),
			MonthlyScore.NetFundChange.SET(MonthlyScore.EXCLUDED.NetFundChange),
			MonthlyScore.Roe.SET(MonthlyScore.EXCLUDED.Roe),
			MonthlyScore.RevenueGrowth.SET(MonthlyScore.EXCLUDED.RevenueGrowth),
			MonthlyScore.DebtToEquity.SET(MonthlyScore.EXCLUDED.DebtToEquity),
			MonthlyScore.CashRatio.SET(MonthlyScore.EXCLUDED.CashRatio),
			MonthlyScore.Pe.SET(MonthlyScore.EXCLUDED.Pe),
			MonthlyScore.InstitutionalScore.SET(MonthlyScore.EXCLUDED.InstitutionalScore),
			MonthlyScore.FinancialScore.SET(MonthlyScore.EXCLUDED.FinancialScore),
			MonthlyScore.TotalScore.SET(MonthlyScore.EXCLUDED.TotalScore),
		),
	)

	_, err := query.Exec(tx)
	if err != nil {
		return fmt.Errorf("failed to add monthly scores to db: %w", err)
	}

	return nil
}

func (h monthlyScoreRepositoryHandler) List(month, year int) ([]model.MonthlyScore, error) {
	query := MonthlyScore.
		SELECT(MonthlyScore.AllColumns).
		WHERE(
			AND(
				MonthlyScore.Month.EQ(Int(int64(month))),
				MonthlyScore.Year.EQ(Int(int64(year))),
			),
		).
		ORDER_BY(MonthlyScore.TotalScore.DESC(), MonthlyScore.Symbol.ASC())

	result := []model.MonthlyScore{}
	err := query.Query(h.Db, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly scores for %d/%d: %w", month, year, err)
	}

	return result, nil
}

package repository

import (
	"database/sql"
	"fmt"
	"stockbacktest/internal/db/models/postgres/public/model"
	. "stockbacktest/internal/db/models/postgres/public/table"
	"time"

	. "github.com/go-jet/jet/v2/postgres"
)

type FundHoldingRepository interface {
	Add(tx *sql.Tx, holdings []model.FundHolding) error
	List(month, year int) ([]model.FundHolding, error)
}

type fundHoldingRepositoryHandler struct {
	Db *sql.DB
}

func NewFundHoldingRepository(db *sql.DB) FundHoldingRepository {
	return fundHoldingRepositoryHandler{Db: db}
}

func (h fundHoldingRepositoryHandler) Add(tx *sql.Tx, holdings []model.FundHolding) error {
	if len(holdings) == 0 {
		return nil
	}

	for i := range holdings {
		holdings[i].CreatedAt = time.Now().UTC()
	}

	query := FundHolding.
		INSERT(FundHolding.MutableColumns).
		MODELS(holdings).
		ON_CONFLICT(
			FundHolding.Symbol, FundHolding.FundCode, FundHolding.Month, FundHolding.Year,
		).DO_UPDATE(
		SET(
			FundHolding.Quantity.SET(FundHolding.EXCLUDED.Quantity),
			FundHolding.MarketPrice.SET(FundHolding.EXCLUDED.MarketPrice),
			FundHolding.Value.SET(FundHolding.EXCLUDED.Value),
		),
	)

	_, err := query.Exec(tx)
	if err != nil {
		return fmt.Errorf("failed to add fund holdings to db: %w", err)
	}

	return nil
}

func (h fundHoldingRepositoryHandler) List(month, year int) ([]model.FundHolding, error) {
	query := FundHolding.
		SELECT(FundHolding.AllColumns).
		WHERE(
			AND(
				FundHolding.Month.EQ(Int(int64(month))),
				FundHolding.Year.EQ(Int(int64(year))),
			),
		).
		ORDER_BY(FundHolding.Symbol.ASC(), FundHolding.FundCode.ASC())

	result := []model.FundHolding{}
	err := query.Query(h.Db, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to list fund holdings for %d/%d: %w", month, year, err)
	}

	return result, nil
}

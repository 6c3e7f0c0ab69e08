package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyStatistics aggregates the sells booked on a single day.
type DailyStatistics struct {
	Date            time.Time
	NumberOfTrades  int
	NumberOfWinners int
	SumOfWinners    decimal.Decimal
	SumOfLosers     decimal.Decimal
}

// DailySnapshot is the end-of-day record the orchestrator emits for
// evaluation. Derived, never fed back into the run.
type DailySnapshot struct {
	Date            time.Time       `json:"date"`
	TotalAssets     decimal.Decimal `json:"totalAssets"`
	Cash            decimal.Decimal `json:"cash"`
	NumberOfTrades  int             `json:"numberOfTrades"`
	NumberOfWinners int             `json:"numberOfWinners"`
	SumOfWinners    decimal.Decimal `json:"sumOfWinners"`
	SumOfLosers     decimal.Decimal `json:"sumOfLosers"`
}

// Valuation is the mark-to-market view of a portfolio on one day.
// UnrealizedPL is computed net of the trading fee a liquidation would pay.
type Valuation struct {
	TotalValue   decimal.Decimal
	UnrealizedPL decimal.Decimal
	RealizedPL   decimal.Decimal
}

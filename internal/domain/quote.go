package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrNoTradingDays means the dataset holds no quotes inside the
	// requested window. Checked before a simulation starts.
	ErrNoTradingDays = errors.New("no trading days in range")

	// ErrPriceUnavailable means a held symbol has no price anywhere in
	// the dataset, which should be impossible for a symbol that was
	// successfully bought.
	ErrPriceUnavailable = errors.New("no price available")
)

// DailyQuote is one (symbol, trading day) row of the market dataset,
// immutable once loaded.
type DailyQuote struct {
	Symbol string
	Date   time.Time
	Price  decimal.Decimal
	Volume int64
}

// ExecutionQuote is what the simulation answers a buy or sell request
// with. Total is all-in: cost including the trading fee for buys, revenue
// net of the fee for sells.
type ExecutionQuote struct {
	Symbol string
	Price  decimal.Decimal
	Total  decimal.Decimal
	Date   time.Time
}

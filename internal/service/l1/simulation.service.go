package l1_service

import (
	"fmt"
	"stockbacktest/internal/domain"
	"time"

	"github.com/shopspring/decimal"
)

// MarketSimulation walks a window of the dataset's trading days one day at
// a time. It only quotes prices, it never mutates a portfolio, so a trade
// that fails to price leaves the ledger untouched.
//
// A simulation owns its cursor and latest-price cache. Never share one
// between concurrent runs; build one per run from the shared dataset.
type MarketSimulation struct {
	dataset    *MarketDataset
	days       []time.Time
	firstIdx   int
	cursor     int
	latest     map[string]decimal.Decimal
	tradingFee decimal.Decimal
}

// NewSimulation positions a cursor on the first trading day in
// [start, end], with that day's quotes already reflected in the
// latest-price cache.
func (d *MarketDataset) NewSimulation(start, end time.Time, tradingFee float64) (*MarketSimulation, error) {
	lo, hi := d.dayRange(start, end)
	if lo >= hi {
		return nil, fmt.Errorf("%w: %s to %s", domain.ErrNoTradingDays, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}

	sim := &MarketSimulation{
		dataset:    d,
		days:       d.tradingDays[lo:hi],
		firstIdx:   lo,
		latest:     map[string]decimal.Decimal{},
		tradingFee: decimal.NewFromFloat(tradingFee),
	}
	sim.refreshLatest()
	return sim, nil
}

func (s *MarketSimulation) Current() time.Time {
	return s.days[s.cursor]
}

func (s *MarketSimulation) IsLastDay() bool {
	return s.cursor == len(s.days)-1
}

// Step advances to the next trading day and folds that day's quotes into
// the latest-price cache. Symbols without a quote today keep their last
// known price, an illiquid day does not erase knowledge of a symbol.
// Returns false once no days remain.
func (s *MarketSimulation) Step() bool {
	if s.cursor+1 >= len(s.days) {
		return false
	}
	s.cursor++
	s.refreshLatest()
	return true
}

func (s *MarketSimulation) refreshLatest() {
	for symbol, q := range s.dataset.quotesByDay[s.firstIdx+s.cursor] {
		s.latest[symbol] = q.Price
	}
}

// QuoteBuy prices a buy of quantity shares at the latest cached price,
// including the trading fee. ok is false when no price is known, callers
// treat that as "trade did not happen", not as an error.
func (s *MarketSimulation) QuoteBuy(symbol string, quantity int64) (domain.ExecutionQuote, bool) {
	price, ok := s.latest[symbol]
	if !ok || price.IsZero() {
		return domain.ExecutionQuote{}, false
	}

	qty := decimal.NewFromInt(quantity)
	total := price.Mul(qty).Mul(decimal.NewFromInt(1).Add(s.tradingFee))
	return domain.ExecutionQuote{
		Symbol: symbol,
		Price:  price,
		Total:  total,
		Date:   s.Current(),
	}, true
}

// QuoteSell prices a sell of quantity shares at the latest cached price,
// net of the trading fee.
func (s *MarketSimulation) QuoteSell(symbol string, quantity int64) (domain.ExecutionQuote, bool) {
	price, ok := s.latest[symbol]
	if !ok || price.IsZero() {
		return domain.ExecutionQuote{}, false
	}

	qty := decimal.NewFromInt(quantity)
	total := price.Mul(qty).Mul(decimal.NewFromInt(1).Sub(s.tradingFee))
	return domain.ExecutionQuote{
		Symbol: symbol,
		Price:  price,
		Total:  total,
		Date:   s.Current(),
	}, true
}

// LastAvailablePrice resolves the most recent price of symbol at or before
// the current day, falling back to a scan of the full dataset when the
// symbol has not traded since the simulation started. Returns zero if the
// symbol has never traded by the current day.
func (s *MarketSimulation) LastAvailablePrice(symbol string) decimal.Decimal {
	if price, ok := s.latest[symbol]; ok {
		return price
	}
	if price, ok := s.dataset.lastPriceAt(symbol, s.firstIdx+s.cursor); ok {
		s.latest[symbol] = price
		return price
	}
	return decimal.Decimal{}
}

// Valuation marks a portfolio to market at the latest known prices.
// Unrealized P&L is net of the fee a liquidation would pay. A held symbol
// without any price is a data integrity violation and fails the valuation.
func (s *MarketSimulation) Valuation(portfolio *domain.Portfolio) (*domain.Valuation, error) {
	totalValue := portfolio.Cash
	unrealized := decimal.Zero
	feeAdj := decimal.NewFromInt(1).Sub(s.tradingFee)

	for _, symbol := range portfolio.HeldSymbols() {
		position := portfolio.Positions[symbol]
		price := s.LastAvailablePrice(symbol)
		if price.IsZero() {
			return nil, fmt.Errorf("%w for held symbol %s on %s", domain.ErrPriceUnavailable, symbol, s.Current().Format(time.DateOnly))
		}
		totalValue = totalValue.Add(price.Mul(position.Quantity))
		unrealized = unrealized.Add(price.Mul(feeAdj).Sub(position.AverageCost).Mul(position.Quantity))
	}

	return &domain.Valuation{
		TotalValue:   totalValue,
		UnrealizedPL: unrealized,
		RealizedPL:   portfolio.RealizedPL,
	}, nil
}

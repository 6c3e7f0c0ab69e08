package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Ledger errors signal caller bookkeeping bugs. Missing-price conditions
// are the simulation's to report, not the ledger's.
var (
	ErrAssetNotHeld         = errors.New("asset not held in portfolio")
	ErrInsufficientHoldings = errors.New("insufficient holdings")
)

// Position is one held asset. AverageCost is the quantity-weighted all-in
// acquisition price per share, fees included. Buys recompute it, partial
// sells leave it untouched.
type Position struct {
	Symbol      string
	Quantity    decimal.Decimal
	AverageCost decimal.Decimal
}

func (p Position) DeepCopy() *Position {
	return &Position{
		Symbol:      p.Symbol,
		Quantity:    p.Quantity,
		AverageCost: p.AverageCost,
	}
}

type TradeAction string

const (
	TradeActionBuy  TradeAction = "BUY"
	TradeActionSell TradeAction = "SELL"
)

// Transaction is one executed order, append-only. Amount is the cash that
// moved: total cost for buys, total revenue for sells. RealizedPL is only
// set on sells.
type Transaction struct {
	Action     TradeAction     `json:"action"`
	Symbol     string          `json:"symbol"`
	Quantity   decimal.Decimal `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Amount     decimal.Decimal `json:"amount"`
	RealizedPL decimal.Decimal `json:"realizedPl"`
	Date       time.Time       `json:"date"`
}

// Portfolio is the cash and position ledger for a single run. It has no
// idea about market timing; the simulation quotes prices and the
// orchestrator decides when to trade. Positions must only be mutated
// through AddAsset and RemoveAsset so a drained position is always removed
// from the map.
type Portfolio struct {
	Name           string
	Cash           decimal.Decimal
	InitialBalance decimal.Decimal
	RealizedPL     decimal.Decimal
	Positions      map[string]*Position
	Transactions   []Transaction

	daily DailyStatistics
}

func NewPortfolio(name string, initialBalance decimal.Decimal) *Portfolio {
	return &Portfolio{
		Name:           name,
		Cash:           initialBalance,
		InitialBalance: initialBalance,
		Positions:      map[string]*Position{},
	}
}

// AddAsset books a buy fill: the position's average cost becomes the
// quantity-weighted mean of the carried basis and this fill's all-in cost,
// cash drops by totalCost, and a buy transaction is appended.
func (p *Portfolio) AddAsset(symbol string, quantity, totalCost, price decimal.Decimal, date time.Time) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("cannot add %s with quantity %s", symbol, quantity)
	}

	if position, ok := p.Positions[symbol]; ok {
		newQuantity := position.Quantity.Add(quantity)
		carried := position.Quantity.Mul(position.AverageCost)
		position.AverageCost = carried.Add(totalCost).Div(newQuantity)
		position.Quantity = newQuantity
	} else {
		p.Positions[symbol] = &Position{
			Symbol:      symbol,
			Quantity:    quantity,
			AverageCost: totalCost.Div(quantity),
		}
	}

	p.Cash = p.Cash.Sub(totalCost)
	p.Transactions = append(p.Transactions, Transaction{
		Action:   TradeActionBuy,
		Symbol:   symbol,
		Quantity: quantity,
		Price:    price,
		Amount:   totalCost,
		Date:     date,
	})

	return nil
}

// RemoveAsset books a sell fill and returns the realized P&L
// (totalRevenue minus the sold quantity at average cost). It fails without
// touching any state when the symbol is not held or the position is
// smaller than quantity.
func (p *Portfolio) RemoveAsset(symbol string, quantity, totalRevenue, price decimal.Decimal, date time.Time) (decimal.Decimal, error) {
	position, ok := p.Positions[symbol]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrAssetNotHeld, symbol)
	}
	if quantity.GreaterThan(position.Quantity) {
		return decimal.Zero, fmt.Errorf("%w: %s holds %s, requested %s",
			ErrInsufficientHoldings, symbol, position.Quantity, quantity)
	}

	realized := totalRevenue.Sub(quantity.Mul(position.AverageCost))
	p.RealizedPL = p.RealizedPL.Add(realized)

	position.Quantity = position.Quantity.Sub(quantity)
	if position.Quantity.LessThanOrEqual(decimal.Zero) {
		delete(p.Positions, symbol)
	}

	p.Cash = p.Cash.Add(totalRevenue)
	p.Transactions = append(p.Transactions, Transaction{
		Action:     TradeActionSell,
		Symbol:     symbol,
		Quantity:   quantity,
		Price:      price,
		Amount:     totalRevenue,
		RealizedPL: realized,
		Date:       date,
	})

	if !sameDay(p.daily.Date, date) {
		p.daily = DailyStatistics{Date: date}
	}
	p.daily.NumberOfTrades++
	if realized.GreaterThan(decimal.Zero) {
		p.daily.NumberOfWinners++
		p.daily.SumOfWinners = p.daily.SumOfWinners.Add(realized)
	} else {
		p.daily.SumOfLosers = p.daily.SumOfLosers.Add(realized.Abs())
	}

	return realized, nil
}

// PaidValue is what the ledger paid for quantity shares of symbol at the
// current average cost.
func (p *Portfolio) PaidValue(symbol string, quantity decimal.Decimal) (decimal.Decimal, error) {
	position, ok := p.Positions[symbol]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrAssetNotHeld, symbol)
	}
	return quantity.Mul(position.AverageCost), nil
}

// DailyStatistics returns the sell aggregates for the given day. The
// counters belong to the most recent day a sell was booked on; asking for
// any other day yields zeros without disturbing them.
func (p *Portfolio) DailyStatistics(date time.Time) DailyStatistics {
	if !sameDay(p.daily.Date, date) {
		return DailyStatistics{Date: date}
	}
	return p.daily
}

func (p Portfolio) HeldSymbols() []string {
	symbols := make([]string, 0, len(p.Positions))
	for symbol := range p.Positions {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

func (p Portfolio) DeepCopy() *Portfolio {
	out := &Portfolio{
		Name:           p.Name,
		Cash:           p.Cash,
		InitialBalance: p.InitialBalance,
		RealizedPL:     p.RealizedPL,
		Positions:      map[string]*Position{},
		Transactions:   append([]Transaction{}, p.Transactions...),
		daily:          p.daily,
	}
	for symbol, position := range p.Positions {
		out.Positions[symbol] = position.DeepCopy()
	}
	return out
}

func sameDay(t1, t2 time.Time) bool {
	return t1.Year() == t2.Year() && t1.YearDay() == t2.YearDay()
}

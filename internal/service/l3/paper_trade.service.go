package l3_service

import (
	"fmt"
	"sort"
	"stockbacktest/internal/domain"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/shopspring/decimal"
)

// investablePortion mirrors the simulated buy phase: at most 90% of cash
// is deployed so fees never overdraw the account.
var investablePortion = decimal.NewFromFloat(0.9)

type ComputeTargetPositionsInput struct {
	Ranking []domain.RankedStock
	Prices  map[string]decimal.Decimal
	Cash    decimal.Decimal
	Params  domain.BacktestParams
}

// ComputeTargetPositions sizes live positions with the same rule the
// simulated buy phase uses: weight the top ranked stocks, allocate out of
// the investable share of cash, floor to whole shares, cap at MaxVolume.
// Unlike the simulation, a missing live price is an error rather than a
// skip; real orders should not be sized around a blind spot.
func ComputeTargetPositions(in ComputeTargetPositionsInput) (map[string]decimal.Decimal, error) {
	if in.Params.NumberOfStocks <= 0 {
		return nil, fmt.Errorf("number of stocks must be positive, got %d", in.Params.NumberOfStocks)
	}
	if !in.Cash.IsPositive() {
		return nil, fmt.Errorf("cannot size positions with cash %s", in.Cash.String())
	}

	ranked := in.Ranking
	if len(ranked) > in.Params.NumberOfStocks {
		ranked = ranked[:in.Params.NumberOfStocks]
	}

	weights := domain.StockWeights(ranked, in.Params.WeightScheme)
	allocatable := in.Cash.Mul(investablePortion)

	target := map[string]decimal.Decimal{}
	for i, stock := range ranked {
		price, ok := in.Prices[stock.Symbol]
		if !ok || price.IsZero() {
			return nil, fmt.Errorf("no live price for %s", stock.Symbol)
		}

		funds := allocatable.Mul(decimal.NewFromFloat(weights[i]))
		quantity := funds.Div(price).IntPart()
		if in.Params.MaxVolume > 0 && quantity > in.Params.MaxVolume {
			quantity = in.Params.MaxVolume
		}
		if quantity <= 0 {
			continue
		}
		target[stock.Symbol] = decimal.NewFromInt(quantity)
	}

	return target, nil
}

// ProposeTrades diffs current broker holdings against target quantities.
// Sells are listed before buys so their proceeds fund the buys, and each
// group is sorted by symbol so runs are reproducible.
func ProposeTrades(
	current []alpaca.Position,
	target map[string]decimal.Decimal,
	prices map[string]decimal.Decimal,
) []domain.ProposedTrade {
	held := map[string]decimal.Decimal{}
	for _, position := range current {
		held[position.Symbol] = position.Qty
	}

	sells := []domain.ProposedTrade{}
	buys := []domain.ProposedTrade{}

	for symbol, quantity := range held {
		diff := target[symbol].Sub(quantity)
		if diff.IsNegative() {
			sells = append(sells, domain.ProposedTrade{
				Symbol:        symbol,
				Quantity:      diff,
				ExpectedPrice: prices[symbol],
			})
		}
	}

	for symbol, targetQuantity := range target {
		diff := targetQuantity.Sub(held[symbol])
		if diff.IsPositive() {
			buys = append(buys, domain.ProposedTrade{
				Symbol:        symbol,
				Quantity:      diff,
				ExpectedPrice: prices[symbol],
			})
		}
	}

	sort.Slice(sells, func(i, j int) bool { return sells[i].Symbol < sells[j].Symbol })
	sort.Slice(buys, func(i, j int) bool { return buys[i].Symbol < buys[j].Symbol })

	return append(sells, buys...)
}

package app

import (
	"context"
	"fmt"
	"stockbacktest/internal/domain"
	"stockbacktest/internal/logger"
	"stockbacktest/internal/repository"
	l1_service "stockbacktest/internal/service/l1"
	l2_service "stockbacktest/internal/service/l2"
	l3_service "stockbacktest/internal/service/l3"
)

type PaperRebalanceHandler struct {
	AlpacaRepository repository.AlpacaRepository
	RankingService   l2_service.RankingService
	TradeService     l1_service.TradeService
}

type PaperRebalanceInput struct {
	Month             int
	Year              int
	Symbols           []string
	ScoringExpression string
	Params            domain.BacktestParams
	DryRun            bool
}

// Rebalance moves the paper-trading account onto the given month's
// ranking: stale open orders are cancelled, targets are sized from the
// account's cash with the same rule the simulated buy phase uses, and the
// diff against current holdings is submitted as market orders, sells
// first. Order execution is non-blocking; fills land whenever the broker
// gets to them.
func (h PaperRebalanceHandler) Rebalance(ctx context.Context, in PaperRebalanceInput) ([]domain.ProposedTrade, error) {
	log := logger.FromContext(ctx)

	open, err := h.AlpacaRepository.IsMarketOpen()
	if err != nil {
		return nil, fmt.Errorf("failed to check market clock: %w", err)
	}
	if !open {
		return nil, fmt.Errorf("market is closed")
	}

	if err := h.AlpacaRepository.CancelOpenOrders(ctx); err != nil {
		return nil, fmt.Errorf("failed to cancel open orders: %w", err)
	}

	account, err := h.AlpacaRepository.GetAccount()
	if err != nil {
		return nil, err
	}
	positions, err := h.AlpacaRepository.GetPositions()
	if err != nil {
		return nil, err
	}

	ranking, err := h.RankingService.GetRanking(ctx, in.Month, in.Year, in.Symbols, in.ScoringExpression)
	if err != nil {
		return nil, fmt.Errorf("failed to get ranking for %d/%d: %w", in.Month, in.Year, err)
	}
	if len(ranking) > in.Params.NumberOfStocks {
		ranking = ranking[:in.Params.NumberOfStocks]
	}

	symbolSet := map[string]bool{}
	for _, stock := range ranking {
		symbolSet[stock.Symbol] = true
	}
	for _, position := range positions {
		symbolSet[position.Symbol] = true
	}
	symbols := make([]string, 0, len(symbolSet))
	for symbol := range symbolSet {
		symbols = append(symbols, symbol)
	}

	prices, err := h.AlpacaRepository.GetLatestPrices(ctx, symbols)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest prices: %w", err)
	}

	target, err := l3_service.ComputeTargetPositions(l3_service.ComputeTargetPositionsInput{
		Ranking: ranking,
		Prices:  prices,
		Cash:    account.Cash,
		Params:  in.Params,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute target positions: %w", err)
	}

	trades := l3_service.ProposeTrades(positions, target, prices)
	log.Infof("rebalance for %d/%d proposes %d trade(s) across %d target position(s)",
		in.Month, in.Year, len(trades), len(target))

	if in.DryRun {
		return trades, nil
	}

	for _, trade := range trades {
		if trade.Quantity.IsPositive() {
			_, err = h.TradeService.Buy(ctx, l1_service.BuyInput{
				Symbol:   trade.Symbol,
				Quantity: trade.Quantity,
			})
		} else {
			_, err = h.TradeService.Sell(ctx, l1_service.SellInput{
				Symbol:   trade.Symbol,
				Quantity: trade.Quantity.Abs(),
			})
		}
		if err != nil {
			return nil, err
		}
	}

	return trades, nil
}

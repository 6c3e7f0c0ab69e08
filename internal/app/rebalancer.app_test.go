package app

import (
	"context"
	"fmt"
	"stockbacktest/internal/domain"
	mock_repository "stockbacktest/internal/repository/mocks"
	l1_service "stockbacktest/internal/service/l1"
	mock_l1_service "stockbacktest/internal/service/l1/mocks"
	mock_l2_service "stockbacktest/internal/service/l2/mocks"
	"testing"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRebalanceMocks(t *testing.T) (*mock_repository.MockAlpacaRepository, *mock_l2_service.MockRankingService, *mock_l1_service.MockTradeService, PaperRebalanceHandler) {
	t.Helper()
	ctrl := gomock.NewController(t)
	alpacaRepository := mock_repository.NewMockAlpacaRepository(ctrl)
	rankingService := mock_l2_service.NewMockRankingService(ctrl)
	tradeService := mock_l1_service.NewMockTradeService(ctrl)
	handler := PaperRebalanceHandler{
		AlpacaRepository: alpacaRepository,
		RankingService:   rankingService,
		TradeService:     tradeService,
	}
	return alpacaRepository, rankingService, tradeService, handler
}

func TestPaperRebalanceDryRun(t *testing.T) {
	alpacaRepository, rankingService, _, handler := newRebalanceMocks(t)

	alpacaRepository.EXPECT().IsMarketOpen().Return(true, nil)
	alpacaRepository.EXPECT().CancelOpenOrders(gomock.Any()).Return(nil)
	alpacaRepository.EXPECT().GetAccount().Return(&alpaca.Account{
		Cash: decimal.NewFromInt(10000),
	}, nil)
	alpacaRepository.EXPECT().GetPositions().Return([]alpaca.Position{
		{Symbol: "CCC", Qty: decimal.NewFromInt(8)},
	}, nil)

	rankingService.EXPECT().
		GetRanking(gomock.Any(), 5, 2024, []string{"AAA", "BBB", "CCC"}, "roe").
		Return([]domain.RankedStock{
			{Symbol: "AAA", Score: 3},
			{Symbol: "BBB", Score: 2},
			{Symbol: "CCC", Score: 1},
		}, nil)

	var pricedSymbols []string
	alpacaRepository.EXPECT().
		GetLatestPrices(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, symbols []string) (map[string]decimal.Decimal, error) {
			pricedSymbols = symbols
			return map[string]decimal.Decimal{
				"AAA": decimal.NewFromInt(100),
				"BBB": decimal.NewFromInt(90),
				"CCC": decimal.NewFromInt(80),
			}, nil
		})

	trades, err := handler.Rebalance(context.Background(), PaperRebalanceInput{
		Month:             5,
		Year:              2024,
		Symbols:           []string{"AAA", "BBB", "CCC"},
		ScoringExpression: "roe",
		Params: domain.BacktestParams{
			NumberOfStocks: 2,
			WeightScheme:   domain.WeightSchemeEqual,
		},
		DryRun: true,
	})
	require.NoError(t, err)

	// only the two selected stocks plus the held one are quoted
	require.ElementsMatch(t, []string{"AAA", "BBB", "CCC"}, pricedSymbols)

	// 90% of 10000 split evenly is 4500 per stock: 45 AAA, 50 BBB. CCC
	// drops out of the target and is sold first.
	require.Equal(t, []domain.ProposedTrade{
		{Symbol: "CCC", Quantity: decimal.NewFromInt(-8), ExpectedPrice: decimal.NewFromInt(80)},
		{Symbol: "AAA", Quantity: decimal.NewFromInt(45), ExpectedPrice: decimal.NewFromInt(100)},
		{Symbol: "BBB", Quantity: decimal.NewFromInt(50), ExpectedPrice: decimal.NewFromInt(90)},
	}, trades)
}

func TestPaperRebalanceSubmitsOrders(t *testing.T) {
	alpacaRepository, rankingService, tradeService, handler := newRebalanceMocks(t)

	alpacaRepository.EXPECT().IsMarketOpen().Return(true, nil)
	alpacaRepository.EXPECT().CancelOpenOrders(gomock.Any()).Return(nil)
	alpacaRepository.EXPECT().GetAccount().Return(&alpaca.Account{
		Cash: decimal.NewFromInt(10000),
	}, nil)
	alpacaRepository.EXPECT().GetPositions().Return([]alpaca.Position{
		{Symbol: "CCC", Qty: decimal.NewFromInt(8)},
	}, nil)
	rankingService.EXPECT().
		GetRanking(gomock.Any(), 5, 2024, gomock.Any(), "roe").
		Return([]domain.RankedStock{
			{Symbol: "AAA", Score: 3},
			{Symbol: "BBB", Score: 2},
		}, nil)
	alpacaRepository.EXPECT().
		GetLatestPrices(gomock.Any(), gomock.Any()).
		Return(map[string]decimal.Decimal{
			"AAA": decimal.NewFromInt(100),
			"BBB": decimal.NewFromInt(90),
			"CCC": decimal.NewFromInt(80),
		}, nil)

	sellOrder := tradeService.EXPECT().
		Sell(gomock.Any(), l1_service.SellInput{
			Symbol:   "CCC",
			Quantity: decimal.NewFromInt(8),
		}).
		Return(&alpaca.Order{ID: "o1"}, nil)
	tradeService.EXPECT().
		Buy(gomock.Any(), l1_service.BuyInput{
			Symbol:   "AAA",
			Quantity: decimal.NewFromInt(45),
		}).
		After(sellOrder).
		Return(&alpaca.Order{ID: "o2"}, nil)
	tradeService.EXPECT().
		Buy(gomock.Any(), l1_service.BuyInput{
			Symbol:   "BBB",
			Quantity: decimal.NewFromInt(50),
		}).
		After(sellOrder).
		Return(&alpaca.Order{ID: "o3"}, nil)

	trades, err := handler.Rebalance(context.Background(), PaperRebalanceInput{
		Month:             5,
		Year:              2024,
		Symbols:           []string{"AAA", "BBB", "CCC"},
		ScoringExpression: "roe",
		Params: domain.BacktestParams{
			NumberOfStocks: 2,
			WeightScheme:   domain.WeightSchemeEqual,
		},
	})
	require.NoError(t, err)
	require.Len(t, trades, 3)
}

func TestPaperRebalanceMarketClosed(t *testing.T) {
	alpacaRepository, _, _, handler := newRebalanceMocks(t)

	alpacaRepository.EXPECT().IsMarketOpen().Return(false, nil)

	_, err := handler.Rebalance(context.Background(), PaperRebalanceInput{
		Params: domain.BacktestParams{NumberOfStocks: 1},
	})
	require.ErrorContains(t, err, "market is closed")
}

func TestPaperRebalanceOrderErrorIsFatal(t *testing.T) {
	alpacaRepository, rankingService, tradeService, handler := newRebalanceMocks(t)

	alpacaRepository.EXPECT().IsMarketOpen().Return(true, nil)
	alpacaRepository.EXPECT().CancelOpenOrders(gomock.Any()).Return(nil)
	alpacaRepository.EXPECT().GetAccount().Return(&alpaca.Account{
		Cash: decimal.NewFromInt(10000),
	}, nil)
	alpacaRepository.EXPECT().GetPositions().Return(nil, nil)
	rankingService.EXPECT().
		GetRanking(gomock.Any(), 5, 2024, gomock.Any(), "roe").
		Return([]domain.RankedStock{{Symbol: "AAA", Score: 1}}, nil)
	alpacaRepository.EXPECT().
		GetLatestPrices(gomock.Any(), gomock.Any()).
		Return(map[string]decimal.Decimal{"AAA": decimal.NewFromInt(100)}, nil)

	tradeService.EXPECT().
		Buy(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("order rejected"))

	_, err := handler.Rebalance(context.Background(), PaperRebalanceInput{
		Month:             5,
		Year:              2024,
		Symbols:           []string{"AAA"},
		ScoringExpression: "roe",
		Params: domain.BacktestParams{
			NumberOfStocks: 1,
			WeightScheme:   domain.WeightSchemeEqual,
		},
	})
	require.ErrorContains(t, err, "order rejected")
}

package l1_service

import (
	"context"
	"fmt"
	"stockbacktest/internal/repository"
	mock_repository "stockbacktest/internal/repository/mocks"
	"testing"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestTradeServiceBuy(t *testing.T) {
	ctrl := gomock.NewController(t)
	alpacaRepository := mock_repository.NewMockAlpacaRepository(ctrl)

	var captured repository.AlpacaPlaceOrderRequest
	alpacaRepository.EXPECT().
		PlaceOrder(gomock.Any()).
		DoAndReturn(func(req repository.AlpacaPlaceOrderRequest) (*alpaca.Order, error) {
			captured = req
			return &alpaca.Order{ID: "order-1"}, nil
		})

	service := NewTradeService(alpacaRepository)
	order, err := service.Buy(context.Background(), BuyInput{
		Symbol:   "AAA",
		Quantity: decimal.NewFromInt(5),
	})
	require.NoError(t, err)
	require.Equal(t, "order-1", order.ID)

	require.Equal(t, "AAA", captured.Symbol)
	require.Equal(t, alpaca.Buy, captured.Side)
	require.Equal(t, "5", captured.Quantity.String())
	require.NotEqual(t, uuid.Nil, captured.OrderID)
}

func TestTradeServiceSell(t *testing.T) {
	ctrl := gomock.NewController(t)
	alpacaRepository := mock_repository.NewMockAlpacaRepository(ctrl)

	var captured repository.AlpacaPlaceOrderRequest
	alpacaRepository.EXPECT().
		PlaceOrder(gomock.Any()).
		DoAndReturn(func(req repository.AlpacaPlaceOrderRequest) (*alpaca.Order, error) {
			captured = req
			return &alpaca.Order{ID: "order-2"}, nil
		})

	service := NewTradeService(alpacaRepository)
	order, err := service.Sell(context.Background(), SellInput{
		Symbol:   "BBB",
		Quantity: decimal.NewFromInt(3),
	})
	require.NoError(t, err)
	require.Equal(t, "order-2", order.ID)

	require.Equal(t, "BBB", captured.Symbol)
	require.Equal(t, alpaca.Sell, captured.Side)
	require.Equal(t, "3", captured.Quantity.String())
}

func TestTradeServiceRejectsInvalidQuantity(t *testing.T) {
	ctrl := gomock.NewController(t)
	alpacaRepository := mock_repository.NewMockAlpacaRepository(ctrl)
	service := NewTradeService(alpacaRepository)

	// no PlaceOrder expectation; validation must short-circuit

	_, err := service.Buy(context.Background(), BuyInput{
		Symbol:   "AAA",
		Quantity: decimal.Zero,
	})
	require.ErrorContains(t, err, "quantity must be positive")

	_, err = service.Sell(context.Background(), SellInput{
		Symbol:   "AAA",
		Quantity: decimal.NewFromInt(-2),
	})
	require.ErrorContains(t, err, "quantity must be positive")

	_, err = service.Buy(context.Background(), BuyInput{
		Symbol:   "AAA",
		Quantity: decimal.NewFromFloat(1.5),
	})
	require.ErrorContains(t, err, "whole number of shares")
}

func TestTradeServicePropagatesBrokerError(t *testing.T) {
	ctrl := gomock.NewController(t)
	alpacaRepository := mock_repository.NewMockAlpacaRepository(ctrl)

	alpacaRepository.EXPECT().
		PlaceOrder(gomock.Any()).
		Return(nil, fmt.Errorf("insufficient buying power"))

	service := NewTradeService(alpacaRepository)
	_, err := service.Buy(context.Background(), BuyInput{
		Symbol:   "AAA",
		Quantity: decimal.NewFromInt(5),
	})
	require.ErrorContains(t, err, "insufficient buying power")
}

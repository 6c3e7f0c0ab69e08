package l1_service

import (
	"context"
	"fmt"
	"stockbacktest/internal/logger"
	"stockbacktest/internal/repository"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TradeService submits whole-share market orders to the paper-trading
// account. Orders are non-blocking: the returned order is pending until
// the broker fills it.
type TradeService interface {
	Buy(ctx context.Context, input BuyInput) (*alpaca.Order, error)
	Sell(ctx context.Context, input SellInput) (*alpaca.Order, error)
}

type tradeServiceHandler struct {
	AlpacaRepository repository.AlpacaRepository
}

func NewTradeService(alpacaRepository repository.AlpacaRepository) TradeService {
	return tradeServiceHandler{
		AlpacaRepository: alpacaRepository,
	}
}

type BuyInput struct {
	Symbol   string
	Quantity decimal.Decimal
}

type SellInput struct {
	Symbol   string
	Quantity decimal.Decimal
}

func validateOrderQuantity(quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return fmt.Errorf("quantity must be positive, got %s", quantity.String())
	}
	if !quantity.IsInteger() {
		return fmt.Errorf("quantity must be a whole number of shares, got %s", quantity.String())
	}
	return nil
}

func (h tradeServiceHandler) Buy(ctx context.Context, input BuyInput) (*alpaca.Order, error) {
	log := logger.FromContext(ctx)

	if err := validateOrderQuantity(input.Quantity); err != nil {
		return nil, fmt.Errorf("failed to submit buy order for %s: %w", input.Symbol, err)
	}

	order, err := h.AlpacaRepository.PlaceOrder(repository.AlpacaPlaceOrderRequest{
		OrderID:  uuid.New(),
		Quantity: input.Quantity,
		Symbol:   input.Symbol,
		Side:     alpaca.Buy,
	})
	if err != nil {
		return nil, err
	}

	log.Infof("submitted buy order %s: %s %s", order.ID, input.Quantity.String(), input.Symbol)
	return order, nil
}

func (h tradeServiceHandler) Sell(ctx context.Context, input SellInput) (*alpaca.Order, error) {
	log := logger.FromContext(ctx)

	if err := validateOrderQuantity(input.Quantity); err != nil {
		return nil, fmt.Errorf("failed to submit sell order for %s: %w", input.Symbol, err)
	}

	order, err := h.AlpacaRepository.PlaceOrder(repository.AlpacaPlaceOrderRequest{
		OrderID:  uuid.New(),
		Quantity: input.Quantity,
		Symbol:   input.Symbol,
		Side:     alpaca.Sell,
	})
	if err != nil {
		return nil, err
	}

	log.Infof("submitted sell order %s: %s %s", order.ID, input.Quantity.String(), input.Symbol)
	return order, nil
}

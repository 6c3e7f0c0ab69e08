package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrUnknownWeightScheme = errors.New("unknown weight scheme")

// WeightScheme decides how ranking scores translate into target cash
// weights during the buy phase of a rebalance.
type WeightScheme string

const (
	WeightSchemeEqual   WeightScheme = "equal"
	WeightSchemeLinear  WeightScheme = "linear"
	WeightSchemeSoftmax WeightScheme = "softmax"
)

func ParseWeightScheme(s string) (WeightScheme, error) {
	switch scheme := WeightScheme(strings.ToLower(s)); scheme {
	case WeightSchemeEqual, WeightSchemeLinear, WeightSchemeSoftmax:
		return scheme, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownWeightScheme, s)
	}
}

// BacktestParams is the complete knob set for one run. The same struct
// feeds single runs, the optimizer's trials and the paper rebalancer, so
// heuristic variants stay out of the orchestrator.
type BacktestParams struct {
	InitialBalance   decimal.Decimal
	ReleaseDay       int
	NumberOfStocks   int
	TrailingStopLoss float64
	TakeProfit       float64
	WeightScheme     WeightScheme
	MaxVolume        int64
	TradingFee       float64
}

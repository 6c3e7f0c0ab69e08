package domain

import "time"

// Trial is one sampled parameter combination and the objective value it
// produced over a backtest run. ScoringExpression carries the sampled
// scoring weights, so rerunning the trial reproduces its ranking.
type Trial struct {
	Number            int          `json:"number"`
	TrailingStopLoss  float64      `json:"trailingStopLoss"`
	TakeProfit        float64      `json:"takeProfit"`
	WeightScheme      WeightScheme `json:"weightScheme"`
	ScoringExpression string       `json:"scoringExpression"`
	Value             float64      `json:"value"`
	Roi               float64      `json:"roi"`
	Sharpe            float64      `json:"sharpe"`
	MaxDrawdown       float64      `json:"maxDrawdown"`
	CreatedAt         time.Time    `json:"createdAt"`
}

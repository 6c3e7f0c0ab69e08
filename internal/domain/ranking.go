package domain

import "math"

// RankedStock is one row of a monthly ranking, best score first.
type RankedStock struct {
	Symbol string  `json:"symbol"`
	Score  float64 `json:"score"`
}

// StockWeights converts ranking scores into cash fractions summing to one
// across the selected stocks. Linear falls back to equal when the scores
// cannot be normalized.
func StockWeights(ranked []RankedStock, scheme WeightScheme) []float64 {
	weights := make([]float64, len(ranked))
	if len(ranked) == 0 {
		return weights
	}

	switch scheme {
	case WeightSchemeLinear:
		sum := 0.0
		for _, stock := range ranked {
			sum += stock.Score
		}
		if sum > 0 {
			for i, stock := range ranked {
				weights[i] = stock.Score / sum
			}
			return weights
		}
	case WeightSchemeSoftmax:
		sum := 0.0
		exps := make([]float64, len(ranked))
		for i, stock := range ranked {
			exps[i] = math.Exp(stock.Score)
			sum += exps[i]
		}
		if sum > 0 && !math.IsInf(sum, 1) {
			for i := range ranked {
				weights[i] = exps[i] / sum
			}
			return weights
		}
	}

	for i := range weights {
		weights[i] = 1.0 / float64(len(ranked))
	}
	return weights
}

// ScoreWeights blends the normalized ranking metrics into composite
// scores. Metric weights within each composite should sum to 1, as should
// Institutional + Financial.
type ScoreWeights struct {
	FundNetBuying      float64
	NumberFundHoldings float64
	NetFundChange      float64
	Roe                float64
	RevenueGrowth      float64
	DebtToEquity       float64
	CashRatio          float64
	PeScore            float64
	Institutional      float64
	Financial          float64
}

func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		FundNetBuying:      0.45,
		NumberFundHoldings: 0.35,
		NetFundChange:      0.20,
		Roe:                0.30,
		RevenueGrowth:      0.15,
		DebtToEquity:       0.10,
		CashRatio:          0.10,
		PeScore:            0.35,
		Institutional:      0.60,
		Financial:          0.40,
	}
}

// MonthlyScore carries the raw and blended ranking metrics for one symbol
// in one calendar month. Raw metrics are as reported; the three score
// fields are filled in after normalization.
type MonthlyScore struct {
	Symbol             string
	Month              int
	Year               int
	FundNetBuying      float64
	NumberFundHoldings float64
	NetFundChange      float64
	Roe                float64
	RevenueGrowth      float64
	DebtToEquity       float64
	CashRatio          float64
	Pe                 float64
	InstitutionalScore float64
	FinancialScore     float64
	TotalScore         float64
}

package calculator

import (
	"fmt"
	"math"
	"sort"
	"stockbacktest/internal/domain"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

const tradingDaysPerYear = 252

// EvaluationResult holds the performance metrics of one simulated run,
// derived from its daily snapshots. Roi, Cagr, WinRate, ExpectedReturn and
// Volatility are percent-scaled; MaxDrawdown is a negative fraction.
type EvaluationResult struct {
	Roi              float64 `json:"roi"`
	TotalPnl         float64 `json:"totalPnl"`
	SharpeRatio      float64 `json:"sharpeRatio"`
	SortinoRatio     float64 `json:"sortinoRatio"`
	CalmarRatio      float64 `json:"calmarRatio"`
	MaxDrawdown      float64 `json:"maxDrawdown"`
	Cagr             float64 `json:"cagr"`
	WinRate          float64 `json:"winRate"`
	ExpectedReturn   float64 `json:"expectedReturn"`
	Volatility       float64 `json:"volatility"`
	MaxTimeToRecover int     `json:"maxTimeToRecover"`
}

// QuickEvaluation is the subset of metrics the parameter search reads per
// trial, skipping everything trade-log derived.
type QuickEvaluation struct {
	Roi         float64
	SharpeRatio float64
	MaxDrawdown float64
}

// Evaluate computes the full metrics suite over the daily snapshots of a
// run. Snapshots may arrive in any order; at least three are needed so the
// return series has a defined deviation.
func Evaluate(snapshots []domain.DailySnapshot, riskFreeRateAnnual float64) (*EvaluationResult, error) {
	ordered, values, err := assetSeries(snapshots)
	if err != nil {
		return nil, err
	}

	initialValue := values[0]
	finalValue := values[len(values)-1]

	returns := dailyReturns(values)
	annualizedReturn, annualizedStdev, err := annualizeReturns(returns)
	if err != nil {
		return nil, err
	}

	numYears := ordered[len(ordered)-1].Date.Sub(ordered[0].Date).Hours() / 24 / 365.25
	if numYears <= 0 {
		return nil, fmt.Errorf("snapshots span no time")
	}
	cagr := (math.Pow(finalValue/initialValue, 1/numYears) - 1) * 100

	maxDrawdown := calculateMaxDrawdown(values)
	calmarRatio := 0.0
	if maxDrawdown != 0 {
		calmarRatio = (cagr / 100) / math.Abs(maxDrawdown)
	}

	totalTrades, totalWinners := 0, 0
	sumWinners, sumLosers := decimal.Zero, decimal.Zero
	for _, snapshot := range ordered {
		totalTrades += snapshot.NumberOfTrades
		totalWinners += snapshot.NumberOfWinners
		sumWinners = sumWinners.Add(snapshot.SumOfWinners)
		sumLosers = sumLosers.Add(snapshot.SumOfLosers)
	}

	winRate := 0.0
	if totalTrades > 0 {
		winRate = float64(totalWinners) / float64(totalTrades)
	}
	avgWin := 0.0
	if totalWinners > 0 {
		avgWin = sumWinners.InexactFloat64() / float64(totalWinners)
	}
	avgLoss := 0.0
	if totalTrades > 0 {
		avgLoss = math.Abs(sumLosers.InexactFloat64() / float64(totalTrades))
	}
	expectedReturn := (winRate*avgWin - (1-winRate)*avgLoss) * 100

	return &EvaluationResult{
		Roi:              (finalValue - initialValue) / initialValue * 100,
		TotalPnl:         finalValue - initialValue,
		SharpeRatio:      (annualizedReturn - riskFreeRateAnnual) / annualizedStdev,
		SortinoRatio:     sortinoRatio(returns, annualizedReturn, riskFreeRateAnnual),
		CalmarRatio:      calmarRatio,
		MaxDrawdown:      maxDrawdown,
		Cagr:             cagr,
		WinRate:          winRate * 100,
		ExpectedReturn:   expectedReturn,
		Volatility:       annualizedStdev * 100,
		MaxTimeToRecover: longestDrawdown(values),
	}, nil
}

// QuickEvaluate computes just ROI, Sharpe and max drawdown.
func QuickEvaluate(snapshots []domain.DailySnapshot, riskFreeRateAnnual float64) (*QuickEvaluation, error) {
	_, values, err := assetSeries(snapshots)
	if err != nil {
		return nil, err
	}

	returns := dailyReturns(values)
	annualizedReturn, annualizedStdev, err := annualizeReturns(returns)
	if err != nil {
		return nil, err
	}

	initialValue := values[0]
	finalValue := values[len(values)-1]

	return &QuickEvaluation{
		Roi:         (finalValue - initialValue) / initialValue * 100,
		SharpeRatio: (annualizedReturn - riskFreeRateAnnual) / annualizedStdev,
		MaxDrawdown: calculateMaxDrawdown(values),
	}, nil
}

func assetSeries(snapshots []domain.DailySnapshot) ([]domain.DailySnapshot, []float64, error) {
	if len(snapshots) < 2 {
		return nil, nil, fmt.Errorf("cannot evaluate fewer than 2 daily snapshots")
	}

	ordered := make([]domain.DailySnapshot, len(snapshots))
	copy(ordered, snapshots)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	values := make([]float64, len(ordered))
	for i, snapshot := range ordered {
		values[i] = snapshot.TotalAssets.InexactFloat64()
	}
	if values[0] == 0 {
		return nil, nil, fmt.Errorf("initial total assets is zero")
	}

	return ordered, values, nil
}

func dailyReturns(values []float64) []float64 {
	returns := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		returns = append(returns, values[i]/values[i-1]-1)
	}
	return returns
}

func annualizeReturns(returns []float64) (float64, float64, error) {
	if len(returns) < 2 {
		return 0, 0, fmt.Errorf("cannot compute deviation of %d returns", len(returns))
	}

	mean, err := stats.Mean(returns)
	if err != nil {
		return 0, 0, err
	}
	stdev, err := stats.StandardDeviationSample(returns)
	if err != nil {
		return 0, 0, err
	}
	if stdev == 0 {
		return 0, 0, fmt.Errorf("return series has zero volatility")
	}

	return mean * tradingDaysPerYear, stdev * math.Sqrt(tradingDaysPerYear), nil
}

// sortinoRatio penalizes only downside deviation. With fewer than two
// losing days there is no downside spread to measure and the ratio reports
// zero rather than blowing up.
func sortinoRatio(returns []float64, annualizedReturn, riskFreeRateAnnual float64) float64 {
	downside := []float64{}
	for _, r := range returns {
		if r < 0 {
			downside = append(downside, r)
		}
	}
	if len(downside) < 2 {
		return 0
	}

	stdev, err := stats.StandardDeviationSample(downside)
	if err != nil || stdev == 0 {
		return 0
	}

	return (annualizedReturn - riskFreeRateAnnual) / (stdev * math.Sqrt(tradingDaysPerYear))
}

func calculateMaxDrawdown(values []float64) float64 {
	peak := values[0]
	maxDrawdown := 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
		drawdown := (v - peak) / peak
		if drawdown < maxDrawdown {
			maxDrawdown = drawdown
		}
	}
	return maxDrawdown
}

// longestDrawdown counts the longest run of consecutive days spent below a
// prior peak.
func longestDrawdown(values []float64) int {
	peak := values[0]
	longest, run := 0, 0
	for _, v := range values {
		if v > peak {
			peak = v
		}
		if v < peak {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return longest
}

package calculator

import (
	"stockbacktest/internal/domain"
	"stockbacktest/internal/util"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func snapshotOn(date time.Time, totalAssets float64) domain.DailySnapshot {
	return domain.DailySnapshot{
		Date:        date,
		TotalAssets: decimal.NewFromFloat(totalAssets),
		Cash:        decimal.NewFromFloat(totalAssets),
	}
}

func evaluationFixture() []domain.DailySnapshot {
	day1 := snapshotOn(util.NewDate(2024, 1, 1), 100)
	day2 := snapshotOn(util.NewDate(2024, 1, 2), 110)
	day3 := snapshotOn(util.NewDate(2024, 1, 3), 99)
	day3.NumberOfTrades = 2
	day3.NumberOfWinners = 1
	day3.SumOfWinners = decimal.NewFromInt(30)
	day3.SumOfLosers = decimal.NewFromInt(10)
	day4 := snapshotOn(util.NewDate(2024, 1, 4), 104.5)
	day5 := snapshotOn(util.NewDate(2024, 1, 5), 115)
	day5.NumberOfTrades = 2
	day5.NumberOfWinners = 2
	day5.SumOfWinners = decimal.NewFromInt(25)

	// out of order; Evaluate sorts by date
	return []domain.DailySnapshot{day3, day1, day5, day2, day4}
}

func TestEvaluate(t *testing.T) {
	result, err := Evaluate(evaluationFixture(), 0.045)
	require.NoError(t, err)

	require.InDelta(t, 15.0, result.Roi, 1e-9)
	require.InDelta(t, 15.0, result.TotalPnl, 1e-9)

	// returns: .1, -.1, .0556, .1005 -> mean .039009, sample stdev .095036
	require.InDelta(t, 6.486, result.SharpeRatio, 0.01)
	require.InDelta(t, 150.87, result.Volatility, 0.1)

	// one losing day is not enough downside spread
	require.Zero(t, result.SortinoRatio)

	// trough 99 against the 110 peak
	require.InDelta(t, -0.1, result.MaxDrawdown, 1e-9)
	// days 3 and 4 sit below the peak, day 5 sets a new one
	require.Equal(t, 2, result.MaxTimeToRecover)

	// 15% over four days annualizes to something enormous but positive
	require.Greater(t, result.Cagr, 0.0)
	require.Greater(t, result.CalmarRatio, 0.0)

	// 3 winners of 4 trades, 55 won over 3, 10 lost over 4
	require.InDelta(t, 75.0, result.WinRate, 1e-9)
	require.InDelta(t, 1312.5, result.ExpectedReturn, 1e-9)
}

func TestQuickEvaluate(t *testing.T) {
	quick, err := QuickEvaluate(evaluationFixture(), 0.045)
	require.NoError(t, err)

	require.InDelta(t, 15.0, quick.Roi, 1e-9)
	require.InDelta(t, 6.486, quick.SharpeRatio, 0.01)
	require.InDelta(t, -0.1, quick.MaxDrawdown, 1e-9)
}

func TestEvaluateTooFewSnapshots(t *testing.T) {
	_, err := Evaluate([]domain.DailySnapshot{
		snapshotOn(util.NewDate(2024, 1, 1), 100),
	}, 0.045)
	require.Error(t, err)

	// two snapshots yield a single return, which has no deviation
	_, err = Evaluate([]domain.DailySnapshot{
		snapshotOn(util.NewDate(2024, 1, 1), 100),
		snapshotOn(util.NewDate(2024, 1, 2), 110),
	}, 0.045)
	require.Error(t, err)
}

func TestEvaluateZeroVolatility(t *testing.T) {
	_, err := Evaluate([]domain.DailySnapshot{
		snapshotOn(util.NewDate(2024, 1, 1), 100),
		snapshotOn(util.NewDate(2024, 1, 2), 110),
		snapshotOn(util.NewDate(2024, 1, 3), 121),
	}, 0.045)
	require.Error(t, err)
}

func TestEvaluateFlatWithLosses(t *testing.T) {
	// a series with several losing days exercises the sortino path
	values := []float64{100, 104, 99, 103, 97, 101, 108}
	snapshots := make([]domain.DailySnapshot, len(values))
	for i, v := range values {
		snapshots[i] = snapshotOn(util.NewDate(2024, 1, 1+i), v)
	}

	result, err := Evaluate(snapshots, 0.045)
	require.NoError(t, err)
	require.NotZero(t, result.SortinoRatio)
	require.Less(t, result.MaxDrawdown, 0.0)
}

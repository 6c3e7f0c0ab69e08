package app

import (
	"context"
	"math"
	"math/rand"
	"path/filepath"
	"testing"

	"stockbacktest/internal/calculator"
	"stockbacktest/internal/domain"
	"stockbacktest/internal/repository"
	l2_service "stockbacktest/internal/service/l2"
	mock_l2_service "stockbacktest/internal/service/l2/mocks"
	"stockbacktest/internal/util"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func optimizeFixture(t *testing.T) OptimizeHandler {
	t.Helper()
	ctrl := gomock.NewController(t)
	rankingService := mock_l2_service.NewMockRankingService(ctrl)
	rankingService.EXPECT().GetRanking(gomock.Any(), 3, 2024, gomock.Nil(), gomock.Any()).Return([]domain.RankedStock{
		{Symbol: "AAA", Score: 1},
	}, nil).AnyTimes()

	trialRepository, err := repository.NewTrialRepository(filepath.Join(t.TempDir(), "study.db"))
	require.NoError(t, err)
	t.Cleanup(func() { trialRepository.Close() })

	return OptimizeHandler{
		Backtest: BacktestHandler{
			MarketDataset:  marchDataset(t),
			RankingService: rankingService,
		},
		TrialRepository: trialRepository,
	}
}

func optimizeInput(numTrials int) OptimizeInput {
	return OptimizeInput{
		StudyName:    "risk-exit-search",
		Start:        util.NewDate(2024, 3, 1),
		End:          util.NewDate(2024, 3, 11),
		NumTrials:    numTrials,
		Seed:         42,
		RiskFreeRate: 0.045,
		BaseParams: domain.BacktestParams{
			InitialBalance: decimal.NewFromInt(100000),
			ReleaseDay:     1,
			NumberOfStocks: 1,
			WeightScheme:   domain.WeightSchemeEqual,
		},
	}
}

func TestOptimizeSamplesTheGrid(t *testing.T) {
	handler := optimizeFixture(t)

	best, err := handler.Optimize(context.Background(), optimizeInput(4))
	require.NoError(t, err)
	require.NotNil(t, best)

	studyID, err := handler.TrialRepository.GetOrCreateStudy("risk-exit-search")
	require.NoError(t, err)
	trials, err := handler.TrialRepository.ListTrials(studyID)
	require.NoError(t, err)
	require.Len(t, trials, 4)

	for i, trial := range trials {
		require.Equal(t, i, trial.Number)
		for _, fraction := range []float64{trial.TrailingStopLoss, trial.TakeProfit} {
			require.GreaterOrEqual(t, fraction, 0.05)
			require.LessOrEqual(t, fraction, 0.5)
			steps := (fraction - 0.05) / 0.025
			require.InDelta(t, math.Round(steps), steps, 1e-9)
		}
		require.Contains(t, trialWeightSchemes, trial.WeightScheme)
		require.NoError(t, l2_service.ValidateScoringExpression(trial.ScoringExpression))
		require.LessOrEqual(t, trial.Value, best.Value)
	}
}

func TestDrawTrialWeightsSumToOne(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		draw := drawTrial(rng, domain.BacktestParams{})

		// scoring entirely one metric group at the expression level: with
		// every variable at v, each weight group contributes v times its
		// weight sum, so the total collapses to v when all groups sum to 1
		metrics := map[string]float64{}
		for _, name := range l2_service.ScoringVariables {
			metrics[name] = 0.25
		}
		value, err := l2_service.EvaluateScoringExpression(draw.expression, metrics)
		require.NoError(t, err)
		require.InDelta(t, 0.25, value, 1e-9)
	}
}

func TestOptimizeResumesDeterministically(t *testing.T) {
	resumed := optimizeFixture(t)

	_, err := resumed.Optimize(context.Background(), optimizeInput(4))
	require.NoError(t, err)

	// a repeat with the same target count runs nothing new
	_, err = resumed.Optimize(context.Background(), optimizeInput(4))
	require.NoError(t, err)

	studyID, err := resumed.TrialRepository.GetOrCreateStudy("risk-exit-search")
	require.NoError(t, err)
	n, err := resumed.TrialRepository.CountTrials(studyID)
	require.NoError(t, err)
	require.Equal(t, 4, n)

	// raising the target resumes at trial 4 and replays the same draws a
	// fresh study would make
	best, err := resumed.Optimize(context.Background(), optimizeInput(6))
	require.NoError(t, err)

	fresh := optimizeFixture(t)
	_, err = fresh.Optimize(context.Background(), optimizeInput(6))
	require.NoError(t, err)

	resumedID, err := resumed.TrialRepository.GetOrCreateStudy("risk-exit-search")
	require.NoError(t, err)
	freshID, err := fresh.TrialRepository.GetOrCreateStudy("risk-exit-search")
	require.NoError(t, err)

	resumedTrials, err := resumed.TrialRepository.ListTrials(resumedID)
	require.NoError(t, err)
	freshTrials, err := fresh.TrialRepository.ListTrials(freshID)
	require.NoError(t, err)
	require.Len(t, resumedTrials, 6)
	require.Len(t, freshTrials, 6)

	for i := range freshTrials {
		require.Equal(t, freshTrials[i].Number, resumedTrials[i].Number)
		require.Equal(t, freshTrials[i].TrailingStopLoss, resumedTrials[i].TrailingStopLoss)
		require.Equal(t, freshTrials[i].TakeProfit, resumedTrials[i].TakeProfit)
		require.Equal(t, freshTrials[i].WeightScheme, resumedTrials[i].WeightScheme)
		require.Equal(t, freshTrials[i].ScoringExpression, resumedTrials[i].ScoringExpression)
		require.InDelta(t, freshTrials[i].Value, resumedTrials[i].Value, 1e-12)
	}

	require.NotNil(t, best)
	require.InDelta(t, bestValue(freshTrials), best.Value, 1e-12)
}

func bestValue(trials []domain.Trial) float64 {
	best := math.Inf(-1)
	for _, trial := range trials {
		if trial.Value > best {
			best = trial.Value
		}
	}
	return best
}

func TestObjectiveValue(t *testing.T) {
	// saturated sharpe and shallow drawdown hit the ceiling
	require.InDelta(t, 1.0, objectiveValue(&calculator.QuickEvaluation{
		SharpeRatio: 3.5,
		MaxDrawdown: -0.01,
	}), 1e-9)

	// deep drawdown zeroes its term
	require.InDelta(t, 0.8*0.5, objectiveValue(&calculator.QuickEvaluation{
		SharpeRatio: 1.5,
		MaxDrawdown: -0.25,
	}), 1e-9)

	// mid drawdown interpolates: (0.2 - 0.125) / 0.15 = 0.5
	require.InDelta(t, 0.8*0.5+0.2*0.5, objectiveValue(&calculator.QuickEvaluation{
		SharpeRatio: 1.5,
		MaxDrawdown: -0.125,
	}), 1e-9)
}

package repository

import (
	"path/filepath"
	"stockbacktest/internal/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrialRepository(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "study.db")

	repo, err := NewTrialRepository(dbPath)
	require.NoError(t, err)
	defer repo.Close()

	studyID, err := repo.GetOrCreateStudy("backtest-params")
	require.NoError(t, err)

	again, err := repo.GetOrCreateStudy("backtest-params")
	require.NoError(t, err)
	require.Equal(t, studyID, again)

	n, err := repo.CountTrials(studyID)
	require.NoError(t, err)
	require.Equal(t, 0, n)

	best, err := repo.BestTrial(studyID)
	require.NoError(t, err)
	require.Nil(t, best)

	err = repo.AddTrial(studyID, domain.Trial{
		Number:           0,
		TrailingStopLoss: 0.15,
		TakeProfit:       0.25,
		WeightScheme:     domain.WeightSchemeEqual,
		Value:            0.41,
		Roi:              0.12,
		Sharpe:           1.1,
		MaxDrawdown:      -0.08,
	})
	require.NoError(t, err)

	expression := "0.6*(0.45*fund_net_buying + 0.35*number_fund_holdings + 0.2*net_fund_change)"
	err = repo.AddTrial(studyID, domain.Trial{
		Number:            1,
		TrailingStopLoss:  0.2,
		TakeProfit:        0.3,
		WeightScheme:      domain.WeightSchemeSoftmax,
		ScoringExpression: expression,
		Value:             0.55,
		Roi:               0.2,
		Sharpe:            1.4,
		MaxDrawdown:       -0.06,
	})
	require.NoError(t, err)

	n, err = repo.CountTrials(studyID)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	best, err = repo.BestTrial(studyID)
	require.NoError(t, err)
	require.NotNil(t, best)
	require.Equal(t, 1, best.Number)
	require.Equal(t, domain.WeightSchemeSoftmax, best.WeightScheme)
	require.Equal(t, expression, best.ScoringExpression)
	require.Equal(t, 0.55, best.Value)

	trials, err := repo.ListTrials(studyID)
	require.NoError(t, err)
	require.Len(t, trials, 2)
	require.Equal(t, 0, trials[0].Number)
	require.Empty(t, trials[0].ScoringExpression)
	require.Equal(t, 1, trials[1].Number)
}

// trials from a previous run must survive a process restart, that's what
// makes resuming a study possible
func TestTrialRepositoryReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "study.db")

	repo, err := NewTrialRepository(dbPath)
	require.NoError(t, err)

	studyID, err := repo.GetOrCreateStudy("resume")
	require.NoError(t, err)
	require.NoError(t, repo.AddTrial(studyID, domain.Trial{Number: 0, WeightScheme: domain.WeightSchemeLinear, Value: 0.3}))
	require.NoError(t, repo.Close())

	repo, err = NewTrialRepository(dbPath)
	require.NoError(t, err)
	defer repo.Close()

	studyID, err = repo.GetOrCreateStudy("resume")
	require.NoError(t, err)

	n, err := repo.CountTrials(studyID)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

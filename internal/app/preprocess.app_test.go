package app

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"stockbacktest/internal/db/models/postgres/public/model"
	"stockbacktest/internal/domain"
	mock_repository "stockbacktest/internal/repository/mocks"
	mock_l2_service "stockbacktest/internal/service/l2/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	_ "modernc.org/sqlite"
)

func preprocessDb(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "preprocess.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPreprocessUpsertsScoredMonths(t *testing.T) {
	ctrl := gomock.NewController(t)
	rankingService := mock_l2_service.NewMockRankingService(ctrl)
	scoreRepository := mock_repository.NewMockMonthlyScoreRepository(ctrl)

	rankingService.EXPECT().ComputeScores(gomock.Any(), 3, 2024, gomock.Nil(), "").Return([]domain.MonthlyScore{
		{Symbol: "AAA", Month: 3, Year: 2024, Roe: 0.8, InstitutionalScore: 0.7, FinancialScore: 0.5, TotalScore: 0.62},
		{Symbol: "BBB", Month: 3, Year: 2024, TotalScore: 0.31},
	}, nil)
	// a month with no source data is skipped, not written
	rankingService.EXPECT().ComputeScores(gomock.Any(), 4, 2024, gomock.Nil(), "").Return([]domain.MonthlyScore{}, nil)
	rankingService.EXPECT().ComputeScores(gomock.Any(), 5, 2024, gomock.Nil(), "").Return([]domain.MonthlyScore{
		{Symbol: "AAA", Month: 5, Year: 2024, TotalScore: 0.44},
	}, nil)

	written := [][]model.MonthlyScore{}
	scoreRepository.EXPECT().Add(gomock.Any(), gomock.Any()).DoAndReturn(
		func(tx *sql.Tx, scores []model.MonthlyScore) error {
			written = append(written, scores)
			return nil
		},
	).Times(2)

	handler := PreprocessHandler{
		Db:                     preprocessDb(t),
		RankingService:         rankingService,
		MonthlyScoreRepository: scoreRepository,
	}

	err := handler.Preprocess(context.Background(), PreprocessInput{
		StartMonth: 3,
		StartYear:  2024,
		EndMonth:   5,
		EndYear:    2024,
	})
	require.NoError(t, err)

	require.Len(t, written, 2)
	require.Len(t, written[0], 2)
	require.Equal(t, "AAA", written[0][0].Symbol)
	require.Equal(t, int32(3), written[0][0].Month)
	require.Equal(t, int32(2024), written[0][0].Year)
	require.Equal(t, 0.8, written[0][0].Roe)
	require.Equal(t, 0.62, written[0][0].TotalScore)
	require.Len(t, written[1], 1)
	require.Equal(t, int32(5), written[1][0].Month)
}

func TestPreprocessCrossesYearBoundary(t *testing.T) {
	ctrl := gomock.NewController(t)
	rankingService := mock_l2_service.NewMockRankingService(ctrl)
	scoreRepository := mock_repository.NewMockMonthlyScoreRepository(ctrl)

	months := []int{}
	rankingService.EXPECT().ComputeScores(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Nil(), "").DoAndReturn(
		func(ctx context.Context, month, year int, symbols []string, expression string) ([]domain.MonthlyScore, error) {
			months = append(months, year*100+month)
			return []domain.MonthlyScore{{Symbol: "AAA", Month: month, Year: year, TotalScore: 0.5}}, nil
		},
	).Times(3)
	scoreRepository.EXPECT().Add(gomock.Any(), gomock.Any()).Return(nil).Times(3)

	handler := PreprocessHandler{
		Db:                     preprocessDb(t),
		RankingService:         rankingService,
		MonthlyScoreRepository: scoreRepository,
	}

	err := handler.Preprocess(context.Background(), PreprocessInput{
		StartMonth: 12,
		StartYear:  2023,
		EndMonth:   2,
		EndYear:    2024,
	})
	require.NoError(t, err)
	require.Equal(t, []int{202312, 202401, 202402}, months)
}

func TestPreprocessRejectsBadRanges(t *testing.T) {
	handler := PreprocessHandler{Db: preprocessDb(t)}

	err := handler.Preprocess(context.Background(), PreprocessInput{
		StartMonth: 5, StartYear: 2024, EndMonth: 3, EndYear: 2024,
	})
	require.ErrorContains(t, err, "empty")

	err = handler.Preprocess(context.Background(), PreprocessInput{
		StartMonth: 13, StartYear: 2024, EndMonth: 1, EndYear: 2025,
	})
	require.ErrorContains(t, err, "month out of range")
}

func TestPreprocessStopsOnScoringError(t *testing.T) {
	ctrl := gomock.NewController(t)
	rankingService := mock_l2_service.NewMockRankingService(ctrl)
	scoreRepository := mock_repository.NewMockMonthlyScoreRepository(ctrl)

	rankingService.EXPECT().ComputeScores(gomock.Any(), 3, 2024, gomock.Nil(), "").Return(nil, errors.New("holdings table unreachable"))

	handler := PreprocessHandler{
		Db:                     preprocessDb(t),
		RankingService:         rankingService,
		MonthlyScoreRepository: scoreRepository,
	}

	err := handler.Preprocess(context.Background(), PreprocessInput{
		StartMonth: 3, StartYear: 2024, EndMonth: 6, EndYear: 2024,
	})
	require.ErrorContains(t, err, "failed to score 3/2024")
}

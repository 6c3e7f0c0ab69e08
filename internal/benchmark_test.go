package internal

import (
	"stockbacktest/internal/domain"
	mock_repository "stockbacktest/internal/repository/mocks"
	"stockbacktest/internal/util"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_intraPeriodChangeIterator(t *testing.T) {
	t.Run("two days, both present", func(t *testing.T) {
		t1 := util.NewDate(2020, 1, 1)
		t2 := util.NewDate(2020, 1, 2)
		out := intraPeriodChangeIterator(
			[]domain.DailyQuote{
				{
					Price: decimal.NewFromInt(100),
					Date:  util.NewDate(2020, 1, 1),
				},
				{
					Price: decimal.NewFromInt(110),
					Date:  util.NewDate(2020, 1, 2),
				},
			},
			t2,
			time.Hour*24,
		)

		require.Equal(
			t,
			"",
			cmp.Diff(
				map[time.Time]float64{
					t1: 0,
					t2: 10,
				},
				out,
			),
		)
	})
	t.Run("first day missing", func(t *testing.T) {
		t2 := util.NewDate(2020, 1, 2)
		out := intraPeriodChangeIterator(
			[]domain.DailyQuote{
				{
					Price: decimal.NewFromInt(110),
					Date:  util.NewDate(2020, 1, 2),
				},
				{
					Price: decimal.NewFromInt(110),
					Date:  util.NewDate(2020, 1, 3),
				},
			},
			util.NewDate(2020, 1, 2),
			time.Hour*24,
		)

		require.Equal(
			t,
			"",
			cmp.Diff(
				map[time.Time]float64{
					t2: 0,
				},
				out,
			),
		)
	})

	t.Run("include last day", func(t *testing.T) {
		t2 := util.NewDate(2020, 1, 2)
		t3 := util.NewDate(2020, 1, 3)
		out := intraPeriodChangeIterator(
			[]domain.DailyQuote{
				{
					Price: decimal.NewFromInt(110),
					Date:  util.NewDate(2020, 1, 2),
				},
				{
					Price: decimal.NewFromInt(110),
					Date:  util.NewDate(2020, 1, 3),
				},
			},
			util.NewDate(2020, 1, 3),
			time.Hour*24,
		)

		require.Equal(
			t,
			"",
			cmp.Diff(
				map[time.Time]float64{
					t2: 0,
					t3: 0,
				},
				out,
			),
		)
	})
}

func TestBenchmarkHandler_GetSnapshots(t *testing.T) {
	ctrl := gomock.NewController(t)
	quoteRepository := mock_repository.NewMockDailyQuoteRepository(ctrl)

	handler := BenchmarkHandler{
		DailyQuoteRepository: quoteRepository,
	}

	start := util.NewDate(2024, 3, 1)
	end := util.NewDate(2024, 3, 4)

	quoteRepository.EXPECT().
		List([]string{"VNM"}, start, end).
		Return([]domain.DailyQuote{
			{
				Symbol: "VNM",
				Date:   util.NewDate(2024, 3, 4),
				Price:  decimal.NewFromInt(80),
			},
			{
				Symbol: "VNM",
				Date:   util.NewDate(2024, 3, 1),
				Price:  decimal.NewFromInt(75),
			},
		}, nil)

	snapshots, err := handler.GetSnapshots("VNM", start, end)
	require.NoError(t, err)

	require.Len(t, snapshots, 2)
	require.Equal(t, util.NewDate(2024, 3, 1), snapshots[0].Date)
	require.Equal(t, "75", snapshots[0].TotalAssets.String())
	require.Equal(t, util.NewDate(2024, 3, 4), snapshots[1].Date)
	require.Equal(t, "80", snapshots[1].TotalAssets.String())
}

func TestBenchmarkHandler_GetIntraPeriodChangeNoQuotes(t *testing.T) {
	ctrl := gomock.NewController(t)
	quoteRepository := mock_repository.NewMockDailyQuoteRepository(ctrl)

	handler := BenchmarkHandler{
		DailyQuoteRepository: quoteRepository,
	}

	start := util.NewDate(2024, 3, 1)
	end := util.NewDate(2024, 3, 4)

	quoteRepository.EXPECT().
		List([]string{"VNM"}, start, end).
		Return([]domain.DailyQuote{}, nil)

	_, err := handler.GetIntraPeriodChange("VNM", start, end, time.Hour*24)
	require.ErrorContains(t, err, "no prices found for symbol VNM")
}

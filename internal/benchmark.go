package internal

import (
	"fmt"
	"sort"
	"stockbacktest/internal/domain"
	"stockbacktest/internal/repository"
	"stockbacktest/internal/util"
	"time"

	"github.com/shopspring/decimal"
)

type BenchmarkHandler struct {
	DailyQuoteRepository repository.DailyQuoteRepository
}

// GetIntraPeriodChange gets historic prices for an asset and converts
// them to % change from start
func (h BenchmarkHandler) GetIntraPeriodChange(
	symbol string,
	start,
	end time.Time,
	granularity time.Duration,
) (map[time.Time]float64, error) {
	quotes, err := h.DailyQuoteRepository.List(
		[]string{symbol},
		start,
		end,
	)
	if err != nil {
		return nil, err
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("no prices found for symbol %s between %v and %v", symbol, start, end)
	}
	return intraPeriodChangeIterator(quotes, end, granularity), nil
}

// GetSnapshots shapes a benchmark price series like a strategy's daily
// snapshots so the same evaluation pass can run over both.
func (h BenchmarkHandler) GetSnapshots(
	symbol string,
	start,
	end time.Time,
) ([]domain.DailySnapshot, error) {
	quotes, err := h.DailyQuoteRepository.List(
		[]string{symbol},
		start,
		end,
	)
	if err != nil {
		return nil, err
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("no prices found for symbol %s between %v and %v", symbol, start, end)
	}

	sort.Slice(quotes, func(i, j int) bool {
		return quotes[i].Date.Before(quotes[j].Date)
	})

	snapshots := make([]domain.DailySnapshot, 0, len(quotes))
	for _, q := range quotes {
		snapshots = append(snapshots, domain.DailySnapshot{
			Date:         q.Date,
			TotalAssets:  q.Price,
			Cash:         decimal.Zero,
			SumOfWinners: decimal.Zero,
			SumOfLosers:  decimal.Zero,
		})
	}

	return snapshots, nil
}

func intraPeriodChangeIterator(
	quotes []domain.DailyQuote,
	end time.Time,
	granularity time.Duration,
) map[time.Time]float64 {
	layout := "2006-01-02"

	sort.Slice(quotes, func(i, j int) bool {
		return quotes[i].Date.Before(quotes[j].Date)
	})

	i := 1
	out := map[time.Time]float64{
		quotes[0].Date: 0,
	}
	nextTarget := quotes[0].Date.Add(granularity)
	for i < len(quotes) && util.DateLte(quotes[i].Date, end) {
		for nextTarget.Format(layout) < quotes[i].Date.Format(layout) {
			nextTarget = nextTarget.Add(24 * time.Hour)
		}
		if quotes[i].Date.Format(layout) == nextTarget.Format(layout) {
			out[nextTarget] = decimal.NewFromInt(100).Mul((quotes[i].Price.Sub(quotes[0].Price))).Div(quotes[0].Price).InexactFloat64()
			nextTarget = nextTarget.Add(granularity)
		}
		i++
	}

	return out
}

package l1_service

import (
	"stockbacktest/internal/domain"
	"stockbacktest/internal/util"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestDataset(t *testing.T) *MarketDataset {
	t.Helper()
	dataset, err := NewMarketDataset([]domain.DailyQuote{
		quoteOn("AAA", 2024, 1, 2, "10", 1000),
		quoteOn("BBB", 2024, 1, 2, "20", 500),
		quoteOn("AAA", 2024, 1, 3, "11", 900),
		quoteOn("AAA", 2024, 1, 4, "12", 1100),
		quoteOn("BBB", 2024, 1, 4, "25", 700),
	})
	require.NoError(t, err)
	return dataset
}

func TestSimulationStep(t *testing.T) {
	dataset := newTestDataset(t)

	sim, err := dataset.NewSimulation(util.NewDate(2024, 1, 2), util.NewDate(2024, 1, 4), 0)
	require.NoError(t, err)

	require.Equal(t, util.NewDate(2024, 1, 2), sim.Current())
	require.False(t, sim.IsLastDay())
	require.Equal(t, "10", sim.LastAvailablePrice("AAA").String())
	require.Equal(t, "20", sim.LastAvailablePrice("BBB").String())

	require.True(t, sim.Step())
	require.Equal(t, util.NewDate(2024, 1, 3), sim.Current())
	require.Equal(t, "11", sim.LastAvailablePrice("AAA").String())
	// BBB has no quote on the 3rd, its last known price carries over
	require.Equal(t, "20", sim.LastAvailablePrice("BBB").String())

	require.True(t, sim.Step())
	require.True(t, sim.IsLastDay())
	require.Equal(t, "25", sim.LastAvailablePrice("BBB").String())

	require.False(t, sim.Step())
	require.Equal(t, util.NewDate(2024, 1, 4), sim.Current())
}

func TestSimulationOutsideDataRange(t *testing.T) {
	dataset := newTestDataset(t)

	_, err := dataset.NewSimulation(util.NewDate(2024, 6, 1), util.NewDate(2024, 6, 30), 0)
	require.ErrorIs(t, err, domain.ErrNoTradingDays)
}

func TestQuoteAppliesTradingFee(t *testing.T) {
	dataset := newTestDataset(t)

	sim, err := dataset.NewSimulation(util.NewDate(2024, 1, 2), util.NewDate(2024, 1, 4), 0.0047)
	require.NoError(t, err)

	buy, ok := sim.QuoteBuy("AAA", 100)
	require.True(t, ok)
	require.Equal(t, "10", buy.Price.String())
	require.Equal(t, "1004.7", buy.Total.String())
	require.Equal(t, util.NewDate(2024, 1, 2), buy.Date)

	sell, ok := sim.QuoteSell("AAA", 100)
	require.True(t, ok)
	require.Equal(t, "995.3", sell.Total.String())

	_, ok = sim.QuoteBuy("ZZZ", 100)
	require.False(t, ok)
	_, ok = sim.QuoteSell("ZZZ", 100)
	require.False(t, ok)
}

func TestLastAvailablePrice(t *testing.T) {
	dataset, err := NewMarketDataset([]domain.DailyQuote{
		quoteOn("AAA", 2024, 1, 2, "10", 1000),
		quoteOn("BBB", 2024, 1, 2, "20", 500),
		quoteOn("AAA", 2024, 1, 3, "11", 900),
		quoteOn("AAA", 2024, 1, 4, "12", 1100),
	})
	require.NoError(t, err)

	// window starts after BBB's only quote
	sim, err := dataset.NewSimulation(util.NewDate(2024, 1, 3), util.NewDate(2024, 1, 4), 0)
	require.NoError(t, err)

	price := sim.LastAvailablePrice("BBB")
	require.Equal(t, "20", price.String())

	// pure function of current state
	require.Equal(t, price.String(), sim.LastAvailablePrice("BBB").String())

	require.True(t, sim.LastAvailablePrice("CCC").IsZero())
}

func TestValuation(t *testing.T) {
	dataset := newTestDataset(t)

	t.Run("marks positions at latest prices", func(t *testing.T) {
		sim, err := dataset.NewSimulation(util.NewDate(2024, 1, 2), util.NewDate(2024, 1, 4), 0)
		require.NoError(t, err)

		portfolio := domain.NewPortfolio("valuation", decimal.NewFromInt(2000))
		err = portfolio.AddAsset("AAA", decimal.NewFromInt(100), decimal.NewFromInt(900), decimal.NewFromInt(9), util.NewDate(2024, 1, 2))
		require.NoError(t, err)

		valuation, err := sim.Valuation(portfolio)
		require.NoError(t, err)
		require.Equal(t, "2100", valuation.TotalValue.String())
		require.Equal(t, "100", valuation.UnrealizedPL.String())
		require.Equal(t, "0", valuation.RealizedPL.String())
	})

	t.Run("unrealized is net of the exit fee", func(t *testing.T) {
		sim, err := dataset.NewSimulation(util.NewDate(2024, 1, 2), util.NewDate(2024, 1, 4), 0.0047)
		require.NoError(t, err)

		portfolio := domain.NewPortfolio("valuation", decimal.NewFromInt(2000))
		err = portfolio.AddAsset("AAA", decimal.NewFromInt(100), decimal.NewFromInt(900), decimal.NewFromInt(9), util.NewDate(2024, 1, 2))
		require.NoError(t, err)

		valuation, err := sim.Valuation(portfolio)
		require.NoError(t, err)
		// (10*0.9953 - 9) * 100
		require.Equal(t, "95.3", valuation.UnrealizedPL.String())
	})

	t.Run("held symbol without any price fails", func(t *testing.T) {
		sim, err := dataset.NewSimulation(util.NewDate(2024, 1, 2), util.NewDate(2024, 1, 4), 0)
		require.NoError(t, err)

		portfolio := domain.NewPortfolio("valuation", decimal.NewFromInt(2000))
		err = portfolio.AddAsset("GONE", decimal.NewFromInt(10), decimal.NewFromInt(100), decimal.NewFromInt(10), util.NewDate(2024, 1, 2))
		require.NoError(t, err)

		_, err = sim.Valuation(portfolio)
		require.ErrorIs(t, err, domain.ErrPriceUnavailable)
	})
}

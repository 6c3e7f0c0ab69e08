package report

import (
	"bytes"
	"os"
	"path/filepath"
	"stockbacktest/internal/calculator"
	"stockbacktest/internal/domain"
	"stockbacktest/internal/util"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testMetrics() *calculator.EvaluationResult {
	return &calculator.EvaluationResult{
		Roi:              12.5,
		TotalPnl:         1250,
		SharpeRatio:      1.1,
		SortinoRatio:     1.4,
		CalmarRatio:      0.9,
		MaxDrawdown:      -0.15,
		Cagr:             8.2,
		WinRate:          60,
		ExpectedReturn:   0.05,
		Volatility:       18.3,
		MaxTimeToRecover: 30,
	}
}

func TestNewRunDir(t *testing.T) {
	base := t.TempDir()
	now := time.Date(2024, 5, 2, 15, 4, 5, 0, time.UTC)

	dir, err := NewRunDir(base, now)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(base, "2024-05-02_150405"), dir)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestSaveBacktestArtifacts(t *testing.T) {
	dir := t.TempDir()

	snapshots := []domain.DailySnapshot{
		{
			Date:        util.NewDate(2024, 1, 2),
			TotalAssets: decimal.NewFromInt(1000),
			Cash:        decimal.NewFromInt(1000),
		},
		{
			Date:            util.NewDate(2024, 1, 3),
			TotalAssets:     decimal.NewFromInt(1050),
			Cash:            decimal.NewFromInt(50),
			NumberOfTrades:  1,
			NumberOfWinners: 1,
			SumOfWinners:    decimal.NewFromInt(25),
		},
	}
	transactions := []domain.Transaction{
		{
			Action:   domain.TradeActionBuy,
			Symbol:   "AAA",
			Quantity: decimal.NewFromInt(10),
			Price:    decimal.NewFromInt(100),
			Amount:   decimal.NewFromFloat(1004.7),
			Date:     util.NewDate(2024, 1, 2),
		},
		{
			Action:     domain.TradeActionSell,
			Symbol:     "AAA",
			Quantity:   decimal.NewFromInt(10),
			Price:      decimal.NewFromInt(110),
			Amount:     decimal.NewFromFloat(1094.83),
			RealizedPL: decimal.NewFromFloat(90.13),
			Date:       util.NewDate(2024, 1, 3),
		},
	}

	require.NoError(t, SaveBacktestArtifacts(dir, snapshots, transactions, testMetrics()))

	stats, err := os.ReadFile(filepath.Join(dir, "daily_stats.csv"))
	require.NoError(t, err)
	require.Equal(t,
		"date,total_assets,cash,number_of_trades,number_of_winners,sum_of_winners,sum_of_losers\n"+
			"2024-01-02,1000,1000,0,0,0,0\n"+
			"2024-01-03,1050,50,1,1,25,0\n",
		string(stats))

	txs, err := os.ReadFile(filepath.Join(dir, "transactions.csv"))
	require.NoError(t, err)
	require.Equal(t,
		"date,action,symbol,quantity,price,amount,realized_pl\n"+
			"2024-01-02,BUY,AAA,10,100,1004.7,\n"+
			"2024-01-03,SELL,AAA,10,110,1094.83,90.13\n",
		string(txs))

	eval, err := os.ReadFile(filepath.Join(dir, "evaluation.csv"))
	require.NoError(t, err)
	require.Equal(t,
		"roi,total_pnl,sharpe_ratio,sortino_ratio,calmar_ratio,max_drawdown,cagr,win_rate,expected_return,volatility,max_time_to_recover\n"+
			"12.5,1250,1.1,1.4,0.9,-0.15,8.2,60,0.05,18.3,30\n",
		string(eval))
}

func TestSaveBacktestArtifactsWithoutMetrics(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, SaveBacktestArtifacts(dir, nil, nil, nil))

	_, err := os.Stat(filepath.Join(dir, "daily_stats.csv"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "evaluation.csv"))
	require.True(t, os.IsNotExist(err))
}

func TestSaveTrials(t *testing.T) {
	dir := t.TempDir()

	trials := []domain.Trial{
		{
			Number:            0,
			TrailingStopLoss:  0.3,
			TakeProfit:        0.25,
			WeightScheme:      domain.WeightSchemeSoftmax,
			ScoringExpression: "0.6*fund_net_buying + 0.4*roe",
			Value:             0.8123,
			Roi:               14.2,
			Sharpe:            1.3,
			MaxDrawdown:       -0.12,
			CreatedAt:         time.Date(2024, 5, 2, 15, 4, 5, 0, time.UTC),
		},
	}

	require.NoError(t, SaveTrials(dir, trials))

	data, err := os.ReadFile(filepath.Join(dir, "trials.csv"))
	require.NoError(t, err)
	require.Equal(t,
		"number,trailing_stop_loss,take_profit,weight_scheme,scoring_expression,value,roi,sharpe,max_drawdown,created_at\n"+
			"0,0.3,0.25,softmax,0.6*fund_net_buying + 0.4*roe,0.8123,14.2,1.3,-0.12,2024-05-02 15:04:05\n",
		string(data))
}

func TestConsolePrintMetrics(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsoleWriter(&buf)

	console.PrintMetrics(testMetrics())

	out := buf.String()
	require.Contains(t, out, "ROI")
	require.Contains(t, out, "12.50%")
	require.Contains(t, out, "Sharpe ratio")
	require.Contains(t, out, "1.1000")
	require.Contains(t, out, "-15.00%")
	require.Contains(t, out, "30 days")
}

func TestConsolePrintRanking(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsoleWriter(&buf)

	console.PrintRanking(5, 2024, []domain.RankedStock{
		{Symbol: "AAA", Score: 0.91},
		{Symbol: "BBB", Score: 0.47},
	})

	out := buf.String()
	require.Contains(t, out, "ranking for 05/2024 (2 stocks)")
	require.Contains(t, out, "AAA")
	require.Contains(t, out, "0.9100")
	require.Contains(t, out, "BBB")
}

func TestConsolePrintProposedTrades(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsoleWriter(&buf)

	console.PrintProposedTrades([]domain.ProposedTrade{
		{Symbol: "CCC", Quantity: decimal.NewFromInt(-8), ExpectedPrice: decimal.NewFromInt(80)},
		{Symbol: "AAA", Quantity: decimal.NewFromInt(45), ExpectedPrice: decimal.NewFromInt(100)},
	})

	out := buf.String()
	require.Contains(t, out, "SELL")
	require.Contains(t, out, "CCC")
	require.Contains(t, out, "8")
	require.Contains(t, out, "BUY")
	require.Contains(t, out, "45")

	buf.Reset()
	console.PrintProposedTrades(nil)
	require.Contains(t, buf.String(), "no trades proposed")
}

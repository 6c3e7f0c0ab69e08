package report

import (
	"fmt"
	"os"
	"path/filepath"
	"stockbacktest/internal/calculator"
	"stockbacktest/internal/domain"
	"time"

	"github.com/gocarina/gocsv"
)

// NewRunDir creates a timestamped directory under baseDir holding one
// run's artifacts.
func NewRunDir(baseDir string, now time.Time) (string, error) {
	dir := filepath.Join(baseDir, now.Format("2006-01-02_150405"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create result directory %s: %w", dir, err)
	}
	return dir, nil
}

type dailyStatRow struct {
	Date            string `csv:"date"`
	TotalAssets     string `csv:"total_assets"`
	Cash            string `csv:"cash"`
	NumberOfTrades  int    `csv:"number_of_trades"`
	NumberOfWinners int    `csv:"number_of_winners"`
	SumOfWinners    string `csv:"sum_of_winners"`
	SumOfLosers     string `csv:"sum_of_losers"`
}

type transactionRow struct {
	Date       string `csv:"date"`
	Action     string `csv:"action"`
	Symbol     string `csv:"symbol"`
	Quantity   string `csv:"quantity"`
	Price      string `csv:"price"`
	Amount     string `csv:"amount"`
	RealizedPl string `csv:"realized_pl"`
}

type evaluationRow struct {
	Roi              float64 `csv:"roi"`
	TotalPnl         float64 `csv:"total_pnl"`
	SharpeRatio      float64 `csv:"sharpe_ratio"`
	SortinoRatio     float64 `csv:"sortino_ratio"`
	CalmarRatio      float64 `csv:"calmar_ratio"`
	MaxDrawdown      float64 `csv:"max_drawdown"`
	Cagr             float64 `csv:"cagr"`
	WinRate          float64 `csv:"win_rate"`
	ExpectedReturn   float64 `csv:"expected_return"`
	Volatility       float64 `csv:"volatility"`
	MaxTimeToRecover int     `csv:"max_time_to_recover"`
}

type trialRow struct {
	Number            int     `csv:"number"`
	TrailingStopLoss  float64 `csv:"trailing_stop_loss"`
	TakeProfit        float64 `csv:"take_profit"`
	WeightScheme      string  `csv:"weight_scheme"`
	ScoringExpression string  `csv:"scoring_expression"`
	Value             float64 `csv:"value"`
	Roi               float64 `csv:"roi"`
	Sharpe            float64 `csv:"sharpe"`
	MaxDrawdown       float64 `csv:"max_drawdown"`
	CreatedAt         string  `csv:"created_at"`
}

// SaveBacktestArtifacts writes the run's daily statistics, transaction log
// and evaluation metrics as CSV files into dir. A run too short to
// evaluate gets no evaluation.csv.
func SaveBacktestArtifacts(dir string, snapshots []domain.DailySnapshot, transactions []domain.Transaction, metrics *calculator.EvaluationResult) error {
	statRows := make([]dailyStatRow, 0, len(snapshots))
	for _, snapshot := range snapshots {
		statRows = append(statRows, dailyStatRow{
			Date:            snapshot.Date.Format(time.DateOnly),
			TotalAssets:     snapshot.TotalAssets.String(),
			Cash:            snapshot.Cash.String(),
			NumberOfTrades:  snapshot.NumberOfTrades,
			NumberOfWinners: snapshot.NumberOfWinners,
			SumOfWinners:    snapshot.SumOfWinners.String(),
			SumOfLosers:     snapshot.SumOfLosers.String(),
		})
	}
	if err := writeCsv(filepath.Join(dir, "daily_stats.csv"), &statRows); err != nil {
		return err
	}

	transactionRows := make([]transactionRow, 0, len(transactions))
	for _, tx := range transactions {
		row := transactionRow{
			Date:     tx.Date.Format(time.DateOnly),
			Action:   string(tx.Action),
			Symbol:   tx.Symbol,
			Quantity: tx.Quantity.String(),
			Price:    tx.Price.String(),
			Amount:   tx.Amount.String(),
		}
		if tx.Action == domain.TradeActionSell {
			row.RealizedPl = tx.RealizedPL.String()
		}
		transactionRows = append(transactionRows, row)
	}
	if err := writeCsv(filepath.Join(dir, "transactions.csv"), &transactionRows); err != nil {
		return err
	}

	if metrics == nil {
		return nil
	}
	evaluationRows := []evaluationRow{{
		Roi:              metrics.Roi,
		TotalPnl:         metrics.TotalPnl,
		SharpeRatio:      metrics.SharpeRatio,
		SortinoRatio:     metrics.SortinoRatio,
		CalmarRatio:      metrics.CalmarRatio,
		MaxDrawdown:      metrics.MaxDrawdown,
		Cagr:             metrics.Cagr,
		WinRate:          metrics.WinRate,
		ExpectedReturn:   metrics.ExpectedReturn,
		Volatility:       metrics.Volatility,
		MaxTimeToRecover: metrics.MaxTimeToRecover,
	}}
	return writeCsv(filepath.Join(dir, "evaluation.csv"), &evaluationRows)
}

// SaveTrials writes the optimizer's sampled trials as CSV into dir.
func SaveTrials(dir string, trials []domain.Trial) error {
	rows := make([]trialRow, 0, len(trials))
	for _, trial := range trials {
		rows = append(rows, trialRow{
			Number:            trial.Number,
			TrailingStopLoss:  trial.TrailingStopLoss,
			TakeProfit:        trial.TakeProfit,
			WeightScheme:      string(trial.WeightScheme),
			ScoringExpression: trial.ScoringExpression,
			Value:             trial.Value,
			Roi:               trial.Roi,
			Sharpe:            trial.Sharpe,
			MaxDrawdown:       trial.MaxDrawdown,
			CreatedAt:         trial.CreatedAt.Format(time.DateTime),
		})
	}
	return writeCsv(filepath.Join(dir, "trials.csv"), &rows)
}

func writeCsv(path string, rows any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(rows, f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

package report

import (
	"fmt"
	"io"
	"os"
	"stockbacktest/internal/calculator"
	"stockbacktest/internal/domain"
	"time"

	"github.com/olekukonko/tablewriter"
)

// Console renders run results as tables on a writer.
type Console struct {
	out io.Writer
}

func NewConsole() *Console {
	return &Console{out: os.Stdout}
}

// NewConsoleWriter is the test constructor.
func NewConsoleWriter(w io.Writer) *Console {
	return &Console{out: w}
}

func (c *Console) PrintBacktestSummary(name string, snapshots []domain.DailySnapshot, portfolio *domain.Portfolio, metrics *calculator.EvaluationResult) {
	if len(snapshots) == 0 {
		fmt.Fprintf(c.out, "%s: no trading days simulated\n", name)
		return
	}

	first := snapshots[0]
	last := snapshots[len(snapshots)-1]
	fmt.Fprintf(c.out, "\n%s: %s to %s (%d trading days)\n",
		name,
		first.Date.Format(time.DateOnly),
		last.Date.Format(time.DateOnly),
		len(snapshots))
	fmt.Fprintf(c.out, "final assets %s, cash %s, realized P/L %s, %d transaction(s)\n",
		last.TotalAssets.StringFixed(2),
		last.Cash.StringFixed(2),
		portfolio.RealizedPL.StringFixed(2),
		len(portfolio.Transactions))

	c.PrintMetrics(metrics)
}

func (c *Console) PrintMetrics(metrics *calculator.EvaluationResult) {
	if metrics == nil {
		return
	}
	table := tablewriter.NewWriter(c.out)
	table.Header("Metric", "Value")
	table.Append("ROI", fmt.Sprintf("%.2f%%", metrics.Roi))
	table.Append("Total P&L", fmt.Sprintf("%.2f", metrics.TotalPnl))
	table.Append("Sharpe ratio", fmt.Sprintf("%.4f", metrics.SharpeRatio))
	table.Append("Sortino ratio", fmt.Sprintf("%.4f", metrics.SortinoRatio))
	table.Append("Calmar ratio", fmt.Sprintf("%.4f", metrics.CalmarRatio))
	table.Append("Max drawdown", fmt.Sprintf("%.2f%%", metrics.MaxDrawdown*100))
	table.Append("CAGR", fmt.Sprintf("%.2f%%", metrics.Cagr))
	table.Append("Win rate", fmt.Sprintf("%.2f%%", metrics.WinRate))
	table.Append("Expected return", fmt.Sprintf("%.2f%%", metrics.ExpectedReturn))
	table.Append("Volatility", fmt.Sprintf("%.2f%%", metrics.Volatility))
	table.Append("Max time to recover", fmt.Sprintf("%d days", metrics.MaxTimeToRecover))
	table.Render()
}

func (c *Console) PrintRanking(month, year int, ranking []domain.RankedStock) {
	fmt.Fprintf(c.out, "\nranking for %02d/%d (%d stocks)\n", month, year, len(ranking))

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Symbol", "Score")
	for i, stock := range ranking {
		table.Append(
			fmt.Sprintf("%d", i+1),
			stock.Symbol,
			fmt.Sprintf("%.4f", stock.Score),
		)
	}
	table.Render()
}

func (c *Console) PrintTransactions(transactions []domain.Transaction) {
	table := tablewriter.NewWriter(c.out)
	table.Header("Date", "Action", "Symbol", "Qty", "Price", "Amount", "Realized P/L")
	for _, tx := range transactions {
		realized := ""
		if tx.Action == domain.TradeActionSell {
			realized = tx.RealizedPL.StringFixed(2)
		}
		table.Append(
			tx.Date.Format(time.DateOnly),
			string(tx.Action),
			tx.Symbol,
			tx.Quantity.String(),
			tx.Price.String(),
			tx.Amount.StringFixed(2),
			realized,
		)
	}
	table.Render()
}

func (c *Console) PrintTrials(trials []domain.Trial) {
	table := tablewriter.NewWriter(c.out)
	table.Header("Trial", "Stop loss", "Take profit", "Scheme", "Objective", "ROI", "Sharpe", "Max DD")
	for _, trial := range trials {
		table.Append(
			fmt.Sprintf("%d", trial.Number),
			fmt.Sprintf("%.3f", trial.TrailingStopLoss),
			fmt.Sprintf("%.3f", trial.TakeProfit),
			string(trial.WeightScheme),
			fmt.Sprintf("%.4f", trial.Value),
			fmt.Sprintf("%.2f%%", trial.Roi),
			fmt.Sprintf("%.4f", trial.Sharpe),
			fmt.Sprintf("%.2f%%", trial.MaxDrawdown*100),
		)
	}
	table.Render()
}

func (c *Console) PrintProposedTrades(trades []domain.ProposedTrade) {
	if len(trades) == 0 {
		fmt.Fprintln(c.out, "no trades proposed; holdings already match the target")
		return
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("Side", "Symbol", "Qty", "Expected price")
	for _, trade := range trades {
		side := "BUY"
		if trade.Quantity.IsNegative() {
			side = "SELL"
		}
		table.Append(
			side,
			trade.Symbol,
			trade.Quantity.Abs().String(),
			trade.ExpectedPrice.String(),
		)
	}
	table.Render()
}

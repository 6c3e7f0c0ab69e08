package app

import (
	"context"
	"fmt"
	"time"

	"stockbacktest/internal/domain"
	"stockbacktest/internal/logger"
	l1_service "stockbacktest/internal/service/l1"
	l2_service "stockbacktest/internal/service/l2"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// investablePortion is the share of cash a buy phase may deploy. The
// remainder stays liquid so the trading fee on top of the sized quantity
// can never overdraw the ledger.
var investablePortion = decimal.NewFromFloat(0.9)

// rebalanceState tracks the monthly two-phase rebalance. Selling and
// buying happen on consecutive trading days: the sell day realizes cash at
// that day's prices, the buy day sizes new positions with fresh prices
// instead of stale ones.
type rebalanceState int

const (
	rebalanceNone rebalanceState = iota
	rebalanceSell
	rebalanceBuy
)

type monthKey struct {
	year  int
	month time.Month
}

func monthOf(t time.Time) monthKey {
	return monthKey{year: t.Year(), month: t.Month()}
}

// BacktestHandler replays a historical window one trading day at a time,
// rotating into the month's top ranked stocks once fund disclosures are
// out and cutting positions with a trailing stop or take profit. The
// dataset is shared and read-only; every Run builds its own simulation
// cursor and portfolio, so a single handler can serve concurrent runs.
type BacktestHandler struct {
	MarketDataset  *l1_service.MarketDataset
	RankingService l2_service.RankingService
}

type BacktestInput struct {
	PortfolioName string
	Start         time.Time
	End           time.Time
	Params        domain.BacktestParams

	// Symbols restricts the ranking universe when set.
	Symbols []string
	// ScoringExpression overrides the default blended score when set.
	ScoringExpression string
}

// BacktestResult carries what evaluation and reporting consume: the
// day-by-day statistics stream and the final ledger with its full
// transaction log.
type BacktestResult struct {
	Snapshots []domain.DailySnapshot
	Portfolio *domain.Portfolio
}

func (h BacktestHandler) Run(ctx context.Context, in BacktestInput) (*BacktestResult, error) {
	log := logger.FromContext(ctx)

	if h.MarketDataset == nil {
		return nil, fmt.Errorf("no market data loaded, ingest prices first")
	}
	if in.Params.NumberOfStocks <= 0 {
		return nil, fmt.Errorf("number of stocks must be positive, got %d", in.Params.NumberOfStocks)
	}
	if !in.Params.InitialBalance.IsPositive() {
		return nil, fmt.Errorf("initial balance must be positive, got %s", in.Params.InitialBalance)
	}

	profile := domain.ProfileFromContext(ctx)

	sim, err := h.MarketDataset.NewSimulation(in.Start, in.End, in.Params.TradingFee)
	if err != nil {
		return nil, err
	}
	profile.Mark("build simulation")

	name := in.PortfolioName
	if name == "" {
		name = "backtest"
	}

	run := &backtestRun{
		ranking:    h.RankingService,
		sim:        sim,
		params:     in.Params,
		symbols:    in.Symbols,
		expression: in.ScoringExpression,
		portfolio:  domain.NewPortfolio(name, in.Params.InitialBalance),
		peaks:      map[string]decimal.Decimal{},
		entryPrice: map[string]decimal.Decimal{},
		log:        log,
	}

	log.Infof("backtesting %s from %s to %s with balance %s",
		name, in.Start.Format(time.DateOnly), in.End.Format(time.DateOnly), in.Params.InitialBalance)

	for {
		run.processDay(ctx)
		if !sim.Step() {
			break
		}
	}
	profile.Mark("simulate days")

	log.Infof("backtest %s finished: balance %s, realized P&L %s over %d transactions",
		name, run.portfolio.Cash.StringFixed(2), run.portfolio.RealizedPL.StringFixed(2), len(run.portfolio.Transactions))

	return &BacktestResult{
		Snapshots: run.snapshots,
		Portfolio: run.portfolio,
	}, nil
}

// backtestRun is the mutable state of one replay. It owns its portfolio
// and simulation cursor; the ranking service behind it is shared.
type backtestRun struct {
	ranking    l2_service.RankingService
	sim        *l1_service.MarketSimulation
	params     domain.BacktestParams
	symbols    []string
	expression string
	portfolio  *domain.Portfolio
	log        *zap.SugaredLogger

	state rebalanceState
	// triggeredMonth is the last month whose rebalance fired. Its ranking
	// is the one the following buy phase consumes, even when that phase
	// lands on the first trading day of the next month.
	triggeredMonth monthKey

	peaks      map[string]decimal.Decimal
	entryPrice map[string]decimal.Decimal

	snapshots []domain.DailySnapshot
}

// processDay runs the per-day pipeline: rebalance trigger, pending phase,
// risk exits, snapshot. Positions opened by today's buy phase are not
// exit-checked until tomorrow; the final day liquidates unconditionally.
func (r *backtestRun) processDay(ctx context.Context) {
	day := r.sim.Current()

	if r.state == rebalanceNone && day.Day() >= r.params.ReleaseDay && monthOf(day) != r.triggeredMonth {
		r.state = rebalanceSell
		r.triggeredMonth = monthOf(day)
	}

	heldBefore := r.portfolio.HeldSymbols()

	switch r.state {
	case rebalanceSell:
		r.liquidate("rebalance")
		r.state = rebalanceBuy
	case rebalanceBuy:
		r.enterRankedPositions(ctx, day)
		r.state = rebalanceNone
	}

	if r.sim.IsLastDay() {
		r.liquidate("final day")
	} else {
		r.applyRiskExits(heldBefore)
	}

	r.recordSnapshot(day)
}

// enterRankedPositions rotates 90% of cash into the month's top ranked
// stocks. Sizing happens against cash before any of the buys execute, so
// the weights stay proportional regardless of fill order. A symbol that
// cannot be priced or sized is skipped, never fatal.
func (r *backtestRun) enterRankedPositions(ctx context.Context, day time.Time) {
	month := r.triggeredMonth
	ranked, err := r.ranking.GetRanking(ctx, int(month.month), month.year, r.symbols, r.expression)
	if err != nil {
		r.log.Errorf("failed to rank stocks for %d/%d: %s", int(month.month), month.year, err.Error())
		return
	}
	if len(ranked) > r.params.NumberOfStocks {
		ranked = ranked[:r.params.NumberOfStocks]
	}
	if len(ranked) == 0 {
		r.log.Warnf("no ranked stocks for %d/%d, staying in cash", int(month.month), month.year)
		return
	}

	weights := domain.StockWeights(ranked, r.params.WeightScheme)
	allocatable := r.portfolio.Cash.Mul(investablePortion)

	for i, stock := range ranked {
		price := r.sim.LastAvailablePrice(stock.Symbol)
		if price.IsZero() {
			r.log.Warnf("no price for %s on %s, skipping buy", stock.Symbol, day.Format(time.DateOnly))
			continue
		}

		funds := allocatable.Mul(decimal.NewFromFloat(weights[i]))
		quantity := funds.Div(price).IntPart()
		if r.params.MaxVolume > 0 && quantity > r.params.MaxVolume {
			quantity = r.params.MaxVolume
		}
		if quantity <= 0 {
			r.log.Warnf("allocation %s for %s buys no whole share at %s, skipping", funds.StringFixed(2), stock.Symbol, price)
			continue
		}

		quote, ok := r.sim.QuoteBuy(stock.Symbol, quantity)
		if !ok {
			r.log.Warnf("no buy quote for %s on %s, skipping", stock.Symbol, day.Format(time.DateOnly))
			continue
		}
		if quote.Total.GreaterThan(r.portfolio.Cash) {
			r.log.Warnf("insufficient cash for %d %s: need %s, have %s",
				quantity, stock.Symbol, quote.Total.StringFixed(2), r.portfolio.Cash.StringFixed(2))
			continue
		}

		if err := r.portfolio.AddAsset(stock.Symbol, decimal.NewFromInt(quantity), quote.Total, quote.Price, day); err != nil {
			r.log.Errorf("failed to buy %s: %s", stock.Symbol, err.Error())
			continue
		}
		if _, held := r.entryPrice[stock.Symbol]; !held {
			r.entryPrice[stock.Symbol] = quote.Price
		}
		r.log.Infof("bought %d %s at %s for %s", quantity, stock.Symbol, quote.Price, quote.Total.StringFixed(2))
	}
}

// applyRiskExits refreshes the running peak for every held symbol, then
// closes eligible positions whose price reached the take-profit level or
// fell to the trailing-stop floor. eligible is the set of symbols held
// before today's rebalance phase ran.
func (r *backtestRun) applyRiskExits(eligible []string) {
	for _, symbol := range r.portfolio.HeldSymbols() {
		price := r.sim.LastAvailablePrice(symbol)
		if price.IsZero() {
			continue
		}
		if peak, ok := r.peaks[symbol]; !ok || price.GreaterThan(peak) {
			r.peaks[symbol] = price
		}
	}

	takeProfitLevel := decimal.NewFromFloat(1 + r.params.TakeProfit)
	trailingFloor := decimal.NewFromFloat(1 - r.params.TrailingStopLoss)

	for _, symbol := range eligible {
		position, ok := r.portfolio.Positions[symbol]
		if !ok {
			continue
		}
		price := r.sim.LastAvailablePrice(symbol)
		if price.IsZero() {
			r.log.Warnf("no price for held symbol %s on %s", symbol, r.sim.Current().Format(time.DateOnly))
			continue
		}

		entry := r.entryPrice[symbol]
		peak := r.peaks[symbol]
		switch {
		case entry.IsPositive() && price.GreaterThanOrEqual(entry.Mul(takeProfitLevel)):
			r.closePosition(symbol, position, "take profit")
		case peak.IsPositive() && price.LessThanOrEqual(peak.Mul(trailingFloor)):
			r.closePosition(symbol, position, "trailing stop")
		}
	}
}

func (r *backtestRun) liquidate(reason string) {
	held := r.portfolio.HeldSymbols()
	if len(held) == 0 {
		return
	}
	r.log.Infof("liquidating %d positions (%s)", len(held), reason)
	for _, symbol := range held {
		r.closePosition(symbol, r.portfolio.Positions[symbol], reason)
	}
}

// closePosition sells the whole position at the day's price and drops the
// symbol's peak and entry tracking. A quote failure leaves the position
// and its tracking in place for the next day.
func (r *backtestRun) closePosition(symbol string, position *domain.Position, reason string) {
	day := r.sim.Current()

	quote, ok := r.sim.QuoteSell(symbol, position.Quantity.IntPart())
	if !ok {
		r.log.Warnf("no sell quote for %s on %s, skipping %s exit", symbol, day.Format(time.DateOnly), reason)
		return
	}

	realized, err := r.portfolio.RemoveAsset(symbol, position.Quantity, quote.Total, quote.Price, day)
	if err != nil {
		r.log.Errorf("failed to sell %s: %s", symbol, err.Error())
		return
	}

	delete(r.peaks, symbol)
	delete(r.entryPrice, symbol)
	r.log.Infof("%s: sold %s %s at %s, realized %s", reason, position.Quantity, symbol, quote.Price, realized.StringFixed(2))
}

func (r *backtestRun) recordSnapshot(day time.Time) {
	valuation, err := r.sim.Valuation(r.portfolio)
	if err != nil {
		r.log.Errorf("failed to value portfolio on %s: %s", day.Format(time.DateOnly), err.Error())
		return
	}

	stats := r.portfolio.DailyStatistics(day)
	r.snapshots = append(r.snapshots, domain.DailySnapshot{
		Date:            day,
		TotalAssets:     valuation.TotalValue,
		Cash:            r.portfolio.Cash,
		NumberOfTrades:  stats.NumberOfTrades,
		NumberOfWinners: stats.NumberOfWinners,
		SumOfWinners:    stats.SumOfWinners,
		SumOfLosers:     stats.SumOfLosers,
	})
}

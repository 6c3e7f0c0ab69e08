package l1_service

import (
	"context"
	"fmt"
	"os"
	"sort"
	"stockbacktest/internal/domain"
	"stockbacktest/internal/logger"
	"stockbacktest/internal/repository"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

type MarketDataService interface {
	LoadFromCsv(ctx context.Context, path string) (*MarketDataset, error)
	Load(ctx context.Context, symbols []string, start, end time.Time) (*MarketDataset, error)
}

type marketDataServiceHandler struct {
	DailyQuoteRepository repository.DailyQuoteRepository
}

func NewMarketDataService(dailyQuoteRepository repository.DailyQuoteRepository) MarketDataService {
	return marketDataServiceHandler{
		DailyQuoteRepository: dailyQuoteRepository,
	}
}

// MarketDataset is an immutable table of daily quotes indexed by trading
// day. It is built once and may be shared read-only by any number of
// simulations, e.g. across the runs of a parameter search. Per-run mutable
// state (the cursor, the latest-price cache) lives on MarketSimulation.
type MarketDataset struct {
	tradingDays []time.Time
	quotesByDay []map[string]domain.DailyQuote
	series      map[string]*priceSeries
	symbols     []string
}

// priceSeries holds one symbol's quotes in trading-day order so "latest
// price at or before day" resolves with a binary search.
type priceSeries struct {
	dayIdxs []int
	prices  []decimal.Decimal
}

func NewMarketDataset(quotes []domain.DailyQuote) (*MarketDataset, error) {
	if len(quotes) == 0 {
		return nil, fmt.Errorf("market dataset is empty")
	}

	dayKeys := map[string]time.Time{}
	for _, q := range quotes {
		key := q.Date.Format(time.DateOnly)
		if _, ok := dayKeys[key]; !ok {
			dayKeys[key] = time.Date(q.Date.Year(), q.Date.Month(), q.Date.Day(), 0, 0, 0, 0, time.UTC)
		}
	}

	tradingDays := make([]time.Time, 0, len(dayKeys))
	for _, day := range dayKeys {
		tradingDays = append(tradingDays, day)
	}
	sort.Slice(tradingDays, func(i, j int) bool { return tradingDays[i].Before(tradingDays[j]) })

	dayIdx := map[string]int{}
	for i, day := range tradingDays {
		dayIdx[day.Format(time.DateOnly)] = i
	}

	quotesByDay := make([]map[string]domain.DailyQuote, len(tradingDays))
	for i := range quotesByDay {
		quotesByDay[i] = map[string]domain.DailyQuote{}
	}

	symbolSet := map[string]bool{}
	for _, q := range quotes {
		i := dayIdx[q.Date.Format(time.DateOnly)]
		// last row wins on duplicate (symbol, day) pairs
		quotesByDay[i][q.Symbol] = q
		symbolSet[q.Symbol] = true
	}

	symbols := make([]string, 0, len(symbolSet))
	for s := range symbolSet {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	series := map[string]*priceSeries{}
	for i, dayQuotes := range quotesByDay {
		for symbol, q := range dayQuotes {
			if _, ok := series[symbol]; !ok {
				series[symbol] = &priceSeries{}
			}
			series[symbol].dayIdxs = append(series[symbol].dayIdxs, i)
			series[symbol].prices = append(series[symbol].prices, q.Price)
		}
	}

	return &MarketDataset{
		tradingDays: tradingDays,
		quotesByDay: quotesByDay,
		series:      series,
		symbols:     symbols,
	}, nil
}

func (d *MarketDataset) Symbols() []string {
	out := make([]string, len(d.symbols))
	copy(out, d.symbols)
	return out
}

// TradingDays lists the dataset's trading days inside [start, end],
// ascending. A window that contains none is an error, callers are expected
// to check this before stepping a simulation.
func (d *MarketDataset) TradingDays(start, end time.Time) ([]time.Time, error) {
	lo, hi := d.dayRange(start, end)
	if lo >= hi {
		return nil, fmt.Errorf("%w: %s to %s", domain.ErrNoTradingDays, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}

	out := make([]time.Time, hi-lo)
	copy(out, d.tradingDays[lo:hi])
	return out, nil
}

// dayRange returns [lo, hi) index bounds of trading days within [start, end].
func (d *MarketDataset) dayRange(start, end time.Time) (int, int) {
	lo := sort.Search(len(d.tradingDays), func(i int) bool {
		return !d.tradingDays[i].Before(start)
	})
	hi := sort.Search(len(d.tradingDays), func(i int) bool {
		return d.tradingDays[i].After(end)
	})
	return lo, hi
}

// lastPriceAt resolves the most recent price of symbol at or before the
// trading day at dayIdx. ok is false if the symbol has no quote that early.
func (d *MarketDataset) lastPriceAt(symbol string, dayIdx int) (decimal.Decimal, bool) {
	s, ok := d.series[symbol]
	if !ok {
		return decimal.Decimal{}, false
	}

	// first series entry strictly after dayIdx
	n := sort.Search(len(s.dayIdxs), func(i int) bool {
		return s.dayIdxs[i] > dayIdx
	})
	if n == 0 {
		return decimal.Decimal{}, false
	}
	return s.prices[n-1], true
}

func (h marketDataServiceHandler) LoadFromCsv(ctx context.Context, path string) (*MarketDataset, error) {
	log := logger.FromContext(ctx)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open market data file: %w", err)
	}
	defer f.Close()

	type row struct {
		Date     string  `csv:"datetime"`
		Symbol   string  `csv:"tickersymbol"`
		Price    float64 `csv:"price"`
		Quantity int64   `csv:"quantity"`
	}
	rows := []row{}
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse market data file %s: %w", path, err)
	}

	quotes := make([]domain.DailyQuote, 0, len(rows))
	for _, r := range rows {
		date, err := parseQuoteDate(r.Date)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, domain.DailyQuote{
			Symbol: r.Symbol,
			Date:   date,
			Price:  decimal.NewFromFloat(r.Price),
			Volume: r.Quantity,
		})
	}

	dataset, err := NewMarketDataset(quotes)
	if err != nil {
		return nil, fmt.Errorf("failed to build market dataset from %s: %w", path, err)
	}

	log.Infof("loaded %d quotes for %d symbols from %s", len(quotes), len(dataset.symbols), path)
	return dataset, nil
}

func (h marketDataServiceHandler) Load(ctx context.Context, symbols []string, start, end time.Time) (*MarketDataset, error) {
	log := logger.FromContext(ctx)

	quotes, err := h.DailyQuoteRepository.List(symbols, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load market data: %w", err)
	}

	dataset, err := NewMarketDataset(quotes)
	if err != nil {
		return nil, err
	}

	log.Infof("loaded %d quotes for %d symbols from db", len(quotes), len(dataset.symbols))
	return dataset, nil
}

// parseQuoteDate accepts both bare dates and exports that carry a time
// component.
func parseQuoteDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateTime, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse quote date %q: %w", s, err)
	}
	return t, nil
}

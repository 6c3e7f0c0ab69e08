package internal

import (
	"context"
	"database/sql"
	"fmt"
	"stockbacktest/internal/db/models/postgres/public/model"
	"stockbacktest/internal/logger"
	"stockbacktest/internal/repository"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"golang.org/x/time/rate"
)

// defaultIngestStart bounds the first fetch for a symbol that has never
// been ingested before.
var defaultIngestStart = time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)

// chartRequestsPerSecond spaces out chart fetches so a full refresh does
// not get throttled by the quote provider.
const chartRequestsPerSecond = 2

func IngestPrices(
	tx *sql.Tx,
	symbol string,
	dailyQuoteRepository repository.DailyQuoteRepository,
) (int, error) {
	start := defaultIngestStart
	latest, err := dailyQuoteRepository.LatestDate(symbol)
	if err != nil {
		return 0, err
	}
	if latest != nil {
		start = latest.AddDate(0, 0, 1)
	}
	now := time.Now().UTC()
	if !start.Before(now) {
		return 0, nil
	}

	params := &chart.Params{
		Start:    datetime.New(&start),
		End:      datetime.New(&now),
		Symbol:   symbol,
		Interval: datetime.OneDay,
	}
	iter := chart.Get(params)

	quotes := []model.DailyQuote{}
	for iter.Next() {
		bar := iter.Bar()
		quotes = append(quotes, model.DailyQuote{
			Symbol: symbol,
			Date:   time.Unix(int64(bar.Timestamp), 0).UTC(),
			Price:  bar.AdjClose,
			Volume: int64(bar.Volume),
		})
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("failed to get prices for %s: %w", symbol, err)
	}

	err = dailyQuoteRepository.Add(tx, quotes)
	if err != nil {
		return 0, err
	}

	return len(quotes), nil
}

// UpdateQuotedPrices re-ingests every symbol already present in the quote
// table plus the seed symbols, picking each one up from the day after its
// latest stored quote. Seeds let a fresh table bootstrap from nothing.
func UpdateQuotedPrices(
	ctx context.Context,
	tx *sql.Tx,
	seedSymbols []string,
	dailyQuoteRepository repository.DailyQuoteRepository,
) error {
	log := logger.FromContext(ctx)

	quoted, err := dailyQuoteRepository.ListSymbols()
	if err != nil {
		return err
	}

	seen := map[string]struct{}{}
	symbols := []string{}
	for _, symbol := range append(quoted, seedSymbols...) {
		if _, ok := seen[symbol]; ok {
			continue
		}
		seen[symbol] = struct{}{}
		symbols = append(symbols, symbol)
	}
	if len(symbols) == 0 {
		return fmt.Errorf("no symbols to ingest")
	}

	limiter := rate.NewLimiter(rate.Limit(chartRequestsPerSecond), 1)

	errors := []error{}
	for _, symbol := range symbols {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
		added, err := IngestPrices(tx, symbol, dailyQuoteRepository)
		if err != nil {
			err = fmt.Errorf("failed to ingest historical prices for %s: %w", symbol, err)
			log.Warnf("%v", err)
			errors = append(errors, err)
			continue
		}
		log.Infof("added %d quotes for %s", added, symbol)
	}

	if len(errors) > 0 {
		return fmt.Errorf("failed to update %d/%d symbol prices. first err: %w", len(errors), len(symbols), errors[0])
	}

	return nil
}

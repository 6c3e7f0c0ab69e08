package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"stockbacktest/internal/db/models/postgres/public/model"
	. "stockbacktest/internal/db/models/postgres/public/table"
	"stockbacktest/internal/domain"
	"time"

	. "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

type DailyQuoteRepository interface {
	Add(tx *sql.Tx, quotes []model.DailyQuote) error
	List(symbols []string, start, end time.Time) ([]domain.DailyQuote, error)
	ListTradingDays(start, end time.Time) ([]time.Time, error)
	ListSymbols() ([]string, error)
	LatestDate(symbol string) (*time.Time, error)
}

type dailyQuoteRepositoryHandler struct {
	Db *sql.DB
}

func NewDailyQuoteRepository(db *sql.DB) DailyQuoteRepository {
	return dailyQuoteRepositoryHandler{Db: db}
}

func (h dailyQuoteRepositoryHandler) Add(tx *sql.Tx, quotes []model.DailyQuote) error {
	if len(quotes) == 0 {
		return nil
	}

	for i := range quotes {
		quotes[i].CreatedAt = time.Now().UTC()
	}

	query := DailyQuote.
		INSERT(DailyQuote.MutableColumns).
		MODELS(quotes).
		ON_CONFLICT(
			DailyQuote.Symbol, DailyQuote.Date,
		).DO_UPDATE(
		SET(
			DailyQuote.Price.SET(DailyQuote.EXCLUDED.Price),
			DailyQuote.Volume.SET(DailyQuote.EXCLUDED.Volume),
		),
	)

	_, err := query.Exec(tx)
	if err != nil {
		return fmt.Errorf("failed to add daily quotes to db: %w", err)
	}

	return nil
}

func (h dailyQuoteRepositoryHandler) List(symbols []string, start, end time.Time) ([]domain.DailyQuote, error) {
	minDate := DateT(start)
	maxDate := DateT(end)

	predicate := DailyQuote.Date.BETWEEN(minDate, maxDate)
	if len(symbols) > 0 {
		in := []Expression{}
		for _, s := range symbols {
			in = append(in, String(s))
		}
		predicate = AND(predicate, DailyQuote.Symbol.IN(in...))
	}

	query := DailyQuote.
		SELECT(DailyQuote.AllColumns).
		WHERE(predicate).
		ORDER_BY(DailyQuote.Date.ASC(), DailyQuote.Symbol.ASC())

	result := []model.DailyQuote{}
	err := query.Query(h.Db, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily quotes: %w", err)
	}

	out := []domain.DailyQuote{}
	for _, q := range result {
		out = append(out, domain.DailyQuote{
			Symbol: q.Symbol,
			Date:   q.Date,
			Price:  q.Price,
			Volume: q.Volume,
		})
	}

	return out, nil
}

func (h dailyQuoteRepositoryHandler) ListTradingDays(start, end time.Time) ([]time.Time, error) {
	query := DailyQuote.
		SELECT(DailyQuote.Date).
		WHERE(
			DailyQuote.Date.BETWEEN(DateT(start), DateT(end)),
		).
		GROUP_BY(DailyQuote.Date).
		ORDER_BY(DailyQuote.Date.ASC())

	q, args := query.Sql()

	rows, err := h.Db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list trading days: %w", err)
	}
	defer rows.Close()

	out := []time.Time{}
	for rows.Next() {
		var d time.Time
		err := rows.Scan(&d)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, d)
	}

	return out, rows.Err()
}

func (h dailyQuoteRepositoryHandler) ListSymbols() ([]string, error) {
	query := DailyQuote.
		SELECT(DailyQuote.Symbol).
		GROUP_BY(DailyQuote.Symbol).
		ORDER_BY(DailyQuote.Symbol.ASC())

	q, args := query.Sql()

	rows, err := h.Db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list symbols: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var s string
		err := rows.Scan(&s)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, s)
	}

	return out, rows.Err()
}

// LatestDate returns the most recent date we have a quote for, or nil if the
// symbol has never been ingested.
func (h dailyQuoteRepositoryHandler) LatestDate(symbol string) (*time.Time, error) {
	query := DailyQuote.
		SELECT(DailyQuote.AllColumns).
		WHERE(DailyQuote.Symbol.EQ(String(symbol))).
		ORDER_BY(DailyQuote.Date.DESC()).
		LIMIT(1)

	result := model.DailyQuote{}
	err := query.Query(h.Db, &result)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest quote date for %s: %w", symbol, err)
	}

	return &result.Date, nil
}

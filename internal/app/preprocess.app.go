package app

import (
	"context"
	"database/sql"
	"fmt"

	"stockbacktest/internal/db/models/postgres/public/model"
	"stockbacktest/internal/domain"
	"stockbacktest/internal/logger"
	"stockbacktest/internal/repository"
	l2_service "stockbacktest/internal/service/l2"
	"stockbacktest/internal/util"
)

// PreprocessHandler computes ranking scores for a range of months and
// upserts them, so later rankings read precomputed rows instead of
// rescoring the source data on every request.
type PreprocessHandler struct {
	Db                     *sql.DB
	RankingService         l2_service.RankingService
	MonthlyScoreRepository repository.MonthlyScoreRepository
}

type PreprocessInput struct {
	StartMonth int
	StartYear  int
	EndMonth   int
	EndYear    int

	// Symbols restricts the scored universe when set.
	Symbols []string
}

// Preprocess walks the months in order, scoring each and skipping the ones
// with no source data. All writes commit together.
func (h PreprocessHandler) Preprocess(ctx context.Context, in PreprocessInput) error {
	log := logger.FromContext(ctx)

	if in.StartMonth < 1 || in.StartMonth > 12 || in.EndMonth < 1 || in.EndMonth > 12 {
		return fmt.Errorf("month out of range: start %d, end %d", in.StartMonth, in.EndMonth)
	}
	if in.EndYear < in.StartYear || (in.EndYear == in.StartYear && in.EndMonth < in.StartMonth) {
		return fmt.Errorf("preprocess range %d/%d to %d/%d is empty",
			in.StartMonth, in.StartYear, in.EndMonth, in.EndYear)
	}

	tx, err := h.Db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	months, rows := 0, 0
	month, year := in.StartMonth, in.StartYear
	for year < in.EndYear || (year == in.EndYear && month <= in.EndMonth) {
		scores, err := h.RankingService.ComputeScores(ctx, month, year, in.Symbols, "")
		if err != nil {
			return fmt.Errorf("failed to score %d/%d: %w", month, year, err)
		}
		if len(scores) == 0 {
			log.Warnf("no scores for %d/%d, skipping", month, year)
			month, year = util.NextMonth(month, year)
			continue
		}

		if err := h.MonthlyScoreRepository.Add(tx, scoreModels(scores)); err != nil {
			return err
		}

		months++
		rows += len(scores)
		month, year = util.NextMonth(month, year)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit scores: %w", err)
	}

	log.Infof("preprocessed %d rows across %d months", rows, months)
	return nil
}

func scoreModels(scores []domain.MonthlyScore) []model.MonthlyScore {
	out := make([]model.MonthlyScore, len(scores))
	for i, score := range scores {
		out[i] = model.MonthlyScore{
			Symbol:             score.Symbol,
			Month:              int32(score.Month),
			Year:               int32(score.Year),
			FundNetBuying:      score.FundNetBuying,
			NumberFundHoldings: score.NumberFundHoldings,
			NetFundChange:      score.NetFundChange,
			Roe:                score.Roe,
			RevenueGrowth:      score.RevenueGrowth,
			DebtToEquity:       score.DebtToEquity,
			CashRatio:          score.CashRatio,
			Pe:                 score.Pe,
			InstitutionalScore: score.InstitutionalScore,
			FinancialScore:     score.FinancialScore,
			TotalScore:         score.TotalScore,
		}
	}
	return out
}

package l2_service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"stockbacktest/internal/db/models/postgres/public/model"
	"stockbacktest/internal/domain"
	"stockbacktest/internal/logger"
	"stockbacktest/internal/repository"
	"stockbacktest/internal/util"

	"github.com/montanaflynn/stats"
)

// RankingService scores every stock in a universe for a calendar month and
// orders them best first. Scores blend fund ownership flows from the month
// before with fundamentals from the last reported quarter, so a ranking for
// (month, year) only uses information available when that month begins.
type RankingService interface {
	// GetRanking returns the universe ordered by total score, best first.
	// Preprocessed scores are served when they exist and no custom
	// expression is given; otherwise scores are computed from source data.
	GetRanking(ctx context.Context, month, year int, symbols []string, scoringExpression string) ([]domain.RankedStock, error)
	// ComputeScores builds the full score rows for one month from fund
	// holdings and financial reports, ignoring any preprocessed rows.
	ComputeScores(ctx context.Context, month, year int, symbols []string, scoringExpression string) ([]domain.MonthlyScore, error)
}

type rankingServiceHandler struct {
	FundHoldingRepository     repository.FundHoldingRepository
	FinancialReportRepository repository.FinancialReportRepository
	MonthlyScoreRepository    repository.MonthlyScoreRepository
	Weights                   domain.ScoreWeights
}

func NewRankingService(
	fundHoldingRepository repository.FundHoldingRepository,
	financialReportRepository repository.FinancialReportRepository,
	monthlyScoreRepository repository.MonthlyScoreRepository,
	weights domain.ScoreWeights,
) RankingService {
	return rankingServiceHandler{
		FundHoldingRepository:     fundHoldingRepository,
		FinancialReportRepository: financialReportRepository,
		MonthlyScoreRepository:    monthlyScoreRepository,
		Weights:                   weights,
	}
}

func (h rankingServiceHandler) GetRanking(ctx context.Context, month, year int, symbols []string, scoringExpression string) ([]domain.RankedStock, error) {
	if scoringExpression == "" && h.MonthlyScoreRepository != nil {
		preprocessed, err := h.MonthlyScoreRepository.List(month, year)
		if err != nil {
			return nil, err
		}
		ranking := rankingFromScores(preprocessed, symbols)
		if len(ranking) > 0 {
			return ranking, nil
		}
	}

	scores, err := h.ComputeScores(ctx, month, year, symbols, scoringExpression)
	if err != nil {
		return nil, err
	}

	ranking := make([]domain.RankedStock, len(scores))
	for i, score := range scores {
		ranking[i] = domain.RankedStock{
			Symbol: score.Symbol,
			Score:  score.TotalScore,
		}
	}

	return ranking, nil
}

func (h rankingServiceHandler) ComputeScores(ctx context.Context, month, year int, symbols []string, scoringExpression string) ([]domain.MonthlyScore, error) {
	log := logger.FromContext(ctx)

	fundMonth, fundYear := util.LastMonth(month, year)
	priorFundMonth, priorFundYear := util.LastMonth(fundMonth, fundYear)
	reportQuarter, reportYear := util.LastQuarter(month, year)
	priorQuarter, priorQuarterYear := util.PrevQuarter(reportQuarter, reportYear)

	log.Infof("scoring %d/%d using fund holdings from %d/%d and reports from Q%d %d",
		month, year, fundMonth, fundYear, reportQuarter, reportYear)

	holdings, err := h.FundHoldingRepository.List(fundMonth, fundYear)
	if err != nil {
		return nil, err
	}
	priorHoldings, err := h.FundHoldingRepository.List(priorFundMonth, priorFundYear)
	if err != nil {
		return nil, err
	}
	reports, err := h.FinancialReportRepository.List(reportQuarter, reportYear)
	if err != nil {
		return nil, err
	}
	priorReports, err := h.FinancialReportRepository.List(priorQuarter, priorQuarterYear)
	if err != nil {
		return nil, err
	}

	if len(symbols) == 0 {
		symbols = symbolsFromHoldings(holdings, priorHoldings)
		if len(symbols) == 0 {
			symbols = symbolsFromReports(reports, priorReports)
		}
	}
	symbols = dedupeSymbols(symbols)

	if len(holdings) == 0 && len(priorHoldings) == 0 && len(reports) == 0 && len(priorReports) == 0 {
		log.Warnf("no fund holdings or financial reports cover %d/%d, skipping", month, year)
		return []domain.MonthlyScore{}, nil
	}

	institutional := institutionalMetricsFor(symbols, holdings, priorHoldings)
	financial := financialMetricsFor(symbols, reports, priorReports)

	rows := make([]domain.MonthlyScore, len(symbols))
	hasReports := make([]bool, len(symbols))
	for i, symbol := range symbols {
		row := domain.MonthlyScore{
			Symbol: symbol,
			Month:  month,
			Year:   year,
		}

		m := institutional[symbol]
		row.FundNetBuying = m.fundNetBuying
		row.NumberFundHoldings = m.numberFundHoldings
		row.NetFundChange = m.netFundChange

		if f, ok := financial[symbol]; ok {
			row.Roe = f.roe
			row.RevenueGrowth = f.revenueGrowth
			row.DebtToEquity = f.debtToEquity
			row.CashRatio = f.cashRatio
			row.Pe = f.pe
			hasReports[i] = true
		}

		rows[i] = row
	}

	err = blendScores(rows, hasReports, h.Weights, scoringExpression)
	if err != nil {
		return nil, err
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalScore != rows[j].TotalScore {
			return rows[i].TotalScore > rows[j].TotalScore
		}
		return rows[i].Symbol < rows[j].Symbol
	})

	return rows, nil
}

type institutionalMetrics struct {
	fundNetBuying      float64
	numberFundHoldings float64
	netFundChange      float64
}

type financialMetrics struct {
	roe           float64
	revenueGrowth float64
	debtToEquity  float64
	cashRatio     float64
	pe            float64
}

// institutionalMetricsFor derives the fund ownership metrics per symbol.
// A symbol without holdings in both months gets a zero row, so it still
// participates in normalization.
func institutionalMetricsFor(symbols []string, holdings, priorHoldings []model.FundHolding) map[string]institutionalMetrics {
	bySymbol := groupHoldingsBySymbol(holdings)
	priorBySymbol := groupHoldingsBySymbol(priorHoldings)

	metrics := make(map[string]institutionalMetrics, len(symbols))
	for _, symbol := range symbols {
		current := bySymbol[symbol]
		prior := priorBySymbol[symbol]
		if len(current) == 0 || len(prior) == 0 {
			metrics[symbol] = institutionalMetrics{}
			continue
		}

		metrics[symbol] = institutionalMetrics{
			fundNetBuying:      fundNetBuying(current, prior),
			numberFundHoldings: float64(len(current)),
			netFundChange:      netFundChange(current, prior),
		}
	}

	return metrics
}

// fundNetBuying is the relative change in the total value funds hold in
// the symbol. A zero prior value means the position is too new to compare.
func fundNetBuying(current, prior []model.FundHolding) float64 {
	currentValue := 0.0
	for _, holding := range current {
		currentValue += holding.Value
	}
	priorValue := 0.0
	for _, holding := range prior {
		priorValue += holding.Value
	}
	if priorValue == 0 {
		return 0
	}
	return (currentValue - priorValue) / priorValue
}

// netFundChange counts funds that grew their position minus funds that
// shrank it. Funds appearing or disappearing between months count against
// a zero value on the missing side.
func netFundChange(current, prior []model.FundHolding) float64 {
	currentByFund := map[string]float64{}
	for _, holding := range current {
		currentByFund[holding.FundCode] += holding.Value
	}
	priorByFund := map[string]float64{}
	for _, holding := range prior {
		priorByFund[holding.FundCode] += holding.Value
	}

	fundCodes := map[string]struct{}{}
	for code := range currentByFund {
		fundCodes[code] = struct{}{}
	}
	for code := range priorByFund {
		fundCodes[code] = struct{}{}
	}

	change := 0
	for code := range fundCodes {
		switch {
		case currentByFund[code] > priorByFund[code]:
			change++
		case currentByFund[code] < priorByFund[code]:
			change--
		}
	}

	return float64(change)
}

// financialMetricsFor derives fundamentals per symbol. Symbols missing a
// report in either quarter are left out entirely; their financial score
// is zero.
func financialMetricsFor(symbols []string, reports, priorReports []model.FinancialReport) map[string]financialMetrics {
	bySymbol := map[string]model.FinancialReport{}
	for _, report := range reports {
		bySymbol[report.Symbol] = report
	}
	priorBySymbol := map[string]model.FinancialReport{}
	for _, report := range priorReports {
		priorBySymbol[report.Symbol] = report
	}

	metrics := map[string]financialMetrics{}
	for _, symbol := range symbols {
		report, ok := bySymbol[symbol]
		if !ok {
			continue
		}
		priorReport, ok := priorBySymbol[symbol]
		if !ok {
			continue
		}

		metrics[symbol] = financialMetrics{
			roe:           report.Roe,
			revenueGrowth: revenueGrowth(report, priorReport),
			debtToEquity:  report.DebtToEquity,
			cashRatio:     cashRatio(report),
			pe:            report.Pe,
		}
	}

	return metrics
}

func revenueGrowth(report, priorReport model.FinancialReport) float64 {
	if priorReport.Revenue == 0 {
		return 0
	}
	return (report.Revenue - priorReport.Revenue) / priorReport.Revenue * 100
}

func cashRatio(report model.FinancialReport) float64 {
	if report.Liabilities == 0 {
		return 0
	}
	return report.Cash / report.Liabilities
}

// blendScores fills in the three score fields on every row. Institutional
// and financial metrics are min-max normalized to [0, 1] within the month,
// then combined with the configured weights. When a custom expression is
// given it replaces the weighted total, reading the same normalized values.
func blendScores(rows []domain.MonthlyScore, hasReports []bool, weights domain.ScoreWeights, scoringExpression string) error {
	n := len(rows)

	fundNetBuyingRaw := make([]float64, n)
	numberFundHoldingsRaw := make([]float64, n)
	netFundChangeRaw := make([]float64, n)
	for i, row := range rows {
		fundNetBuyingRaw[i] = row.FundNetBuying
		numberFundHoldingsRaw[i] = row.NumberFundHoldings
		netFundChangeRaw[i] = row.NetFundChange
	}
	fundNetBuyingNorm := minMaxNormalize(fundNetBuyingRaw)
	numberFundHoldingsNorm := minMaxNormalize(numberFundHoldingsRaw)
	netFundChangeNorm := minMaxNormalize(netFundChangeRaw)

	// financial columns normalize over the rows that actually have
	// reports, then scatter back; rows without reports stay at zero
	reported := []int{}
	for i, ok := range hasReports {
		if ok {
			reported = append(reported, i)
		}
	}

	roeNorm := make([]float64, n)
	revenueGrowthNorm := make([]float64, n)
	debtToEquityNorm := make([]float64, n)
	cashRatioNorm := make([]float64, n)
	peScoreNorm := make([]float64, n)
	if len(reported) > 0 {
		roeRaw := make([]float64, 0, len(reported))
		revenueGrowthRaw := make([]float64, 0, len(reported))
		debtToEquityRaw := make([]float64, 0, len(reported))
		cashRatioRaw := make([]float64, 0, len(reported))
		peScoreRaw := make([]float64, 0, len(reported))
		for _, i := range reported {
			row := rows[i]
			roeRaw = append(roeRaw, row.Roe)
			revenueGrowthRaw = append(revenueGrowthRaw, row.RevenueGrowth)
			debtToEquityRaw = append(debtToEquityRaw, clamp(row.DebtToEquity, 0, 2))
			cashRatioRaw = append(cashRatioRaw, row.CashRatio)
			peScoreRaw = append(peScoreRaw, peScore(row.RevenueGrowth, row.Pe))
		}

		for k, v := range minMaxNormalize(roeRaw) {
			roeNorm[reported[k]] = v
		}
		for k, v := range minMaxNormalize(revenueGrowthRaw) {
			revenueGrowthNorm[reported[k]] = v
		}
		for k, v := range minMaxNormalize(debtToEquityRaw) {
			debtToEquityNorm[reported[k]] = v
		}
		for k, v := range meanProximityNormalize(cashRatioRaw) {
			cashRatioNorm[reported[k]] = v
		}
		for k, v := range minMaxNormalize(peScoreRaw) {
			peScoreNorm[reported[k]] = v
		}
	}

	for i := range rows {
		institutionalScore := weights.FundNetBuying*fundNetBuyingNorm[i] +
			weights.NumberFundHoldings*numberFundHoldingsNorm[i] +
			weights.NetFundChange*netFundChangeNorm[i]

		financialScore := 0.0
		if hasReports[i] {
			financialScore = weights.Roe*roeNorm[i] +
				weights.RevenueGrowth*revenueGrowthNorm[i] +
				weights.DebtToEquity*debtToEquityNorm[i] +
				weights.CashRatio*cashRatioNorm[i] +
				weights.PeScore*peScoreNorm[i]
		}

		rows[i].InstitutionalScore = institutionalScore
		rows[i].FinancialScore = financialScore
		rows[i].TotalScore = weights.Institutional*institutionalScore + weights.Financial*financialScore
	}

	if scoringExpression != "" {
		for i := range rows {
			metrics := map[string]float64{
				"fund_net_buying":      fundNetBuyingNorm[i],
				"number_fund_holdings": numberFundHoldingsNorm[i],
				"net_fund_change":      netFundChangeNorm[i],
				"roe":                  roeNorm[i],
				"revenue_growth":       revenueGrowthNorm[i],
				"debt_to_equity":       debtToEquityNorm[i],
				"cash_ratio":           cashRatioNorm[i],
				"pe_score":             peScoreNorm[i],
			}
			value, err := EvaluateScoringExpression(scoringExpression, metrics)
			if err != nil {
				return fmt.Errorf("failed to score %s: %w", rows[i].Symbol, err)
			}
			rows[i].TotalScore = value
		}
	}

	return nil
}

// peScore rewards earnings multiples that sit below revenue growth. It is
// computed on raw values and normalized afterwards like any other metric.
func peScore(revenueGrowth, pe float64) float64 {
	if revenueGrowth == 0 {
		return 0
	}
	score := (revenueGrowth - pe) / revenueGrowth
	if score < 0 {
		return 0
	}
	return score
}

// minMaxNormalize maps values onto [0, 1]. A column where every value is
// equal carries no ordering information and normalizes to zero.
func minMaxNormalize(values []float64) []float64 {
	normalized := make([]float64, len(values))
	if len(values) == 0 {
		return normalized
	}

	minValue, err := stats.Min(values)
	if err != nil {
		return normalized
	}
	maxValue, err := stats.Max(values)
	if err != nil || maxValue == minValue {
		return normalized
	}

	for i, v := range values {
		normalized[i] = (v - minValue) / (maxValue - minValue)
	}
	return normalized
}

// meanProximityNormalize scores values by closeness to the column mean,
// 1 at the mean and falling off per standard deviation. Columns with no
// spread normalize to zero like any other degenerate column.
func meanProximityNormalize(values []float64) []float64 {
	normalized := make([]float64, len(values))
	if len(values) < 2 {
		return normalized
	}

	mean, err := stats.Mean(values)
	if err != nil {
		return normalized
	}
	stdev, err := stats.StandardDeviationSample(values)
	if err != nil || stdev == 0 {
		return normalized
	}

	for i, v := range values {
		normalized[i] = clamp(1-math.Abs(v-mean)/stdev, 0, 1)
	}
	return normalized
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func groupHoldingsBySymbol(holdings []model.FundHolding) map[string][]model.FundHolding {
	grouped := map[string][]model.FundHolding{}
	for _, holding := range holdings {
		grouped[holding.Symbol] = append(grouped[holding.Symbol], holding)
	}
	return grouped
}

func symbolsFromHoldings(holdings, priorHoldings []model.FundHolding) []string {
	seen := map[string]struct{}{}
	symbols := []string{}
	for _, holding := range holdings {
		if _, ok := seen[holding.Symbol]; !ok {
			seen[holding.Symbol] = struct{}{}
			symbols = append(symbols, holding.Symbol)
		}
	}
	for _, holding := range priorHoldings {
		if _, ok := seen[holding.Symbol]; !ok {
			seen[holding.Symbol] = struct{}{}
			symbols = append(symbols, holding.Symbol)
		}
	}
	return symbols
}

func symbolsFromReports(reports, priorReports []model.FinancialReport) []string {
	seen := map[string]struct{}{}
	symbols := []string{}
	for _, report := range reports {
		if _, ok := seen[report.Symbol]; !ok {
			seen[report.Symbol] = struct{}{}
			symbols = append(symbols, report.Symbol)
		}
	}
	for _, report := range priorReports {
		if _, ok := seen[report.Symbol]; !ok {
			seen[report.Symbol] = struct{}{}
			symbols = append(symbols, report.Symbol)
		}
	}
	return symbols
}

func dedupeSymbols(symbols []string) []string {
	seen := map[string]struct{}{}
	deduped := make([]string, 0, len(symbols))
	for _, symbol := range symbols {
		if _, ok := seen[symbol]; ok {
			continue
		}
		seen[symbol] = struct{}{}
		deduped = append(deduped, symbol)
	}
	sort.Strings(deduped)
	return deduped
}

func rankingFromScores(scores []model.MonthlyScore, symbols []string) []domain.RankedStock {
	var requested map[string]struct{}
	if len(symbols) > 0 {
		requested = make(map[string]struct{}, len(symbols))
		for _, symbol := range symbols {
			requested[symbol] = struct{}{}
		}
	}

	ranking := []domain.RankedStock{}
	for _, score := range scores {
		if requested != nil {
			if _, ok := requested[score.Symbol]; !ok {
				continue
			}
		}
		ranking = append(ranking, domain.RankedStock{
			Symbol: score.Symbol,
			Score:  score.TotalScore,
		})
	}

	return ranking
}

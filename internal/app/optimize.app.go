package app

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"stockbacktest/internal/calculator"
	"stockbacktest/internal/domain"
	"stockbacktest/internal/logger"
	"stockbacktest/internal/repository"
)

// Every sampled fraction sits on a 0.025 grid, handled in thousandths so
// the values survive the round trip into a scoring expression string.
const gridStepMilli = 25

var trialWeightSchemes = []domain.WeightScheme{
	domain.WeightSchemeSoftmax,
	domain.WeightSchemeEqual,
	domain.WeightSchemeLinear,
}

// OptimizeHandler searches the risk-exit parameter space with repeated
// backtests. Trials persist in a local study database, so an interrupted
// search resumes at the trial number it stopped at and a rerun with the
// same seed draws the same parameter sequence.
type OptimizeHandler struct {
	Backtest        BacktestHandler
	TrialRepository repository.TrialRepository
}

type OptimizeInput struct {
	StudyName    string
	Start        time.Time
	End          time.Time
	NumTrials    int
	Seed         int64
	RiskFreeRate float64

	// BaseParams supplies the knobs the search leaves fixed: balance,
	// release day, slot count, max volume, trading fee.
	BaseParams domain.BacktestParams
}

// Optimize runs the remaining trials of the study and returns its best
// trial overall, which may come from an earlier invocation.
func (h OptimizeHandler) Optimize(ctx context.Context, in OptimizeInput) (*domain.Trial, error) {
	log := logger.FromContext(ctx)

	studyID, err := h.TrialRepository.GetOrCreateStudy(in.StudyName)
	if err != nil {
		return nil, err
	}

	done, err := h.TrialRepository.CountTrials(studyID)
	if err != nil {
		return nil, err
	}

	remaining := in.NumTrials - done
	if remaining < 0 {
		remaining = 0
	}
	log.Infof("study %s has %d of %d trials, running %d more", in.StudyName, done, in.NumTrials, remaining)

	rng := rand.New(rand.NewSource(in.Seed))
	// burn the draws consumed by completed trials so a resumed study
	// continues the same parameter sequence
	for i := 0; i < done; i++ {
		drawTrial(rng, in.BaseParams)
	}

	for i := 0; i < remaining; i++ {
		number := done + i
		draw := drawTrial(rng, in.BaseParams)

		result, err := h.Backtest.Run(ctx, BacktestInput{
			PortfolioName:     fmt.Sprintf("backtest_trial_%d", number),
			Start:             in.Start,
			End:               in.End,
			Params:            draw.params,
			ScoringExpression: draw.expression,
		})
		if err != nil {
			return nil, fmt.Errorf("trial %d failed: %w", number, err)
		}

		evaluation, err := calculator.QuickEvaluate(result.Snapshots, in.RiskFreeRate)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate trial %d: %w", number, err)
		}

		value := objectiveValue(evaluation)
		err = h.TrialRepository.AddTrial(studyID, domain.Trial{
			Number:            number,
			TrailingStopLoss:  draw.params.TrailingStopLoss,
			TakeProfit:        draw.params.TakeProfit,
			WeightScheme:      draw.params.WeightScheme,
			ScoringExpression: draw.expression,
			Value:             value,
			Roi:               evaluation.Roi,
			Sharpe:            evaluation.SharpeRatio,
			MaxDrawdown:       evaluation.MaxDrawdown,
		})
		if err != nil {
			return nil, err
		}

		log.Infof("trial %d: tsl=%.3f tp=%.3f scheme=%s value=%.4f",
			number, draw.params.TrailingStopLoss, draw.params.TakeProfit, draw.params.WeightScheme, value)
	}

	best, err := h.TrialRepository.BestTrial(studyID)
	if err != nil {
		return nil, err
	}
	if best == nil {
		return nil, fmt.Errorf("study %s has no completed trials", in.StudyName)
	}

	log.Infof("best trial %d: tsl=%.3f tp=%.3f scheme=%s value=%.4f",
		best.Number, best.TrailingStopLoss, best.TakeProfit, best.WeightScheme, best.Value)
	return best, nil
}

// trialDraw is one sampled point: risk-exit knobs on the params, scoring
// weights folded into an expression the ranking service evaluates. The
// expression also forces the trial past any preprocessed scores, which
// bake the default weights.
type trialDraw struct {
	params     domain.BacktestParams
	expression string
}

// drawTrial samples the search space: trailing stop and take profit in
// [0.05, 0.5], weight scheme categorical, institutional share in
// [0.025, 0.975], and scoring sub-weights under caps that keep each weight
// group summing to one. The two financial weights the search leaves free
// split whatever the sampled ones leave over.
func drawTrial(rng *rand.Rand, base domain.BacktestParams) trialDraw {
	params := base
	params.TrailingStopLoss = fractionValue(sampleGrid(rng, 50, 500))
	params.WeightScheme = trialWeightSchemes[rng.Intn(len(trialWeightSchemes))]
	params.TakeProfit = fractionValue(sampleGrid(rng, 50, 500))

	institutional := sampleGrid(rng, 25, 975)

	fundNetBuying := sampleGrid(rng, 50, 900)
	nfhHigh := min(900, 1000-fundNetBuying-gridStepMilli)
	numberFundHoldings := sampleGrid(rng, min(nfhHigh, 50), nfhHigh)
	netFundChange := 1000 - fundNetBuying - numberFundHoldings

	roe := sampleGrid(rng, 50, 500)
	revenueGrowth := sampleGrid(rng, 50, min(500, 1000-roe))
	peHigh := min(500, 1000-roe-revenueGrowth)
	peScore := sampleGrid(rng, min(peHigh, 50), peHigh)
	slack := 1000 - roe - revenueGrowth - peScore

	expression := fmt.Sprintf(
		"%s*(%s*fund_net_buying + %s*number_fund_holdings + %s*net_fund_change)"+
			" + %s*(%s*roe + %s*revenue_growth + %s*debt_to_equity + %s*cash_ratio + %s*pe_score)",
		fractionString(institutional),
		fractionString(fundNetBuying),
		fractionString(numberFundHoldings),
		fractionString(netFundChange),
		fractionString(1000-institutional),
		fractionString(roe),
		fractionString(revenueGrowth),
		halfFractionString(slack),
		halfFractionString(slack),
		fractionString(peScore),
	)

	return trialDraw{params: params, expression: expression}
}

// sampleGrid draws a grid point in [lo, hi] thousandths, bounds included.
func sampleGrid(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	n := (hi-lo)/gridStepMilli + 1
	return lo + rng.Intn(n)*gridStepMilli
}

func fractionValue(milli int) float64 {
	return float64(milli) / 1000
}

func fractionString(milli int) string {
	return strconv.FormatFloat(float64(milli)/1000, 'f', -1, 64)
}

func halfFractionString(milli int) string {
	return strconv.FormatFloat(float64(milli)/2000, 'f', -1, 64)
}

// objectiveValue scores a trial for maximization. Sharpe saturates at 3;
// drawdowns shallower than 5% score full marks and deeper than 20% score
// zero, linear in between.
func objectiveValue(evaluation *calculator.QuickEvaluation) float64 {
	var mddScore float64
	switch {
	case evaluation.MaxDrawdown >= -0.05:
		mddScore = 1.0
	case evaluation.MaxDrawdown <= -0.20:
		mddScore = 0.0
	default:
		mddScore = (0.2 + evaluation.MaxDrawdown) / 0.15
	}

	sharpeScore := evaluation.SharpeRatio / 3.0
	if sharpeScore > 1 {
		sharpeScore = 1.0
	}

	return 0.8*sharpeScore + 0.2*mddScore
}

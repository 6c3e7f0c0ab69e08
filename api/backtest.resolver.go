package api

import (
	"context"
	"fmt"
	"stockbacktest/internal/app"
	"stockbacktest/internal/calculator"
	"stockbacktest/internal/domain"
	"stockbacktest/internal/logger"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type BacktestRequest struct {
	Start             string   `json:"start"`
	End               string   `json:"end"`
	Name              string   `json:"name"`
	Symbols           []string `json:"symbols"`
	ScoringExpression string   `json:"scoringExpression"`

	// Optional overrides on top of the configured defaults.
	InitialBalance   *float64 `json:"initialBalance"`
	NumberOfStocks   *int     `json:"numberOfStocks"`
	TrailingStopLoss *float64 `json:"trailingStopLoss"`
	TakeProfit       *float64 `json:"takeProfit"`
	WeightScheme     *string  `json:"weightScheme"`
	ReleaseDay       *int     `json:"releaseDay"`
}

type BacktestResponse struct {
	Snapshots    []domain.DailySnapshot       `json:"snapshots"`
	Transactions []domain.Transaction         `json:"transactions"`
	Metrics      *calculator.EvaluationResult `json:"metrics"`
	Profile      *domain.Profile              `json:"profile"`
}

func (m ApiHandler) backtest(c *gin.Context) {
	profile := domain.NewProfile()
	ctx := context.WithValue(c.Request.Context(), domain.ContextProfileKey, profile)

	var requestBody BacktestRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	start, err := time.Parse("2006-01-02", requestBody.Start)
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}
	end, err := time.Parse("2006-01-02", requestBody.End)
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}
	if end.Before(start) {
		returnErrorJsonCode(fmt.Errorf("end date cannot be before start date"), c, 400)
		return
	}

	params, err := m.Config.DefaultBacktestParams()
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	if requestBody.InitialBalance != nil {
		params.InitialBalance = decimal.NewFromFloat(*requestBody.InitialBalance)
	}
	if requestBody.NumberOfStocks != nil {
		params.NumberOfStocks = *requestBody.NumberOfStocks
	}
	if requestBody.TrailingStopLoss != nil {
		params.TrailingStopLoss = *requestBody.TrailingStopLoss
	}
	if requestBody.TakeProfit != nil {
		params.TakeProfit = *requestBody.TakeProfit
	}
	if requestBody.ReleaseDay != nil {
		params.ReleaseDay = *requestBody.ReleaseDay
	}
	if requestBody.WeightScheme != nil {
		scheme, err := domain.ParseWeightScheme(*requestBody.WeightScheme)
		if err != nil {
			returnErrorJsonCode(err, c, 400)
			return
		}
		params.WeightScheme = scheme
	}
	profile.Mark("parse request")

	result, err := m.BacktestHandler.Run(ctx, app.BacktestInput{
		PortfolioName:     requestBody.Name,
		Start:             start,
		End:               end,
		Params:            params,
		Symbols:           requestBody.Symbols,
		ScoringExpression: requestBody.ScoringExpression,
	})
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to run backtest: %w", err), c)
		return
	}

	metrics, err := calculator.Evaluate(result.Snapshots, m.Config.RiskFreeRate)
	if err != nil {
		// Too few snapshots to evaluate is not fatal; the run itself stands.
		logger.FromContext(ctx).Warnf("failed to evaluate backtest: %s", err.Error())
	}
	profile.Mark("evaluate")
	profile.End()

	c.JSON(200, BacktestResponse{
		Snapshots:    result.Snapshots,
		Transactions: result.Portfolio.Transactions,
		Metrics:      metrics,
		Profile:      profile,
	})
}

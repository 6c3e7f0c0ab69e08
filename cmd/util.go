package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"stockbacktest/api"
	"stockbacktest/internal"
	"stockbacktest/internal/app"
	"stockbacktest/internal/config"
	"stockbacktest/internal/logger"
	"stockbacktest/internal/repository"
	l1_service "stockbacktest/internal/service/l1"
	l2_service "stockbacktest/internal/service/l2"
	interestrate "stockbacktest/pkg/interest_rate"
	"time"

	_ "github.com/lib/pq"
)

const defaultConfigPath = "config.yml"

// marketDataStart bounds the in-memory dataset. Quotes older than this are
// never ingested either.
var marketDataStart = time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)

func CloseDependencies(handler *api.ApiHandler) {
	if err := handler.OptimizeHandler.TrialRepository.Close(); err != nil {
		log.Fatalf("failed to close study db: %v", err)
	}
	if err := handler.Db.Close(); err != nil {
		log.Fatalf("failed to close db: %v", err)
	}
}

func InitializeDependencies(configPath string) (*api.ApiHandler, error) {
	ctx := context.Background()
	if configPath == "" {
		configPath = defaultConfigPath
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	dbConn, err := sql.Open("postgres", cfg.Db.ToConnectionStr())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	dailyQuoteRepository := repository.NewDailyQuoteRepository(dbConn)
	rankingService := l2_service.NewRankingService(
		repository.NewFundHoldingRepository(dbConn),
		repository.NewFinancialReportRepository(dbConn),
		repository.NewMonthlyScoreRepository(dbConn),
		cfg.ScoreWeights(),
	)

	marketDataService := l1_service.NewMarketDataService(dailyQuoteRepository)
	dataset, err := marketDataService.Load(ctx, nil, marketDataStart, time.Now().UTC())
	if err != nil {
		// A fresh database has no quotes yet; price ingestion still has
		// to be able to run.
		logger.FromContext(ctx).Warnf("failed to load market dataset: %s", err.Error())
	}

	trialRepository, err := repository.NewTrialRepository(cfg.Optimizer.StoragePath)
	if err != nil {
		return nil, err
	}

	var gptRepository repository.GptRepository
	if cfg.ChatGPTApiKey != "" {
		gptRepository, err = repository.NewGptRepository(cfg.ChatGPTApiKey)
		if err != nil {
			return nil, err
		}
	}

	backtestHandler := app.BacktestHandler{
		MarketDataset:  dataset,
		RankingService: rankingService,
	}

	apiHandler := &api.ApiHandler{
		Db:              dbConn,
		Config:          cfg,
		BacktestHandler: backtestHandler,
		OptimizeHandler: app.OptimizeHandler{
			Backtest:        backtestHandler,
			TrialRepository: trialRepository,
		},
		BenchmarkHandler: internal.BenchmarkHandler{
			DailyQuoteRepository: dailyQuoteRepository,
		},
		RankingService:       rankingService,
		GptRepository:        gptRepository,
		DailyQuoteRepository: dailyQuoteRepository,
	}

	return apiHandler, nil
}

// resolveRiskFreeRate asks the treasury yield curve for the current 1y
// rate, falling back to the configured rate when the fetch fails.
func resolveRiskFreeRate(ctx context.Context, cfg *config.Config) float64 {
	client := interestrate.NewClient()
	curve, err := client.GetYieldCurve(ctx, time.Now().UTC())
	if err != nil {
		logger.FromContext(ctx).Warnf("failed to fetch yield curve, using configured risk-free rate: %s", err.Error())
		return cfg.RiskFreeRate
	}
	rate := curve.AnnualRiskFreeRate()
	if rate == 0 {
		return cfg.RiskFreeRate
	}
	return rate
}

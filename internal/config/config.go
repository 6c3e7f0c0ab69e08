package config

import (
	"fmt"
	"os"
	"stockbacktest/internal/domain"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Db              DbConfig        `yaml:"db"`
	DataDir         string          `yaml:"data_dir"`
	ApiPort         int             `yaml:"api_port"`
	AdminSecret     string          `yaml:"admin_secret"`
	ChatGPTApiKey   string          `yaml:"chatgpt_api_key"`
	TradingFee      float64         `yaml:"trading_fee"`
	RiskFreeRate    float64         `yaml:"risk_free_rate"`
	BenchmarkSymbol string          `yaml:"benchmark_symbol"`
	Backtest        BacktestConfig  `yaml:"backtest"`
	Scoring         ScoringConfig   `yaml:"scoring"`
	Optimizer       OptimizerConfig `yaml:"optimizer"`
	Alpaca          AlpacaConfig    `yaml:"alpaca"`
}

type DbConfig struct {
	Host      string `yaml:"host"`
	User      string `yaml:"user"`
	Port      string `yaml:"port"`
	Password  string `yaml:"password"`
	Database  string `yaml:"database"`
	EnableSsl bool   `yaml:"enable_ssl"`
}

func (t DbConfig) ToConnectionStr() string {
	x := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s",
		t.Host, t.Port, t.User, t.Password, t.Database)
	if !t.EnableSsl {
		x += " sslmode=disable"
	}
	return x
}

type BacktestConfig struct {
	InitialBalance   float64 `yaml:"initial_balance"`
	ReleaseDay       int     `yaml:"release_day"`
	NumberOfStocks   int     `yaml:"number_of_stocks"`
	TrailingStopLoss float64 `yaml:"trailing_stop_loss"`
	TakeProfit       float64 `yaml:"take_profit"`
	WeightScheme     string  `yaml:"weight_scheme"`
	MaxVolume        int     `yaml:"max_volume"`
}

// ScoringConfig holds the blend weights applied to the normalized ranking
// metrics. InstitutionalWeight is the share of the institutional score in
// the total; the financial share is its complement.
type ScoringConfig struct {
	InstitutionalWeight float64 `yaml:"institutional_weight"`
	FundNetBuying       float64 `yaml:"fund_net_buying"`
	NumberFundHoldings  float64 `yaml:"number_fund_holdings"`
	NetFundChange       float64 `yaml:"net_fund_change"`
	Roe                 float64 `yaml:"roe"`
	RevenueGrowth       float64 `yaml:"revenue_growth"`
	DebtToEquity        float64 `yaml:"debt_to_equity"`
	CashRatio           float64 `yaml:"cash_ratio"`
	Pe                  float64 `yaml:"pe"`
}

type OptimizerConfig struct {
	StudyName   string `yaml:"study_name"`
	StoragePath string `yaml:"storage_path"`
	Trials      int    `yaml:"trials"`
	Seed        int64  `yaml:"seed"`
}

type AlpacaConfig struct {
	ApiKey    string `yaml:"api_key"`
	ApiSecret string `yaml:"api_secret"`
	Endpoint  string `yaml:"endpoint"`
}

// Load reads the yaml config at path, layering .env values and environment
// overrides on top. A missing config file is not an error so the binary can
// run from env vars alone.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	setDefaults(cfg)

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Db.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		cfg.Db.Port = v
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.Db.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Db.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.Db.Database = v
	}
	if v := os.Getenv("DATA_PATH"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("TRADING_FEE"); v != "" {
		if fee, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.TradingFee = fee
		}
	}
	if v := os.Getenv("API_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.ApiPort = port
		}
	}
	if v := os.Getenv("ADMIN_SECRET"); v != "" {
		cfg.AdminSecret = v
	}
	if v := os.Getenv("CHATGPT_API_KEY"); v != "" {
		cfg.ChatGPTApiKey = v
	}
	if v := os.Getenv("ALPACA_API_KEY"); v != "" {
		cfg.Alpaca.ApiKey = v
	}
	if v := os.Getenv("ALPACA_API_SECRET"); v != "" {
		cfg.Alpaca.ApiSecret = v
	}
	if v := os.Getenv("ALPACA_ENDPOINT"); v != "" {
		cfg.Alpaca.Endpoint = v
	}
}

func setDefaults(cfg *Config) {
	if cfg.Db.Host == "" {
		cfg.Db.Host = "localhost"
	}
	if cfg.Db.Port == "" {
		cfg.Db.Port = "5432"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	if cfg.ApiPort == 0 {
		cfg.ApiPort = 3010
	}
	if cfg.TradingFee == 0 {
		// 0.35% brokerage + 0.12% exchange and settlement
		cfg.TradingFee = 0.0047
	}
	if cfg.RiskFreeRate == 0 {
		cfg.RiskFreeRate = 0.045
	}
	if cfg.BenchmarkSymbol == "" {
		cfg.BenchmarkSymbol = "VNM"
	}

	if cfg.Backtest.InitialBalance == 0 {
		cfg.Backtest.InitialBalance = 1_000_000
	}
	if cfg.Backtest.ReleaseDay == 0 {
		cfg.Backtest.ReleaseDay = 15
	}
	if cfg.Backtest.NumberOfStocks == 0 {
		cfg.Backtest.NumberOfStocks = 5
	}
	if cfg.Backtest.TrailingStopLoss == 0 {
		cfg.Backtest.TrailingStopLoss = 0.15
	}
	if cfg.Backtest.TakeProfit == 0 {
		cfg.Backtest.TakeProfit = 0.25
	}
	if cfg.Backtest.WeightScheme == "" {
		cfg.Backtest.WeightScheme = "equal"
	}
	if cfg.Backtest.MaxVolume == 0 {
		cfg.Backtest.MaxVolume = 100_000
	}

	if cfg.Scoring.InstitutionalWeight == 0 {
		cfg.Scoring.InstitutionalWeight = 0.6
	}
	if cfg.Scoring.FundNetBuying == 0 {
		cfg.Scoring.FundNetBuying = 0.45
	}
	if cfg.Scoring.NumberFundHoldings == 0 {
		cfg.Scoring.NumberFundHoldings = 0.35
	}
	if cfg.Scoring.NetFundChange == 0 {
		cfg.Scoring.NetFundChange = 0.2
	}
	if cfg.Scoring.Roe == 0 {
		cfg.Scoring.Roe = 0.3
	}
	if cfg.Scoring.RevenueGrowth == 0 {
		cfg.Scoring.RevenueGrowth = 0.15
	}
	if cfg.Scoring.DebtToEquity == 0 {
		cfg.Scoring.DebtToEquity = 0.1
	}
	if cfg.Scoring.CashRatio == 0 {
		cfg.Scoring.CashRatio = 0.1
	}
	if cfg.Scoring.Pe == 0 {
		cfg.Scoring.Pe = 0.35
	}

	if cfg.Optimizer.StudyName == "" {
		cfg.Optimizer.StudyName = "backtest-params"
	}
	if cfg.Optimizer.StoragePath == "" {
		cfg.Optimizer.StoragePath = cfg.DataDir + "/optimizer.db"
	}
	if cfg.Optimizer.Trials == 0 {
		cfg.Optimizer.Trials = 100
	}
	if cfg.Optimizer.Seed == 0 {
		cfg.Optimizer.Seed = 42
	}

	if cfg.Alpaca.Endpoint == "" {
		cfg.Alpaca.Endpoint = "https://paper-api.alpaca.markets"
	}
}

// DefaultBacktestParams assembles the run parameters the config carries.
func (c *Config) DefaultBacktestParams() (domain.BacktestParams, error) {
	scheme, err := domain.ParseWeightScheme(c.Backtest.WeightScheme)
	if err != nil {
		return domain.BacktestParams{}, err
	}

	return domain.BacktestParams{
		InitialBalance:   decimal.NewFromFloat(c.Backtest.InitialBalance),
		ReleaseDay:       c.Backtest.ReleaseDay,
		NumberOfStocks:   c.Backtest.NumberOfStocks,
		TrailingStopLoss: c.Backtest.TrailingStopLoss,
		TakeProfit:       c.Backtest.TakeProfit,
		WeightScheme:     scheme,
		MaxVolume:        int64(c.Backtest.MaxVolume),
		TradingFee:       c.TradingFee,
	}, nil
}

// ScoreWeights maps the scoring section onto the ranking blend weights.
func (c *Config) ScoreWeights() domain.ScoreWeights {
	return domain.ScoreWeights{
		FundNetBuying:      c.Scoring.FundNetBuying,
		NumberFundHoldings: c.Scoring.NumberFundHoldings,
		NetFundChange:      c.Scoring.NetFundChange,
		Roe:                c.Scoring.Roe,
		RevenueGrowth:      c.Scoring.RevenueGrowth,
		DebtToEquity:       c.Scoring.DebtToEquity,
		CashRatio:          c.Scoring.CashRatio,
		PeScore:            c.Scoring.Pe,
		Institutional:      c.Scoring.InstitutionalWeight,
		Financial:          1 - c.Scoring.InstitutionalWeight,
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	yml := `
db:
  host: db.internal
  user: backtest
  password: hunter2
  database: quotes
trading_fee: 0.002
backtest:
  initial_balance: 500000
  release_day: 20
  number_of_stocks: 2
  weight_scheme: softmax
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "db.internal", cfg.Db.Host)
	require.Equal(t, "5432", cfg.Db.Port)
	require.Equal(t, 0.002, cfg.TradingFee)
	require.Equal(t, 20, cfg.Backtest.ReleaseDay)
	require.Equal(t, 2, cfg.Backtest.NumberOfStocks)
	require.Equal(t, "softmax", cfg.Backtest.WeightScheme)

	// untouched sections fall back to defaults
	require.Equal(t, 0.15, cfg.Backtest.TrailingStopLoss)
	require.Equal(t, 0.6, cfg.Scoring.InstitutionalWeight)

	// a missing file still yields a fully-defaulted config
	missing, err := Load(filepath.Join(dir, "missing.yml"))
	require.NoError(t, err)
	require.Equal(t, 0.0047, missing.TradingFee)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("DB_HOST", "override.internal")
	t.Setenv("TRADING_FEE", "0.001")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	require.Equal(t, "override.internal", cfg.Db.Host)
	require.Equal(t, 0.001, cfg.TradingFee)
}

func TestConnectionStr(t *testing.T) {
	db := DbConfig{Host: "h", Port: "5432", User: "u", Password: "p", Database: "d"}
	require.Equal(t, "host=h port=5432 user=u password=p dbname=d sslmode=disable", db.ToConnectionStr())

	db.EnableSsl = true
	require.Equal(t, "host=h port=5432 user=u password=p dbname=d", db.ToConnectionStr())
}

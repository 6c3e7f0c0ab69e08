package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"stockbacktest/internal/domain"
	"time"

	_ "modernc.org/sqlite"
)

// Trials are stored in a local sqlite file so an interrupted parameter search
// can resume where it left off instead of starting from trial zero.
const trialSchema = `
CREATE TABLE IF NOT EXISTS study (
    study_id   INTEGER PRIMARY KEY AUTOINCREMENT,
    name       TEXT NOT NULL UNIQUE,
    created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS trial (
    trial_id           INTEGER PRIMARY KEY AUTOINCREMENT,
    study_id           INTEGER NOT NULL REFERENCES study(study_id),
    number             INTEGER NOT NULL,
    trailing_stop_loss REAL NOT NULL,
    take_profit        REAL NOT NULL,
    weight_scheme      TEXT NOT NULL,
    scoring_expression TEXT NOT NULL DEFAULT '',
    value              REAL NOT NULL,
    roi                REAL NOT NULL,
    sharpe             REAL NOT NULL,
    max_drawdown       REAL NOT NULL,
    created_at         DATETIME NOT NULL,
    UNIQUE (study_id, number)
);

CREATE INDEX IF NOT EXISTS idx_trial_study_value ON trial(study_id, value DESC);
`

type TrialRepository interface {
	GetOrCreateStudy(name string) (int64, error)
	CountTrials(studyID int64) (int, error)
	AddTrial(studyID int64, trial domain.Trial) error
	BestTrial(studyID int64) (*domain.Trial, error)
	ListTrials(studyID int64) ([]domain.Trial, error)
	Close() error
}

type trialRepositoryHandler struct {
	Db *sql.DB
}

func NewTrialRepository(path string) (TrialRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open study db %q: %w", path, err)
	}
	// sqlite is single-writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(trialSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply study schema: %w", err)
	}

	return &trialRepositoryHandler{Db: db}, nil
}

func (h *trialRepositoryHandler) GetOrCreateStudy(name string) (int64, error) {
	_, err := h.Db.Exec(
		`INSERT INTO study (name, created_at) VALUES (?, ?) ON CONFLICT(name) DO NOTHING`,
		name, time.Now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create study %q: %w", name, err)
	}

	var id int64
	err = h.Db.QueryRow(`SELECT study_id FROM study WHERE name = ?`, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to look up study %q: %w", name, err)
	}

	return id, nil
}

func (h *trialRepositoryHandler) CountTrials(studyID int64) (int, error) {
	var n int
	err := h.Db.QueryRow(`SELECT COUNT(*) FROM trial WHERE study_id = ?`, studyID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count trials: %w", err)
	}
	return n, nil
}

func (h *trialRepositoryHandler) AddTrial(studyID int64, trial domain.Trial) error {
	_, err := h.Db.Exec(
		`INSERT INTO trial
			(study_id, number, trailing_stop_loss, take_profit, weight_scheme,
			 scoring_expression, value, roi, sharpe, max_drawdown, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		studyID,
		trial.Number,
		trial.TrailingStopLoss,
		trial.TakeProfit,
		string(trial.WeightScheme),
		trial.ScoringExpression,
		trial.Value,
		trial.Roi,
		trial.Sharpe,
		trial.MaxDrawdown,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record trial %d: %w", trial.Number, err)
	}
	return nil
}

// BestTrial returns the highest-value trial of the study, or nil if the study
// has no trials yet.
func (h *trialRepositoryHandler) BestTrial(studyID int64) (*domain.Trial, error) {
	row := h.Db.QueryRow(
		`SELECT number, trailing_stop_loss, take_profit, weight_scheme,
			scoring_expression, value, roi, sharpe, max_drawdown, created_at
		FROM trial
		WHERE study_id = ?
		ORDER BY value DESC, number ASC
		LIMIT 1`,
		studyID,
	)

	t, err := scanTrial(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query best trial: %w", err)
	}

	return t, nil
}

func (h *trialRepositoryHandler) ListTrials(studyID int64) ([]domain.Trial, error) {
	rows, err := h.Db.Query(
		`SELECT number, trailing_stop_loss, take_profit, weight_scheme,
			scoring_expression, value, roi, sharpe, max_drawdown, created_at
		FROM trial
		WHERE study_id = ?
		ORDER BY number ASC`,
		studyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list trials: %w", err)
	}
	defer rows.Close()

	out := []domain.Trial{}
	for rows.Next() {
		t, err := scanTrial(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trial row: %w", err)
		}
		out = append(out, *t)
	}

	return out, rows.Err()
}

func (h *trialRepositoryHandler) Close() error {
	return h.Db.Close()
}

func scanTrial(scan func(...interface{}) error) (*domain.Trial, error) {
	var (
		t      domain.Trial
		scheme string
	)
	err := scan(
		&t.Number,
		&t.TrailingStopLoss,
		&t.TakeProfit,
		&scheme,
		&t.ScoringExpression,
		&t.Value,
		&t.Roi,
		&t.Sharpe,
		&t.MaxDrawdown,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.WeightScheme = domain.WeightScheme(scheme)
	return &t, nil
}

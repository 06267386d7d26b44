package storage

// sqlite.go — persistencia de apuestas y las consultas de historial que
// consume el gate de riesgo. Una tabla única de apuestas: las consultas del
// gate (abiertas, pérdida diaria, racha, pico de bankroll) son agregados
// sobre las mismas filas que escribe el ejecutor.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Evansgit254/betting-expert-advisor/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS bets (
    id             TEXT PRIMARY KEY,
    market_id      TEXT NOT NULL,
    selection      TEXT NOT NULL,
    league         TEXT NOT NULL DEFAULT 'Unknown',
    home           TEXT NOT NULL DEFAULT 'Unknown',
    away           TEXT NOT NULL DEFAULT 'Unknown',
    odds           REAL NOT NULL,
    prob           REAL NOT NULL,
    ev             REAL NOT NULL DEFAULT 0,
    stake          REAL NOT NULL,
    outcome        TEXT NOT NULL DEFAULT 'open',
    profit         REAL NOT NULL DEFAULT 0,
    dry_run        INTEGER NOT NULL DEFAULT 0,
    placed_at      DATETIME NOT NULL,
    settled_at     DATETIME,
    bankroll_after REAL
);

CREATE INDEX IF NOT EXISTS idx_bets_outcome ON bets(outcome);
CREATE INDEX IF NOT EXISTS idx_bets_settled ON bets(settled_at DESC);
`

// SQLiteStore implementa ports.BetStore y ports.RiskHistory usando SQLite
// (pure Go, sin CGo).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore abre (o crea) la base de datos en la ruta dada y aplica el
// schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStore: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStore: apply schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// SaveBet registra una apuesta recién colocada con outcome "open".
func (s *SQLiteStore) SaveBet(ctx context.Context, bet domain.PlacedBet) error {
	c := bet.Candidate
	dryRun := 0
	if bet.DryRun {
		dryRun = 1
	}
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO bets
			(id, market_id, selection, league, home, away, odds, prob, ev, stake, outcome, dry_run, placed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		bet.ID, c.MarketID, c.Selection, c.League, c.Home, c.Away,
		c.Odds, c.Prob, c.EV, c.Stake, string(domain.OutcomeOpen), dryRun,
		bet.PlacedAt.UTC(),
	); err != nil {
		return fmt.Errorf("storage.SaveBet: insert %s: %w", bet.ID, err)
	}
	return nil
}

// SettleBet marca la apuesta con su resultado y profit realizados.
func (s *SQLiteStore) SettleBet(ctx context.Context, id string, outcome domain.Outcome, profit float64, settledAt time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE bets SET outcome = ?, profit = ?, settled_at = ? WHERE id = ?`,
		string(outcome), profit, settledAt.UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("storage.SettleBet: update %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("storage.SettleBet: bet %s not found", id)
	}
	return nil
}

// OpenBetCount devuelve cuántas apuestas siguen sin liquidar.
func (s *SQLiteStore) OpenBetCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bets WHERE outcome = ?`, string(domain.OutcomeOpen),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("storage.OpenBetCount: %w", err)
	}
	return n, nil
}

// DailyLoss devuelve la pérdida realizada del día (cantidad positiva),
// excluyendo dry-runs.
func (s *SQLiteStore) DailyLoss(ctx context.Context, day time.Time) (float64, error) {
	var loss sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(-profit), 0) FROM bets
		WHERE profit < 0
		  AND dry_run = 0
		  AND date(settled_at) = date(?)`,
		day.UTC(),
	).Scan(&loss)
	if err != nil {
		return 0, fmt.Errorf("storage.DailyLoss: %w", err)
	}
	return loss.Float64, nil
}

// RecentResults devuelve las últimas n apuestas liquidadas (win/loss), la
// más reciente primero. Incluye dry-runs con su flag: filtrarlos es decisión
// del circuit breaker, no del storage.
func (s *SQLiteStore) RecentResults(ctx context.Context, n int) ([]domain.BetResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT outcome, dry_run FROM bets
		WHERE outcome IN (?, ?)
		ORDER BY settled_at DESC
		LIMIT ?`,
		string(domain.OutcomeWin), string(domain.OutcomeLoss), n,
	)
	if err != nil {
		return nil, fmt.Errorf("storage.RecentResults: query: %w", err)
	}
	defer rows.Close()

	var results []domain.BetResult
	for rows.Next() {
		var outcome string
		var dryRun int
		if err := rows.Scan(&outcome, &dryRun); err != nil {
			return nil, fmt.Errorf("storage.RecentResults: scan: %w", err)
		}
		results = append(results, domain.BetResult{
			Won:    outcome == string(domain.OutcomeWin),
			DryRun: dryRun == 1,
		})
	}
	return results, rows.Err()
}

// PeakBankroll devuelve el bankroll máximo registrado en la ventana dada.
func (s *SQLiteStore) PeakBankroll(ctx context.Context, window time.Duration) (float64, error) {
	cutoff := time.Now().UTC().Add(-window)
	var peak sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `
		SELECT MAX(bankroll_after) FROM bets
		WHERE bankroll_after IS NOT NULL AND settled_at >= ?`,
		cutoff,
	).Scan(&peak)
	if err != nil {
		return 0, fmt.Errorf("storage.PeakBankroll: %w", err)
	}
	return peak.Float64, nil
}

// RecordBankroll anota el bankroll tras liquidar una apuesta, para la
// ventana de drawdown.
func (s *SQLiteStore) RecordBankroll(ctx context.Context, betID string, bankroll float64) error {
	if _, err := s.db.ExecContext(ctx,
		`UPDATE bets SET bankroll_after = ? WHERE id = ?`, bankroll, betID,
	); err != nil {
		return fmt.Errorf("storage.RecordBankroll: %w", err)
	}
	return nil
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

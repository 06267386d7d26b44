package domain

import "time"

// Outcome es el resultado de una apuesta liquidada.
type Outcome string

const (
	OutcomeOpen Outcome = "open"
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomeVoid Outcome = "void"
)

// ResultVoid es la etiqueta de resultado que anula un mercado.
const ResultVoid = "void"

// PlacedBet es una apuesta aceptada y enviada al ejecutor (real o paper).
type PlacedBet struct {
	ID        string
	Candidate Candidate
	PlacedAt  time.Time
	DryRun    bool
}

// SettledBet es el registro inmutable de una apuesta resuelta.
// Lo crea quien liquida (ejecutor o backtester); el análisis posterior solo lee.
type SettledBet struct {
	ID        string
	MarketID  string
	Selection string
	League    string

	Odds  float64
	Stake float64

	Outcome Outcome
	Profit  float64 // stake×(odds−1) si gana, −stake si pierde, 0 si void
	DryRun  bool

	PlacedAt  time.Time
	SettledAt time.Time

	// BankrollAfter es el bankroll tras aplicar Profit. Alimenta el cálculo
	// de drawdown del backtest.
	BankrollAfter float64
}

// BetResult es la vista mínima de una apuesta liquidada que consume el
// circuit breaker de pérdidas consecutivas.
type BetResult struct {
	Won    bool
	DryRun bool
}

// DailyStats acumula la actividad de una jornada del backtest.
type DailyStats struct {
	Date   time.Time
	Bets   int
	Wins   int
	Losses int
	Staked float64
	PnL    float64
	// BankrollEnd es el bankroll al cierre de la jornada.
	BankrollEnd float64
}

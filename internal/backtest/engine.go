package backtest

// engine.go — replay histórico en orden temporal a través de la misma lógica
// de selección que opera en vivo, con un único bankroll mutable que se
// arrastra entre decisiones. Determinista por construcción: dos ejecuciones
// sobre los mismos datos producen trayectorias de bankroll idénticas, que es
// lo que hace al backtest confiable como herramienta de evaluación.

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Evansgit254/betting-expert-advisor/internal/domain"
	"github.com/Evansgit254/betting-expert-advisor/internal/strategy"
)

// Backtester recorre fixtures históricos y simula la operativa completa.
// Una instancia = una ejecución: los acumuladores internos no se resetean,
// así que Run devuelve ErrEngineConsumed si se llama dos veces.
type Backtester struct {
	finder *strategy.Finder

	initial  decimal.Decimal
	bankroll decimal.Decimal

	betHistory []domain.SettledBet
	dailyStats []domain.DailyStats

	ran bool
}

// New crea un Backtester con el bankroll inicial dado y el finder que
// reproduce la selección en vivo.
func New(initialBankroll float64, finder *strategy.Finder) *Backtester {
	init := decimal.NewFromFloat(initialBankroll).Round(2)
	return &Backtester{
		finder:   finder,
		initial:  init,
		bankroll: init,
	}
}

// Bankroll devuelve el bankroll actual.
func (b *Backtester) Bankroll() float64 {
	v, _ := b.bankroll.Float64()
	return v
}

// History devuelve las apuestas liquidadas en orden de ejecución.
func (b *Backtester) History() []domain.SettledBet {
	return b.betHistory
}

// DailyStats devuelve los agregados por jornada.
func (b *Backtester) DailyStats() []domain.DailyStats {
	return b.dailyStats
}

// Run recorre los fixtures en orden temporal y devuelve el summary final.
//
// Contrato de fallos: fixtures nil es un bug del caller y devuelve
// ErrNilFixtures; datos vacíos o de mala calidad NO son error — producen un
// summary cero bien formado. Si la agregación final explota, se loguea y se
// devuelve un summary cero en lugar de tirar horas de simulación.
func (b *Backtester) Run(ctx context.Context, fixtures []domain.OddsRow) (domain.Summary, error) {
	if fixtures == nil {
		return domain.Summary{}, domain.ErrNilFixtures
	}
	if b.ran {
		return domain.Summary{}, domain.ErrEngineConsumed
	}
	b.ran = true

	slog.Info("backtest starting",
		"fixtures", len(fixtures),
		"initial_bankroll", b.initial.InexactFloat64(),
	)

	var (
		day      time.Time
		acc      domain.DailyStats
		depleted bool
	)

	for _, row := range fixtures {
		if err := ctx.Err(); err != nil {
			slog.Warn("backtest interrupted", "err", err)
			break
		}

		// Cambio de jornada: volcar los contadores del día anterior.
		if d := row.Day(); !day.IsZero() && !d.Equal(day) {
			b.flushDay(day, acc)
			acc = domain.DailyStats{}
			day = d
		} else if day.IsZero() {
			day = d
		}

		// El stake se calcula contra el bankroll actual, no el inicial:
		// el compounding realista depende de esto.
		candidates := b.finder.FindValueBets(ctx, []domain.OddsRow{row}, b.Bankroll())
		for _, c := range candidates {
			bet := b.settle(c, row)
			b.betHistory = append(b.betHistory, bet)
			accumulate(&acc, bet)

			if b.bankroll.LessThanOrEqual(decimal.Zero) {
				// Parada dura, no un suelo blando: el stake que causó la
				// depleción se aplica entero y el bankroll puede quedar
				// ligeramente negativo.
				slog.Warn("backtest: bankroll depleted, stopping",
					"bankroll", b.Bankroll(),
					"bets_placed", len(b.betHistory),
				)
				depleted = true
				break
			}
		}
		if depleted {
			break
		}
	}

	// La última jornada se vuelca al terminar el loop: no hay cruce de
	// frontera que la dispare.
	if !day.IsZero() && acc.Bets > 0 {
		b.flushDay(day, acc)
	}

	summary, err := summarize(b.initial, b.betHistory)
	if err != nil {
		slog.Error("backtest summary aggregation failed", "err", err)
		return domain.Summary{}, nil
	}

	slog.Info("backtest complete",
		"total_bets", summary.TotalBets,
		"win_rate", summary.WinRate,
		"total_pnl", summary.TotalPnL,
		"roi_pct", summary.ROI,
		"final_bankroll", b.Bankroll(),
	)
	return summary, nil
}

// settle liquida un candidato contra el resultado real de la fila y aplica
// el P&L al bankroll en decimal.
func (b *Backtester) settle(c domain.Candidate, row domain.OddsRow) domain.SettledBet {
	stake := decimal.NewFromFloat(c.Stake)

	var outcome domain.Outcome
	var profit decimal.Decimal
	switch {
	case row.Result == domain.ResultVoid:
		outcome = domain.OutcomeVoid
		profit = decimal.Zero
	case c.Selection == row.Result:
		outcome = domain.OutcomeWin
		profit = stake.Mul(decimal.NewFromFloat(c.Odds).Sub(decimal.NewFromInt(1))).Round(2)
	default:
		outcome = domain.OutcomeLoss
		profit = stake.Neg()
	}

	b.bankroll = b.bankroll.Add(profit)

	return domain.SettledBet{
		ID:            fmt.Sprintf("%s-%s", c.MarketID, c.Selection),
		MarketID:      c.MarketID,
		Selection:     c.Selection,
		League:        c.League,
		Odds:          c.Odds,
		Stake:         c.Stake,
		Outcome:       outcome,
		Profit:        profit.InexactFloat64(),
		DryRun:        true,
		PlacedAt:      row.Date,
		SettledAt:     row.Date,
		BankrollAfter: b.Bankroll(),
	}
}

// flushDay cierra los contadores de una jornada en dailyStats.
// Las jornadas sin apuestas aceptadas no generan fila.
func (b *Backtester) flushDay(day time.Time, acc domain.DailyStats) {
	if acc.Bets == 0 {
		return
	}
	acc.Date = day
	acc.BankrollEnd = b.Bankroll()
	b.dailyStats = append(b.dailyStats, acc)
	slog.Debug("backtest day closed",
		"date", day.Format("2006-01-02"),
		"bets", acc.Bets,
		"pnl", acc.PnL,
		"bankroll", acc.BankrollEnd,
	)
}

func accumulate(acc *domain.DailyStats, bet domain.SettledBet) {
	acc.Bets++
	switch bet.Outcome {
	case domain.OutcomeWin:
		acc.Wins++
	case domain.OutcomeLoss:
		acc.Losses++
	}
	acc.Staked += bet.Stake
	acc.PnL += bet.Profit
}

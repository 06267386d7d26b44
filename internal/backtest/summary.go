package backtest

// summary.go — agregación defensiva del informe final. Un fallo aquí después
// de horas de simulación no debe tumbar la ejecución: cualquier panic interno
// se captura, se loguea con contexto y el caller recibe un summary cero.

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	"github.com/Evansgit254/betting-expert-advisor/internal/domain"
)

// summarize calcula las estadísticas finales del historial completo.
// Con historial vacío devuelve el summary cero sin error.
func summarize(initial decimal.Decimal, bets []domain.SettledBet) (s domain.Summary, err error) {
	defer func() {
		if r := recover(); r != nil {
			s = domain.Summary{}
			err = fmt.Errorf("backtest.summarize: %v: %w", r, domain.ErrAggregation)
		}
	}()

	if len(bets) == 0 {
		return domain.Summary{}, nil
	}

	var (
		wins, losses int
		totalPnL     = decimal.Zero
		totalStake   = decimal.Zero
		sumOdds      float64
		returns      = make([]float64, 0, len(bets))
	)
	for _, bet := range bets {
		switch bet.Outcome {
		case domain.OutcomeWin:
			wins++
		case domain.OutcomeLoss:
			losses++
		}
		totalPnL = totalPnL.Add(decimal.NewFromFloat(bet.Profit))
		totalStake = totalStake.Add(decimal.NewFromFloat(bet.Stake))
		sumOdds += bet.Odds
		if bet.Stake > 0 {
			returns = append(returns, bet.Profit/bet.Stake)
		}
	}

	n := float64(len(bets))
	s = domain.Summary{
		TotalBets: len(bets),
		Wins:      wins,
		Losses:    losses,
		WinRate:   float64(wins) / n, // fracción 0–1
		TotalPnL:  totalPnL.InexactFloat64(),
		AvgOdds:   sumOdds / n,
		AvgStake:  totalStake.InexactFloat64() / n,
	}

	// ROI en escala 0–100. Sí, convive con WinRate en 0–1: los consumidores
	// existentes dependen de ambas escalas.
	if totalStake.IsPositive() {
		s.ROI = totalPnL.Div(totalStake).InexactFloat64() * 100
	}

	s.SharpeRatio = portfolioSharpe(returns)
	s.MaxDrawdown = maxDrawdown(initial, bets)
	return s, nil
}

// portfolioSharpe es el Sharpe a nivel de cartera:
// mean(profit/stake) / stdev(profit/stake) sobre la secuencia de apuestas.
// Distinto del Sharpe por apuesta de internal/risk.
func portfolioSharpe(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	mean := stat.Mean(returns, nil)
	sd := stat.StdDev(returns, nil)
	if sd == 0 {
		return 0
	}
	return mean / sd
}

// maxDrawdown devuelve min((bankroll_after − running_max)/running_max) sobre
// la secuencia de apuestas, como porcentaje negativo.
func maxDrawdown(initial decimal.Decimal, bets []domain.SettledBet) float64 {
	runningMax := initial.InexactFloat64()
	worst := 0.0
	for _, bet := range bets {
		if bet.BankrollAfter > runningMax {
			runningMax = bet.BankrollAfter
		}
		if runningMax <= 0 {
			continue
		}
		dd := (bet.BankrollAfter - runningMax) / runningMax
		if dd < worst {
			worst = dd
		}
	}
	return worst * 100
}

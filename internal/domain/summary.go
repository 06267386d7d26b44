package domain

// Summary es el informe final de un backtest. Es un schema estable que
// consumen los printers de consola y los dumps JSON: los nombres de campo y
// las unidades no se cambian.
//
// Ojo con las escalas: ROI va en 0–100 (porcentaje) mientras WinRate va en
// 0–1 (fracción). Es una inconsistencia heredada de los consumidores
// existentes y se mantiene a propósito.
type Summary struct {
	TotalBets int     `json:"total_bets"`
	Wins      int     `json:"wins"`
	Losses    int     `json:"losses"`
	WinRate   float64 `json:"win_rate"` // fracción 0–1
	TotalPnL  float64 `json:"total_pnl"`
	ROI       float64 `json:"roi"` // porcentaje 0–100
	AvgOdds   float64 `json:"avg_odds"`
	AvgStake  float64 `json:"avg_stake"`
	// SharpeRatio es el Sharpe de cartera: mean(profit/stake) / stdev(profit/stake)
	// sobre la secuencia de apuestas. No confundir con el Sharpe por apuesta.
	SharpeRatio float64 `json:"sharpe_ratio"`
	// MaxDrawdown es min((bankroll_after − running_max)/running_max) expresado
	// como porcentaje negativo.
	MaxDrawdown float64 `json:"max_drawdown"`
}

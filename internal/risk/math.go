package risk

// math.go — matemática pura de EV y Kelly.
//
// Todo cálculo que acaba tocando el bankroll pasa por decimal de punto fijo:
// el backtester suma miles de estos valores y la deriva binaria de float64
// se vuelve visible a nivel de céntimos.

import (
	"log/slog"
	"math"

	"github.com/shopspring/decimal"

	"github.com/Evansgit254/betting-expert-advisor/internal/domain"
)

const (
	// MinValidOdds es la cuota decimal mínima apostable.
	MinValidOdds = 1.01
	// MaxValidOdds es el techo de cordura para una cuota.
	MaxValidOdds = 1000.0
)

var one = decimal.NewFromInt(1)

// ExpectedValue calcula EV = p·(odds−1)·stake − (1−p)·stake, redondeado a
// 2 decimales (half-up). La probabilidad semánticamente válida es (0,1)
// exclusivo, pero aquí no se rechaza fuera de rango: pre-validar con
// ValidateBetParameters es responsabilidad del caller.
//
// Input numérico inservible (NaN, ±Inf) no aborta el escaneo: se loguea y
// devuelve 0 junto con ErrInvalidInput.
func ExpectedValue(prob, odds, stake float64) (float64, error) {
	if !finite(prob) || !finite(odds) || !finite(stake) {
		slog.Warn("expected value: non-numeric input",
			"prob", prob, "odds", odds, "stake", stake)
		return 0, domain.ErrInvalidInput
	}

	p := decimal.NewFromFloat(prob)
	o := decimal.NewFromFloat(odds)
	st := decimal.NewFromFloat(stake)

	win := p.Mul(o.Sub(one)).Mul(st)
	loss := one.Sub(p).Mul(st)
	ev, _ := win.Sub(loss).Round(2).Float64()
	return ev, nil
}

// Variance devuelve la varianza de la distribución de pago a dos resultados:
// gana (odds−1)·stake con probabilidad p, pierde stake con probabilidad 1−p.
func Variance(prob, odds, stake float64) float64 {
	if !finite(prob) || !finite(odds) || !finite(stake) {
		return 0
	}
	winPayoff := (odds - 1) * stake
	lossPayoff := -stake
	mean := prob*winPayoff + (1-prob)*lossPayoff
	return prob*math.Pow(winPayoff-mean, 2) + (1-prob)*math.Pow(lossPayoff-mean, 2)
}

// SharpeRatio devuelve EV/σ para una sola apuesta. Con varianza cero o EV
// cero devuelve 0 — la división por cero está guardada, no es un crash.
func SharpeRatio(prob, odds, stake float64) float64 {
	ev, err := ExpectedValue(prob, odds, stake)
	if err != nil || ev == 0 {
		return 0
	}
	v := Variance(prob, odds, stake)
	if v <= 0 {
		return 0
	}
	return ev / math.Sqrt(v)
}

// KellyStake calcula el stake de Kelly fraccional:
//
//	f* = (p·(odds−1) − (1−p)) / (odds−1)
//	stake = bankroll × f* × kellyFrac
//
// Sin edge (f* ≤ 0) devuelve 0. Valida prob ∈ (0,1), odds ≥ 1.01 y
// bankroll > 0; cualquier violación se loguea como warning y devuelve 0,
// nunca panic — es la pieza numéricamente más sensible del sistema y todo
// va en decimal de punto fijo.
func KellyStake(prob, odds, bankroll, kellyFrac float64) float64 {
	if !finite(prob) || !finite(odds) || !finite(bankroll) || !finite(kellyFrac) {
		slog.Warn("kelly stake: non-numeric input",
			"prob", prob, "odds", odds, "bankroll", bankroll)
		return 0
	}
	if prob <= 0 || prob >= 1 {
		slog.Warn("kelly stake: probability out of range", "prob", prob)
		return 0
	}
	if odds < MinValidOdds {
		slog.Warn("kelly stake: odds below minimum", "odds", odds, "min", MinValidOdds)
		return 0
	}
	if bankroll <= 0 {
		slog.Warn("kelly stake: non-positive bankroll", "bankroll", bankroll)
		return 0
	}

	p := decimal.NewFromFloat(prob)
	b := decimal.NewFromFloat(odds).Sub(one) // cuota neta
	q := one.Sub(p)

	edge := p.Mul(b).Sub(q)
	if edge.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	fraction := edge.Div(b)

	stake := decimal.NewFromFloat(bankroll).
		Mul(fraction).
		Mul(decimal.NewFromFloat(kellyFrac)).
		Round(2)
	out, _ := stake.Float64()
	return out
}

// StakeFromBankroll envuelve KellyStake con la fracción configurada y aplica
// después los topes de la casa: como máximo MaxStakeFraction del bankroll, y
// nunca más que el bankroll entero. El clamp en dos fases es deliberado: la
// función de Kelly es agnóstica de política; este wrapper impone las reglas.
func StakeFromBankroll(cfg Config, prob, odds, bankroll float64) float64 {
	stake := KellyStake(prob, odds, bankroll, cfg.KellyFraction)
	if stake <= 0 {
		return 0
	}

	maxStake := decimal.NewFromFloat(bankroll).
		Mul(decimal.NewFromFloat(cfg.MaxStakeFraction)).
		Round(2)
	st := decimal.NewFromFloat(stake)
	if st.GreaterThan(maxStake) {
		st = maxStake
	}
	br := decimal.NewFromFloat(bankroll)
	if st.GreaterThan(br) {
		st = br
	}
	out, _ := st.Float64()
	return out
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

package strategy

// finder.go — escaneo de filas (probabilidad, cuota) en busca de apuestas
// de valor. El mismo código decide en vivo y dentro del backtest: la
// fidelidad del backtest depende de que esta lógica sea idéntica.

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/Evansgit254/betting-expert-advisor/internal/domain"
	"github.com/Evansgit254/betting-expert-advisor/internal/ports"
	"github.com/Evansgit254/betting-expert-advisor/internal/risk"
	"github.com/shopspring/decimal"
)

// Config contiene los parámetros del finder.
type Config struct {
	// MinEV descarta candidatos con valor esperado por debajo.
	MinEV float64
	// MinOdds / MaxOdds acotan la banda de cuotas apostables.
	MinOdds float64
	MaxOdds float64
	// Adaptive activa el ajuste del umbral de EV según el ROI reciente.
	Adaptive bool
	// ROIWindow es el tamaño de la ventana rodante de ROI realizado.
	ROIWindow int
}

// DefaultConfig devuelve una configuración conservadora del finder.
func DefaultConfig() Config {
	return Config{
		MinEV:     0.05,
		MinOdds:   1.30,
		MaxOdds:   10.0,
		ROIWindow: 20,
	}
}

// evAdjustmentRange acota el ajuste adaptativo del umbral de EV (±0.02).
const evAdjustmentRange = 0.02

// Finder escanea tablas de filas y produce candidatos dimensionados.
type Finder struct {
	cfg       Config
	riskCfg   risk.Config
	history   ports.RiskHistory
	recentROI []float64
}

// NewFinder crea un Finder. history puede ser nil (backtest: el estado de
// riesgo queda en cero y los chequeos de historial no vetan nada).
func NewFinder(cfg Config, riskCfg risk.Config, history ports.RiskHistory) *Finder {
	return &Finder{cfg: cfg, riskCfg: riskCfg, history: history}
}

// RecordROI añade un ROI realizado a la ventana rodante del umbral adaptativo.
func (f *Finder) RecordROI(roi float64) {
	f.recentROI = append(f.recentROI, roi)
	if f.cfg.ROIWindow > 0 && len(f.recentROI) > f.cfg.ROIWindow {
		f.recentROI = f.recentROI[len(f.recentROI)-f.cfg.ROIWindow:]
	}
}

// FindValueBets evalúa cada fila y devuelve los candidatos aceptados,
// ordenados por EV descendente (orden estable: empates según el orden de
// entrada). Si no acepta ninguno, hace un re-escaneo diagnóstico que loguea
// los 5 mejores "casi" sin afectar al resultado (vacío).
func (f *Finder) FindValueBets(ctx context.Context, rows []domain.OddsRow, bankroll float64) []domain.Candidate {
	// El estado del gate se lee una vez por escaneo, no por fila: el escaneo
	// es un único punto de decisión atómico y el snapshot es suficiente.
	state := f.snapshot(ctx)
	minEV := f.adjustedMinEV()

	var candidates []domain.Candidate
	for _, row := range rows {
		c, ok := f.evaluate(row, bankroll, state, minEV)
		if !ok {
			continue
		}
		candidates = append(candidates, c)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].EV > candidates[j].EV
	})

	if len(candidates) == 0 && len(rows) > 0 {
		f.logNearMisses(rows, minEV)
	}
	return candidates
}

// evaluate aplica el algoritmo por fila: banda de cuotas → EV → stake → gate.
func (f *Finder) evaluate(row domain.OddsRow, bankroll float64, state risk.State, minEV float64) (domain.Candidate, bool) {
	if !row.HasPrice() {
		return domain.Candidate{}, false
	}
	if row.Odds < f.cfg.MinOdds || (f.cfg.MaxOdds > 0 && row.Odds > f.cfg.MaxOdds) {
		return domain.Candidate{}, false
	}

	ev, err := risk.ExpectedValue(row.Prob, row.Odds, 1.0)
	if err != nil || ev < minEV {
		return domain.Candidate{}, false
	}

	stake := risk.StakeFromBankroll(f.riskCfg, row.Prob, row.Odds, bankroll)
	if stake <= 0 {
		return domain.Candidate{}, false
	}

	expectedProfit, _ := decimal.NewFromFloat(stake).
		Mul(decimal.NewFromFloat(ev)).Round(2).Float64()
	c := domain.NewCandidate(row, ev, stake, expectedProfit)

	if v := risk.ValidateBet(f.riskCfg, c, bankroll, state); !v.Valid {
		slog.Debug("candidate rejected by validation",
			"market", c.MarketID, "odds", c.Odds, "prob", c.Prob,
			"stake", c.Stake, "reasons", v.Reasons)
		return domain.Candidate{}, false
	}
	return c, true
}

// snapshot lee el estado de riesgo una vez. Con history nil devuelve cero.
func (f *Finder) snapshot(ctx context.Context) risk.State {
	if f.history == nil {
		return risk.State{}
	}
	var state risk.State
	var err error
	if state.OpenBets, err = f.history.OpenBetCount(ctx); err != nil {
		slog.Warn("finder: open bet count unavailable", "err", err)
	}
	if state.DailyLoss, err = f.history.DailyLoss(ctx, time.Now().UTC()); err != nil {
		slog.Warn("finder: daily loss unavailable", "err", err)
	}
	if state.RecentResults, err = f.history.RecentResults(ctx, f.riskCfg.RecentResultsWindow); err != nil {
		slog.Warn("finder: recent results unavailable", "err", err)
	}
	if state.PeakBankroll, err = f.history.PeakBankroll(ctx, 30*24*time.Hour); err != nil {
		slog.Warn("finder: peak bankroll unavailable", "err", err)
	}
	return state
}

// adjustedMinEV devuelve el umbral de EV, ajustado por el ROI reciente si el
// modo adaptativo está activo. Buen ROI → sube (más selectivo); mal ROI →
// baja (busca más oportunidades). Controlador de feedback simple, acotado a
// ±0.02: no es una política aprendida.
func (f *Finder) adjustedMinEV() float64 {
	if !f.cfg.Adaptive || len(f.recentROI) == 0 {
		return f.cfg.MinEV
	}
	sum := 0.0
	for _, r := range f.recentROI {
		sum += r
	}
	avg := sum / float64(len(f.recentROI))

	adj := avg * 0.2
	if adj > evAdjustmentRange {
		adj = evAdjustmentRange
	}
	if adj < -evAdjustmentRange {
		adj = -evAdjustmentRange
	}
	return f.cfg.MinEV + adj
}

// logNearMisses recalcula el EV de todas las filas ignorando filtros y
// loguea el top 5, solo para visibilidad del operador. No toca el resultado.
func (f *Finder) logNearMisses(rows []domain.OddsRow, minEV float64) {
	type miss struct {
		row domain.OddsRow
		ev  float64
	}
	misses := make([]miss, 0, len(rows))
	for _, row := range rows {
		if row.Prob <= 0 || row.Odds <= 0 {
			continue
		}
		ev, err := risk.ExpectedValue(row.Prob, row.Odds, 1.0)
		if err != nil {
			continue
		}
		misses = append(misses, miss{row: row, ev: ev})
	}
	sort.SliceStable(misses, func(i, j int) bool { return misses[i].ev > misses[j].ev })

	top := misses
	if len(top) > 5 {
		top = misses[:5]
	}
	for _, m := range top {
		slog.Info("no value bets found — near miss",
			"market", m.row.MarketID,
			"selection", m.row.Selection,
			"odds", m.row.Odds,
			"prob", m.row.Prob,
			"ev", m.ev,
			"min_ev", minEV,
		)
	}
}

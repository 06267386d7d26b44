package risk

// limits.go — el gate de límites de riesgo.
//
// Cascada lineal de chequeos independientes, cada uno con veto de salida
// temprana y una razón concreta. No es un modelo de riesgo ponderado: cada
// razón es un string auditable para que el operador vea exactamente por qué
// se bloqueó una apuesta.

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Evansgit254/betting-expert-advisor/internal/domain"
)

// State es el snapshot del historial que el gate consume en el momento de la
// decisión. El core no posee estas cifras: las lee el caller del colaborador
// de persistencia (ports.RiskHistory) una vez por escaneo.
type State struct {
	OpenBets int
	// DailyLoss es la pérdida realizada hoy, como cantidad positiva.
	DailyLoss float64
	// RecentResults son las últimas apuestas liquidadas, la más reciente primero.
	RecentResults []domain.BetResult
	// PeakBankroll es el pico del bankroll en la ventana de drawdown.
	PeakBankroll float64
}

// Meta lleva los flags del candidato que modulan el gate. DryRun exime de los
// circuit breakers ligados al historial real (paper trading y backtests no
// deben disparar protecciones de producción).
type Meta struct {
	DryRun bool
}

// Decision es el resultado del gate. Una denegación no es un error: es el
// output esperado y correcto, con su razón y las alertas emitidas.
type Decision struct {
	Allowed bool
	Reason  string
	Alerts  []domain.Alert
}

// AlertSink recibe las alertas del gate. La consola lo implementa; nil lo
// silencia.
type AlertSink interface {
	Alert(ctx context.Context, a domain.Alert)
}

// Gate aplica los límites de riesgo configurados.
type Gate struct {
	cfg    Config
	alerts AlertSink
}

// NewGate crea un Gate. alerts puede ser nil.
func NewGate(cfg Config, alerts AlertSink) *Gate {
	return &Gate{cfg: cfg, alerts: alerts}
}

// Check evalúa si un stake candidato puede convertirse en apuesta.
// Los chequeos corren en orden fijo; el primero que falla deniega.
func (g *Gate) Check(ctx context.Context, stake, bankroll float64, state State, meta Meta) Decision {
	// 1. Forma básica: stake y bankroll positivos.
	if stake <= 0 {
		return g.deny(ctx, domain.AlertCritical,
			fmt.Sprintf("invalid stake: %.2f must be positive", stake))
	}
	if bankroll <= 0 {
		return g.deny(ctx, domain.AlertCritical,
			fmt.Sprintf("bankroll depleted: %.2f", bankroll))
	}

	// 2. Fracción máxima del bankroll.
	if maxStake := bankroll * g.cfg.MaxStakeFraction; stake > maxStake {
		return g.deny(ctx, domain.AlertWarning,
			fmt.Sprintf("stake %.2f exceeds max %.2f (%.0f%% of bankroll)",
				stake, maxStake, g.cfg.MaxStakeFraction*100))
	}

	// 3. Límite de pérdida diaria ya alcanzado.
	if g.cfg.DailyLossLimit > 0 && state.DailyLoss >= g.cfg.DailyLossLimit {
		return g.deny(ctx, domain.AlertCritical,
			fmt.Sprintf("daily loss limit reached: %.2f of %.2f lost today",
				state.DailyLoss, g.cfg.DailyLossLimit))
	}

	// 4. Preventivo: la pérdida de hoy más el peor caso de este stake.
	if g.cfg.DailyLossLimit > 0 && state.DailyLoss+stake > g.cfg.DailyLossLimit {
		return g.deny(ctx, domain.AlertWarning,
			fmt.Sprintf("stake %.2f would breach daily loss limit (%.2f + %.2f > %.2f)",
				stake, state.DailyLoss, stake, g.cfg.DailyLossLimit))
	}

	// 5. Techo de apuestas abiertas.
	if g.cfg.MaxOpenBets > 0 && state.OpenBets >= g.cfg.MaxOpenBets {
		return g.deny(ctx, domain.AlertWarning,
			fmt.Sprintf("too many open bets: %d (max %d)", state.OpenBets, g.cfg.MaxOpenBets))
	}

	var alerts []domain.Alert

	// 6 y 7 solo aplican a apuestas reales: el historial dry-run no debe
	// disparar breakers de producción.
	if !meta.DryRun {
		// 6. Circuit breaker de pérdidas consecutivas.
		streak := consecutiveLosses(state.RecentResults, g.cfg.RecentResultsWindow)
		if g.cfg.ConsecutiveLossLimit > 0 && streak >= g.cfg.ConsecutiveLossLimit {
			return g.deny(ctx, domain.AlertCritical,
				fmt.Sprintf("circuit breaker: %d consecutive losses (limit %d)",
					streak, g.cfg.ConsecutiveLossLimit))
		}
		if g.cfg.ConsecutiveLossWarning > 0 && streak >= g.cfg.ConsecutiveLossWarning {
			alerts = append(alerts, g.warn(ctx,
				fmt.Sprintf("loss streak: %d consecutive losses (breaker at %d)",
					streak, g.cfg.ConsecutiveLossLimit)))
		}

		// 7. Protección de drawdown contra el pico de la ventana.
		if state.PeakBankroll > 0 {
			dd := (state.PeakBankroll - bankroll) / state.PeakBankroll
			if g.cfg.MaxDrawdown > 0 && dd > g.cfg.MaxDrawdown {
				return g.deny(ctx, domain.AlertCritical,
					fmt.Sprintf("Drawdown protection: %.1f%% decline from peak %.2f (max %.1f%%)",
						dd*100, state.PeakBankroll, g.cfg.MaxDrawdown*100))
			}
			if g.cfg.WarningDrawdown > 0 && dd > g.cfg.WarningDrawdown {
				alerts = append(alerts, g.warn(ctx,
					fmt.Sprintf("Drawdown warning: %.1f%% decline from peak %.2f", dd*100, state.PeakBankroll)))
			}
		}
	}

	return Decision{Allowed: true, Alerts: alerts}
}

// deny construye una denegación, la loguea con contexto y emite la alerta.
func (g *Gate) deny(ctx context.Context, level domain.AlertLevel, reason string) Decision {
	slog.Warn("risk gate denied bet", "reason", reason, "level", level)
	a := domain.Alert{Level: level, Reason: reason}
	if g.alerts != nil {
		g.alerts.Alert(ctx, a)
	}
	return Decision{Allowed: false, Reason: reason, Alerts: []domain.Alert{a}}
}

// warn emite una alerta warning sin denegar.
func (g *Gate) warn(ctx context.Context, reason string) domain.Alert {
	slog.Warn("risk gate warning", "reason", reason)
	a := domain.Alert{Level: domain.AlertWarning, Reason: reason}
	if g.alerts != nil {
		g.alerts.Alert(ctx, a)
	}
	return a
}

// consecutiveLosses cuenta la racha de pérdidas desde la apuesta liquidada
// más reciente, ignorando dry-runs, mirando como mucho `window` resultados
// reales. La racha se corta en la primera victoria.
func consecutiveLosses(results []domain.BetResult, window int) int {
	streak := 0
	seen := 0
	for _, r := range results {
		if r.DryRun {
			continue
		}
		seen++
		if window > 0 && seen > window {
			break
		}
		if r.Won {
			break
		}
		streak++
	}
	return streak
}

package risk

// validate.go — validación pura de parámetros de apuesta.
//
// Nunca devuelve error ni panic: el resultado es un pass/fail estructurado
// con razones legibles, porque un parámetro malo es frecuente y esperado y
// no debe abortar un escaneo por lotes.

import (
	"fmt"

	"github.com/Evansgit254/betting-expert-advisor/internal/domain"
)

// Validation es el resultado estructurado de una validación.
type Validation struct {
	Valid   bool
	Reasons []string
}

func (v *Validation) fail(format string, args ...any) {
	v.Valid = false
	v.Reasons = append(v.Reasons, fmt.Sprintf(format, args...))
}

// ValidateBetParameters comprueba la forma básica de (odds, stake, prob):
// cuota en [1.01, 1000], stake positivo y bajo el techo de cordura,
// probabilidad estrictamente en (0,1).
func ValidateBetParameters(cfg Config, odds, stake, prob float64) Validation {
	v := Validation{Valid: true}

	if !finite(odds) || odds < MinValidOdds || odds > MaxValidOdds {
		v.fail("odds %.2f outside valid range [%.2f, %.2f]", odds, MinValidOdds, MaxValidOdds)
	}
	if !finite(stake) || stake <= 0 {
		v.fail("stake %.2f must be positive", stake)
	} else if cfg.MaxStakeCeiling > 0 && stake > cfg.MaxStakeCeiling {
		v.fail("stake %.2f above sanity ceiling %.2f", stake, cfg.MaxStakeCeiling)
	}
	if !finite(prob) || prob <= 0 || prob >= 1 {
		v.fail("probability %.4f must be strictly between 0 and 1", prob)
	}

	return v
}

// ValidateBet es la última puerta antes de que un candidato se convierta en
// apuesta real. Además de los parámetros básicos cruza el stake contra los
// límites de fracción del bankroll, el headroom de pérdida diaria, el techo
// de apuestas abiertas y exige EV estrictamente positivo.
func ValidateBet(cfg Config, c domain.Candidate, bankroll float64, state State) Validation {
	v := ValidateBetParameters(cfg, c.Odds, c.Stake, c.Prob)

	if bankroll <= 0 {
		v.fail("bankroll %.2f is depleted", bankroll)
		return v
	}
	if maxStake := bankroll * cfg.MaxStakeFraction; c.Stake > maxStake+0.01 {
		v.fail("stake %.2f exceeds %.0f%% of bankroll (max %.2f)",
			c.Stake, cfg.MaxStakeFraction*100, maxStake)
	}
	if cfg.DailyLossLimit > 0 && state.DailyLoss+c.Stake > cfg.DailyLossLimit {
		v.fail("stake %.2f would breach daily loss limit (lost %.2f of %.2f today)",
			c.Stake, state.DailyLoss, cfg.DailyLossLimit)
	}
	if cfg.MaxOpenBets > 0 && state.OpenBets >= cfg.MaxOpenBets {
		v.fail("too many open bets: %d (max %d)", state.OpenBets, cfg.MaxOpenBets)
	}
	if c.EV <= 0 {
		v.fail("expected value %.4f must be strictly positive", c.EV)
	}

	return v
}

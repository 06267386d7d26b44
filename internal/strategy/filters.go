package strategy

// filters.go — pipeline secuencial de filtros sobre la salida del finder.
//
// El orden importa: la diversificación va la última, después de eliminar los
// candidatos débiles, para diversificar solo entre apuestas que de verdad
// califican. Cada etapa loguea su conteo antes/después; si una etapa vacía la
// lista, el pipeline corta y devuelve nil sin ejecutar etapas ya inútiles.

import (
	"log/slog"

	"github.com/Evansgit254/betting-expert-advisor/internal/domain"
	"github.com/Evansgit254/betting-expert-advisor/internal/risk"
)

// FilterConfig contiene los umbrales del pipeline de filtros.
type FilterConfig struct {
	// MinEV es el suelo de valor esperado.
	MinEV float64
	// MinSharpe es el suelo de Sharpe por apuesta.
	MinSharpe float64
	// MinConfidence es el suelo de probabilidad del modelo.
	MinConfidence float64
	// MaxPerLeague limita candidatos admitidos por liga (diversificación).
	MaxPerLeague int
	// MaxTotal limita el total global admitido.
	MaxTotal int
}

// DefaultFilterConfig devuelve umbrales de filtrado conservadores.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		MinEV:         0.05,
		MinSharpe:     0.10,
		MinConfidence: 0.50,
		MaxPerLeague:  2,
		MaxTotal:      5,
	}
}

// ApplyBetFilters aplica las etapas en orden fijo: suelo de EV, suelo de
// Sharpe (adjunta Sharpe al candidato), suelo de confianza y diversificación
// greedy por liga + tope global.
func ApplyBetFilters(cfg FilterConfig, candidates []domain.Candidate) []domain.Candidate {
	if len(candidates) == 0 {
		return nil
	}

	stages := []struct {
		name  string
		apply func([]domain.Candidate) []domain.Candidate
	}{
		{"ev_floor", func(cs []domain.Candidate) []domain.Candidate { return filterByEV(cfg.MinEV, cs) }},
		{"sharpe_floor", func(cs []domain.Candidate) []domain.Candidate { return filterBySharpe(cfg.MinSharpe, cs) }},
		{"confidence_floor", func(cs []domain.Candidate) []domain.Candidate { return filterByConfidence(cfg.MinConfidence, cs) }},
		{"diversification", func(cs []domain.Candidate) []domain.Candidate { return diversify(cfg.MaxPerLeague, cfg.MaxTotal, cs) }},
	}

	out := candidates
	for _, stage := range stages {
		before := len(out)
		out = stage.apply(out)
		slog.Debug("bet filter stage", "stage", stage.name, "before", before, "after", len(out))
		if len(out) == 0 {
			return nil
		}
	}
	return out
}

func filterByEV(minEV float64, cs []domain.Candidate) []domain.Candidate {
	out := cs[:0:0]
	for _, c := range cs {
		if c.EV >= minEV {
			out = append(out, c)
		}
	}
	return out
}

// filterBySharpe calcula el Sharpe por candidato (stake unitario) y lo
// adjunta de paso: es el único campo que se muta tras la creación.
func filterBySharpe(minSharpe float64, cs []domain.Candidate) []domain.Candidate {
	out := cs[:0:0]
	for _, c := range cs {
		c.Sharpe = risk.SharpeRatio(c.Prob, c.Odds, 1.0)
		if c.Sharpe >= minSharpe {
			out = append(out, c)
		}
	}
	return out
}

func filterByConfidence(minConfidence float64, cs []domain.Candidate) []domain.Candidate {
	out := cs[:0:0]
	for _, c := range cs {
		if c.Prob >= minConfidence {
			out = append(out, c)
		}
	}
	return out
}

// diversify recorre la lista ya ordenada por EV y admite greedy: un candidato
// entra solo si su liga no llegó al tope y el total sigue bajo el global.
// Bin-packing simple, no una optimización: los empates los resuelve el orden
// por EV preexistente, así los candidatos de más EV de cada liga entran
// de forma determinista.
func diversify(maxPerLeague, maxTotal int, cs []domain.Candidate) []domain.Candidate {
	perLeague := make(map[string]int)
	out := cs[:0:0]
	for _, c := range cs {
		if maxTotal > 0 && len(out) >= maxTotal {
			break
		}
		if maxPerLeague > 0 && perLeague[c.League] >= maxPerLeague {
			continue
		}
		perLeague[c.League]++
		out = append(out, c)
	}
	return out
}

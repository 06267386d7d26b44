package ports

import (
	"context"

	"github.com/Evansgit254/betting-expert-advisor/internal/domain"
)

// Executor convierte un candidato aceptado en una apuesta colocada.
// La implementación real impone rate limiting antes del efecto externo;
// el backtester no usa este puerto — liquida contra su propio bankroll.
type Executor interface {
	Place(ctx context.Context, c domain.Candidate) (domain.PlacedBet, error)
}

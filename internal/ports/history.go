package ports

import (
	"context"
	"time"

	"github.com/Evansgit254/betting-expert-advisor/internal/domain"
)

// RiskHistory expone las consultas de solo lectura que el gate de riesgo
// necesita en el momento de decidir. El core depende de ellas pero no las
// implementa: son responsabilidad del colaborador de persistencia.
type RiskHistory interface {
	// OpenBetCount devuelve cuántas apuestas siguen abiertas.
	OpenBetCount(ctx context.Context) (int, error)

	// DailyLoss devuelve la pérdida realizada (positiva) del día dado,
	// excluyendo dry-runs.
	DailyLoss(ctx context.Context, day time.Time) (float64, error)

	// RecentResults devuelve las últimas n apuestas liquidadas, la más
	// reciente primero.
	RecentResults(ctx context.Context, n int) ([]domain.BetResult, error)

	// PeakBankroll devuelve el bankroll máximo registrado en la ventana.
	PeakBankroll(ctx context.Context, window time.Duration) (float64, error)
}

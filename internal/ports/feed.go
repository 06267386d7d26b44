package ports

import (
	"context"

	"github.com/Evansgit254/betting-expert-advisor/internal/domain"
)

// FixtureProvider entrega las filas (fixture + cuotas + probabilidad del
// modelo) que alimentan al finder. Detrás puede haber un CSV, una API de
// cuotas o una tabla de features ya calculada.
type FixtureProvider interface {
	Fixtures(ctx context.Context) ([]domain.OddsRow, error)
}

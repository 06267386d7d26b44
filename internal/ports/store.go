package ports

import (
	"context"
	"time"

	"github.com/Evansgit254/betting-expert-advisor/internal/domain"
)

// BetStore persiste apuestas colocadas y su liquidación. La implementación
// SQLite también satisface RiskHistory sobre los mismos datos.
type BetStore interface {
	// SaveBet registra una apuesta recién colocada (outcome "open").
	SaveBet(ctx context.Context, bet domain.PlacedBet) error

	// SettleBet marca la apuesta con su resultado y P&L realizados.
	// Una apuesta liquidada es inmutable salvo el ajuste a void.
	SettleBet(ctx context.Context, id string, outcome domain.Outcome, profit float64, settledAt time.Time) error

	// Close cierra la conexión limpiamente.
	Close() error
}

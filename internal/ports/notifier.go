package ports

import (
	"context"

	"github.com/Evansgit254/betting-expert-advisor/internal/domain"
)

// Notifier presenta los candidatos seleccionados al usuario.
type Notifier interface {
	// Notify muestra los candidatos ordenados por EV.
	// En la implementación de consola, imprime una tabla formateada.
	Notify(ctx context.Context, candidates []domain.Candidate) error
}

// La consola también implementa risk.AlertSink para las alertas del gate;
// los dos contratos se mantienen separados para que el gate no dependa de
// este paquete.

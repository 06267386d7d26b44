package execute

// executor.go — la frontera de ejecución. Aquí es donde el bloqueo es
// aceptable y está aislado: el rate limiter puede dormir al caller antes del
// efecto externo, nunca dentro de las funciones puras de decisión.

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/Evansgit254/betting-expert-advisor/internal/domain"
	"github.com/Evansgit254/betting-expert-advisor/internal/ports"
)

// Config controla la frontera de ejecución.
type Config struct {
	// OpsPerWindow es el máximo de colocaciones por ventana rodante.
	OpsPerWindow int
	// Window es la ventana del rate limit.
	Window time.Duration
}

// DefaultConfig devuelve el límite por defecto: 10 operaciones por 60s.
func DefaultConfig() Config {
	return Config{OpsPerWindow: 10, Window: time.Minute}
}

// RateLimited envuelve un ejecutor real con token bucket y circuit breaker
// de fallos del proveedor externo. Este breaker protege contra un bookmaker
// caído; no confundir con el breaker de rachas de pérdida del gate de
// riesgo, que es política de apuestas.
type RateLimited struct {
	inner   ports.Executor
	store   ports.BetStore
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

// NewRateLimited crea la frontera de ejecución sobre el ejecutor real.
// store puede ser nil (sin persistencia).
func NewRateLimited(inner ports.Executor, store ports.BetStore, cfg Config) *RateLimited {
	if cfg.OpsPerWindow <= 0 {
		cfg.OpsPerWindow = 10
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "bet-executor",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("executor breaker state change", "name", name,
				"from", from.String(), "to", to.String())
		},
	})

	return &RateLimited{
		inner:   inner,
		store:   store,
		limiter: rate.NewLimiter(rate.Every(cfg.Window/time.Duration(cfg.OpsPerWindow)), cfg.OpsPerWindow),
		breaker: breaker,
	}
}

// Place espera al token bucket, coloca la apuesta a través del breaker y la
// persiste como abierta.
func (e *RateLimited) Place(ctx context.Context, c domain.Candidate) (domain.PlacedBet, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return domain.PlacedBet{}, fmt.Errorf("execute.Place: rate limit wait: %w", err)
	}

	placed, err := e.breaker.Execute(func() (any, error) {
		return e.inner.Place(ctx, c)
	})
	if err != nil {
		return domain.PlacedBet{}, fmt.Errorf("execute.Place: %s %s: %w", c.MarketID, c.Selection, err)
	}
	bet := placed.(domain.PlacedBet)

	if e.store != nil {
		if err := e.store.SaveBet(ctx, bet); err != nil {
			slog.Warn("executor: failed to persist bet", "id", bet.ID, "err", err)
		}
	}

	slog.Info("bet placed",
		"id", bet.ID,
		"market", c.MarketID,
		"selection", c.Selection,
		"odds", c.Odds,
		"stake", c.Stake,
		"dry_run", bet.DryRun,
	)
	return bet, nil
}

// Paper es el ejecutor de papel: no toca el mundo real, solo genera el
// registro con DryRun=true. Las apuestas de papel quedan exentas de los
// circuit breakers de producción del gate.
type Paper struct{}

// Place simula la colocación de una apuesta.
func (Paper) Place(_ context.Context, c domain.Candidate) (domain.PlacedBet, error) {
	return domain.PlacedBet{
		ID:        uuid.NewString(),
		Candidate: c,
		PlacedAt:  time.Now().UTC(),
		DryRun:    true,
	}, nil
}

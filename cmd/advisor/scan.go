package main

// scan.go — loop de escaneo periódico: fixtures → finder → filtros →
// notificación → gate → ejecución. El gate corre por candidato justo antes
// de colocar; el snapshot de estado de riesgo se lee una vez por ciclo
// dentro del finder.

import (
	"context"
	"log/slog"
	"time"

	"github.com/Evansgit254/betting-expert-advisor/config"
	"github.com/Evansgit254/betting-expert-advisor/internal/ports"
	"github.com/Evansgit254/betting-expert-advisor/internal/risk"
	"github.com/Evansgit254/betting-expert-advisor/internal/strategy"
)

type scanLoop struct {
	cfg      *config.Config
	provider ports.FixtureProvider
	finder   *strategy.Finder
	gate     *risk.Gate
	executor ports.Executor
	notifier ports.Notifier
	history  ports.RiskHistory

	bankroll float64
	dryRun   bool
	once     bool
}

// run ejecuta el loop hasta que el contexto se cancele. Con once solo corre
// un ciclo.
func (s *scanLoop) run(ctx context.Context) error {
	slog.Info("scan loop starting",
		"interval", s.cfg.ScanInterval(),
		"bankroll", s.bankroll,
		"dry_run", s.dryRun,
	)

	if err := s.cycle(ctx); err != nil {
		slog.Error("scan cycle failed", "err", err)
		if s.once {
			return err
		}
	}
	if s.once {
		return nil
	}

	ticker := time.NewTicker(s.cfg.ScanInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("scan loop stopped")
			return nil
		case <-ticker.C:
			if err := s.cycle(ctx); err != nil {
				slog.Error("scan cycle failed", "err", err)
			}
		}
	}
}

// cycle hace un pase completo: fetch → find → filter → notify → gate → place.
func (s *scanLoop) cycle(ctx context.Context) error {
	start := time.Now()

	rows, err := s.provider.Fixtures(ctx)
	if err != nil {
		return err
	}

	candidates := s.finder.FindValueBets(ctx, rows, s.bankroll)
	selected := strategy.ApplyBetFilters(s.cfg.FilterSettings(), candidates)

	if err := s.notifier.Notify(ctx, selected); err != nil {
		slog.Warn("notifier error", "err", err)
	}

	placed := 0
	state := s.snapshot(ctx)
	for _, c := range selected {
		decision := s.gate.Check(ctx, c.Stake, s.bankroll, state, risk.Meta{DryRun: s.dryRun})
		if !decision.Allowed {
			continue
		}
		if _, err := s.executor.Place(ctx, c); err != nil {
			slog.Warn("placement failed", "market", c.MarketID, "err", err)
			continue
		}
		placed++
	}

	slog.Info("scan cycle complete",
		"rows", len(rows),
		"candidates", len(candidates),
		"selected", len(selected),
		"placed", placed,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return nil
}

// snapshot lee el estado de riesgo del historial una vez por ciclo.
func (s *scanLoop) snapshot(ctx context.Context) risk.State {
	var state risk.State
	if s.history == nil {
		return state
	}
	riskCfg := s.cfg.RiskSettings()
	var err error
	if state.OpenBets, err = s.history.OpenBetCount(ctx); err != nil {
		slog.Warn("scan: open bet count unavailable", "err", err)
	}
	if state.DailyLoss, err = s.history.DailyLoss(ctx, time.Now().UTC()); err != nil {
		slog.Warn("scan: daily loss unavailable", "err", err)
	}
	if state.RecentResults, err = s.history.RecentResults(ctx, riskCfg.RecentResultsWindow); err != nil {
		slog.Warn("scan: recent results unavailable", "err", err)
	}
	if state.PeakBankroll, err = s.history.PeakBankroll(ctx, 30*24*time.Hour); err != nil {
		slog.Warn("scan: peak bankroll unavailable", "err", err)
	}
	return state
}

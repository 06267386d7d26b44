package main

// backtest.go — modo backtest: replay de los fixtures históricos por el
// mismo pipeline de selección, con bankroll simulado, e informe por consola.

import (
	"context"
	"log/slog"
	"os"

	"github.com/Evansgit254/betting-expert-advisor/config"
	"github.com/Evansgit254/betting-expert-advisor/internal/adapters/notify"
	"github.com/Evansgit254/betting-expert-advisor/internal/backtest"
	"github.com/Evansgit254/betting-expert-advisor/internal/ports"
	"github.com/Evansgit254/betting-expert-advisor/internal/strategy"
)

func runBacktest(ctx context.Context, cfg *config.Config, provider ports.FixtureProvider, console *notify.Console) {
	slog.Info("=== BACKTEST MODE: replaying fixtures through live selection logic ===")

	fixtures, err := provider.Fixtures(ctx)
	if err != nil {
		slog.Error("failed to load fixtures", "err", err)
		os.Exit(1)
	}
	if len(fixtures) == 0 {
		slog.Warn("no fixtures loaded — nothing to backtest")
		return
	}

	// Sin historial real: el backtest no debe tropezar con los breakers de
	// producción, así que el finder corre con estado de riesgo en cero.
	finder := strategy.NewFinder(cfg.FinderSettings(), cfg.RiskSettings(), nil)
	engine := backtest.New(cfg.Backtest.InitialBankroll, finder)

	summary, err := engine.Run(ctx, fixtures)
	if err != nil {
		slog.Error("backtest failed", "err", err)
		os.Exit(1)
	}

	console.PrintBacktest(summary, engine.DailyStats())
	slog.Info("backtest complete",
		"fixtures", len(fixtures),
		"bets", summary.TotalBets,
		"final_bankroll", engine.Bankroll(),
	)
}

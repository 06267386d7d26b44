package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Evansgit254/betting-expert-advisor/config"
	"github.com/Evansgit254/betting-expert-advisor/internal/adapters/execute"
	"github.com/Evansgit254/betting-expert-advisor/internal/adapters/feed"
	"github.com/Evansgit254/betting-expert-advisor/internal/adapters/notify"
	"github.com/Evansgit254/betting-expert-advisor/internal/adapters/storage"
	"github.com/Evansgit254/betting-expert-advisor/internal/risk"
	"github.com/Evansgit254/betting-expert-advisor/internal/strategy"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	fixturesPath := flag.String("fixtures", "fixtures.csv", "path to fixtures CSV (prob + odds rows)")
	backtest := flag.Bool("backtest", false, "replay fixtures through the full pipeline and report")
	paper := flag.Bool("paper", false, "paper mode: place simulated bets, skip production breakers")
	once := flag.Bool("once", false, "run one scan cycle and exit")
	table := flag.Bool("table", false, "print full candidate table (default: compact 1-line)")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	bankroll := flag.Float64("bankroll", 0, "working bankroll for live scans (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	slog.Info("advisor starting",
		"config", *configPath,
		"fixtures", *fixturesPath,
		"backtest", *backtest,
		"paper", *paper,
		"once", *once,
	)

	provider := feed.NewCSVProvider(*fixturesPath)
	console := notify.NewConsole(*table || *backtest)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *backtest {
		runBacktest(ctx, cfg, provider, console)
		return
	}

	store, err := storage.NewSQLiteStore(cfg.Storage.DSN)
	if err != nil {
		slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
		os.Exit(1)
	}
	defer store.Close()

	workingBankroll := *bankroll
	if workingBankroll <= 0 {
		workingBankroll = cfg.Backtest.InitialBankroll
	}

	finder := strategy.NewFinder(cfg.FinderSettings(), cfg.RiskSettings(), store)
	gate := risk.NewGate(cfg.RiskSettings(), console)
	executor := execute.NewRateLimited(execute.Paper{}, store, cfg.ExecutorSettings())

	s := &scanLoop{
		cfg:      cfg,
		provider: provider,
		finder:   finder,
		gate:     gate,
		executor: executor,
		notifier: console,
		history:  store,
		bankroll: workingBankroll,
		dryRun:   *paper,
		once:     *once,
	}
	if err := s.run(ctx); err != nil {
		slog.Error("scan loop exited with error", "err", err)
		os.Exit(1)
	}

	slog.Info("advisor stopped cleanly")
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

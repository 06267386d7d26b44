package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Evansgit254/betting-expert-advisor/internal/adapters/execute"
	"github.com/Evansgit254/betting-expert-advisor/internal/risk"
	"github.com/Evansgit254/betting-expert-advisor/internal/strategy"
)

// Config es la configuración completa del advisor. Se construye una vez al
// arrancar y se inyecta: nada del core lee estado global.
type Config struct {
	Risk     RiskConfig     `yaml:"risk"`
	Strategy StrategyConfig `yaml:"strategy"`
	Backtest BacktestConfig `yaml:"backtest"`
	Executor ExecutorConfig `yaml:"executor"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      LogConfig      `yaml:"log"`
}

// RiskConfig son los límites de la casa.
type RiskConfig struct {
	MaxStakeFraction       float64 `yaml:"max_stake_fraction"`
	MaxStakeCeiling        float64 `yaml:"max_stake_ceiling"`
	DailyLossLimit         float64 `yaml:"daily_loss_limit"`
	MaxOpenBets            int     `yaml:"max_open_bets"`
	ConsecutiveLossLimit   int     `yaml:"consecutive_loss_limit"`
	ConsecutiveLossWarning int     `yaml:"consecutive_loss_warning"`
	RecentResultsWindow    int     `yaml:"recent_results_window"`
	MaxDrawdown            float64 `yaml:"max_drawdown"`
	WarningDrawdown        float64 `yaml:"warning_drawdown"`
	KellyFraction          float64 `yaml:"kelly_fraction"`
}

// StrategyConfig controla el finder y el pipeline de filtros.
type StrategyConfig struct {
	MinEV           float64 `yaml:"min_ev"`
	MinOdds         float64 `yaml:"min_odds"`
	MaxOdds         float64 `yaml:"max_odds"`
	Adaptive        bool    `yaml:"adaptive"` // umbral de EV adaptativo por ROI reciente
	ROIWindow       int     `yaml:"roi_window"`
	MinSharpe       float64 `yaml:"min_sharpe"`
	MinConfidence   float64 `yaml:"min_confidence"`
	MaxPerLeague    int     `yaml:"max_per_league"`
	MaxTotal        int     `yaml:"max_total"`
	IntervalSeconds int     `yaml:"interval_seconds"` // cadencia del escaneo en vivo
}

// BacktestConfig controla el motor de backtest.
type BacktestConfig struct {
	InitialBankroll float64 `yaml:"initial_bankroll"`
}

// ExecutorConfig controla la frontera de ejecución.
type ExecutorConfig struct {
	OpsPerWindow  int `yaml:"ops_per_window"`
	WindowSeconds int `yaml:"window_seconds"`
}

// StorageConfig controla dónde se persisten las apuestas.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si
// existe. Los valores del .env sobreescriben los del YAML para las keys que
// correspondan. Si el archivo no existe, arranca con los defaults.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// sin archivo: defaults
	case err != nil:
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)
	return &cfg, nil
}

// ScanInterval devuelve la cadencia del escaneo en vivo.
func (c *Config) ScanInterval() time.Duration {
	return time.Duration(c.Strategy.IntervalSeconds) * time.Second
}

// RiskSettings mapea al config del paquete risk.
func (c *Config) RiskSettings() risk.Config {
	return risk.Config{
		MaxStakeFraction:       c.Risk.MaxStakeFraction,
		MaxStakeCeiling:        c.Risk.MaxStakeCeiling,
		DailyLossLimit:         c.Risk.DailyLossLimit,
		MaxOpenBets:            c.Risk.MaxOpenBets,
		ConsecutiveLossLimit:   c.Risk.ConsecutiveLossLimit,
		ConsecutiveLossWarning: c.Risk.ConsecutiveLossWarning,
		RecentResultsWindow:    c.Risk.RecentResultsWindow,
		MaxDrawdown:            c.Risk.MaxDrawdown,
		WarningDrawdown:        c.Risk.WarningDrawdown,
		KellyFraction:          c.Risk.KellyFraction,
	}
}

// FinderSettings mapea al config del finder.
func (c *Config) FinderSettings() strategy.Config {
	return strategy.Config{
		MinEV:     c.Strategy.MinEV,
		MinOdds:   c.Strategy.MinOdds,
		MaxOdds:   c.Strategy.MaxOdds,
		Adaptive:  c.Strategy.Adaptive,
		ROIWindow: c.Strategy.ROIWindow,
	}
}

// FilterSettings mapea al config del pipeline de filtros.
func (c *Config) FilterSettings() strategy.FilterConfig {
	return strategy.FilterConfig{
		MinEV:         c.Strategy.MinEV,
		MinSharpe:     c.Strategy.MinSharpe,
		MinConfidence: c.Strategy.MinConfidence,
		MaxPerLeague:  c.Strategy.MaxPerLeague,
		MaxTotal:      c.Strategy.MaxTotal,
	}
}

// ExecutorSettings mapea al config de la frontera de ejecución.
func (c *Config) ExecutorSettings() execute.Config {
	return execute.Config{
		OpsPerWindow: c.Executor.OpsPerWindow,
		Window:       time.Duration(c.Executor.WindowSeconds) * time.Second,
	}
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están
// presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("STORAGE_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Risk.MaxStakeFraction <= 0 {
		cfg.Risk.MaxStakeFraction = 0.05
	}
	if cfg.Risk.MaxStakeCeiling <= 0 {
		cfg.Risk.MaxStakeCeiling = 10_000
	}
	if cfg.Risk.DailyLossLimit <= 0 {
		cfg.Risk.DailyLossLimit = 500
	}
	if cfg.Risk.MaxOpenBets <= 0 {
		cfg.Risk.MaxOpenBets = 10
	}
	if cfg.Risk.ConsecutiveLossLimit <= 0 {
		cfg.Risk.ConsecutiveLossLimit = 5
	}
	if cfg.Risk.ConsecutiveLossWarning <= 0 {
		cfg.Risk.ConsecutiveLossWarning = 3
	}
	if cfg.Risk.RecentResultsWindow <= 0 {
		cfg.Risk.RecentResultsWindow = 10
	}
	if cfg.Risk.MaxDrawdown <= 0 {
		cfg.Risk.MaxDrawdown = 0.20
	}
	if cfg.Risk.WarningDrawdown <= 0 {
		cfg.Risk.WarningDrawdown = 0.15
	}
	if cfg.Risk.KellyFraction <= 0 {
		cfg.Risk.KellyFraction = 0.25
	}

	if cfg.Strategy.MinEV <= 0 {
		cfg.Strategy.MinEV = 0.05
	}
	if cfg.Strategy.MinOdds <= 0 {
		cfg.Strategy.MinOdds = 1.30
	}
	if cfg.Strategy.MaxOdds <= 0 {
		cfg.Strategy.MaxOdds = 10.0
	}
	if cfg.Strategy.ROIWindow <= 0 {
		cfg.Strategy.ROIWindow = 20
	}
	if cfg.Strategy.MinSharpe <= 0 {
		cfg.Strategy.MinSharpe = 0.10
	}
	if cfg.Strategy.MinConfidence <= 0 {
		cfg.Strategy.MinConfidence = 0.50
	}
	if cfg.Strategy.MaxPerLeague <= 0 {
		cfg.Strategy.MaxPerLeague = 2
	}
	if cfg.Strategy.MaxTotal <= 0 {
		cfg.Strategy.MaxTotal = 5
	}
	if cfg.Strategy.IntervalSeconds <= 0 {
		cfg.Strategy.IntervalSeconds = 30
	}

	if cfg.Backtest.InitialBankroll <= 0 {
		cfg.Backtest.InitialBankroll = 10_000
	}

	if cfg.Executor.OpsPerWindow <= 0 {
		cfg.Executor.OpsPerWindow = 10
	}
	if cfg.Executor.WindowSeconds <= 0 {
		cfg.Executor.WindowSeconds = 60
	}

	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "advisor.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

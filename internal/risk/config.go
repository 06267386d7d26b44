package risk

// Config agrupa los knobs numéricos del motor de riesgo. Se construye una vez
// al arrancar (desde config/) y se inyecta por referencia: las funciones puras
// de este paquete nunca leen estado global.
type Config struct {
	// MaxStakeFraction limita un stake individual a esta fracción del bankroll.
	MaxStakeFraction float64
	// MaxStakeCeiling es el techo absoluto de cordura para un stake.
	MaxStakeCeiling float64
	// DailyLossLimit corta la operativa cuando la pérdida realizada del día lo alcanza.
	DailyLossLimit float64
	// MaxOpenBets es el máximo de apuestas abiertas simultáneas.
	MaxOpenBets int

	// ConsecutiveLossLimit dispara el circuit breaker (deniega + alerta crítica).
	ConsecutiveLossLimit int
	// ConsecutiveLossWarning permite pero alerta warning.
	ConsecutiveLossWarning int
	// RecentResultsWindow es cuántas apuestas liquidadas recientes examina el breaker.
	RecentResultsWindow int

	// MaxDrawdown deniega cuando la caída desde el pico de la ventana la supera.
	MaxDrawdown float64
	// WarningDrawdown permite pero alerta warning.
	WarningDrawdown float64

	// KellyFraction es el multiplicador de Kelly fraccional (0.25 = cuarto de Kelly).
	KellyFraction float64
}

// DefaultConfig devuelve los límites de la casa por defecto.
func DefaultConfig() Config {
	return Config{
		MaxStakeFraction:       0.05,
		MaxStakeCeiling:        10_000,
		DailyLossLimit:         500,
		MaxOpenBets:            10,
		ConsecutiveLossLimit:   5,
		ConsecutiveLossWarning: 3,
		RecentResultsWindow:    10,
		MaxDrawdown:            0.20,
		WarningDrawdown:        0.15,
		KellyFraction:          0.25,
	}
}

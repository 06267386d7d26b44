package domain

import "errors"

// Errores sentinela del core. Los paths de escaneo por lotes nunca los
// propagan fila a fila: se loguean y la función devuelve su valor "sin valor"
// (stake 0, EV 0). Solo los errores de programación del caller se devuelven.
var (
	// ErrInvalidInput marca un input numérico inservible (NaN, ±Inf, fuera de rango).
	ErrInvalidInput = errors.New("invalid input")

	// ErrAggregation marca un fallo inesperado al calcular el summary del backtest.
	ErrAggregation = errors.New("aggregation failure")

	// ErrNilFixtures distingue "llamada mal hecha" (nil) de "datos malos" (vacío).
	ErrNilFixtures = errors.New("fixtures must not be nil")

	// ErrEngineConsumed: un Backtester es de un solo uso; sus acumuladores no
	// se resetean entre ejecuciones.
	ErrEngineConsumed = errors.New("backtester already ran; create a new instance")
)

package domain

import "time"

// OddsRow es una fila de entrada del escaneo: un mercado con la probabilidad
// estimada por el modelo y la cuota decimal del bookmaker.
// Los campos descriptivos son opcionales; Prob u Odds en cero significan
// "dato ausente" y la fila se descarta sin error.
type OddsRow struct {
	MarketID  string
	Selection string // "home" | "away" | "draw"
	Home      string
	Away      string
	League    string

	Prob float64 // probabilidad del modelo, (0,1)
	Odds float64 // cuota decimal, >= 1.01 para ser apostable

	// Date ordena la fila en el tiempo (backtest). Result es el outcome real
	// una vez conocido: la etiqueta de la selección ganadora, o "void".
	Date   time.Time
	Result string
}

// HasPrice devuelve true si la fila trae probabilidad y cuota utilizables.
func (r OddsRow) HasPrice() bool {
	return r.Prob > 0 && r.Odds > 0
}

// Day devuelve la fecha truncada a día (UTC), para detectar cambios de jornada.
func (r OddsRow) Day() time.Time {
	y, m, d := r.Date.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

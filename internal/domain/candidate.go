package domain

// Unknown es el valor por defecto de los campos descriptivos ausentes.
const Unknown = "Unknown"

// Candidate es una oportunidad de apuesta de valor producida por el finder.
// Se crea una vez por fila evaluada y no se muta después, salvo para adjuntar
// Sharpe durante el pipeline de filtros. No se persiste desde el core.
type Candidate struct {
	MarketID  string
	Selection string
	Home      string
	Away      string
	League    string

	Odds float64
	Prob float64

	EV             float64 // valor esperado por unidad apostada
	Stake          float64 // stake recomendado (moneda, 2 decimales)
	ExpectedProfit float64 // Stake × EV
	Sharpe         float64 // adjuntado por el filtro de Sharpe
}

// NewCandidate construye un candidato desde una fila, aplicando "Unknown"
// a los descriptivos ausentes.
func NewCandidate(row OddsRow, ev, stake, expectedProfit float64) Candidate {
	c := Candidate{
		MarketID:       orUnknown(row.MarketID),
		Selection:      orUnknown(row.Selection),
		Home:           orUnknown(row.Home),
		Away:           orUnknown(row.Away),
		League:         orUnknown(row.League),
		Odds:           row.Odds,
		Prob:           row.Prob,
		EV:             ev,
		Stake:          stake,
		ExpectedProfit: expectedProfit,
	}
	return c
}

func orUnknown(s string) string {
	if s == "" {
		return Unknown
	}
	return s
}

package feed

// csv.go — proveedor de fixtures desde un archivo CSV. Formato:
//
//	date,market_id,selection,home,away,league,prob,odds,result
//
// date en RFC3339 o "2006-01-02". prob y odds vacíos se tratan como dato
// ausente (la fila llega al finder y este la descarta). result puede venir
// vacío (escaneo en vivo) o con la selección ganadora / "void" (backtest).

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/Evansgit254/betting-expert-advisor/internal/domain"
)

// CSVProvider implementa ports.FixtureProvider leyendo un archivo local.
type CSVProvider struct {
	path string
}

// NewCSVProvider crea un proveedor sobre la ruta dada.
func NewCSVProvider(path string) *CSVProvider {
	return &CSVProvider{path: path}
}

// Fixtures lee, parsea y ordena por fecha todas las filas del archivo.
// Las filas malformadas se loguean y se saltan: un CSV sucio no aborta el run.
func (p *CSVProvider) Fixtures(ctx context.Context) ([]domain.OddsRow, error) {
	f, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("feed.Fixtures: open %q: %w", p.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // validamos por fila

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("feed.Fixtures: read header: %w", err)
	}
	col := columnIndex(header)

	var rows []domain.OddsRow
	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			slog.Warn("feed: skipping malformed csv line", "line", line, "err", err)
			continue
		}

		row, err := parseRow(record, col)
		if err != nil {
			slog.Warn("feed: skipping row", "line", line, "err", err)
			continue
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	return rows, nil
}

func columnIndex(header []string) map[string]int {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	return col
}

func parseRow(record []string, col map[string]int) (domain.OddsRow, error) {
	get := func(name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	row := domain.OddsRow{
		MarketID:  get("market_id"),
		Selection: get("selection"),
		Home:      get("home"),
		Away:      get("away"),
		League:    get("league"),
		Result:    get("result"),
	}

	if raw := get("date"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return domain.OddsRow{}, fmt.Errorf("bad date %q: %w", raw, err)
		}
		row.Date = t
	}
	if raw := get("prob"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return domain.OddsRow{}, fmt.Errorf("bad prob %q: %w", raw, err)
		}
		row.Prob = v
	}
	if raw := get("odds"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return domain.OddsRow{}, fmt.Errorf("bad odds %q: %w", raw, err)
		}
		row.Odds = v
	}
	return row, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

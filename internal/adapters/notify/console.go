package notify

// console.go — presentación en consola: tabla de candidatos, informe de
// backtest y alertas del gate. Implementa ports.Notifier y risk.AlertSink.

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/Evansgit254/betting-expert-advisor/internal/domain"
)

// Console implementa ports.Notifier escribiendo tablas a stdout.
type Console struct {
	out   io.Writer
	table bool
}

// NewConsole crea un notificador que escribe a stdout.
// Con table=false imprime el modo compacto de una línea.
func NewConsole(table bool) *Console {
	return &Console{out: os.Stdout, table: table}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer, table bool) *Console {
	return &Console{out: w, table: table}
}

// Notify imprime los candidatos en el modo configurado.
func (c *Console) Notify(_ context.Context, candidates []domain.Candidate) error {
	if len(candidates) == 0 {
		fmt.Fprintf(c.out, "[%s] no value bets found\n", time.Now().Format("15:04:05"))
		return nil
	}
	if c.table {
		c.printTable(candidates)
	} else {
		c.printCompact(candidates)
	}
	return nil
}

// Alert imprime una alerta del gate de riesgo.
func (c *Console) Alert(_ context.Context, a domain.Alert) {
	fmt.Fprintf(c.out, "[%s] ALERT %s: %s\n",
		time.Now().Format("15:04:05"), strings.ToUpper(string(a.Level)), a.Reason)
}

// printCompact imprime lo esencial en una línea.
func (c *Console) printCompact(candidates []domain.Candidate) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %d value bets", time.Now().Format("15:04:05"), len(candidates))

	shown := 0
	for _, cand := range candidates {
		if shown >= 4 {
			break
		}
		fmt.Fprintf(&sb, " | %s %s@%.2f ev%.3f $%.2f",
			compactName(matchLabel(cand), 22), cand.Selection, cand.Odds, cand.EV, cand.Stake)
		shown++
	}
	fmt.Fprintln(c.out, sb.String())
}

// printTable imprime la tabla completa de candidatos.
func (c *Console) printTable(candidates []domain.Candidate) {
	fmt.Fprintf(c.out, "\n[%s] %d value bets\n", time.Now().Format("15:04:05"), len(candidates))

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Market", "Pick", "League", "Odds", "Prob", "EV", "Sharpe", "Stake", "Exp. Profit")

	for i, cand := range candidates {
		table.Append(
			fmt.Sprintf("%d", i+1),
			compactName(matchLabel(cand), 30),
			cand.Selection,
			compactName(cand.League, 18),
			fmt.Sprintf("%.2f", cand.Odds),
			fmt.Sprintf("%.1f%%", cand.Prob*100),
			fmt.Sprintf("%.3f", cand.EV),
			fmt.Sprintf("%.2f", cand.Sharpe),
			fmt.Sprintf("$%.2f", cand.Stake),
			fmt.Sprintf("$%.2f", cand.ExpectedProfit),
		)
	}
	table.Render()
}

// PrintBacktest imprime el informe final de un backtest: summary y, si las
// hay, las últimas jornadas.
func (c *Console) PrintBacktest(summary domain.Summary, daily []domain.DailyStats) {
	fmt.Fprintf(c.out, "\n=== BACKTEST REPORT ===\n")

	table := tablewriter.NewWriter(c.out)
	table.Header("Metric", "Value")
	table.Append("Total bets", fmt.Sprintf("%d", summary.TotalBets))
	table.Append("Wins / Losses", fmt.Sprintf("%d / %d", summary.Wins, summary.Losses))
	table.Append("Win rate", fmt.Sprintf("%.1f%%", summary.WinRate*100))
	table.Append("Total P&L", fmt.Sprintf("$%.2f", summary.TotalPnL))
	table.Append("ROI", fmt.Sprintf("%.2f%%", summary.ROI))
	table.Append("Avg odds", fmt.Sprintf("%.2f", summary.AvgOdds))
	table.Append("Avg stake", fmt.Sprintf("$%.2f", summary.AvgStake))
	table.Append("Sharpe ratio", fmt.Sprintf("%.3f", summary.SharpeRatio))
	table.Append("Max drawdown", fmt.Sprintf("%.2f%%", summary.MaxDrawdown))
	table.Render()

	if len(daily) == 0 {
		return
	}

	fmt.Fprintf(c.out, "\nLast days:\n")
	dayTable := tablewriter.NewWriter(c.out)
	dayTable.Header("Date", "Bets", "W", "L", "Staked", "PnL", "Bankroll")

	tail := daily
	if len(tail) > 10 {
		tail = daily[len(daily)-10:]
	}
	for _, d := range tail {
		dayTable.Append(
			d.Date.Format("2006-01-02"),
			fmt.Sprintf("%d", d.Bets),
			fmt.Sprintf("%d", d.Wins),
			fmt.Sprintf("%d", d.Losses),
			fmt.Sprintf("$%.2f", d.Staked),
			fmt.Sprintf("$%+.2f", d.PnL),
			fmt.Sprintf("$%.2f", d.BankrollEnd),
		)
	}
	dayTable.Render()
}

// matchLabel compone "Home vs Away" omitiendo los desconocidos.
func matchLabel(c domain.Candidate) string {
	if c.Home == domain.Unknown && c.Away == domain.Unknown {
		return c.MarketID
	}
	return c.Home + " vs " + c.Away
}

// compactName trunca un nombre a maxLen caracteres añadiendo "…".
func compactName(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-1] + "…"
}

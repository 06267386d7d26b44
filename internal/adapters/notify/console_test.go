package notify_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Evansgit254/betting-expert-advisor/internal/adapters/notify"
	"github.com/Evansgit254/betting-expert-advisor/internal/domain"
)

func makeCandidate(marketID string) domain.Candidate {
	return domain.Candidate{
		MarketID:       marketID,
		Selection:      "home",
		Home:           "Arsenal",
		Away:           "Chelsea",
		League:         "Premier League",
		Odds:           2.10,
		Prob:           0.52,
		EV:             0.09,
		Stake:          209.09,
		ExpectedProfit: 18.82,
		Sharpe:         0.09,
	}
}

func TestNotify_Empty(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf, false)

	require.NoError(t, c.Notify(context.Background(), nil))
	assert.Contains(t, buf.String(), "no value bets found")
}

func TestNotify_Compact(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf, false)

	require.NoError(t, c.Notify(context.Background(), []domain.Candidate{makeCandidate("m1")}))
	out := buf.String()
	assert.Contains(t, out, "1 value bets")
	assert.Contains(t, out, "Arsenal vs Chelsea")
	assert.Contains(t, out, "home@2.10")
	assert.Contains(t, out, "$209.09")
}

func TestNotify_CompactCapsAtFour(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf, false)

	candidates := []domain.Candidate{
		makeCandidate("m1"), makeCandidate("m2"), makeCandidate("m3"),
		makeCandidate("m4"), makeCandidate("m5"),
	}
	require.NoError(t, c.Notify(context.Background(), candidates))
	assert.Contains(t, buf.String(), "5 value bets")
	// solo 4 entradas detalladas
	assert.Equal(t, 4, bytes.Count(buf.Bytes(), []byte("home@2.10")))
}

func TestNotify_Table(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf, true)

	require.NoError(t, c.Notify(context.Background(), []domain.Candidate{makeCandidate("m1")}))
	out := buf.String()
	assert.Contains(t, out, "MARKET")
	assert.Contains(t, out, "Arsenal vs Chelsea")
	assert.Contains(t, out, "52.0%")
	assert.Contains(t, out, "$209.09")
}

func TestNotify_TableFallsBackToMarketID(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf, true)

	cand := makeCandidate("0xdeadbeef")
	cand.Home = domain.Unknown
	cand.Away = domain.Unknown
	require.NoError(t, c.Notify(context.Background(), []domain.Candidate{cand}))
	assert.Contains(t, buf.String(), "0xdeadbeef")
}

func TestAlert(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf, false)

	c.Alert(context.Background(), domain.Alert{
		Level:  domain.AlertCritical,
		Reason: "daily loss limit reached: 510.00 of 500.00 lost today",
	})
	out := buf.String()
	assert.Contains(t, out, "ALERT CRITICAL")
	assert.Contains(t, out, "daily loss limit reached")
}

func TestPrintBacktest(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf, true)

	summary := domain.Summary{
		TotalBets: 42,
		Wins:      25,
		Losses:    17,
		WinRate:   0.595,
		TotalPnL:  1234.56,
		ROI:       12.34,
		AvgOdds:   1.95,
		AvgStake:  250.00,
	}
	daily := []domain.DailyStats{
		{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Bets: 3, Wins: 2, Losses: 1, PnL: 120, BankrollEnd: 10_120},
	}
	c.PrintBacktest(summary, daily)

	out := buf.String()
	assert.Contains(t, out, "BACKTEST REPORT")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "$1234.56")
	assert.Contains(t, out, "59.5%")
	assert.Contains(t, out, "2024-03-01")
}

func TestPrintBacktest_NoDays(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf, true)

	c.PrintBacktest(domain.Summary{}, nil)
	out := buf.String()
	assert.Contains(t, out, "BACKTEST REPORT")
	assert.NotContains(t, out, "Last days")
}

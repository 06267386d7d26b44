package risk

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Evansgit254/betting-expert-advisor/internal/domain"
)

// recordingSink captura las alertas emitidas por el gate.
type recordingSink struct {
	alerts []domain.Alert
}

func (r *recordingSink) Alert(_ context.Context, a domain.Alert) {
	r.alerts = append(r.alerts, a)
}

func losses(n int) []domain.BetResult {
	out := make([]domain.BetResult, n)
	return out // Won=false por defecto
}

func TestGateCheck_Allows(t *testing.T) {
	g := NewGate(DefaultConfig(), nil)
	d := g.Check(context.Background(), 100, 10_000, State{}, Meta{})
	assert.True(t, d.Allowed)
	assert.Empty(t, d.Reason)
	assert.Empty(t, d.Alerts)
}

func TestGateCheck_InvalidStake(t *testing.T) {
	g := NewGate(DefaultConfig(), nil)
	d := g.Check(context.Background(), 0, 10_000, State{}, Meta{})
	assert.False(t, d.Allowed)
	assert.Contains(t, d.Reason, "invalid stake")
}

func TestGateCheck_DepletedBankroll(t *testing.T) {
	g := NewGate(DefaultConfig(), nil)
	d := g.Check(context.Background(), 100, -5, State{}, Meta{})
	assert.False(t, d.Allowed)
	assert.Contains(t, d.Reason, "bankroll depleted")
	require.Len(t, d.Alerts, 1)
	assert.Equal(t, domain.AlertCritical, d.Alerts[0].Level)
}

func TestGateCheck_StakeOverMaxFraction(t *testing.T) {
	g := NewGate(DefaultConfig(), nil)
	// 5% de 10000 = 500
	d := g.Check(context.Background(), 501, 10_000, State{}, Meta{})
	assert.False(t, d.Allowed)
	assert.Contains(t, d.Reason, "exceeds max 500.00 (5% of bankroll)")
}

func TestGateCheck_DailyLossLimitReached(t *testing.T) {
	g := NewGate(DefaultConfig(), nil)
	d := g.Check(context.Background(), 100, 10_000, State{DailyLoss: 500}, Meta{})
	assert.False(t, d.Allowed)
	assert.Contains(t, d.Reason, "daily loss limit reached")
}

func TestGateCheck_StakeWouldBreachDailyLimit(t *testing.T) {
	g := NewGate(DefaultConfig(), nil)
	d := g.Check(context.Background(), 100, 10_000, State{DailyLoss: 450}, Meta{})
	assert.False(t, d.Allowed)
	assert.Contains(t, d.Reason, "would breach daily loss limit")
}

func TestGateCheck_TooManyOpenBets(t *testing.T) {
	g := NewGate(DefaultConfig(), nil)
	d := g.Check(context.Background(), 100, 10_000, State{OpenBets: 10}, Meta{})
	assert.False(t, d.Allowed)
	assert.Contains(t, d.Reason, "too many open bets: 10 (max 10)")
}

func TestGateCheck_ConsecutiveLossBreaker(t *testing.T) {
	sink := &recordingSink{}
	g := NewGate(DefaultConfig(), sink)
	state := State{RecentResults: losses(5)}

	d := g.Check(context.Background(), 100, 10_000, state, Meta{})
	assert.False(t, d.Allowed)
	assert.Contains(t, d.Reason, "circuit breaker: 5 consecutive losses")
	require.Len(t, sink.alerts, 1)
	assert.Equal(t, domain.AlertCritical, sink.alerts[0].Level)
}

func TestGateCheck_LossStreakWarning(t *testing.T) {
	sink := &recordingSink{}
	g := NewGate(DefaultConfig(), sink)
	state := State{RecentResults: losses(3)}

	d := g.Check(context.Background(), 100, 10_000, state, Meta{})
	assert.True(t, d.Allowed)
	require.Len(t, d.Alerts, 1)
	assert.Equal(t, domain.AlertWarning, d.Alerts[0].Level)
	assert.Contains(t, d.Alerts[0].Reason, "loss streak")
}

func TestGateCheck_DryRunSkipsBreakers(t *testing.T) {
	g := NewGate(DefaultConfig(), nil)
	state := State{
		RecentResults: losses(8),
		PeakBankroll:  10_000,
	}
	// 25% de drawdown y racha larga: en paper nada de esto veta
	d := g.Check(context.Background(), 100, 7_500, state, Meta{DryRun: true})
	assert.True(t, d.Allowed)
	assert.Empty(t, d.Alerts)
}

func TestGateCheck_DrawdownProtection(t *testing.T) {
	g := NewGate(DefaultConfig(), nil)
	// caída del 25% desde el pico, límite 20%
	d := g.Check(context.Background(), 100, 7_500, State{PeakBankroll: 10_000}, Meta{})
	assert.False(t, d.Allowed)
	assert.Contains(t, d.Reason, "Drawdown protection: 25.0% decline from peak 10000.00")
}

func TestGateCheck_DrawdownWarning(t *testing.T) {
	g := NewGate(DefaultConfig(), nil)
	// caída del 16%: entre el warning (15%) y el límite (20%)
	d := g.Check(context.Background(), 100, 8_400, State{PeakBankroll: 10_000}, Meta{})
	assert.True(t, d.Allowed)
	require.Len(t, d.Alerts, 1)
	assert.Contains(t, d.Alerts[0].Reason, "Drawdown warning")
}

func TestConsecutiveLosses_BreaksOnWin(t *testing.T) {
	results := []domain.BetResult{
		{Won: false}, {Won: false}, {Won: true}, {Won: false},
	}
	assert.Equal(t, 2, consecutiveLosses(results, 10))
}

func TestConsecutiveLosses_SkipsDryRuns(t *testing.T) {
	results := []domain.BetResult{
		{Won: false},
		{Won: true, DryRun: true}, // no corta la racha
		{Won: false},
		{Won: true},
	}
	assert.Equal(t, 2, consecutiveLosses(results, 10))
}

func TestConsecutiveLosses_WindowCut(t *testing.T) {
	assert.Equal(t, 3, consecutiveLosses(losses(8), 3))
}

func TestConsecutiveLosses_Empty(t *testing.T) {
	assert.Equal(t, 0, consecutiveLosses(nil, 10))
}

package backtest

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Evansgit254/betting-expert-advisor/internal/domain"
)

func settled(outcome domain.Outcome, stake, profit, bankrollAfter float64) domain.SettledBet {
	return domain.SettledBet{
		Outcome:       outcome,
		Odds:          2.0,
		Stake:         stake,
		Profit:        profit,
		BankrollAfter: bankrollAfter,
	}
}

func TestSummarize_Empty(t *testing.T) {
	s, err := summarize(decimal.NewFromInt(10_000), nil)
	require.NoError(t, err)
	assert.Equal(t, domain.Summary{}, s)
}

func TestSummarize_Scales(t *testing.T) {
	bets := []domain.SettledBet{
		settled(domain.OutcomeWin, 100, 100, 10_100),
		settled(domain.OutcomeLoss, 100, -100, 10_000),
		settled(domain.OutcomeWin, 100, 100, 10_100),
		settled(domain.OutcomeWin, 100, 100, 10_200),
	}
	s, err := summarize(decimal.NewFromInt(10_000), bets)
	require.NoError(t, err)

	// WinRate en fracción 0–1, ROI en porcentaje 0–100
	assert.Equal(t, 0.75, s.WinRate)
	assert.InDelta(t, 50.0, s.ROI, 0.001) // 200 / 400 × 100
	assert.Equal(t, 4, s.TotalBets)
	assert.Equal(t, 3, s.Wins)
	assert.Equal(t, 1, s.Losses)
	assert.InDelta(t, 200.0, s.TotalPnL, 0.001)
	assert.InDelta(t, 100.0, s.AvgStake, 0.001)
	assert.Equal(t, 2.0, s.AvgOdds)
}

func TestSummarize_VoidsCountInTotalOnly(t *testing.T) {
	bets := []domain.SettledBet{
		settled(domain.OutcomeWin, 100, 100, 10_100),
		settled(domain.OutcomeVoid, 100, 0, 10_100),
	}
	s, err := summarize(decimal.NewFromInt(10_000), bets)
	require.NoError(t, err)

	assert.Equal(t, 2, s.TotalBets)
	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, 0, s.Losses)
	assert.Equal(t, 0.5, s.WinRate)
}

func TestSummarize_DecimalPnLSums(t *testing.T) {
	// 0.1 sumado mil veces: float64 derivaría, decimal no
	bets := make([]domain.SettledBet, 1000)
	for i := range bets {
		bets[i] = settled(domain.OutcomeWin, 1, 0.1, 10_000+float64(i+1)*0.1)
	}
	s, err := summarize(decimal.NewFromInt(10_000), bets)
	require.NoError(t, err)
	assert.Equal(t, 100.0, s.TotalPnL)
}

func TestPortfolioSharpe_KnownValue(t *testing.T) {
	// retornos alternos +1/−1: media 0 → Sharpe 0
	assert.Equal(t, 0.0, portfolioSharpe([]float64{1, -1, 1, -1}))

	got := portfolioSharpe([]float64{0.5, 0.1, 0.3})
	assert.Greater(t, got, 0.0)
}

func TestPortfolioSharpe_Degenerate(t *testing.T) {
	assert.Equal(t, 0.0, portfolioSharpe(nil))
	assert.Equal(t, 0.0, portfolioSharpe([]float64{0.5}))
	// desviación cero
	assert.Equal(t, 0.0, portfolioSharpe([]float64{0.2, 0.2, 0.2}))
}

func TestMaxDrawdown_Negative(t *testing.T) {
	initial := decimal.NewFromInt(10_000)
	bets := []domain.SettledBet{
		settled(domain.OutcomeWin, 100, 500, 10_500),
		settled(domain.OutcomeLoss, 100, -1_050, 9_450), // −10% desde 10500
		settled(domain.OutcomeWin, 100, 1_000, 10_450),
	}
	dd := maxDrawdown(initial, bets)
	assert.InDelta(t, -10.0, dd, 0.001)
}

func TestMaxDrawdown_NoDeclineIsZero(t *testing.T) {
	initial := decimal.NewFromInt(10_000)
	bets := []domain.SettledBet{
		settled(domain.OutcomeWin, 100, 100, 10_100),
		settled(domain.OutcomeWin, 100, 100, 10_200),
	}
	assert.Equal(t, 0.0, maxDrawdown(initial, bets))
}

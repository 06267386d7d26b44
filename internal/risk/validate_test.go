package risk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Evansgit254/betting-expert-advisor/internal/domain"
)

func TestValidateBetParameters_Valid(t *testing.T) {
	v := ValidateBetParameters(DefaultConfig(), 2.0, 100, 0.6)
	assert.True(t, v.Valid)
	assert.Empty(t, v.Reasons)
}

func TestValidateBetParameters_OddsOutOfRange(t *testing.T) {
	cfg := DefaultConfig()

	v := ValidateBetParameters(cfg, 1.0, 100, 0.6)
	assert.False(t, v.Valid)
	require.Len(t, v.Reasons, 1)
	assert.Contains(t, v.Reasons[0], "odds")

	v = ValidateBetParameters(cfg, 1500, 100, 0.6)
	assert.False(t, v.Valid)
	assert.Contains(t, v.Reasons[0], "outside valid range")
}

func TestValidateBetParameters_BadStake(t *testing.T) {
	cfg := DefaultConfig()

	v := ValidateBetParameters(cfg, 2.0, 0, 0.6)
	assert.False(t, v.Valid)
	assert.Contains(t, v.Reasons[0], "must be positive")

	v = ValidateBetParameters(cfg, 2.0, cfg.MaxStakeCeiling+1, 0.6)
	assert.False(t, v.Valid)
	assert.Contains(t, v.Reasons[0], "sanity ceiling")
}

func TestValidateBetParameters_BadProbability(t *testing.T) {
	cfg := DefaultConfig()
	for _, prob := range []float64{0, 1, -0.1, 1.5, math.NaN()} {
		v := ValidateBetParameters(cfg, 2.0, 100, prob)
		assert.False(t, v.Valid, "prob %v should be invalid", prob)
	}
}

func TestValidateBetParameters_AccumulatesReasons(t *testing.T) {
	v := ValidateBetParameters(DefaultConfig(), 1.0, -5, 2.0)
	assert.False(t, v.Valid)
	assert.Len(t, v.Reasons, 3)
}

func makeCandidate(odds, prob, ev, stake float64) domain.Candidate {
	return domain.Candidate{
		MarketID:  "m1",
		Selection: "home",
		League:    "Premier League",
		Odds:      odds,
		Prob:      prob,
		EV:        ev,
		Stake:     stake,
	}
}

func TestValidateBet_Valid(t *testing.T) {
	v := ValidateBet(DefaultConfig(), makeCandidate(2.0, 0.6, 0.2, 100), 10_000, State{})
	assert.True(t, v.Valid)
}

func TestValidateBet_DepletedBankroll(t *testing.T) {
	v := ValidateBet(DefaultConfig(), makeCandidate(2.0, 0.6, 0.2, 100), 0, State{})
	assert.False(t, v.Valid)
	assert.Contains(t, v.Reasons[len(v.Reasons)-1], "depleted")
}

func TestValidateBet_StakeOverBankrollFraction(t *testing.T) {
	// 5% de 10000 = 500; 600 se pasa
	v := ValidateBet(DefaultConfig(), makeCandidate(2.0, 0.6, 0.2, 600), 10_000, State{})
	assert.False(t, v.Valid)
	assert.Contains(t, v.Reasons[0], "% of bankroll")
}

func TestValidateBet_StakeFractionTolerance(t *testing.T) {
	// un céntimo de redondeo no debe vetar
	cfg := DefaultConfig()
	cfg.DailyLossLimit = 1000
	v := ValidateBet(cfg, makeCandidate(2.0, 0.6, 0.2, 500.01), 10_000, State{})
	assert.True(t, v.Valid)
}

func TestValidateBet_DailyLossHeadroom(t *testing.T) {
	state := State{DailyLoss: 450}
	v := ValidateBet(DefaultConfig(), makeCandidate(2.0, 0.6, 0.2, 100), 10_000, state)
	assert.False(t, v.Valid)
	assert.Contains(t, v.Reasons[0], "daily loss limit")
}

func TestValidateBet_OpenBetCeiling(t *testing.T) {
	state := State{OpenBets: 10}
	v := ValidateBet(DefaultConfig(), makeCandidate(2.0, 0.6, 0.2, 100), 10_000, state)
	assert.False(t, v.Valid)
	assert.Contains(t, v.Reasons[0], "too many open bets")
}

func TestValidateBet_NonPositiveEV(t *testing.T) {
	v := ValidateBet(DefaultConfig(), makeCandidate(2.0, 0.5, 0, 100), 10_000, State{})
	assert.False(t, v.Valid)
	assert.Contains(t, v.Reasons[0], "expected value")
}

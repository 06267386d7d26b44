package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewCandidate_FillsUnknowns(t *testing.T) {
	row := OddsRow{MarketID: "m1", Odds: 2.0, Prob: 0.6}
	c := NewCandidate(row, 0.2, 500, 100)

	assert.Equal(t, "m1", c.MarketID)
	assert.Equal(t, Unknown, c.Selection)
	assert.Equal(t, Unknown, c.Home)
	assert.Equal(t, Unknown, c.Away)
	assert.Equal(t, Unknown, c.League)
	assert.Equal(t, 0.2, c.EV)
	assert.Equal(t, 500.0, c.Stake)
	assert.Equal(t, 100.0, c.ExpectedProfit)
}

func TestNewCandidate_KeepsProvidedFields(t *testing.T) {
	row := OddsRow{
		MarketID: "m1", Selection: "home",
		Home: "Arsenal", Away: "Chelsea", League: "Premier League",
		Odds: 2.0, Prob: 0.6,
	}
	c := NewCandidate(row, 0.2, 500, 100)
	assert.Equal(t, "Arsenal", c.Home)
	assert.Equal(t, "Premier League", c.League)
}

func TestOddsRow_HasPrice(t *testing.T) {
	assert.True(t, OddsRow{Prob: 0.6, Odds: 2.0}.HasPrice())
	assert.False(t, OddsRow{Odds: 2.0}.HasPrice())
	assert.False(t, OddsRow{Prob: 0.6}.HasPrice())
	assert.False(t, OddsRow{}.HasPrice())
}

func TestOddsRow_Day(t *testing.T) {
	row := OddsRow{Date: time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC)}
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), row.Day())

	// la medianoche se normaliza en UTC
	madrid, _ := time.LoadLocation("Europe/Madrid")
	row = OddsRow{Date: time.Date(2024, 3, 2, 0, 30, 0, 0, madrid)}
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), row.Day())
}

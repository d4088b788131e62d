package strategies

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/supertrader/sim"
)

// mockTrader counts trades and refuses buys past maxShares.
type mockTrader struct {
	shares    uint64
	maxShares uint64
	buys      int
	sells     int
}

func (m *mockTrader) Buy() bool {
	if m.shares >= m.maxShares {
		return false
	}
	m.shares++
	m.buys++
	return true
}

func (m *mockTrader) Sell() bool {
	if m.shares == 0 {
		return false
	}
	m.shares--
	m.sells++
	return true
}

func feed(t *testing.T, s TickStrategy, tr *mockTrader, prices ...float64) {
	t.Helper()
	for i, p := range prices {
		snap := sim.Snapshot{
			Tick:     uint64(i + 1),
			Price:    p,
			HasPrice: true,
			Shares:   tr.shares,
			CanBuy:   tr.shares < tr.maxShares,
			CanSell:  tr.shares > 0,
		}
		require.NoError(t, s.OnTick(context.Background(), tr, snap))
	}
}

func TestNoopStrategy_OnTick(t *testing.T) {
	tr := &mockTrader{maxShares: 10}
	feed(t, NoopStrategy{}, tr, 100, 90, 110)
	assert.Zero(t, tr.buys)
	assert.Zero(t, tr.sells)
}

func TestBuyAndHold(t *testing.T) {
	tr := &mockTrader{maxShares: 10}
	s := &BuyAndHold{Units: 3}

	feed(t, s, tr, 100, 101, 50, 200)

	assert.Equal(t, 3, tr.buys)
	assert.Zero(t, tr.sells)
	assert.Equal(t, uint64(3), tr.shares)
}

func TestBuyAndHoldWaitsUntilAffordable(t *testing.T) {
	tr := &mockTrader{maxShares: 0}
	s := &BuyAndHold{}

	feed(t, s, tr, 100)
	assert.Zero(t, tr.buys)

	tr.maxShares = 5
	feed(t, s, tr, 100, 100)
	assert.Equal(t, 1, tr.buys, "default is one share, bought once")
}

func TestEMACross(t *testing.T) {
	tr := &mockTrader{maxShares: 10}
	s := NewEMACross(2, 4, 2)

	// Flat, then a rally (bull cross), then a slump (bear cross).
	feed(t, s, tr,
		100, 100, 100, 100, 100,
		90, 90,
		110, 120, 130,
		80, 70, 60,
	)

	assert.Equal(t, 2, tr.buys)
	assert.Equal(t, 2, tr.sells)
	assert.Zero(t, tr.shares)
}

func TestEMACrossIgnoresRepeatedTick(t *testing.T) {
	tr := &mockTrader{maxShares: 10}
	s := NewEMACross(2, 3, 1)

	snap := sim.Snapshot{Tick: 1, Price: 100, HasPrice: true}
	for i := 0; i < 5; i++ {
		require.NoError(t, s.OnTick(context.Background(), tr, snap))
	}
	assert.False(t, s.fast.Ready(), "one update per tick")
}

func TestMeanRevert(t *testing.T) {
	tr := &mockTrader{maxShares: 10}
	s := NewMeanRevert(3, 0.05, 1)

	feed(t, s, tr, 100, 100, 100, 80)
	assert.Equal(t, 1, tr.buys)

	feed(t, s, tr, 100, 100, 100, 130)
	assert.Equal(t, 1, tr.sells)
}

func TestByName(t *testing.T) {
	p := DefaultParams()

	for _, name := range Names() {
		s, err := ByName(name, p)
		require.NoError(t, err, name)
		assert.NotNil(t, s)
	}

	s, err := ByName(" EMA-Cross ", p)
	require.NoError(t, err)
	assert.IsType(t, &EMACross{}, s)

	_, err = ByName("martingale", p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown strategy")

	bad := p
	bad.Fast = bad.Slow
	_, err = ByName("ema-cross", bad)
	assert.Error(t, err)

	bad = p
	bad.Band = 0
	_, err = ByName("mean-revert", bad)
	assert.Error(t, err)
}

func TestStrategiesAgainstEngine(t *testing.T) {
	for _, name := range Names() {
		s, err := ByName(name, DefaultParams())
		require.NoError(t, err)

		e := sim.NewEngine(sim.Config{InitialCash: 1000, SeedPrice: 100, EnforceInsolvency: true}, constant{}, nil)
		for i := 0; i < 50 && e.Advance(); i++ {
			require.NoError(t, s.OnTick(context.Background(), e, e.Snapshot()), name)
		}
		assert.GreaterOrEqual(t, e.Cash(), 0.0, name)
	}
}

type constant struct{}

func (constant) Next(p float64) float64 { return p }

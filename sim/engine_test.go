package sim

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/supertrader/journal"
	"github.com/rustyeddy/supertrader/market"
	"github.com/rustyeddy/supertrader/portfolio"
)

type testJournal struct {
	mu       sync.Mutex
	sessions []journal.SessionRecord
	trades   []journal.TradeRecord
	equity   []journal.EquitySnapshot
}

func (j *testJournal) RecordSession(rec journal.SessionRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.sessions = append(j.sessions, rec)
	return nil
}

func (j *testJournal) RecordTrade(rec journal.TradeRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.trades = append(j.trades, rec)
	return nil
}

func (j *testJournal) RecordEquity(rec journal.EquitySnapshot) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.equity = append(j.equity, rec)
	return nil
}

func (j *testJournal) Close() error { return nil }

type testListener struct {
	ticks    []Snapshot
	trades   []journal.TradeRecord
	gameOver []Snapshot
}

func (l *testListener) OnTick(s Snapshot)             { l.ticks = append(l.ticks, s) }
func (l *testListener) OnTrade(t journal.TradeRecord) { l.trades = append(l.trades, t) }
func (l *testListener) OnGameOver(s Snapshot)         { l.gameOver = append(l.gameOver, s) }

// fakeClock is advanced by hand.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Add(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestEngine(t *testing.T, enforce bool, steps ...market.Price) (*Engine, *testJournal, *fakeClock) {
	t.Helper()

	clk := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	j := &testJournal{}
	e := NewEngine(Config{
		InitialCash:       1000,
		SeedPrice:         100,
		HistoryCapacity:   100,
		Spread:            portfolio.DefaultSpread,
		EnforceInsolvency: enforce,
		Preset:            "test",
		Now:               clk.Now,
	}, &market.Scripted{Steps: steps}, j)
	return e, j, clk
}

func TestEngineFirstAdvancePublishesSeed(t *testing.T) {
	t.Parallel()

	e, j, _ := newTestEngine(t, true, 105)

	_, ok := e.LatestPrice()
	assert.False(t, ok)
	assert.Empty(t, e.PriceSeries())
	require.Len(t, j.sessions, 1, "session recorded at start")

	assert.True(t, e.Advance())
	p, ok := e.LatestPrice()
	require.True(t, ok)
	assert.Equal(t, 100.0, p)

	assert.True(t, e.Advance())
	p, _ = e.LatestPrice()
	assert.Equal(t, 105.0, p)
	assert.Equal(t, []market.Point{{Index: 0, Price: 100}, {Index: 1, Price: 105}}, e.PriceSeries())
}

func TestEngineTradesBeforeFirstTickAreIgnored(t *testing.T) {
	t.Parallel()

	e, j, _ := newTestEngine(t, true)

	assert.False(t, e.CanBuy())
	assert.False(t, e.Buy())
	assert.False(t, e.Sell())
	assert.Equal(t, 1000.0, e.Cash())
	assert.Equal(t, 1000.0, e.NetWorth())
	assert.Empty(t, j.trades)

	_, ok := e.Quote()
	assert.False(t, ok)
}

func TestEngineBuySellScenario(t *testing.T) {
	t.Parallel()

	e, j, _ := newTestEngine(t, true)
	l := &testListener{}
	e.SetListener(l)
	require.True(t, e.Advance())

	q, ok := e.Quote()
	require.True(t, ok)
	assert.InDelta(t, 101, q.Buy, 1e-9)
	assert.InDelta(t, 99, q.Sell, 1e-9)

	require.True(t, e.Buy())
	assert.InDelta(t, 899, e.Cash(), 1e-9)
	assert.Equal(t, uint64(1), e.Shares())
	assert.InDelta(t, 998, e.NetWorth(), 1e-9)
	assert.InDelta(t, -2, e.TotalProfit(), 1e-9)

	require.True(t, e.Sell())
	assert.InDelta(t, 998, e.Cash(), 1e-9)
	assert.Equal(t, uint64(0), e.Shares())

	assert.False(t, e.Sell(), "nothing left to sell")

	require.Len(t, j.trades, 2)
	assert.Equal(t, "BUY", j.trades[0].Side)
	assert.Equal(t, "SELL", j.trades[1].Side)
	assert.Equal(t, e.SessionID(), j.trades[0].SessionID)
	assert.NotEqual(t, j.trades[0].TradeID, j.trades[1].TradeID)
	assert.Len(t, l.trades, 2)

	snap := e.Snapshot()
	assert.Equal(t, uint64(2), snap.Trades)
	assert.Equal(t, portfolio.Flat, snap.Standing)
}

func TestEngineZeroConfigChargesDefaultSpread(t *testing.T) {
	t.Parallel()

	e := NewEngine(Config{InitialCash: 1000, SeedPrice: 100}, &market.Scripted{}, nil)
	assert.Equal(t, portfolio.DefaultSpread, e.Config().Spread)
	require.True(t, e.Advance())

	require.True(t, e.Buy())
	assert.InDelta(t, 899, e.Cash(), 1e-9)
	require.True(t, e.Sell())
	assert.InDelta(t, 998, e.Cash(), 1e-9)
}

func TestEngineBuyRequiresFunds(t *testing.T) {
	t.Parallel()

	e, _, _ := newTestEngine(t, true, 900)
	require.True(t, e.Advance())
	require.True(t, e.Buy())
	require.True(t, e.Advance())

	assert.False(t, e.CanBuy())
	assert.False(t, e.Buy())
	assert.InDelta(t, 899, e.Cash(), 1e-9)
	assert.Equal(t, portfolio.Ahead, e.Snapshot().Standing)
}

func TestEngineInsolvencyEndsOnce(t *testing.T) {
	t.Parallel()

	e, j, clk := newTestEngine(t, true, 50, -1, 70, 80)
	l := &testListener{}
	e.SetListener(l)

	require.True(t, e.Advance())
	require.True(t, e.Buy())
	require.True(t, e.Advance())
	clk.Add(time.Minute)

	assert.False(t, e.Advance(), "price went negative")
	assert.True(t, e.IsOver())
	assert.Equal(t, uint64(0), e.Shares())
	assert.InDelta(t, 899, e.Cash(), 1e-9)

	series := e.PriceSeries()
	require.Len(t, series, 3)
	assert.Equal(t, -1.0, series[2].Price)

	clk.Add(time.Minute)
	assert.False(t, e.Advance())
	assert.False(t, e.Advance())
	assert.Equal(t, series, e.PriceSeries(), "history frozen once over")

	assert.False(t, e.Buy())
	assert.False(t, e.Sell())
	assert.False(t, e.CanBuy())

	require.Len(t, l.gameOver, 1)
	assert.Len(t, l.ticks, 3)

	snap := e.Snapshot()
	assert.True(t, snap.Over)
	assert.Equal(t, time.Minute, snap.Elapsed, "elapsed stops at the end")

	require.Len(t, j.trades, 2)
	assert.Equal(t, "WIPE", j.trades[1].Side)
	assert.Equal(t, uint64(1), j.trades[1].Shares)

	last := j.sessions[len(j.sessions)-1]
	assert.True(t, last.Over())
	assert.Equal(t, uint64(3), last.Ticks)
}

func TestEngineEndlessNeverEnds(t *testing.T) {
	t.Parallel()

	e, _, _ := newTestEngine(t, false, -5, -10, 3)

	for i := 0; i < 4; i++ {
		assert.True(t, e.Advance())
	}
	assert.False(t, e.IsOver())
	p, _ := e.LatestPrice()
	assert.Equal(t, 3.0, p)
	assert.True(t, e.Buy())
}

func TestEngineSeriesIsBounded(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{now: time.Now()}
	e := NewEngine(Config{
		InitialCash:     1000,
		SeedPrice:       100,
		HistoryCapacity: 10,
		Now:             clk.Now,
	}, market.NewRandomWalk(0.1, 0.5, 42), nil)

	for i := 0; i < 25; i++ {
		e.Advance()
		assert.LessOrEqual(t, len(e.PriceSeries()), 10)
	}
	series := e.PriceSeries()
	assert.Len(t, series, 10)
	assert.Equal(t, 0, series[0].Index)
	assert.Equal(t, 9, series[9].Index)
}

func TestEngineROIPerMinute(t *testing.T) {
	t.Parallel()

	e, _, clk := newTestEngine(t, true, 100)
	require.True(t, e.Advance())

	_, ok := e.ROIPerMinute()
	assert.False(t, ok, "no time has passed")

	clk.Add(time.Minute)
	roi, ok := e.ROIPerMinute()
	assert.True(t, ok)
	assert.InDelta(t, 0, roi, 1e-9)

	snap := e.Snapshot()
	assert.True(t, snap.ROIAvailable)
}

func TestEngineRecordEquity(t *testing.T) {
	t.Parallel()

	e, j, _ := newTestEngine(t, true, -1)
	assert.False(t, e.RecordEquity(), "no price yet")

	require.True(t, e.Advance())
	assert.True(t, e.RecordEquity())
	require.Len(t, j.equity, 1)
	assert.Equal(t, 100.0, j.equity[0].Price)
	assert.Equal(t, 1000.0, j.equity[0].NetWorth)

	e.Advance()
	assert.False(t, e.RecordEquity(), "session over")
}

func TestEngineFinishUpsertsSession(t *testing.T) {
	t.Parallel()

	e, j, _ := newTestEngine(t, true, 100, 100)
	e.Advance()
	e.Advance()
	e.Buy()
	e.Finish()

	last := j.sessions[len(j.sessions)-1]
	assert.Equal(t, e.SessionID(), last.SessionID)
	assert.False(t, last.Over())
	assert.Equal(t, uint64(2), last.Ticks)
	assert.Equal(t, uint64(1), last.Trades)
	assert.InDelta(t, 998, last.FinalNetWorth, 1e-9)
}

func TestEngineListenerMayCallBack(t *testing.T) {
	t.Parallel()

	e, _, _ := newTestEngine(t, true)
	e.SetListener(callbackListener{e: e})

	done := make(chan struct{})
	go func() {
		e.Advance()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("listener deadlocked the engine")
	}
}

type callbackListener struct{ e *Engine }

func (c callbackListener) OnTick(Snapshot)             { c.e.Buy() }
func (c callbackListener) OnTrade(journal.TradeRecord) { _ = c.e.Snapshot() }
func (c callbackListener) OnGameOver(Snapshot)         {}

func TestEngineConcurrentAccess(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{now: time.Now()}
	e := NewEngine(Config{InitialCash: 1000, SeedPrice: 100, Now: clk.Now}, market.NewRandomWalk(0, 1, 7), nil)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := 0; k < 200; k++ {
				e.Advance()
				e.Buy()
				e.Sell()
				s := e.Snapshot()
				assert.LessOrEqual(t, len(s.Series), market.DefaultHistoryCapacity)
			}
		}()
	}
	wg.Wait()
}

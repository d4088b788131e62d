package panels

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/supertrader/market"
	"github.com/rustyeddy/supertrader/portfolio"
	"github.com/rustyeddy/supertrader/sim"
)

func TestTimeAxis(t *testing.T) {
	got := timeAxis(21, 200*time.Millisecond)

	assert.Len(t, []rune(got), 21)
	assert.True(t, strings.HasSuffix(got, "-0s"))
	assert.Equal(t, "-2s", got[8:11])
}

func TestPriceToRow(t *testing.T) {
	assert.Equal(t, 0, priceToRow(110, 90, 110, 10))
	assert.Equal(t, 9, priceToRow(90, 90, 110, 10))
	assert.Equal(t, 5, priceToRow(100, 100, 100, 10))
	assert.Equal(t, 9, priceToRow(50, 90, 110, 10), "clamped to the bottom")
}

func TestRenderSeries(t *testing.T) {
	assert.Empty(t, RenderSeries(nil, 80, 20, time.Second))

	points := []market.Point{{Index: 0, Price: 100}, {Index: 1, Price: 101}, {Index: 2, Price: 99}}
	out := RenderSeries(points, 80, 20, time.Second)

	assert.Equal(t, 3, strings.Count(out, "•"))
	assert.Contains(t, out, "-0s")
	assert.Contains(t, out, "┴")
}

func TestChartPanelWaiting(t *testing.T) {
	p := NewChartPanel(time.Second)
	p.SetSize(60, 20)
	assert.Contains(t, p.View(), "Waiting for the market to open")
}

func TestStatsPanel(t *testing.T) {
	p := NewStatsPanel()
	p.SetSize(40, 12)
	p.SetSnapshot(sim.Snapshot{
		InitialCash: 1000,
		Cash:        1000,
		NetWorth:    1000,
		Standing:    portfolio.Flat,
	})

	out := p.View()
	assert.Contains(t, out, "Cash")
	assert.Contains(t, out, "1000.00")
	assert.Contains(t, out, "n/a")

	p.SetSnapshot(sim.Snapshot{InitialCash: 1000, NetWorth: 1010, ROIPerMinute: 1.234, ROIAvailable: true})
	assert.Contains(t, p.View(), "1.23%")
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "12.35", Money(12.345))
	assert.Equal(t, "-3.10", Money(-3.1))
	assert.Equal(t, "0.00", Money(0))
}

func TestButtons(t *testing.T) {
	out := Buttons(sim.Snapshot{})
	assert.Contains(t, out, "[b] Buy")
	assert.Contains(t, out, "[s] Sell")

	out = Buttons(sim.Snapshot{HasPrice: true, Quote: portfolio.Quote{Buy: 101, Sell: 99}, CanBuy: true})
	assert.Contains(t, out, "Buy 101.00")
	assert.Contains(t, out, "Sell 99.00")
}

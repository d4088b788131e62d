package indicators

import (
	"fmt"

	"github.com/rustyeddy/supertrader/market"
)

// SMA is a simple moving average over the last period prices.
type SMA struct {
	period int
	window []market.Price
	next   int
	sum    float64
}

func NewSMA(period int) *SMA {
	if period <= 0 {
		panic("SMA period must be > 0")
	}
	return &SMA{
		period: period,
		window: make([]market.Price, 0, period),
	}
}

func (m *SMA) Name() string { return fmt.Sprintf("SMA(%d)", m.period) }
func (m *SMA) Warmup() int  { return m.period }
func (m *SMA) Ready() bool  { return len(m.window) == m.period }

func (m *SMA) Reset() {
	m.window = m.window[:0]
	m.next = 0
	m.sum = 0
}

func (m *SMA) Update(p market.Price) {
	if len(m.window) < m.period {
		m.window = append(m.window, p)
		m.sum += p
		return
	}
	m.sum += p - m.window[m.next]
	m.window[m.next] = p
	m.next = (m.next + 1) % m.period
}

// Value is the mean of the prices seen so far, up to period of them.
func (m *SMA) Value() float64 {
	if len(m.window) == 0 {
		return 0
	}
	return m.sum / float64(len(m.window))
}

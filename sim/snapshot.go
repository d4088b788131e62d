package sim

import (
	"time"

	"github.com/rustyeddy/supertrader/market"
	"github.com/rustyeddy/supertrader/portfolio"
)

// Snapshot is a consistent view of a session taken under the engine lock.
type Snapshot struct {
	SessionID string    `json:"session_id"`
	Preset    string    `json:"preset"`
	Time      time.Time `json:"time"`
	Tick      uint64    `json:"tick"`

	Price    market.Price    `json:"price"`
	HasPrice bool            `json:"has_price"`
	Quote    portfolio.Quote `json:"quote"`
	Series   []market.Point  `json:"series,omitempty"`

	InitialCash    float64            `json:"initial_cash"`
	Cash           float64            `json:"cash"`
	Shares         uint64             `json:"shares"`
	NetWorth       float64            `json:"net_worth"`
	TotalProfit    float64            `json:"total_profit"`
	ReferenceWorth float64            `json:"reference_worth"`
	Standing       portfolio.Standing `json:"standing"`
	ROIPerMinute   float64            `json:"roi_per_minute"`
	ROIAvailable   bool               `json:"roi_available"`

	CanBuy  bool   `json:"can_buy"`
	CanSell bool   `json:"can_sell"`
	Trades  uint64 `json:"trades"`

	Over      bool          `json:"over"`
	StartedAt time.Time     `json:"started_at"`
	EndedAt   time.Time     `json:"ended_at,omitempty"`
	Elapsed   time.Duration `json:"elapsed"`
}

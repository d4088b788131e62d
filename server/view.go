package server

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/supertrader/journal"
	"github.com/rustyeddy/supertrader/market"
	"github.com/rustyeddy/supertrader/sim"
)

// SessionView is the API form of a snapshot. Money is rounded to cents and
// prices to four places.
type SessionView struct {
	SessionID string `json:"session_id"`
	Preset    string `json:"preset"`
	Tick      uint64 `json:"tick"`

	HasPrice  bool            `json:"has_price"`
	Price     decimal.Decimal `json:"price"`
	BuyQuote  decimal.Decimal `json:"buy_quote"`
	SellQuote decimal.Decimal `json:"sell_quote"`

	InitialCash    decimal.Decimal  `json:"initial_cash"`
	Cash           decimal.Decimal  `json:"cash"`
	Shares         uint64           `json:"shares"`
	NetWorth       decimal.Decimal  `json:"net_worth"`
	TotalProfit    decimal.Decimal  `json:"total_profit"`
	ReferenceWorth decimal.Decimal  `json:"reference_worth"`
	Standing       string           `json:"standing"`
	ROIPerMinute   *decimal.Decimal `json:"roi_per_minute"` // null while unavailable

	CanBuy  bool   `json:"can_buy"`
	CanSell bool   `json:"can_sell"`
	Trades  uint64 `json:"trades"`

	Over           bool       `json:"over"`
	StartedAt      time.Time  `json:"started_at"`
	EndedAt        *time.Time `json:"ended_at"`
	ElapsedSeconds float64    `json:"elapsed_seconds"`
}

func NewSessionView(s sim.Snapshot) SessionView {
	v := SessionView{
		SessionID:      s.SessionID,
		Preset:         s.Preset,
		Tick:           s.Tick,
		HasPrice:       s.HasPrice,
		Price:          price(s.Price),
		BuyQuote:       price(s.Quote.Buy),
		SellQuote:      price(s.Quote.Sell),
		InitialCash:    money(s.InitialCash),
		Cash:           money(s.Cash),
		Shares:         s.Shares,
		NetWorth:       money(s.NetWorth),
		TotalProfit:    money(s.TotalProfit),
		ReferenceWorth: money(s.ReferenceWorth),
		Standing:       s.Standing.String(),
		CanBuy:         s.CanBuy,
		CanSell:        s.CanSell,
		Trades:         s.Trades,
		Over:           s.Over,
		StartedAt:      s.StartedAt,
		ElapsedSeconds: s.Elapsed.Seconds(),
	}
	if s.ROIAvailable {
		roi := decimal.NewFromFloat(s.ROIPerMinute).Round(2)
		v.ROIPerMinute = &roi
	}
	if s.Over {
		ended := s.EndedAt
		v.EndedAt = &ended
	}
	return v
}

// PointView is one price of the rolling window.
type PointView struct {
	Index int             `json:"index"`
	Price decimal.Decimal `json:"price"`
}

func NewPointViews(points []market.Point) []PointView {
	out := make([]PointView, len(points))
	for i, p := range points {
		out[i] = PointView{Index: p.Index, Price: price(p.Price)}
	}
	return out
}

// TradeResult answers a buy or sell request. An ineligible trade is not an
// error; Executed is simply false.
type TradeResult struct {
	Executed bool        `json:"executed"`
	Session  SessionView `json:"session"`
}

// Message is pushed to websocket clients.
type Message struct {
	Type    string               `json:"type"` // tick, trade or game_over
	Session *SessionView         `json:"session,omitempty"`
	Trade   *journal.TradeRecord `json:"trade,omitempty"`
}

func money(x float64) decimal.Decimal { return decimal.NewFromFloat(x).Round(2) }
func price(x float64) decimal.Decimal { return decimal.NewFromFloat(x).Round(4) }

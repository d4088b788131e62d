// Package journal keeps an append-only audit trail of game sessions: every
// trade, periodic equity snapshots and a summary per session. Nothing in a
// journal is ever loaded back into a running game.
package journal

import (
	"errors"
	"time"
)

// ErrNotFound is returned by queries for a missing session or trade.
var ErrNotFound = errors.New("not found")

// TradeRecord is one executed trade, or the write-off of remaining shares
// when a session ends in insolvency (Side "WIPE").
type TradeRecord struct {
	TradeID     string    `json:"trade_id"`
	SessionID   string    `json:"session_id"`
	Side        string    `json:"side"`
	Price       float64   `json:"price"`
	Quote       float64   `json:"quote"`
	Shares      uint64    `json:"shares"`
	CashAfter   float64   `json:"cash_after"`
	SharesAfter uint64    `json:"shares_after"`
	Time        time.Time `json:"time"`
}

// EquitySnapshot is the portfolio valued at one instant.
type EquitySnapshot struct {
	SessionID string    `json:"session_id"`
	Time      time.Time `json:"time"`
	Price     float64   `json:"price"`
	Cash      float64   `json:"cash"`
	Shares    uint64    `json:"shares"`
	NetWorth  float64   `json:"net_worth"`
}

// SessionRecord summarizes a session. It is written when the session starts
// and written again, replacing the first row, when it ends or the player quits.
type SessionRecord struct {
	SessionID         string    `json:"session_id"`
	Preset            string    `json:"preset"`
	EnforceInsolvency bool      `json:"enforce_insolvency"`
	StartedAt         time.Time `json:"started_at"`
	EndedAt           time.Time `json:"ended_at,omitempty"` // zero while running or if quit before game over
	InitialCash       float64   `json:"initial_cash"`
	FinalNetWorth     float64   `json:"final_net_worth"`
	Ticks             uint64    `json:"ticks"`
	Trades            uint64    `json:"trades"`
}

// Over reports whether the session ended by insolvency.
func (s SessionRecord) Over() bool { return !s.EndedAt.IsZero() }

// Journal records session activity.
type Journal interface {
	RecordSession(SessionRecord) error
	RecordTrade(TradeRecord) error
	RecordEquity(EquitySnapshot) error
	Close() error
}

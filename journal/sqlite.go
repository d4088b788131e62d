package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite stores the journal in a SQLite database and supports queries over
// past sessions.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at path and ensures the schema.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordSession(s SessionRecord) error {
	var ended sql.NullTime
	if s.Over() {
		ended = sql.NullTime{Time: s.EndedAt, Valid: true}
	}
	_, err := j.db.Exec(`
		INSERT INTO sessions
		(session_id, preset, enforce_insolvency, started_at, ended_at, initial_cash, final_net_worth, ticks, trades)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			ended_at = excluded.ended_at,
			final_net_worth = excluded.final_net_worth,
			ticks = excluded.ticks,
			trades = excluded.trades`,
		s.SessionID, s.Preset, s.EnforceInsolvency, s.StartedAt, ended,
		s.InitialCash, s.FinalNetWorth, s.Ticks, s.Trades,
	)
	return err
}

func (j *SQLite) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, session_id, side, price, quote, shares, cash_after, shares_after, time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TradeID, t.SessionID, t.Side, t.Price, t.Quote,
		t.Shares, t.CashAfter, t.SharesAfter, t.Time,
	)
	return err
}

func (j *SQLite) RecordEquity(e EquitySnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO equity
		(session_id, time, price, cash, shares, net_worth)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.SessionID, e.Time, e.Price, e.Cash, e.Shares, e.NetWorth,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

package journal

import (
	"database/sql"
	"errors"
	"fmt"
)

const sessionColumns = `session_id, preset, enforce_insolvency, started_at, ended_at, initial_cash, final_net_worth, ticks, trades`

// GetSession returns the summary row for one session.
func (j *SQLite) GetSession(sessionID string) (SessionRecord, error) {
	row := j.db.QueryRow(`SELECT `+sessionColumns+` FROM sessions WHERE session_id = ?`, sessionID)

	rec, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SessionRecord{}, fmt.Errorf("session %q: %w", sessionID, ErrNotFound)
		}
		return SessionRecord{}, err
	}
	return rec, nil
}

// ResolveSessionID expands a session id prefix, such as the short ids shown
// in reports, to the full id. The prefix must match exactly one session.
func (j *SQLite) ResolveSessionID(prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("empty session id: %w", ErrNotFound)
	}
	rows, err := j.db.Query(`SELECT session_id FROM sessions WHERE substr(session_id, 1, ?) = ? LIMIT 2`, len(prefix), prefix)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("session %q: %w", prefix, ErrNotFound)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("session prefix %q matches more than one session", prefix)
	}
}

// ListSessions returns up to limit sessions, most recent first. A limit of
// zero or less returns all of them.
func (j *SQLite) ListSessions(limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := j.db.Query(`SELECT `+sessionColumns+` FROM sessions ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListTrades returns the trades of a session in execution order.
func (j *SQLite) ListTrades(sessionID string) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT trade_id, session_id, side, price, quote, shares, cash_after, shares_after, time
		FROM trades
		WHERE session_id = ?
		ORDER BY time ASC, trade_id ASC`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var rec TradeRecord
		if err := rows.Scan(
			&rec.TradeID,
			&rec.SessionID,
			&rec.Side,
			&rec.Price,
			&rec.Quote,
			&rec.Shares,
			&rec.CashAfter,
			&rec.SharesAfter,
			&rec.Time,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListEquity returns the equity snapshots of a session in time order.
func (j *SQLite) ListEquity(sessionID string) ([]EquitySnapshot, error) {
	rows, err := j.db.Query(`
		SELECT session_id, time, price, cash, shares, net_worth
		FROM equity
		WHERE session_id = ?
		ORDER BY time ASC`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EquitySnapshot
	for rows.Next() {
		var rec EquitySnapshot
		if err := rows.Scan(
			&rec.SessionID,
			&rec.Time,
			&rec.Price,
			&rec.Cash,
			&rec.Shares,
			&rec.NetWorth,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(s scanner) (SessionRecord, error) {
	var (
		rec   SessionRecord
		ended sql.NullTime
	)
	err := s.Scan(
		&rec.SessionID,
		&rec.Preset,
		&rec.EnforceInsolvency,
		&rec.StartedAt,
		&ended,
		&rec.InitialCash,
		&rec.FinalNetWorth,
		&rec.Ticks,
		&rec.Trades,
	)
	if err != nil {
		return SessionRecord{}, err
	}
	if ended.Valid {
		rec.EndedAt = ended.Time
	}
	return rec, nil
}

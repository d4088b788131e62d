package journal

const Schema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id TEXT PRIMARY KEY,
	preset TEXT NOT NULL,
	enforce_insolvency BOOLEAN NOT NULL,
	started_at DATETIME NOT NULL,
	ended_at DATETIME,
	initial_cash REAL NOT NULL,
	final_net_worth REAL NOT NULL,
	ticks INTEGER NOT NULL,
	trades INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	session_id TEXT NOT NULL,
	side TEXT NOT NULL,
	price REAL NOT NULL,
	quote REAL NOT NULL,
	shares INTEGER NOT NULL,
	cash_after REAL NOT NULL,
	shares_after INTEGER NOT NULL,
	time DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS equity (
	session_id TEXT NOT NULL,
	time DATETIME NOT NULL,
	price REAL NOT NULL,
	cash REAL NOT NULL,
	shares INTEGER NOT NULL,
	net_worth REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_session ON trades(session_id, time);
CREATE INDEX IF NOT EXISTS idx_equity_session ON equity(session_id, time);
`

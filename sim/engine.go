// Package sim runs a single trading session: it advances the synthetic
// price, executes the player's trades and ends the game on insolvency.
package sim

import (
	"log/slog"
	"sync"
	"time"

	"github.com/rustyeddy/supertrader/internal/id"
	"github.com/rustyeddy/supertrader/journal"
	"github.com/rustyeddy/supertrader/market"
	"github.com/rustyeddy/supertrader/portfolio"
)

// Config fixes the rules of one session.
type Config struct {
	InitialCash     float64
	SeedPrice       market.Price
	HistoryCapacity int
	// Spread is charged on each side of a trade. Zero or less means
	// portfolio.DefaultSpread.
	Spread float64
	// EnforceInsolvency ends the session the first time the price reaches
	// zero or below. Without it the game never ends.
	EnforceInsolvency bool
	// Preset names the configuration in journals and logs.
	Preset string
	// Now defaults to time.Now.
	Now func() time.Time
}

// Engine owns all state of a session. Every method is safe for concurrent
// use; queries see either the state before or after a tick, never a mix.
type Engine struct {
	mu sync.Mutex

	cfg       Config
	sessionID string
	gen       market.Generator
	history   *market.History
	pf        *portfolio.Portfolio
	clock     *Clock
	journal   journal.Journal
	log       *slog.Logger
	listener  Listener

	ticks  uint64
	trades uint64
}

// NewEngine starts a session. The price history stays empty until the first
// Advance, which publishes the seed price.
func NewEngine(cfg Config, gen market.Generator, j journal.Journal) *Engine {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if j == nil {
		j = journal.NewNoop()
	}
	if cfg.Spread <= 0 {
		cfg.Spread = portfolio.DefaultSpread
	}

	e := &Engine{
		cfg:       cfg,
		sessionID: id.Session(),
		gen:       gen,
		history:   market.NewHistory(cfg.HistoryCapacity),
		pf:        portfolio.NewWithSpread(cfg.InitialCash, cfg.Spread),
		clock:     NewClock(cfg.Now()),
		journal:   j,
		log:       slog.Default(),
	}
	e.log = e.log.With("session", e.sessionID)

	e.mu.Lock()
	e.recordSessionLocked()
	e.mu.Unlock()

	return e
}

// SetLogger replaces the logger. The session id is added to every record.
func (e *Engine) SetLogger(l *slog.Logger) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.log = l.With("session", e.sessionID)
}

// SetListener sets an optional listener. Use Listeners to attach several.
func (e *Engine) SetListener(l Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listener = l
}

func (e *Engine) SessionID() string { return e.sessionID }

func (e *Engine) Config() Config { return e.cfg }

// Advance produces one new price. It returns false once the session is over,
// in which case nothing changes.
func (e *Engine) Advance() bool {
	e.mu.Lock()

	if e.clock.Over() {
		e.mu.Unlock()
		return false
	}

	next := e.cfg.SeedPrice
	if latest, ok := e.history.Latest(); ok {
		next = e.gen.Next(latest)
	}
	e.history.Push(next)
	e.ticks++

	now := e.cfg.Now()
	logger := e.log
	var wipe *journal.TradeRecord
	ended := false
	if next <= 0 && e.cfg.EnforceInsolvency {
		e.clock.End(now)
		ended = true
		if wiped := e.pf.Freeze(); wiped > 0 {
			rec := e.tradeRecord(portfolio.Fill{
				Side:   portfolio.SideWipe,
				Price:  next,
				Shares: wiped,
				Cash:   e.pf.Cash(),
			}, now)
			e.recordTradeLocked(rec)
			wipe = &rec
		}
		e.recordSessionLocked()
	}

	snap := e.snapshotLocked(now)
	listener := e.listener
	e.mu.Unlock()

	if ended {
		logger.Info("stock collapsed",
			"price", next,
			"tick", snap.Tick,
			"cash", snap.Cash,
			"elapsed", snap.Elapsed,
		)
	}

	if listener != nil {
		listener.OnTick(snap)
		if wipe != nil {
			listener.OnTrade(*wipe)
		}
		if ended {
			listener.OnGameOver(snap)
		}
	}
	return !ended
}

// Buy buys one share at the buy quote if the player can afford it.
func (e *Engine) Buy() bool { return e.trade(portfolio.SideBuy) }

// Sell sells one share at the sell quote if the player holds one.
func (e *Engine) Sell() bool { return e.trade(portfolio.SideSell) }

func (e *Engine) trade(side portfolio.Side) bool {
	e.mu.Lock()

	latest, ok := e.history.Latest()
	if !ok || e.clock.Over() {
		e.mu.Unlock()
		return false
	}

	var fill portfolio.Fill
	switch side {
	case portfolio.SideBuy:
		fill, ok = e.pf.Buy(latest)
	case portfolio.SideSell:
		fill, ok = e.pf.Sell(latest)
	default:
		ok = false
	}
	if !ok {
		e.mu.Unlock()
		return false
	}

	e.trades++
	rec := e.tradeRecord(fill, e.cfg.Now())
	e.recordTradeLocked(rec)
	listener := e.listener
	logger := e.log
	e.mu.Unlock()

	logger.Debug("trade",
		"side", rec.Side,
		"quote", rec.Quote,
		"cash", rec.CashAfter,
		"shares", rec.SharesAfter,
	)
	if listener != nil {
		listener.OnTrade(rec)
	}
	return true
}

// RecordEquity writes an equity snapshot to the journal. It does nothing
// before the first price or after the session is over.
func (e *Engine) RecordEquity() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	latest, ok := e.history.Latest()
	if !ok || e.clock.Over() {
		return false
	}
	err := e.journal.RecordEquity(journal.EquitySnapshot{
		SessionID: e.sessionID,
		Time:      e.cfg.Now(),
		Price:     latest,
		Cash:      e.pf.Cash(),
		Shares:    e.pf.Shares(),
		NetWorth:  e.pf.NetWorth(latest),
	})
	if err != nil {
		e.log.Warn("journal equity", "err", err)
		return false
	}
	return true
}

// Finish writes the final session summary. Call it when the player leaves;
// it may be called more than once.
func (e *Engine) Finish() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.recordSessionLocked()
}

func (e *Engine) LatestPrice() (market.Price, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Latest()
}

// PriceSeries returns a copy of the retained history, oldest first.
func (e *Engine) PriceSeries() []market.Point {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Points()
}

func (e *Engine) Cash() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pf.Cash()
}

func (e *Engine) Shares() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pf.Shares()
}

func (e *Engine) NetWorth() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pf.NetWorth(e.latestLocked())
}

func (e *Engine) TotalProfit() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pf.TotalProfit(e.latestLocked())
}

func (e *Engine) ROIPerMinute() (float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ROIPerMinute(e.pf.NetWorth(e.latestLocked()), e.pf.InitialCash(), e.clock.Elapsed(e.cfg.Now()))
}

func (e *Engine) IsOver() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clock.Over()
}

func (e *Engine) CanBuy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	latest, ok := e.history.Latest()
	return ok && !e.clock.Over() && e.pf.CanBuy(latest)
}

func (e *Engine) CanSell() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.history.Latest()
	return ok && !e.clock.Over() && e.pf.CanSell()
}

// Quote returns the current buy and sell prices, or false before the first
// tick.
func (e *Engine) Quote() (portfolio.Quote, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	latest, ok := e.history.Latest()
	if !ok {
		return portfolio.Quote{}, false
	}
	return e.pf.Quote(latest), true
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked(e.cfg.Now())
}

func (e *Engine) latestLocked() market.Price {
	latest, _ := e.history.Latest()
	return latest
}

func (e *Engine) snapshotLocked(now time.Time) Snapshot {
	latest, has := e.history.Latest()
	roi, roiOK := ROIPerMinute(e.pf.NetWorth(latest), e.pf.InitialCash(), e.clock.Elapsed(now))
	ended, _ := e.clock.EndedAt()
	over := e.clock.Over()

	s := Snapshot{
		SessionID:      e.sessionID,
		Preset:         e.cfg.Preset,
		Time:           now,
		Tick:           e.ticks,
		Price:          latest,
		HasPrice:       has,
		Series:         e.history.Points(),
		InitialCash:    e.pf.InitialCash(),
		Cash:           e.pf.Cash(),
		Shares:         e.pf.Shares(),
		NetWorth:       e.pf.NetWorth(latest),
		TotalProfit:    e.pf.TotalProfit(latest),
		ReferenceWorth: e.pf.ReferenceWorth(),
		Standing:       e.pf.Standing(latest),
		ROIPerMinute:   roi,
		ROIAvailable:   roiOK,
		CanBuy:         has && !over && e.pf.CanBuy(latest),
		CanSell:        has && !over && e.pf.CanSell(),
		Trades:         e.trades,
		Over:           over,
		StartedAt:      e.clock.StartedAt(),
		EndedAt:        ended,
		Elapsed:        e.clock.Elapsed(now),
	}
	if has {
		s.Quote = e.pf.Quote(latest)
	}
	return s
}

func (e *Engine) tradeRecord(f portfolio.Fill, now time.Time) journal.TradeRecord {
	return journal.TradeRecord{
		TradeID:     id.TradeAt(now),
		SessionID:   e.sessionID,
		Side:        string(f.Side),
		Price:       f.Price,
		Quote:       f.Quote,
		Shares:      f.Shares,
		CashAfter:   f.Cash,
		SharesAfter: f.Held,
		Time:        now,
	}
}

func (e *Engine) recordTradeLocked(rec journal.TradeRecord) {
	if err := e.journal.RecordTrade(rec); err != nil {
		e.log.Warn("journal trade", "trade", rec.TradeID, "err", err)
	}
}

func (e *Engine) recordSessionLocked() {
	ended, _ := e.clock.EndedAt()
	err := e.journal.RecordSession(journal.SessionRecord{
		SessionID:         e.sessionID,
		Preset:            e.cfg.Preset,
		EnforceInsolvency: e.cfg.EnforceInsolvency,
		StartedAt:         e.clock.StartedAt(),
		EndedAt:           ended,
		InitialCash:       e.pf.InitialCash(),
		FinalNetWorth:     e.pf.NetWorth(e.latestLocked()),
		Ticks:             e.ticks,
		Trades:            e.trades,
	})
	if err != nil {
		e.log.Warn("journal session", "err", err)
	}
}

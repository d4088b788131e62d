package sim

import "github.com/rustyeddy/supertrader/journal"

// Listener observes a running engine. Callbacks run on the goroutine that
// caused the event, after the engine lock has been released, so a listener
// may call back into the engine.
//
// Events from different goroutines, such as a runner tick and a buy from an
// HTTP handler, may arrive in a different order than the engine applied
// them. Each Snapshot is internally consistent; compare Snapshot.Tick and
// TradeRecord.Time rather than arrival order.
type Listener interface {
	OnTick(Snapshot)
	OnTrade(journal.TradeRecord)
	OnGameOver(Snapshot)
}

// Listeners fans every event out to each listener in order.
type Listeners []Listener

func (ls Listeners) OnTick(s Snapshot) {
	for _, l := range ls {
		l.OnTick(s)
	}
}

func (ls Listeners) OnTrade(t journal.TradeRecord) {
	for _, l := range ls {
		l.OnTrade(t)
	}
}

func (ls Listeners) OnGameOver(s Snapshot) {
	for _, l := range ls {
		l.OnGameOver(s)
	}
}

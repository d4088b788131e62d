package strategies

import (
	"context"

	"github.com/rustyeddy/supertrader/indicators"
	"github.com/rustyeddy/supertrader/sim"
)

// EMACross buys Units shares when the fast EMA crosses above the slow one
// and sells everything on the opposite cross.
type EMACross struct {
	Units int

	fast *indicators.EMA
	slow *indicators.EMA

	lastDiff     float64
	haveLastDiff bool
	lastTick     uint64
}

func NewEMACross(fast, slow, units int) *EMACross {
	return &EMACross{
		Units: units,
		fast:  indicators.NewEMA(fast),
		slow:  indicators.NewEMA(slow),
	}
}

func (s *EMACross) OnTick(ctx context.Context, t Trader, snap sim.Snapshot) error {
	if !snap.HasPrice || snap.Tick == s.lastTick {
		return nil
	}
	s.lastTick = snap.Tick

	s.fast.Update(snap.Price)
	s.slow.Update(snap.Price)

	// Wait until both EMAs are warmed up.
	if !s.fast.Ready() || !s.slow.Ready() {
		return nil
	}

	diff := s.fast.Value() - s.slow.Value()

	// Need a previous diff to detect a cross.
	if !s.haveLastDiff {
		s.lastDiff = diff
		s.haveLastDiff = true
		return nil
	}

	bullCross := diff > 0 && s.lastDiff <= 0
	bearCross := diff < 0 && s.lastDiff >= 0
	s.lastDiff = diff

	switch {
	case bullCross:
		buyN(t, units(s.Units))
	case bearCross:
		sellN(t, snap.Shares)
	}
	return nil
}

package strategies

import (
	"context"

	"github.com/rustyeddy/supertrader/sim"
)

// BuyAndHold buys Units shares on the first tick it can afford them and
// never trades again.
type BuyAndHold struct {
	Units int

	done bool
}

func (s *BuyAndHold) OnTick(ctx context.Context, t Trader, snap sim.Snapshot) error {
	if s.done || !snap.CanBuy {
		return nil
	}
	buyN(t, units(s.Units))
	s.done = true
	return nil
}

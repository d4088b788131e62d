package strategies

import (
	"context"

	"github.com/rustyeddy/supertrader/indicators"
	"github.com/rustyeddy/supertrader/sim"
)

// MeanRevert buys when the price drops Band below its moving average and
// sells when it rises Band above it.
type MeanRevert struct {
	Units int
	Band  float64

	sma      *indicators.SMA
	lastTick uint64
}

func NewMeanRevert(period int, band float64, units int) *MeanRevert {
	return &MeanRevert{
		Units: units,
		Band:  band,
		sma:   indicators.NewSMA(period),
	}
}

func (s *MeanRevert) OnTick(ctx context.Context, t Trader, snap sim.Snapshot) error {
	if !snap.HasPrice || snap.Tick == s.lastTick {
		return nil
	}
	s.lastTick = snap.Tick

	s.sma.Update(snap.Price)
	if !s.sma.Ready() {
		return nil
	}

	avg := s.sma.Value()
	switch {
	case snap.Price < avg*(1-s.Band):
		buyN(t, units(s.Units))
	case snap.Price > avg*(1+s.Band):
		sellN(t, uint64(units(s.Units)))
	}
	return nil
}

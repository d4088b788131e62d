package strategies

import (
	"context"

	"github.com/rustyeddy/supertrader/sim"
)

// NoopStrategy does nothing.
type NoopStrategy struct{}

func (NoopStrategy) OnTick(ctx context.Context, t Trader, snap sim.Snapshot) error {
	return nil
}

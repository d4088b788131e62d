// Package indicators provides streaming technical indicators over prices.
package indicators

import "github.com/rustyeddy/supertrader/market"

// Indicator computes a single streaming value from prices.
// It is deterministic and safe to use in live and headless sessions.
type Indicator interface {
	// Name returns a stable identifier like "EMA(20)".
	Name() string

	// Warmup returns how many updates are needed before Ready() can be true.
	Warmup() int

	// Reset clears all internal state.
	Reset()

	// Update consumes the next price.
	Update(p market.Price)

	// Ready reports whether Value() is meaningful.
	Ready() bool

	// Value returns the current value, or 0 before the first update.
	Value() float64
}

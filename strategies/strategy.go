// Package strategies drives headless sessions: each strategy looks at a
// snapshot after every tick and decides whether to buy or sell.
package strategies

import (
	"context"
	"fmt"
	"strings"

	"github.com/rustyeddy/supertrader/sim"
)

// Trader executes single-share trades. *sim.Engine implements it.
// Both methods report whether the trade happened.
type Trader interface {
	Buy() bool
	Sell() bool
}

// TickStrategy is called once per tick with the state after that tick.
type TickStrategy interface {
	OnTick(ctx context.Context, t Trader, snap sim.Snapshot) error
}

// Params carries the tunables of every strategy; each one reads only the
// fields it needs.
type Params struct {
	Units  int     `json:"units" yaml:"units"`   // shares per signal
	Fast   int     `json:"fast" yaml:"fast"`     // ema-cross fast period
	Slow   int     `json:"slow" yaml:"slow"`     // ema-cross slow period
	Period int     `json:"period" yaml:"period"` // mean-revert window
	Band   float64 `json:"band" yaml:"band"`     // mean-revert distance from the average, as a fraction
}

// DefaultParams returns the settings used when none are given.
func DefaultParams() Params {
	return Params{
		Units:  1,
		Fast:   10,
		Slow:   30,
		Period: 20,
		Band:   0.02,
	}
}

// Names lists the strategies ByName knows.
func Names() []string {
	return []string{"noop", "buy-hold", "ema-cross", "mean-revert"}
}

// ByName builds a fresh strategy.
func ByName(name string, p Params) (TickStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "noop", "none":
		return NoopStrategy{}, nil

	case "buy-hold", "buyhold", "open-once":
		return &BuyAndHold{Units: p.Units}, nil

	case "ema-cross", "emacross":
		if p.Fast <= 0 || p.Slow <= 0 || p.Fast >= p.Slow {
			return nil, fmt.Errorf("ema-cross: need 0 < fast < slow, got fast=%d slow=%d", p.Fast, p.Slow)
		}
		return NewEMACross(p.Fast, p.Slow, p.Units), nil

	case "mean-revert", "meanrevert":
		if p.Period <= 0 || p.Band <= 0 {
			return nil, fmt.Errorf("mean-revert: period and band must be positive")
		}
		return NewMeanRevert(p.Period, p.Band, p.Units), nil

	default:
		return nil, fmt.Errorf("unknown strategy %q (supported: %s)", name, strings.Join(Names(), ", "))
	}
}

// buyN buys up to n shares and returns how many were bought.
func buyN(t Trader, n int) int {
	done := 0
	for done < n && t.Buy() {
		done++
	}
	return done
}

// sellN sells up to n shares and returns how many were sold.
func sellN(t Trader, n uint64) uint64 {
	var done uint64
	for done < n && t.Sell() {
		done++
	}
	return done
}

func units(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}

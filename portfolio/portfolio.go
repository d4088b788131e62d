// Package portfolio holds the player's cash and shares of the single traded
// instrument and enforces which trades are allowed.
package portfolio

import "github.com/rustyeddy/supertrader/market"

// DefaultSpread is the fraction added to the latest price when buying and
// taken off it when selling.
const DefaultSpread = 0.01

// Side identifies what happened to the holding.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
	// SideWipe is the forced write-off of every share when the game ends.
	SideWipe Side = "WIPE"
)

// Quote is the pair of prices a trade executes at for a given latest price.
type Quote struct {
	Buy  market.Price `json:"buy"`
	Sell market.Price `json:"sell"`
}

// Fill describes an executed trade.
type Fill struct {
	Side   Side
	Price  market.Price // latest price the quote was derived from
	Quote  market.Price // price actually paid or received per share
	Shares uint64
	Cash   float64 // cash after the trade
	Held   uint64  // shares after the trade
}

// Portfolio tracks cash and a share count. Cash and shares only change through
// Buy, Sell and Freeze. A Portfolio is not safe for concurrent use.
type Portfolio struct {
	initialCash    float64
	cash           float64
	shares         uint64
	referenceWorth float64
	spread         float64
	frozen         bool
}

// New returns an empty portfolio with the default spread.
func New(initialCash float64) *Portfolio {
	return NewWithSpread(initialCash, DefaultSpread)
}

// NewWithSpread returns an empty portfolio quoting with the given spread.
// A spread of zero or less uses DefaultSpread, so a round trip always costs.
func NewWithSpread(initialCash, spread float64) *Portfolio {
	if spread <= 0 {
		spread = DefaultSpread
	}
	return &Portfolio{
		initialCash:    initialCash,
		cash:           initialCash,
		referenceWorth: initialCash,
		spread:         spread,
	}
}

func (p *Portfolio) InitialCash() float64    { return p.initialCash }
func (p *Portfolio) Cash() float64           { return p.cash }
func (p *Portfolio) Shares() uint64          { return p.shares }
func (p *Portfolio) ReferenceWorth() float64 { return p.referenceWorth }
func (p *Portfolio) Spread() float64         { return p.spread }
func (p *Portfolio) Frozen() bool            { return p.frozen }

// Quote returns the buy and sell prices for the latest price.
func (p *Portfolio) Quote(latest market.Price) Quote {
	return Quote{
		Buy:  latest * (1 + p.spread),
		Sell: latest * (1 - p.spread),
	}
}

// CanBuy reports whether Buy would execute at the latest price.
func (p *Portfolio) CanBuy(latest market.Price) bool {
	return !p.frozen && p.cash >= p.Quote(latest).Buy
}

// CanSell reports whether Sell would execute.
func (p *Portfolio) CanSell() bool {
	return !p.frozen && p.shares >= 1
}

// Buy purchases one share at the buy quote. The first share bought from an
// empty holding captures the pre-trade cash as the reference worth.
// Ineligible buys change nothing and return false.
func (p *Portfolio) Buy(latest market.Price) (Fill, bool) {
	if !p.CanBuy(latest) {
		return Fill{}, false
	}
	q := p.Quote(latest).Buy
	if p.shares == 0 {
		p.referenceWorth = p.cash
	}
	p.cash -= q
	p.shares++
	return p.fill(SideBuy, latest, q, 1), true
}

// Sell sells one share at the sell quote. Ineligible sells change nothing
// and return false.
func (p *Portfolio) Sell(latest market.Price) (Fill, bool) {
	if !p.CanSell() {
		return Fill{}, false
	}
	q := p.Quote(latest).Sell
	p.cash += q
	p.shares--
	return p.fill(SideSell, latest, q, 1), true
}

// Freeze wipes every share without crediting cash and blocks further
// trading. It returns the number of shares written off; calling it again
// returns 0.
func (p *Portfolio) Freeze() uint64 {
	wiped := p.shares
	p.shares = 0
	p.frozen = true
	return wiped
}

// NetWorth values the shares at the instantaneous sell quote.
func (p *Portfolio) NetWorth(latest market.Price) float64 {
	return p.cash + float64(p.shares)*p.Quote(latest).Sell
}

// TotalProfit is net worth measured against the starting cash.
func (p *Portfolio) TotalProfit(latest market.Price) float64 {
	return p.NetWorth(latest) - p.initialCash
}

// Standing compares current net worth to the reference worth.
func (p *Portfolio) Standing(latest market.Price) Standing {
	if p.shares == 0 {
		return Flat
	}
	if p.NetWorth(latest) > p.referenceWorth {
		return Ahead
	}
	return Behind
}

func (p *Portfolio) fill(side Side, latest, quote market.Price, n uint64) Fill {
	return Fill{
		Side:   side,
		Price:  latest,
		Quote:  quote,
		Shares: n,
		Cash:   p.cash,
		Held:   p.shares,
	}
}

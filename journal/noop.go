package journal

// Noop discards everything. It is used when journaling is turned off.
type Noop struct{}

func NewNoop() *Noop { return &Noop{} }

func (Noop) RecordSession(SessionRecord) error { return nil }
func (Noop) RecordTrade(TradeRecord) error     { return nil }
func (Noop) RecordEquity(EquitySnapshot) error { return nil }
func (Noop) Close() error                      { return nil }

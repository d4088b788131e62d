package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatSessionOrg renders a session summary as an Org-mode heading with a
// PROPERTIES drawer, followed by its trades.
func FormatSessionOrg(s SessionRecord, trades []TradeRecord) string {
	profit := decimal.NewFromFloat(s.FinalNetWorth).Sub(decimal.NewFromFloat(s.InitialCash))

	status := "QUIT"
	if s.Over() {
		status = "COLLAPSED"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "* Session %s [%s]\n", shortID(s.SessionID), status)
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":SESSION_ID: %s\n", s.SessionID)
	fmt.Fprintf(&b, ":PRESET: %s\n", s.Preset)
	fmt.Fprintf(&b, ":ENFORCE_INSOLVENCY: %t\n", s.EnforceInsolvency)
	fmt.Fprintf(&b, ":STARTED_AT: %s\n", s.StartedAt.UTC().Format(time.RFC3339))
	if s.Over() {
		fmt.Fprintf(&b, ":ENDED_AT: %s\n", s.EndedAt.UTC().Format(time.RFC3339))
	}
	fmt.Fprintf(&b, ":INITIAL_CASH: %s\n", money(s.InitialCash))
	fmt.Fprintf(&b, ":FINAL_NET_WORTH: %s\n", money(s.FinalNetWorth))
	fmt.Fprintf(&b, ":TOTAL_PROFIT: %s\n", profit.StringFixed(2))
	fmt.Fprintf(&b, ":TICKS: %d\n", s.Ticks)
	fmt.Fprintf(&b, ":TRADES: %d\n", s.Trades)
	b.WriteString(":END:\n")

	for _, t := range trades {
		b.WriteString("\n")
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

// FormatTradeOrg renders one trade as an Org-mode subheading.
func FormatTradeOrg(t TradeRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** %s %d @ %s (%s)\n", t.Side, t.Shares, money(t.Quote), shortID(t.TradeID))
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":TRADE_ID: %s\n", t.TradeID)
	fmt.Fprintf(&b, ":SIDE: %s\n", t.Side)
	fmt.Fprintf(&b, ":PRICE: %.4f\n", t.Price)
	fmt.Fprintf(&b, ":QUOTE: %.4f\n", t.Quote)
	fmt.Fprintf(&b, ":CASH_AFTER: %s\n", money(t.CashAfter))
	fmt.Fprintf(&b, ":SHARES_AFTER: %d\n", t.SharesAfter)
	fmt.Fprintf(&b, ":TIME: %s\n", t.Time.UTC().Format(time.RFC3339Nano))
	b.WriteString(":END:\n")
	return b.String()
}

// FormatSessionsTable renders a plain Org table of session summaries.
func FormatSessionsTable(sessions []SessionRecord) string {
	var b strings.Builder
	b.WriteString("| session | preset | started | status | ticks | trades | net worth | profit |\n")
	b.WriteString("|---------+--------+---------+--------+-------+--------+-----------+--------|\n")
	for _, s := range sessions {
		status := "quit"
		if s.Over() {
			status = "collapsed"
		}
		profit := decimal.NewFromFloat(s.FinalNetWorth).Sub(decimal.NewFromFloat(s.InitialCash))
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %d | %d | %s | %s |\n",
			shortID(s.SessionID),
			s.Preset,
			s.StartedAt.Local().Format("2006-01-02 15:04:05"),
			status,
			s.Ticks,
			s.Trades,
			money(s.FinalNetWorth),
			profit.StringFixed(2),
		)
	}
	return b.String()
}

// FormatEquityTable renders equity snapshots as an Org table.
func FormatEquityTable(points []EquitySnapshot) string {
	var b strings.Builder
	b.WriteString("| time | price | cash | shares | net worth |\n")
	b.WriteString("|------+-------+------+--------+-----------|\n")
	for _, e := range points {
		fmt.Fprintf(&b, "| %s | %.4f | %s | %d | %s |\n",
			e.Time.Local().Format("15:04:05.000"),
			e.Price,
			money(e.Cash),
			e.Shares,
			money(e.NetWorth),
		)
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}

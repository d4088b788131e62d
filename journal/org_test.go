package journal

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTradeOrg(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 3, 15, 10, 30, 45, 0, time.UTC)
	result := FormatTradeOrg(TradeRecord{
		TradeID:     "01HV0000000000000000000000",
		SessionID:   "S1",
		Side:        "BUY",
		Price:       100,
		Quote:       101,
		Shares:      1,
		CashAfter:   899,
		SharesAfter: 1,
		Time:        at,
	})

	assert.True(t, strings.HasPrefix(result, "** BUY 1 @ 101.00 (01HV0000)\n"))
	assert.Contains(t, result, ":PROPERTIES:")
	assert.Contains(t, result, ":TRADE_ID: 01HV0000000000000000000000")
	assert.Contains(t, result, ":PRICE: 100.0000")
	assert.Contains(t, result, ":QUOTE: 101.0000")
	assert.Contains(t, result, ":CASH_AFTER: 899.00")
	assert.Contains(t, result, ":SHARES_AFTER: 1")
	assert.Contains(t, result, ":TIME: 2024-03-15T10:30:45Z")
	assert.Contains(t, result, ":END:")
}

func TestFormatSessionOrg(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	s := SessionRecord{
		SessionID:         "3f2a9c1e-0000-0000-0000-000000000000",
		Preset:            "classic",
		EnforceInsolvency: true,
		StartedAt:         start,
		EndedAt:           start.Add(time.Minute),
		InitialCash:       1000,
		FinalNetWorth:     998,
		Ticks:             300,
		Trades:            2,
	}
	trades := []TradeRecord{
		{TradeID: "T1", Side: "BUY", Shares: 1, Quote: 101, Time: start},
		{TradeID: "T2", Side: "SELL", Shares: 1, Quote: 99, Time: start},
	}

	result := FormatSessionOrg(s, trades)

	assert.True(t, strings.HasPrefix(result, "* Session 3f2a9c1e [COLLAPSED]\n"))
	assert.Contains(t, result, ":ENDED_AT: 2024-03-15T10:01:00Z")
	assert.Contains(t, result, ":TOTAL_PROFIT: -2.00")
	assert.Contains(t, result, ":TICKS: 300")
	assert.Equal(t, 2, strings.Count(result, "\n** "))
}

func TestFormatSessionOrgQuit(t *testing.T) {
	t.Parallel()

	result := FormatSessionOrg(SessionRecord{SessionID: "abc", InitialCash: 1000, FinalNetWorth: 1000}, nil)

	assert.Contains(t, result, "[QUIT]")
	assert.NotContains(t, result, ":ENDED_AT:")
	assert.Contains(t, result, ":TOTAL_PROFIT: 0.00")
}

func TestFormatSessionsTable(t *testing.T) {
	t.Parallel()

	result := FormatSessionsTable([]SessionRecord{
		{SessionID: "aaaaaaaa-1", Preset: "classic", InitialCash: 1000, FinalNetWorth: 1010.5},
	})

	lines := strings.Split(strings.TrimSpace(result), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[2], "| aaaaaaaa | classic |")
	assert.Contains(t, lines[2], "| 1010.50 | 10.50 |")
}

func TestShortID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", shortID("abc"))
	assert.Equal(t, "12345678", shortID("123456789"))
}

func TestFormatEquityTable(t *testing.T) {
	t.Parallel()

	out := FormatEquityTable([]EquitySnapshot{
		{SessionID: "S1", Time: time.Now(), Price: 101.5, Cash: 899, Shares: 1, NetWorth: 999.485},
	})

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[2], "| 101.5000 | 899.00 | 1 | 999.49 |")
}

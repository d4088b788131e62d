package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCSV(t *testing.T) (*CSV, string) {
	t.Helper()

	dir := t.TempDir()
	j, err := NewCSV(
		filepath.Join(dir, "sessions.csv"),
		filepath.Join(dir, "trades.csv"),
		filepath.Join(dir, "equity.csv"),
	)
	require.NoError(t, err)
	return j, dir
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVJournalHeaders(t *testing.T) {
	t.Parallel()

	j, dir := newTestCSV(t)
	require.NoError(t, j.Close())

	assert.Equal(t, [][]string{sessionHeader}, readCSV(t, filepath.Join(dir, "sessions.csv")))
	assert.Equal(t, [][]string{tradeHeader}, readCSV(t, filepath.Join(dir, "trades.csv")))
	assert.Equal(t, [][]string{equityHeader}, readCSV(t, filepath.Join(dir, "equity.csv")))
}

func TestCSVJournalRecordTrade(t *testing.T) {
	t.Parallel()

	j, dir := newTestCSV(t)
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	err := j.RecordTrade(TradeRecord{
		TradeID:     "T1",
		SessionID:   "S1",
		Side:        "BUY",
		Price:       100,
		Quote:       101,
		Shares:      1,
		CashAfter:   899,
		SharesAfter: 1,
		Time:        at,
	})
	require.NoError(t, err)
	require.NoError(t, j.Close())

	rows := readCSV(t, filepath.Join(dir, "trades.csv"))
	require.Len(t, rows, 2)
	assert.Equal(t, []string{
		"T1", "S1", "BUY",
		"100.000000", "101.000000",
		"1", "899.00", "1",
		"2024-01-02T03:04:05Z",
	}, rows[1])
}

func TestCSVJournalRecordEquity(t *testing.T) {
	t.Parallel()

	j, dir := newTestCSV(t)
	at := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)

	err := j.RecordEquity(EquitySnapshot{
		SessionID: "S1",
		Time:      at,
		Price:     99.5,
		Cash:      899,
		Shares:    1,
		NetWorth:  997.505,
	})
	require.NoError(t, err)
	require.NoError(t, j.Close())

	rows := readCSV(t, filepath.Join(dir, "equity.csv"))
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"S1", "2024-02-03T04:05:06Z", "99.500000", "899.00", "1", "997.51"}, rows[1])
}

func TestCSVJournalRecordSession(t *testing.T) {
	t.Parallel()

	j, dir := newTestCSV(t)
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Minute)

	rec := SessionRecord{
		SessionID:         "S1",
		Preset:            "classic",
		EnforceInsolvency: true,
		StartedAt:         start,
		InitialCash:       1000,
		FinalNetWorth:     1000,
	}
	require.NoError(t, j.RecordSession(rec))

	rec.EndedAt = end
	rec.FinalNetWorth = 0
	rec.Ticks = 600
	rec.Trades = 3
	require.NoError(t, j.RecordSession(rec))
	require.NoError(t, j.Close())

	rows := readCSV(t, filepath.Join(dir, "sessions.csv"))
	require.Len(t, rows, 3)
	assert.Equal(t, "", rows[1][4], "running session has no end time")
	assert.Equal(t, []string{
		"S1", "classic", "true",
		"2024-03-01T12:00:00Z", "2024-03-01T12:02:00Z",
		"1000.00", "0.00", "600", "3",
	}, rows[2])
}

func TestNewCSVBadPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	missing := filepath.Join(dir, "nope", "trades.csv")

	_, err := NewCSV(filepath.Join(dir, "sessions.csv"), missing, filepath.Join(dir, "equity.csv"))
	assert.Error(t, err)
}

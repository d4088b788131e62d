package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "journal.sqlite")
	j, err := NewSQLite(path)
	require.NoError(t, err)
	return j, path
}

func TestSQLiteSchemaIsIdempotent(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	require.NoError(t, j.Close())

	again, err := NewSQLite(path)
	require.NoError(t, err)
	assert.NoError(t, again.Close())
}

func TestSQLiteRecordTrade(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	at := time.Date(2024, 4, 10, 9, 0, 0, 0, time.UTC)
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

	var count int
	require.NoError(t, j.db.QueryRow(`SELECT COUNT(*) FROM trades WHERE session_id = ?`, "S1").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestSQLiteDuplicateTradeID(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	rec := TradeRecord{TradeID: "T1", SessionID: "S1", Side: "BUY", Time: time.Now().UTC()}
	require.NoError(t, j.RecordTrade(rec))
	assert.Error(t, j.RecordTrade(rec))
}

func TestSQLiteRecordSessionUpserts(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	start := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	rec := SessionRecord{
		SessionID:         "S1",
		Preset:            "classic",
		EnforceInsolvency: true,
		StartedAt:         start,
		InitialCash:       1000,
		FinalNetWorth:     1000,
	}
	require.NoError(t, j.RecordSession(rec))

	rec.EndedAt = start.Add(90 * time.Second)
	rec.FinalNetWorth = 0
	rec.Ticks = 450
	rec.Trades = 2
	require.NoError(t, j.RecordSession(rec))

	var count int
	require.NoError(t, j.db.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&count))
	assert.Equal(t, 1, count)

	got, err := j.GetSession("S1")
	require.NoError(t, err)
	assert.True(t, got.Over())
	assert.True(t, got.EndedAt.Equal(rec.EndedAt))
	assert.Equal(t, uint64(450), got.Ticks)
	assert.Equal(t, uint64(2), got.Trades)
	assert.InDelta(t, 0, got.FinalNetWorth, 1e-9)
}

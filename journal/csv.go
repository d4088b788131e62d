package journal

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

var (
	sessionHeader = []string{"session_id", "preset", "enforce_insolvency", "started_at", "ended_at", "initial_cash", "final_net_worth", "ticks", "trades"}
	tradeHeader   = []string{"trade_id", "session_id", "side", "price", "quote", "shares", "cash_after", "shares_after", "time"}
	equityHeader  = []string{"session_id", "time", "price", "cash", "shares", "net_worth"}
)

// CSV appends journal rows to three CSV files. Session rows are appended
// each time a session is recorded, so the last row for a session id wins.
type CSV struct {
	mu       sync.Mutex
	sessions *csv.Writer
	trades   *csv.Writer
	equity   *csv.Writer
	files    []*os.File
}

// NewCSV creates (truncating) the three files and writes their headers.
func NewCSV(sessionsPath, tradesPath, equityPath string) (*CSV, error) {
	j := &CSV{}

	var err error
	if j.sessions, err = j.create(sessionsPath, sessionHeader); err != nil {
		j.closeFiles()
		return nil, err
	}
	if j.trades, err = j.create(tradesPath, tradeHeader); err != nil {
		j.closeFiles()
		return nil, err
	}
	if j.equity, err = j.create(equityPath, equityHeader); err != nil {
		j.closeFiles()
		return nil, err
	}
	return j, nil
}

func (j *CSV) create(path string, header []string) (*csv.Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	j.files = append(j.files, f)

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write header %s: %w", path, err)
	}
	w.Flush()
	return w, w.Error()
}

func (j *CSV) RecordSession(s SessionRecord) error {
	ended := ""
	if s.Over() {
		ended = ts(s.EndedAt)
	}
	return j.write(j.sessions, []string{
		s.SessionID,
		s.Preset,
		strconv.FormatBool(s.EnforceInsolvency),
		ts(s.StartedAt),
		ended,
		money(s.InitialCash),
		money(s.FinalNetWorth),
		strconv.FormatUint(s.Ticks, 10),
		strconv.FormatUint(s.Trades, 10),
	})
}

func (j *CSV) RecordTrade(t TradeRecord) error {
	return j.write(j.trades, []string{
		t.TradeID,
		t.SessionID,
		t.Side,
		f(t.Price),
		f(t.Quote),
		strconv.FormatUint(t.Shares, 10),
		money(t.CashAfter),
		strconv.FormatUint(t.SharesAfter, 10),
		ts(t.Time),
	})
}

func (j *CSV) RecordEquity(e EquitySnapshot) error {
	return j.write(j.equity, []string{
		e.SessionID,
		ts(e.Time),
		f(e.Price),
		money(e.Cash),
		strconv.FormatUint(e.Shares, 10),
		money(e.NetWorth),
	})
}

func (j *CSV) write(w *csv.Writer, row []string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func (j *CSV) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	for _, w := range []*csv.Writer{j.sessions, j.trades, j.equity} {
		w.Flush()
		if err := w.Error(); err != nil {
			j.closeFiles()
			return err
		}
	}
	return j.closeFiles()
}

func (j *CSV) closeFiles() error {
	var first error
	for _, fh := range j.files {
		if err := fh.Close(); err != nil && first == nil {
			first = err
		}
	}
	j.files = nil
	return first
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}

// money rounds a currency amount to cents.
func money(x float64) string {
	return decimal.NewFromFloat(x).StringFixed(2)
}

func ts(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

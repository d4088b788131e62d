// Package replay plays a recorded or hand-written price path through a
// session, with optional scripted trades.
package replay

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rustyeddy/supertrader/market"
	"github.com/rustyeddy/supertrader/sim"
)

// Options controls how a CSV file is read.
type Options struct {
	// SessionID keeps only rows of one session when the file has a
	// session_id column, as the journal's equity.csv does.
	SessionID string
}

// Row is one tick of a replay. Event runs after the price is published.
type Row struct {
	Line  int
	Price market.Price
	Event string
	Count int
}

// LoadFile reads rows from a CSV file.
func LoadFile(path string, opts Options) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f, opts)
}

// Load reads replay rows.
//
// Formats supported:
//
//  1. No header: price[,event[,count]]
//
//  2. A header naming the columns. "price" is required; "event", "count"
//     and "session_id" are optional and other columns are ignored, so a
//     journal equity.csv can be replayed as is.
//
// Events (case-insensitive):
//
//	BUY:       buy count shares (default 1)
//	SELL:      sell count shares (default 1)
//	SELL_ALL:  sell every share held
func Load(r io.Reader, opts Options) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	first, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty replay file")
	}
	if err != nil {
		return nil, err
	}

	cols := columns{price: 0, event: 1, count: 2, session: -1}
	line := 1
	var rows []Row

	if isHeader(first) {
		cols, err = headerColumns(first)
		if err != nil {
			return nil, err
		}
	} else {
		row, err := parseRow(first, cols, line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if len(rec) == 0 || (len(rec) == 1 && strings.TrimSpace(rec[0]) == "") {
			continue
		}
		if opts.SessionID != "" && cols.session >= 0 && field(rec, cols.session) != opts.SessionID {
			continue
		}
		row, err := parseRow(rec, cols, line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no prices to replay")
	}
	return rows, nil
}

type columns struct {
	price, event, count, session int
}

func isHeader(rec []string) bool {
	if len(rec) == 0 {
		return false
	}
	_, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
	return err != nil
}

func headerColumns(rec []string) (columns, error) {
	cols := columns{price: -1, event: -1, count: -1, session: -1}
	for i, name := range rec {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "price":
			cols.price = i
		case "event":
			cols.event = i
		case "count":
			cols.count = i
		case "session_id":
			cols.session = i
		}
	}
	if cols.price < 0 {
		return cols, fmt.Errorf("header has no price column: %v", rec)
	}
	return cols, nil
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func parseRow(rec []string, cols columns, line int) (Row, error) {
	raw := field(rec, cols.price)
	p, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Row{}, fmt.Errorf("line %d: bad price %q: %w", line, raw, err)
	}

	row := Row{Line: line, Price: p, Event: strings.ToUpper(field(rec, cols.event))}
	switch row.Event {
	case "":
	case "BUY", "SELL":
		row.Count = 1
		if c := field(rec, cols.count); c != "" {
			n, err := strconv.Atoi(c)
			if err != nil || n <= 0 {
				return Row{}, fmt.Errorf("line %d: bad count %q", line, c)
			}
			row.Count = n
		}
	case "SELL_ALL":
	default:
		return Row{}, fmt.Errorf("line %d: unknown event %q", line, row.Event)
	}
	return row, nil
}

// Configure points cfg at the replayed path: the first row becomes the seed
// price and the returned generator yields the rest.
func Configure(cfg *sim.Config, rows []Row) market.Generator {
	steps := make([]market.Price, 0, len(rows))
	for _, r := range rows {
		steps = append(steps, r.Price)
	}
	if len(steps) > 0 {
		cfg.SeedPrice = steps[0]
		steps = steps[1:]
	}
	return &market.Scripted{Steps: steps}
}

// Engine is the part of *sim.Engine a replay drives.
type Engine interface {
	Advance() bool
	Buy() bool
	Sell() bool
	Shares() uint64
}

// Result counts what a replay did.
type Result struct {
	Ticks     int
	Bought    int
	Sold      int
	Collapsed bool
}

// Run advances e once per row and applies each row's event after its tick.
// after, when set, is called after every row. Run stops early when the
// session ends or ctx is cancelled.
func Run(ctx context.Context, e Engine, rows []Row, after func(i int) error) (Result, error) {
	var res Result
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		alive := e.Advance()
		res.Ticks++

		switch row.Event {
		case "BUY":
			for n := 0; n < row.Count && e.Buy(); n++ {
				res.Bought++
			}
		case "SELL":
			for n := 0; n < row.Count && e.Sell(); n++ {
				res.Sold++
			}
		case "SELL_ALL":
			for e.Shares() > 0 && e.Sell() {
				res.Sold++
			}
		}

		if after != nil {
			if err := after(i); err != nil {
				return res, err
			}
		}
		if !alive {
			res.Collapsed = true
			break
		}
	}
	return res, nil
}

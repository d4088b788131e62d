package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/supertrader/config"
	"github.com/rustyeddy/supertrader/journal"
	"github.com/rustyeddy/supertrader/market"
	"github.com/rustyeddy/supertrader/scheduler"
	"github.com/rustyeddy/supertrader/sim"
)

// session bundles a running engine with its journal and cron jobs.
type session struct {
	engine  *sim.Engine
	journal journal.Journal
	sched   *scheduler.Scheduler
	log     *slog.Logger
}

// openSession starts a session. now replaces the wall clock when set.
func openSession(cfg *config.Config, log *slog.Logger, now func() time.Time) (*session, error) {
	ec := cfg.Game.EngineConfig()
	ec.Now = now
	return startSession(cfg.Journal, ec, cfg.Game.NewGenerator(), log)
}

func startSession(jc journal.Config, ec sim.Config, gen market.Generator, log *slog.Logger) (*session, error) {
	j, err := journal.Open(jc)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	e := sim.NewEngine(ec, gen, j)
	e.SetLogger(log)

	log.Info("session started",
		"session", e.SessionID(),
		"preset", ec.Preset,
		"initial_cash", ec.InitialCash,
		"enforce_insolvency", ec.EnforceInsolvency,
		"journal", jc.Type,
	)

	return &session{engine: e, journal: j, log: log}, nil
}

// startScheduler runs the equity snapshot job, and the status job when
// statusSpec is set.
func (s *session) startScheduler(snapshotSpec, statusSpec string) error {
	sched := scheduler.New(s.engine, s.log)
	if err := sched.RegisterAll(snapshotSpec, statusSpec); err != nil {
		return err
	}
	sched.Start()
	s.sched = sched
	return nil
}

// Close stops the jobs, records the final session summary and closes the
// journal.
func (s *session) Close() error {
	if s.sched != nil {
		s.sched.Stop()
	}
	s.engine.Finish()

	var errs []error
	if err := s.journal.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close journal: %w", err))
	}
	return errors.Join(errs...)
}

func printSummary(w io.Writer, snap sim.Snapshot) {
	result := "still trading"
	if snap.Over {
		result = "stock collapsed"
	}
	roi := "n/a"
	if snap.ROIAvailable {
		roi = decimal.NewFromFloat(snap.ROIPerMinute).StringFixed(2) + "%"
	}

	fmt.Fprintf(w, "Session %s (%s)\n", snap.SessionID, snap.Preset)
	fmt.Fprintf(w, "  Ticks:          %d\n", snap.Tick)
	fmt.Fprintf(w, "  Trades:         %d\n", snap.Trades)
	if snap.HasPrice {
		fmt.Fprintf(w, "  Last price:     %.4f\n", snap.Price)
	}
	fmt.Fprintf(w, "  Cash:           %s\n", money(snap.Cash))
	fmt.Fprintf(w, "  Shares:         %d\n", snap.Shares)
	fmt.Fprintf(w, "  Net worth:      %s\n", money(snap.NetWorth))
	fmt.Fprintf(w, "  Total profit:   %s\n", money(snap.TotalProfit))
	fmt.Fprintf(w, "  ROI per minute: %s\n", roi)
	fmt.Fprintf(w, "  Elapsed:        %s\n", snap.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "  Result:         %s\n", result)
}

func money(x float64) string {
	return decimal.NewFromFloat(x).StringFixed(2)
}

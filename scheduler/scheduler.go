// Package scheduler runs periodic jobs against a live session.
package scheduler

import (
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/rustyeddy/supertrader/sim"
)

// Session is the part of *sim.Engine the jobs use.
type Session interface {
	RecordEquity() bool
	Snapshot() sim.Snapshot
}

// Scheduler manages the cron jobs of one session.
type Scheduler struct {
	Cron    *cron.Cron
	Session Session

	log *slog.Logger
}

// New creates a scheduler whose specs accept an optional seconds field and
// descriptors such as "@every 5s".
func New(s Session, log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.Default()
	}
	return &Scheduler{
		Cron:    cron.New(cron.WithSeconds()),
		Session: s,
		log:     log,
	}
}

// RegisterAll registers the equity snapshot and status jobs. An empty spec
// skips that job.
func (s *Scheduler) RegisterAll(snapshotSpec, statusSpec string) error {
	if snapshotSpec != "" {
		if _, err := s.Cron.AddFunc(snapshotSpec, s.snapshotTask); err != nil {
			return fmt.Errorf("register snapshot task: %w", err)
		}
	}
	if statusSpec != "" {
		if _, err := s.Cron.AddFunc(statusSpec, s.statusTask); err != nil {
			return fmt.Errorf("register status task: %w", err)
		}
	}
	return nil
}

func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Debug("scheduler started", "jobs", len(s.Cron.Entries()))
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Debug("scheduler stopped")
}

func (s *Scheduler) snapshotTask() { s.RunSnapshotNow() }

// RunSnapshotNow records an equity snapshot immediately. It reports false
// before the first price and after the game is over.
func (s *Scheduler) RunSnapshotNow() bool {
	ok := s.Session.RecordEquity()
	if !ok {
		s.log.Debug("equity snapshot skipped")
	}
	return ok
}

func (s *Scheduler) statusTask() {
	snap := s.Session.Snapshot()
	attrs := []any{
		"tick", snap.Tick,
		"price", snap.Price,
		"cash", snap.Cash,
		"shares", snap.Shares,
		"net_worth", snap.NetWorth,
		"over", snap.Over,
	}
	if snap.ROIAvailable {
		attrs = append(attrs, "roi_per_minute", snap.ROIPerMinute)
	}
	s.log.Info("session status", attrs...)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/supertrader/internal/logger"
	"github.com/rustyeddy/supertrader/metrics"
	"github.com/rustyeddy/supertrader/server"
	"github.com/rustyeddy/supertrader/sim"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a live session behind an HTTP and WebSocket API",
	Long: `Start a session that ticks in real time and expose it over HTTP.

Endpoints:
  GET  /api/v1/session   current snapshot
  GET  /api/v1/prices    rolling price window
  POST /api/v1/buy       buy one share
  POST /api/v1/sell      sell one share
  GET  /ws               snapshot stream (send {"action":"buy"} to trade)
  GET  /metrics          Prometheus metrics
  GET  /health

Examples:
  supertrader serve
  supertrader serve --addr :9090 --preset endless`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var (
	serveAddr        string
	serveStatusEvery string
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
	serveCmd.Flags().StringVar(&serveStatusEvery, "status-every", "@every 1m", "cron spec for the status log line (empty disables)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	log, err := logger.Init(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	interval, err := cfg.Game.TickDuration()
	if err != nil {
		return fmt.Errorf("tick interval: %w", err)
	}
	streamEvery, err := cfg.Server.StreamDuration()
	if err != nil {
		return fmt.Errorf("stream interval: %w", err)
	}

	s, err := openSession(cfg, log, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	m := metrics.New()
	hub := server.NewHub(streamEvery, log)
	s.engine.SetListener(sim.Listeners{m, hub})

	srv := server.New(s.engine, m, hub, log)

	runner := sim.NewRunner(s.engine, interval)
	defer runner.Close()

	if err := s.startScheduler(cfg.Journal.SnapshotEvery, serveStatusEvery); err != nil {
		return err
	}

	if err := srv.ListenAndServe(cmd.Context(), cfg.Server.Addr); err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	printSummary(cmd.OutOrStdout(), s.engine.Snapshot())
	return nil
}

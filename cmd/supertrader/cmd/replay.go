package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/supertrader/internal/logger"
	"github.com/rustyeddy/supertrader/replay"
	"github.com/rustyeddy/supertrader/strategies"
)

var replayCmd = &cobra.Command{
	Use:   "replay <prices.csv>",
	Short: "Replay a price path with scripted trades",
	Long: `Replay prices from a CSV file, one row per tick. The first row is the
opening price. Rows may carry a BUY, SELL or SELL_ALL event that runs after
its tick, and a strategy may trade as well.

A journal equity.csv can be replayed directly; use --session to pick one
session out of it.

Examples:
  supertrader replay prices.csv
  supertrader replay equity.csv --session 3f2a9c1e-... --strategy ema-cross`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

var (
	replaySession  string
	replayStrategy string
)

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().StringVar(&replaySession, "session", "", "only replay rows of this session id")
	replayCmd.Flags().StringVarP(&replayStrategy, "strategy", "s", "noop", "strategy: "+strings.Join(strategies.Names(), ", "))
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := logger.Init(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	rows, err := replay.LoadFile(args[0], replay.Options{SessionID: replaySession})
	if err != nil {
		return fmt.Errorf("load replay: %w", err)
	}

	strat, err := strategies.ByName(replayStrategy, runParams)
	if err != nil {
		return err
	}

	interval, err := cfg.Game.TickDuration()
	if err != nil {
		return fmt.Errorf("tick interval: %w", err)
	}
	now := time.Now()

	ec := cfg.Game.EngineConfig()
	ec.Preset = "replay"
	ec.Now = func() time.Time { return now }
	gen := replay.Configure(&ec, rows)

	s, err := startSession(cfg.Journal, ec, gen, log)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	res, err := replay.Run(ctx, s.engine, rows, func(i int) error {
		err := strat.OnTick(ctx, s.engine, s.engine.Snapshot())
		now = now.Add(interval)
		return err
	})
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}

	s.engine.RecordEquity()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Replayed %d of %d rows from %s (bought %d, sold %d by script)\n\n",
		res.Ticks, len(rows), args[0], res.Bought, res.Sold)
	printSummary(out, s.engine.Snapshot())
	return nil
}

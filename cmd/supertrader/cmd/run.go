package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/supertrader/internal/logger"
	"github.com/rustyeddy/supertrader/strategies"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a headless session driven by a strategy",
	Long: `Run a session without the terminal UI. Ticks are advanced as fast as
possible on a simulated clock that moves one tick interval per tick, so ROI
per minute reads as if the session had been played live.

The session stops after --ticks ticks or when the stock collapses.

Examples:
  supertrader run --ticks 500 --strategy ema-cross --fast 5 --slow 20
  supertrader run --preset endless --strategy buy-hold
  SUPERTRADER_JOURNAL_TYPE=sqlite supertrader run --strategy mean-revert`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

var (
	runTicks       int
	runStrategy    string
	runEquityEvery int
	runParams      = strategies.DefaultParams()
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntVarP(&runTicks, "ticks", "n", 1000, "maximum number of ticks")
	runCmd.Flags().StringVarP(&runStrategy, "strategy", "s", "ema-cross", "strategy: "+strings.Join(strategies.Names(), ", "))
	runCmd.Flags().IntVar(&runEquityEvery, "equity-every", 25, "record an equity snapshot every N ticks (0 disables)")
	runCmd.Flags().IntVar(&runParams.Units, "units", runParams.Units, "shares per signal")
	runCmd.Flags().IntVar(&runParams.Fast, "fast", runParams.Fast, "ema-cross fast period")
	runCmd.Flags().IntVar(&runParams.Slow, "slow", runParams.Slow, "ema-cross slow period")
	runCmd.Flags().IntVar(&runParams.Period, "period", runParams.Period, "mean-revert window")
	runCmd.Flags().Float64Var(&runParams.Band, "band", runParams.Band, "mean-revert band as a fraction of the average")
}

func runRun(cmd *cobra.Command, args []string) error {
	if runTicks <= 0 {
		return fmt.Errorf("--ticks must be positive")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := logger.Init(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	strat, err := strategies.ByName(runStrategy, runParams)
	if err != nil {
		return err
	}

	interval, err := cfg.Game.TickDuration()
	if err != nil {
		return fmt.Errorf("tick interval: %w", err)
	}
	now := time.Now()
	clock := func() time.Time { return now }

	s, err := openSession(cfg, log, clock)
	if err != nil {
		return err
	}
	defer s.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Running %s for up to %d ticks (%s preset)\n\n", runStrategy, runTicks, cfg.Game.Preset)

	ctx := cmd.Context()
	for i := 1; i <= runTicks; i++ {
		if err := ctx.Err(); err != nil {
			log.Warn("run interrupted", "tick", i)
			break
		}
		if i > 1 {
			now = now.Add(interval)
		}

		alive := s.engine.Advance()
		if err := strat.OnTick(ctx, s.engine, s.engine.Snapshot()); err != nil {
			return fmt.Errorf("strategy %s: %w", runStrategy, err)
		}
		if !alive {
			break
		}
		if runEquityEvery > 0 && i%runEquityEvery == 0 {
			s.engine.RecordEquity()
		}
	}

	s.engine.RecordEquity()
	printSummary(out, s.engine.Snapshot())
	return nil
}

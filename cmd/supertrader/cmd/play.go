package cmd

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/supertrader/internal/logger"
	"github.com/rustyeddy/supertrader/sim"
	"github.com/rustyeddy/supertrader/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the interactive terminal game",
	Long: `Open the terminal game. The price moves every tick; press b to buy one
share at the buy quote, s to sell one at the sell quote and q to quit.

Logs go to the configured log file so they never draw over the screen.

Examples:
  supertrader play
  supertrader play --preset endless
  supertrader play -c supertrader.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

var playStatusEvery string

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringVar(&playStatusEvery, "status-every", "@every 30s", "cron spec for the status log line (empty disables)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cfg.Log.Output = "file"
	log, err := logger.Init(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	s, err := openSession(cfg, log, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	interval, err := cfg.Game.TickDuration()
	if err != nil {
		return fmt.Errorf("tick interval: %w", err)
	}

	runner := sim.NewRunner(s.engine, interval)
	defer runner.Close()

	if err := s.startScheduler(cfg.Journal.SnapshotEvery, playStatusEvery); err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewModel(s.engine, interval), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run tui: %w", err)
	}

	printSummary(cmd.OutOrStdout(), s.engine.Snapshot())
	return nil
}

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/supertrader/config"
)

var rootCmd = &cobra.Command{
	Use:   "supertrader",
	Short: "A single-player stock trading game",
	Long: `Supertrader simulates one stock whose price takes a random walk.

Start with cash, buy and sell one share at a time across a 1% spread and try
to grow your net worth before the stock collapses.

  play     - the interactive terminal game
  run      - a headless session driven by a strategy
  serve    - a live session behind an HTTP and WebSocket API
  config   - generate, validate or show configuration
  journal  - query sessions recorded in a SQLite journal`,
	SilenceUsage: true,
}

var (
	cfgFile    string
	presetName string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVarP(&presetName, "preset", "p", "", "game preset: classic or endless (replaces the game section)")
}

// loadConfig resolves settings from defaults, the config file, SUPERTRADER_*
// environment variables and the --preset flag, in that order.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if cfgFile != "" {
		var err error
		cfg, err = config.LoadFromFile(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if presetName != "" {
		if err := cfg.UsePreset(presetName); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

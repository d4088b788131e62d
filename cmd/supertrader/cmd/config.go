package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/supertrader/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate, validate or show configuration files",
	Long: `Manage configuration files.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file
  show     - Print the effective configuration

Examples:
  supertrader config init -o supertrader.yaml
  supertrader config validate -f supertrader.yaml
  supertrader config show --preset endless`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default configuration file",
	Long: `Create a new configuration file with default settings. A .yaml or .yml
extension writes YAML, anything else JSON.

Example:
  supertrader config init -o supertrader.yaml --preset endless`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Args:  cobra.NoArgs,
	RunE:  runConfigValidate,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration after the config file, SUPERTRADER_* environment
variables and --preset have been applied.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var (
	configInitOutput   string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "supertrader.yaml", "output config file path")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "path to config file (required)")
	configValidateCmd.MarkFlagRequired("file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if presetName != "" {
		if err := cfg.UsePreset(presetName); err != nil {
			return err
		}
	}
	if err := cfg.SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Created default configuration: %s\n", configInitOutput)
	fmt.Fprintln(out, "\nEdit the file and play with:")
	fmt.Fprintf(out, "  supertrader play -c %s\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(configValidatePath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Configuration valid: %s\n", configValidatePath)
	fmt.Fprintf(out, "  Game: %s (cash %.2f, seed price %.2f, stddev %.2f, insolvency %t)\n",
		cfg.Game.Preset, cfg.Game.InitialCash, cfg.Game.SeedPrice, cfg.Game.StdDev, cfg.Game.EnforceInsolvency)
	fmt.Fprintf(out, "  Journal: %s\n", journalTarget(cfg))
	fmt.Fprintf(out, "  Log: %s %s to %s\n", cfg.Log.Level, cfg.Log.Format, cfg.Log.Output)
	fmt.Fprintf(out, "  Server: %s\n", cfg.Server.Addr)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func journalTarget(cfg *config.Config) string {
	switch strings.ToLower(cfg.Journal.Type) {
	case "csv":
		return "csv in " + cfg.Journal.Dir
	case "sqlite":
		return "sqlite at " + cfg.Journal.DBPath
	default:
		return "none"
	}
}

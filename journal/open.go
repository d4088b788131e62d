package journal

import (
	"fmt"
	"path/filepath"
)

// Config selects and locates the journal backend.
type Config struct {
	// Type is none, csv or sqlite.
	Type string `json:"type" yaml:"type"`
	// Dir holds the CSV files when Type is csv.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`
	// DBPath is the database file when Type is sqlite.
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	// SnapshotEvery is a cron spec for periodic equity snapshots, e.g. "@every 5s".
	// Empty disables them.
	SnapshotEvery string `json:"snapshot_every,omitempty" yaml:"snapshot_every,omitempty"`
}

// DefaultConfig turns journaling off.
func DefaultConfig() Config {
	return Config{
		Type:          "none",
		Dir:           ".",
		DBPath:        "./supertrader.sqlite",
		SnapshotEvery: "@every 5s",
	}
}

// Validate checks that the selected backend has what it needs.
func (c Config) Validate() error {
	switch c.Type {
	case "", "none":
	case "csv":
		if c.Dir == "" {
			return fmt.Errorf("journal.dir required for csv type")
		}
	case "sqlite":
		if c.DBPath == "" {
			return fmt.Errorf("journal.db_path required for sqlite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	return nil
}

// Open creates the journal described by cfg.
func Open(cfg Config) (Journal, error) {
	switch cfg.Type {
	case "", "none":
		return NewNoop(), nil
	case "csv":
		return NewCSV(
			filepath.Join(cfg.Dir, "sessions.csv"),
			filepath.Join(cfg.Dir, "trades.csv"),
			filepath.Join(cfg.Dir, "equity.csv"),
		)
	case "sqlite":
		return NewSQLite(cfg.DBPath)
	default:
		return nil, fmt.Errorf("unknown journal type %q", cfg.Type)
	}
}

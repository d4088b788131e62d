package config

import (
	"fmt"
	"os"
	"strconv"
)

// EnvPrefix starts every environment variable ApplyEnv reads.
const EnvPrefix = "SUPERTRADER_"

// ApplyEnv overrides settings from SUPERTRADER_* environment variables.
// SUPERTRADER_PRESET is applied first so the other game variables can
// refine it.
func (c *Config) ApplyEnv() error {
	return c.applyEnv(os.Getenv)
}

func (c *Config) applyEnv(getenv func(string) string) error {
	get := func(name string) string { return getenv(EnvPrefix + name) }

	if v := get("PRESET"); v != "" {
		if err := c.UsePreset(v); err != nil {
			return err
		}
	}

	if v := get("INITIAL_CASH"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%sINITIAL_CASH: %w", EnvPrefix, err)
		}
		c.Game.InitialCash = f
	}
	if v := get("STDDEV"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%sSTDDEV: %w", EnvPrefix, err)
		}
		c.Game.StdDev = f
	}
	if v := get("SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%sSEED: %w", EnvPrefix, err)
		}
		c.Game.Seed = n
	}
	if v := get("ENFORCE_INSOLVENCY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sENFORCE_INSOLVENCY: %w", EnvPrefix, err)
		}
		c.Game.EnforceInsolvency = b
	}
	if v := get("TICK_INTERVAL"); v != "" {
		c.Game.TickInterval = v
	}

	if v := get("JOURNAL_TYPE"); v != "" {
		c.Journal.Type = v
	}
	if v := get("JOURNAL_DIR"); v != "" {
		c.Journal.Dir = v
	}
	if v := get("DB_PATH"); v != "" {
		c.Journal.DBPath = v
	}
	if v := get("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := get("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := get("ADDR"); v != "" {
		c.Server.Addr = v
	}
	return nil
}

// UsePreset replaces the game section with a named preset.
func (c *Config) UsePreset(name string) error {
	g, err := Preset(name)
	if err != nil {
		return err
	}
	c.Game = g
	return nil
}

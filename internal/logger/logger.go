// Package logger builds slog loggers with optional rotating file output.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls level, format and destination of log output.
type Config struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level"`
	// Format is json or text.
	Format string `json:"format" yaml:"format"`
	// Output is stdout, stderr, file or both (stderr + file).
	Output string `json:"output" yaml:"output"`
	// FilePath is used when Output is file or both.
	FilePath string `json:"file_path,omitempty" yaml:"file_path,omitempty"`
	// MaxSize is the size in megabytes before a log file is rotated.
	MaxSize int `json:"max_size,omitempty" yaml:"max_size,omitempty"`
	// MaxBackups is the number of rotated files kept.
	MaxBackups int `json:"max_backups,omitempty" yaml:"max_backups,omitempty"`
	// MaxAge is the number of days rotated files are kept.
	MaxAge   int  `json:"max_age,omitempty" yaml:"max_age,omitempty"`
	Compress bool `json:"compress,omitempty" yaml:"compress,omitempty"`
}

// DefaultConfig logs text at info level to stderr.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Format:     "text",
		Output:     "stderr",
		FilePath:   "logs/supertrader.log",
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     7,
	}
}

// Validate checks the enumerated fields.
func (c Config) Validate() error {
	switch strings.ToLower(c.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q must be debug, info, warn or error", c.Level)
	}
	switch c.Format {
	case "", "json", "text":
	default:
		return fmt.Errorf("log.format %q must be json or text", c.Format)
	}
	switch c.Output {
	case "", "stdout", "stderr":
	case "file", "both":
		if c.FilePath == "" {
			return fmt.Errorf("log.file_path is required for output %q", c.Output)
		}
	default:
		return fmt.Errorf("log.output %q must be stdout, stderr, file or both", c.Output)
	}
	return nil
}

// New builds a logger from cfg.
func New(cfg Config) (*slog.Logger, error) {
	w, err := writer(cfg)
	if err != nil {
		return nil, err
	}
	return NewWithWriter(cfg, w), nil
}

// NewWithWriter builds a logger writing to w, ignoring cfg.Output.
func NewWithWriter(cfg Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				a.Value = slog.StringValue(a.Value.Time().Format(time.RFC3339Nano))
			}
			return a
		},
	}

	var h slog.Handler
	if cfg.Format == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
}

// Init builds a logger from cfg and installs it as the slog default.
func Init(cfg Config) (*slog.Logger, error) {
	l, err := New(cfg)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(l)
	return l, nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func writer(cfg Config) (io.Writer, error) {
	switch cfg.Output {
	case "stdout":
		return os.Stdout, nil
	case "file", "both":
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		fw := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		if cfg.Output == "both" {
			return io.MultiWriter(os.Stderr, fw), nil
		}
		return fw, nil
	default:
		return os.Stderr, nil
	}
}

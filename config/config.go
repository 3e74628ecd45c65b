// Package config holds the settings of a vtgrid process. Values start from
// Default, may be overlaid by a config file (see cmd/vtgrid), and are then
// overlaid by VTGRID_* environment variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/hnimtadd/vtgrid"
	"github.com/hnimtadd/vtgrid/logger"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every variable. Names follow the field path, e.g.
// VTGRID_TERMINAL_ROWS or VTGRID_SESSION_QUEUE_DEPTH.
const EnvPrefix = "VTGRID"

// Config holds all settings.
type Config struct {
	Terminal TerminalConfig `mapstructure:"terminal"`
	Session  SessionConfig  `mapstructure:"session"`
	Render   RenderConfig   `mapstructure:"render"`
	Log      LogConfig      `mapstructure:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// TerminalConfig sizes the grid and picks the child command.
type TerminalConfig struct {
	Rows       int    `split_words:"true" mapstructure:"rows"`
	Cols       int    `split_words:"true" mapstructure:"cols"`
	Scrollback int    `split_words:"true" mapstructure:"scrollback"`
	Shell      string `split_words:"true" mapstructure:"shell"`
}

// SessionConfig tunes the pipeline between the pty and the grid.
type SessionConfig struct {
	QueueDepth     int           `split_words:"true" mapstructure:"queue_depth"`
	ReadBufferSize int           `split_words:"true" mapstructure:"read_buffer_size"`
	FrameInterval  time.Duration `split_words:"true" mapstructure:"frame_interval"`
	BellRate       float64       `split_words:"true" mapstructure:"bell_rate"`
	BellBurst      int           `split_words:"true" mapstructure:"bell_burst"`
}

// RenderConfig is the cell metrics in pixels and the atlas size.
type RenderConfig struct {
	CellWidth       float32       `split_words:"true" mapstructure:"cell_width"`
	CellHeight      float32       `split_words:"true" mapstructure:"cell_height"`
	Descender       float32       `split_words:"true" mapstructure:"descender"`
	AtlasSize       int           `split_words:"true" mapstructure:"atlas_size"`
	GlyphExpiration time.Duration `split_words:"true" mapstructure:"glyph_expiration"`
}

type LogConfig struct {
	Level  string `split_words:"true" mapstructure:"level"`
	Format string `split_words:"true" mapstructure:"format"`
}

type MetricsConfig struct {
	// Addr serves /metrics when set, e.g. ":9090".
	Addr string `split_words:"true" mapstructure:"addr"`
}

// Default returns default configuration.
func Default() Config {
	return Config{
		Terminal: TerminalConfig{
			Rows:       24,
			Cols:       80,
			Scrollback: 10000,
			Shell:      "/bin/sh",
		},
		Session: SessionConfig{
			QueueDepth:     vtgrid.DefaultQueueDepth,
			ReadBufferSize: vtgrid.DefaultReadBufferSize,
			FrameInterval:  16 * time.Millisecond,
			BellRate:       float64(vtgrid.DefaultBellRate),
			BellBurst:      vtgrid.DefaultBellBurst,
		},
		Render: RenderConfig{
			CellWidth:       8,
			CellHeight:      16,
			Descender:       -3,
			AtlasSize:       1024,
			GlyphExpiration: 10 * time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load returns Default overlaid by the environment, validated.
func Load() (Config, error) {
	cfg := Default()
	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overlays the variables that are set; unset ones keep the
// current value.
func (c *Config) ApplyEnv() error {
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return fmt.Errorf("failed to load config from env: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	if c.Terminal.Rows < 1 || c.Terminal.Cols < 2 {
		return fmt.Errorf("%w: %dx%d, need at least 2x1", vtgrid.ErrInvalidSize, c.Terminal.Cols, c.Terminal.Rows)
	}
	if c.Terminal.Scrollback < 0 {
		return fmt.Errorf("negative scrollback %d", c.Terminal.Scrollback)
	}
	if c.Terminal.Shell == "" {
		return errors.New("no shell configured")
	}
	if c.Session.QueueDepth < 1 {
		return fmt.Errorf("queue depth must be positive, got %d", c.Session.QueueDepth)
	}
	if c.Session.FrameInterval < 0 {
		return fmt.Errorf("negative frame interval %s", c.Session.FrameInterval)
	}
	if c.Session.BellRate < 0 {
		return fmt.Errorf("negative bell rate %g", c.Session.BellRate)
	}
	if c.Render.CellWidth <= 0 || c.Render.CellHeight <= 0 {
		return fmt.Errorf("%w: cell %gx%g pixels", vtgrid.ErrInvalidSize, c.Render.CellWidth, c.Render.CellHeight)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if _, err := logger.ParseType(c.Log.Format); err != nil {
		return err
	}
	return nil
}

// LoggerOptions maps the log settings; Validate has checked them.
func (c LogConfig) LoggerOptions() logger.Options {
	level, _ := logger.ParseLevel(c.Level)
	format, _ := logger.ParseType(c.Format)
	return logger.Options{Level: level, Type: format}
}

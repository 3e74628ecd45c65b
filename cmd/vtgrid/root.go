package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hnimtadd/vtgrid/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "vtgrid",
		Short:        "Headless terminal emulator core",
		Version:      version,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringP("config", "c", "", "config file (yaml, toml or json)")
	root.AddCommand(newRunCmd())
	return root
}

// resolveConfig layers the settings: defaults, the host terminal size,
// the config file, VTGRID_* variables, then flags the user set.
func resolveConfig(flags *pflag.FlagSet, hostSize func() (cols, rows int, ok bool)) (config.Config, error) {
	cfg := config.Default()
	if cols, rows, ok := hostSize(); ok {
		cfg.Terminal.Cols, cfg.Terminal.Rows = cols, rows
	}

	if path, _ := flags.GetString("config"); path != "" {
		v := viper.New()
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return config.Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := v.Unmarshal(&cfg); err != nil {
			return config.Config{}, fmt.Errorf("decoding config file: %w", err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return config.Config{}, err
	}
	if err := applyFlags(flags, &cfg); err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func applyFlags(flags *pflag.FlagSet, cfg *config.Config) error {
	var errs []error
	intFlag := func(name string, dst *int) {
		if flags.Changed(name) {
			v, err := flags.GetInt(name)
			errs = append(errs, err)
			*dst = v
		}
	}
	stringFlag := func(name string, dst *string) {
		if flags.Changed(name) {
			v, err := flags.GetString(name)
			errs = append(errs, err)
			*dst = v
		}
	}
	intFlag("rows", &cfg.Terminal.Rows)
	intFlag("cols", &cfg.Terminal.Cols)
	intFlag("scrollback", &cfg.Terminal.Scrollback)
	stringFlag("shell", &cfg.Terminal.Shell)
	stringFlag("metrics-addr", &cfg.Metrics.Addr)
	stringFlag("log-level", &cfg.Log.Level)
	stringFlag("log-format", &cfg.Log.Format)
	return errors.Join(errs...)
}

// stdoutSize is the host terminal size when stdout is one.
func stdoutSize() (cols, rows int, ok bool) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0, 0, false
	}
	cols, rows, err := term.GetSize(fd)
	if err != nil || cols < 2 || rows < 1 {
		return 0, 0, false
	}
	return cols, rows, true
}

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hnimtadd/vtgrid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noHost() (int, int, bool) { return 0, 0, false }

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vtgrid.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestResolveConfig_Layers(t *testing.T) {
	path := writeConfig(t, `
terminal:
  rows: 30
  cols: 100
  shell: /bin/zsh
session:
  frame_interval: 50ms
render:
  cell_width: 9.5
`)
	t.Setenv("VTGRID_TERMINAL_COLS", "120")

	cmd := newRunCmd()
	root := newRootCmd()
	flags := cmd.Flags()
	flags.AddFlagSet(root.PersistentFlags())
	require.NoError(t, flags.Parse([]string{"--config", path, "--rows", "40"}))

	cfg, err := resolveConfig(flags, func() (int, int, bool) { return 200, 50, true })
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Terminal.Rows, "flag beats file")
	assert.Equal(t, 120, cfg.Terminal.Cols, "env beats file")
	assert.Equal(t, "/bin/zsh", cfg.Terminal.Shell)
	assert.Equal(t, 50*time.Millisecond, cfg.Session.FrameInterval)
	assert.Equal(t, float32(9.5), cfg.Render.CellWidth)
}

func TestResolveConfig_HostSize(t *testing.T) {
	cmd := newRunCmd()
	cmd.Flags().AddFlagSet(newRootCmd().PersistentFlags())
	require.NoError(t, cmd.Flags().Parse(nil))

	cfg, err := resolveConfig(cmd.Flags(), func() (int, int, bool) { return 132, 43, true })
	require.NoError(t, err)
	assert.Equal(t, 132, cfg.Terminal.Cols)
	assert.Equal(t, 43, cfg.Terminal.Rows)
}

func TestResolveConfig_Errors(t *testing.T) {
	tcs := []struct {
		name string
		args func(t *testing.T) []string
		is   error
	}{
		{
			name: "missing file",
			args: func(t *testing.T) []string {
				return []string{"--config", filepath.Join(t.TempDir(), "nope.yaml")}
			},
		},
		{
			name: "degenerate size",
			args: func(*testing.T) []string { return []string{"--cols", "1"} },
			is:   vtgrid.ErrInvalidSize,
		},
		{
			name: "bad log format",
			args: func(*testing.T) []string { return []string{"--log-format", "xml"} },
		},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			cmd := newRunCmd()
			cmd.Flags().AddFlagSet(newRootCmd().PersistentFlags())
			require.NoError(t, cmd.Flags().Parse(tc.args(t)))

			_, err := resolveConfig(cmd.Flags(), noHost)
			require.Error(t, err)
			if tc.is != nil {
				assert.ErrorIs(t, err, tc.is)
			}
		})
	}
}

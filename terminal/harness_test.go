package terminal

import (
	"bytes"
	"testing"

	"github.com/hnimtadd/vtgrid/terminal/core"
	"github.com/hnimtadd/vtgrid/terminal/stream"
)

// recorder is a host implementing every handler.
type recorder struct {
	bells      int
	titles     []string
	iconTitles []string
	modes      []core.Mode
}

func (r *recorder) Bell() { r.bells++ }
func (r *recorder) SetTitle(title string) { r.titles = append(r.titles, title) }
func (r *recorder) SetIconTitle(title string) { r.iconTitles = append(r.iconTitles, title) }
func (r *recorder) ModeChanged(m core.Mode, _ bool) { r.modes = append(r.modes, m) }

type harness struct {
	*Terminal
	stream *stream.Stream
	out    *bytes.Buffer
	host   *recorder
}

func newHarness(t *testing.T, cols, rows, scrollback int) *harness {
	t.Helper()
	return buildHarness(cols, rows, scrollback)
}

func buildHarness(cols, rows, scrollback int) *harness {
	h := &harness{out: new(bytes.Buffer), host: &recorder{}}
	h.Terminal = NewTerminal(Options{
		Cols:       cols,
		Rows:       rows,
		Scrollback: scrollback,
		Modes:      core.ModePacked,
		Writer:     h.out,
		Host:       h.host,
	})
	h.stream = stream.NewStream(stream.HandlerFunc(h.Apply), nil)
	return h
}

func (h *harness) feed(input string) *harness {
	h.stream.NextSlice([]byte(input))
	return h
}

func (h *harness) cursor() (int, int) {
	c := h.Screen().Cursor
	return c.X, c.Y
}

func (h *harness) isDirty(x, y int) bool {
	return h.Screen().Line(y).IsDirty(x)
}

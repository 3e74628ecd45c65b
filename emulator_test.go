package vtgrid

import (
	"testing"

	"github.com/hnimtadd/vtgrid/render"
	"github.com/hnimtadd/vtgrid/terminal/parser"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type panickyHost struct{}

func (panickyHost) SetTitle(string) { panic("title handler exploded") }

func newTestEmulator(opts Options) (*Emulator, *Metrics) {
	if opts.Cols == 0 {
		opts.Cols, opts.Rows = 10, 3
	}
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics(nil)
	}
	return NewEmulator(opts), opts.Metrics
}

func TestEmulator_ProcessOutput(t *testing.T) {
	e, m := newTestEmulator(Options{})

	n, err := e.Write([]byte("\x1b[1mhi\r\n"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	for _, c := range []byte("there") {
		require.NoError(t, e.Process(c))
	}

	assert.Equal(t, "hi\nthere", e.PlainString())
	assert.Equal(t, float64(13), testutil.ToFloat64(m.BytesRead))
	assert.Equal(t, float64(7), testutil.ToFloat64(m.Actions.WithLabelValues(parser.ActionPrint.String())))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.Actions.WithLabelValues(parser.ActionExecute.String())))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Actions.WithLabelValues(parser.ActionCSIDispatch.String())))
}

func TestEmulator_RecoversPanic(t *testing.T) {
	e, m := newTestEmulator(Options{Host: panickyHost{}})

	err := e.ProcessOutput([]byte("\x1b]2;boom\x07lost"))
	assert.ErrorContains(t, err, "panic in ProcessOutput")
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Panics))

	require.NoError(t, e.ProcessOutput([]byte("ok")))
	assert.Equal(t, "ok", e.PlainString())
	assert.Equal(t, "boom", e.Title())
}

func TestEmulator_PublishesStats(t *testing.T) {
	e, m := newTestEmulator(Options{Cols: 4, Rows: 2, Scrollback: 10})

	require.NoError(t, e.ProcessOutput([]byte("a\r\nb\r\nc\r\nd\a")))
	require.NoError(t, e.ProcessOutput([]byte("\x1b[?9999h\x1b[5z")))

	assert.Equal(t, float64(2), testutil.ToFloat64(m.ScrollbackLines))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Bells))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.UnknownSequences))
	assert.Equal(t, uint64(2), e.Stats().UnknownSequences)
}

func TestEmulator_Frame(t *testing.T) {
	e, m := newTestEmulator(Options{Cols: 4, Rows: 2})
	geometry := render.Geometry{CellWidth: 8, CellHeight: 16}
	b := render.NewBatcher(geometry, render.NewGridAtlas(geometry, 128), nil)

	batch, f := e.Frame(b)
	assert.True(t, f.Full)
	assert.True(t, batch.Full)
	// Every cell plus the cursor.
	assert.Len(t, batch.Records, 4*2+1)

	require.NoError(t, e.ProcessOutput([]byte("x")))
	batch, f = e.Frame(b)
	assert.False(t, batch.Full)
	require.Len(t, f.Lines, 1)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.Frames))
	assert.Equal(t, float64(9+len(batch.Records)), testutil.ToFloat64(m.RenderRecords))
}

func TestEmulator_SetSelection(t *testing.T) {
	e, _ := newTestEmulator(Options{Cols: 4, Rows: 3})
	geometry := render.Geometry{CellWidth: 8, CellHeight: 16}
	b := render.NewBatcher(geometry, render.NewGridAtlas(geometry, 128), nil)
	require.NoError(t, e.ProcessOutput([]byte("ab")))
	e.Frame(b)

	tcs := []struct {
		name         string
		selection    *render.Selection
		expectedRows []int
	}{
		{name: "select", selection: render.NewSelection(1, 0, 2, 1), expectedRows: []int{1, 2}},
		{name: "move", selection: render.NewSelection(0, 0, 0, 3), expectedRows: []int{0, 1, 2}},
		{name: "clear", selection: nil, expectedRows: []int{0}},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			e.SetSelection(tc.selection)
			_, f := e.Frame(b)
			rows := []int{}
			for _, l := range f.Lines {
				rows = append(rows, l.Row)
			}
			assert.Equal(t, tc.expectedRows, rows)
			assert.Same(t, tc.selection, b.Selection)
		})
	}
}

func TestEmulator_Invalidate(t *testing.T) {
	e, _ := newTestEmulator(Options{Cols: 4, Rows: 2})
	e.TakeFrame()
	require.Empty(t, e.TakeFrame().Lines)

	e.Invalidate()
	f := e.TakeFrame()
	assert.True(t, f.Full)
	assert.Len(t, f.Lines, 2)
}

func TestEmulator_ResizePublishesScrolledOff(t *testing.T) {
	e, m := newTestEmulator(Options{Cols: 4, Rows: 3, Scrollback: 10})
	require.NoError(t, e.ProcessOutput([]byte("a\r\nb\r\nc")))
	require.Zero(t, testutil.ToFloat64(m.ScrollbackLines))

	e.Resize(4, 1)
	assert.Equal(t, float64(2), testutil.ToFloat64(m.ScrollbackLines))
	assert.Equal(t, uint64(2), e.Stats().ScrolledOff)
}

func TestEmulator_ResizeAndViewport(t *testing.T) {
	e, _ := newTestEmulator(Options{Cols: 4, Rows: 2, Scrollback: 10})
	require.NoError(t, e.ProcessOutput([]byte("a\r\nb\r\nc")))

	assert.True(t, e.ScrollViewport(1))
	f := e.TakeFrame()
	assert.Equal(t, 1, f.ViewportOffset)

	e.Resize(6, 3)
	cols, rows := e.Size()
	assert.Equal(t, 6, cols)
	assert.Equal(t, 3, rows)
	assert.True(t, e.TakeFrame().Full)
	assert.True(t, e.Modes().Autowrap)
}

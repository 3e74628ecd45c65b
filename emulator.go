// Package vtgrid runs a terminal emulator core: pty output goes through
// the byte stream parser into the grid, and frames of the grid go through
// the render batcher.
package vtgrid

import (
	"fmt"
	"io"
	"runtime/debug"
	"sync"

	"github.com/hnimtadd/vtgrid/logger"
	"github.com/hnimtadd/vtgrid/render"
	"github.com/hnimtadd/vtgrid/terminal"
	"github.com/hnimtadd/vtgrid/terminal/core"
	"github.com/hnimtadd/vtgrid/terminal/stream"
)

// Emulator pairs the stream parser with the grid. Its methods are safe for
// concurrent use, but ProcessOutput is meant to have a single caller so
// that output is applied in arrival order.
type Emulator struct {
	mu sync.Mutex

	// The terminal emulator internal state. This is the abstract "terminal"
	// that manages input, grid updating, etc. and is renderer-agnostic. It
	// just stores internal state about a grid.
	terminal *terminal.Terminal

	// The stream parser. This parses the stream of escape codes and so on
	// from the child process and calls callbacks in the stream handler.
	terminalStream *stream.Stream
	handler        *StreamHandler

	// selection is handed to the batcher with every frame.
	selection *render.Selection

	metrics *Metrics
	logger  logger.Logger
}

type Options struct {
	Rows, Cols int
	Scrollback int

	// Writer receives the terminal's replies to queries.
	Writer io.Writer
	// Host may implement the interfaces of the terminal/handler package.
	// Its callbacks run with the emulator locked and must not call back
	// into it.
	Host any

	Metrics *Metrics
	Logger  logger.Logger
}

func NewEmulator(opts Options) *Emulator {
	log := opts.Logger
	if log == nil {
		log = logger.Nop
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = NewMetrics(nil)
	}

	term := terminal.NewTerminal(terminal.Options{
		Rows:       opts.Rows,
		Cols:       opts.Cols,
		Scrollback: opts.Scrollback,
		Modes:      core.ModePacked,
		Writer:     opts.Writer,
		Host:       opts.Host,
		Logger:     log,
	})
	handler := newStreamHandler(term, metrics)
	return &Emulator{
		terminal:       term,
		terminalStream: stream.NewStream(handler, log),
		handler:        handler,
		metrics:        metrics,
		logger:         log,
	}
}

// ProcessOutput feeds pty output to the parser. A panic while applying the
// output is recovered, logged and counted; the grid keeps whatever state it
// reached and later output is still processed.
func (e *Emulator) ProcessOutput(buf []byte) (err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			e.metrics.Panics.Inc()
			e.logger.Error("panic in ProcessOutput", "panic", r, "stack", string(debug.Stack()))
			err = fmt.Errorf("panic in ProcessOutput: %v", r)
		}
		e.handler.publish()
	}()
	e.metrics.BytesRead.Add(float64(len(buf)))
	e.terminalStream.NextSlice(buf)
	return nil
}

// Process feeds a single byte.
//
// NOTE, this is helpful for debugging as you can see the process of each
// byte, but it is not as efficient as the slice version.
func (e *Emulator) Process(c byte) error {
	return e.ProcessOutput([]byte{c})
}

// Write implements io.Writer on top of ProcessOutput.
func (e *Emulator) Write(p []byte) (int, error) {
	if err := e.ProcessOutput(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Resize the grid. Degenerate sizes are clamped by the terminal.
func (e *Emulator) Resize(cols, rows int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.terminal.Resize(cols, rows)
	e.handler.publish()
}

// Size returns the grid size in cells.
func (e *Emulator) Size() (cols, rows int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.terminal.Cols(), e.terminal.Rows()
}

// TakeFrame snapshots the dirty part of the viewport.
func (e *Emulator) TakeFrame() terminal.Frame {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.terminal.TakeFrame()
}

// Frame takes a frame and batches it with the current selection. Only the
// snapshot holds the lock; batching works on the copy.
func (e *Emulator) Frame(b *render.Batcher) (render.Batch, terminal.Frame) {
	e.mu.Lock()
	f := e.terminal.TakeFrame()
	b.Selection = e.selection
	e.mu.Unlock()

	batch := b.Batch(f)
	e.metrics.Frames.Inc()
	e.metrics.RenderRecords.Add(float64(len(batch.Records)))
	return batch, f
}

// SetSelection replaces the highlighted cells. Rows of both the old and
// the new selection are redrawn by the next frame. A nil selection clears
// the highlight.
func (e *Emulator) SetSelection(sel *render.Selection) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, s := range []*render.Selection{e.selection, sel} {
		if s != nil {
			from, to := s.Rows()
			e.terminal.MarkRowsDirty(from, to)
		}
	}
	e.selection = sel
}

// Invalidate makes the next frame full, for a renderer that lost its
// surface.
func (e *Emulator) Invalidate() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.terminal.Invalidate()
}

// ScrollViewport moves the view into the history by delta lines.
func (e *Emulator) ScrollViewport(delta int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.terminal.ScrollViewport(delta)
}

func (e *Emulator) Modes() core.Modes {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.terminal.ModesSnapshot()
}

func (e *Emulator) Title() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.terminal.Title()
}

func (e *Emulator) Stats() terminal.Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.terminal.Stats()
}

// PlainString returns the active area as text.
func (e *Emulator) PlainString() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.terminal.PlainString()
}

package vtgrid

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hnimtadd/vtgrid/logger"
	"github.com/hnimtadd/vtgrid/render"
	"github.com/hnimtadd/vtgrid/terminal/core"
	"github.com/hnimtadd/vtgrid/terminal/handler"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	DefaultQueueDepth     = 64
	DefaultReadBufferSize = 4096
	DefaultBellRate       = rate.Limit(2)
	DefaultBellBurst      = 1
)

var (
	bracketedPasteStart = []byte("\x1b[200~")
	bracketedPasteEnd   = []byte("\x1b[201~")
)

// FrameSink receives batches on the frame loop goroutine. Batches are never
// reused, so the sink may keep them.
type FrameSink func(render.Batch)

type SessionOptions struct {
	Rows, Cols int
	Scrollback int

	// QueueDepth bounds the chunks read from the pty but not yet applied.
	// A full queue stops the reader, which backpressures the child.
	QueueDepth     int
	ReadBufferSize int

	// FrameInterval enables the frame loop. Batcher and Sink are required
	// with it.
	FrameInterval time.Duration
	Batcher       *render.Batcher
	Sink          FrameSink

	// Host receives bells (rate limited), titles and mode changes.
	Host any
	// BellRate and BellBurst configure the bell limiter. A zero BellRate
	// means DefaultBellRate; rate.Inf disables limiting.
	BellRate  rate.Limit
	BellBurst int

	Metrics *Metrics
	Logger  logger.Logger
}

func (o *SessionOptions) setDefaults() {
	if o.QueueDepth <= 0 {
		o.QueueDepth = DefaultQueueDepth
	}
	if o.ReadBufferSize <= 0 {
		o.ReadBufferSize = DefaultReadBufferSize
	}
	if o.BellRate == 0 {
		o.BellRate = DefaultBellRate
	}
	if o.BellBurst <= 0 {
		o.BellBurst = DefaultBellBurst
	}
	if o.Metrics == nil {
		o.Metrics = NewMetrics(nil)
	}
	if o.Logger == nil {
		o.Logger = logger.Nop
	}
}

// Session connects a pty to an emulator.
//
// Run starts a reader that moves pty output onto a bounded queue, a single
// mutator that applies the queue to the grid, the writer that owns all
// writes to the pty, and optionally a frame loop. Close is graceful: every
// chunk already read is applied before Run returns. Cancelling Run's
// context is not: queued chunks are dropped.
type Session struct {
	id       string
	pty      PTY
	emulator *Emulator
	writer   *Writer
	bell     *rate.Limiter
	opts     SessionOptions

	started   atomic.Bool
	closing   chan struct{}
	closeOnce sync.Once
	ptyOnce   sync.Once

	logger logger.Logger
}

func NewSession(p PTY, opts SessionOptions) (*Session, error) {
	if p == nil {
		return nil, errors.New("session needs a pty")
	}
	if opts.FrameInterval > 0 && (opts.Batcher == nil || opts.Sink == nil) {
		return nil, errors.New("frame loop needs a batcher and a sink")
	}
	opts.setDefaults()

	id := uuid.New().String()
	log := opts.Logger.With("session", id)
	s := &Session{
		id:      id,
		pty:     p,
		writer:  NewWriter(p, log),
		bell:    rate.NewLimiter(opts.BellRate, opts.BellBurst),
		opts:    opts,
		closing: make(chan struct{}),
		logger:  log,
	}
	s.emulator = NewEmulator(Options{
		Rows:       opts.Rows,
		Cols:       opts.Cols,
		Scrollback: opts.Scrollback,
		Writer:     s.writer,
		Host:       &sessionHost{session: s, host: opts.Host},
		Metrics:    opts.Metrics,
		Logger:     log,
	})
	return s, nil
}

func (s *Session) ID() string { return s.id }

func (s *Session) Emulator() *Emulator { return s.emulator }

// Run blocks until the session ends. It returns nil after Close or pty
// EOF, ctx.Err() after cancellation, and an ErrPTY error when the pty
// fails.
func (s *Session) Run(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return ErrSessionStarted
	}
	s.opts.Metrics.ActiveSessions.Inc()
	defer s.opts.Metrics.ActiveSessions.Dec()
	defer s.closePTY()

	s.logger.Info("session started")
	g, gctx := errgroup.WithContext(ctx)
	// A blocked read only returns once the pty is closed.
	stopRead := context.AfterFunc(gctx, s.closePTY)
	defer stopRead()

	chunks := make(chan []byte, s.opts.QueueDepth)
	drained := make(chan struct{})

	g.Go(func() error {
		return s.read(gctx, chunks)
	})
	g.Go(func() error {
		defer s.writer.Close()
		if err := s.mutate(gctx, chunks); err != nil {
			return err
		}
		close(drained)
		return nil
	})
	g.Go(func() error {
		err := s.writer.Run(gctx)
		if err != nil && s.isClosing() {
			s.logger.Debug("write after close", "err", err)
			return nil
		}
		return err
	})
	if s.opts.FrameInterval > 0 {
		g.Go(func() error {
			return s.frames(gctx, drained)
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Error("session failed", "err", err)
	} else {
		s.logger.Info("session ended")
	}
	return err
}

// read moves pty output onto chunks until EOF, Close or ctx.
func (s *Session) read(ctx context.Context, chunks chan<- []byte) error {
	defer close(chunks)
	for {
		buf := make([]byte, s.opts.ReadBufferSize)
		n, err := s.pty.Read(buf)
		if n > 0 {
			select {
			case chunks <- buf[:n]:
			case <-ctx.Done():
				return nil
			}
		}
		if err == nil {
			continue
		}
		switch {
		case errors.Is(err, io.EOF):
			s.logger.Debug("pty closed by child")
			return nil
		case s.isClosing(), ctx.Err() != nil:
			return nil
		default:
			return fmt.Errorf("%w: read: %w", ErrPTY, err)
		}
	}
}

// mutate is the only caller of Emulator.ProcessOutput.
func (s *Session) mutate(ctx context.Context, chunks <-chan []byte) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case chunk, ok := <-chunks:
			if !ok {
				return nil
			}
			// Errors are recovered panics, already logged and counted.
			_ = s.emulator.ProcessOutput(chunk)
		}
	}
}

// frames delivers a batch on every tick that changed something, and a
// last one once the mutator drained.
func (s *Session) frames(ctx context.Context, drained <-chan struct{}) error {
	ticker := time.NewTicker(s.opts.FrameInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-drained:
			s.deliverFrame()
			return nil
		case <-ticker.C:
			s.deliverFrame()
		}
	}
}

func (s *Session) deliverFrame() {
	batch, f := s.emulator.Frame(s.opts.Batcher)
	if len(f.Lines) == 0 {
		return
	}
	s.opts.Sink(batch)
}

// Write sends input, such as encoded keys, to the child.
func (s *Session) Write(p []byte) (int, error) {
	if s.isClosing() {
		return 0, ErrSessionClosed
	}
	return s.writer.Write(p)
}

// Paste sends text to the child, wrapped in bracketed paste markers when
// the application asked for them.
func (s *Session) Paste(text []byte) error {
	if !s.emulator.Modes().BracketedPaste {
		_, err := s.Write(text)
		return err
	}
	buf := make([]byte, 0, len(bracketedPasteStart)+len(text)+len(bracketedPasteEnd))
	buf = append(buf, bracketedPasteStart...)
	buf = append(buf, text...)
	buf = append(buf, bracketedPasteEnd...)
	_, err := s.Write(buf)
	return err
}

// Resize applies the size to the grid and mirrors it to the pty window.
func (s *Session) Resize(cols, rows int) error {
	if s.isClosing() {
		return ErrSessionClosed
	}
	s.emulator.Resize(cols, rows)
	cols, rows = s.emulator.Size()
	if err := s.pty.Resize(cols, rows); err != nil {
		return fmt.Errorf("%w: resize: %w", ErrPTY, err)
	}
	return nil
}

// Close ends the session gracefully. It is safe to call more than once.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		close(s.closing)
		s.closePTY()
	})
	return nil
}

func (s *Session) isClosing() bool {
	select {
	case <-s.closing:
		return true
	default:
		return false
	}
}

func (s *Session) closePTY() {
	s.ptyOnce.Do(func() {
		if err := s.pty.Close(); err != nil {
			s.logger.Debug("closing pty", "err", err)
		}
	})
}

// sessionHost rate limits bells and forwards everything else to the
// embedder's host.
type sessionHost struct {
	session *Session
	host    any
}

func (h *sessionHost) Bell() {
	if !h.session.bell.Allow() {
		h.session.logger.Debug("bell rate limited")
		return
	}
	if b, ok := h.host.(handler.BellHandler); ok {
		b.Bell()
	}
}

func (h *sessionHost) SetTitle(title string) {
	if t, ok := h.host.(handler.TitleHandler); ok {
		t.SetTitle(title)
	}
}

func (h *sessionHost) SetIconTitle(title string) {
	if t, ok := h.host.(handler.IconTitleHandler); ok {
		t.SetIconTitle(title)
	}
}

func (h *sessionHost) ModeChanged(mode core.Mode, enabled bool) {
	if m, ok := h.host.(handler.ModeChangeHandler); ok {
		m.ModeChanged(mode, enabled)
	}
}

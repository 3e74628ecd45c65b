package vtgrid

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/hnimtadd/vtgrid/logger"
)

// Writer serializes every write to the pty on one goroutine. Write only
// queues, so the mutator can answer queries while holding the grid lock.
type Writer struct {
	dst io.Writer

	mu      sync.Mutex
	pending [][]byte
	closed  bool
	// signal has room for one wakeup; Run drains all pending chunks per
	// wakeup.
	signal chan struct{}

	logger logger.Logger
}

func NewWriter(dst io.Writer, log logger.Logger) *Writer {
	if log == nil {
		log = logger.Nop
	}
	return &Writer{
		dst:    dst,
		signal: make(chan struct{}, 1),
		logger: log,
	}
}

// Write queues a copy of p. It never blocks on the destination.
func (w *Writer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	chunk := make([]byte, len(p))
	copy(chunk, p)

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return 0, ErrSessionClosed
	}
	w.pending = append(w.pending, chunk)
	w.mu.Unlock()

	w.wake()
	return len(p), nil
}

// Close stops accepting writes. Run writes what is already queued and then
// returns.
func (w *Writer) Close() {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
	w.wake()
}

func (w *Writer) wake() {
	select {
	case w.signal <- struct{}{}:
	default:
	}
}

// Run drains the queue until Close or ctx is done. On ctx the queue is
// dropped. A failed write is returned wrapped in ErrPTY.
func (w *Writer) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.drop()
			return nil
		case <-w.signal:
		}

		chunks, closed := w.take()
		for _, chunk := range chunks {
			if _, err := w.dst.Write(chunk); err != nil {
				return fmt.Errorf("%w: write: %w", ErrPTY, err)
			}
		}
		if closed {
			return nil
		}
	}
}

// take empties the queue. closed is only reported with the final batch.
func (w *Writer) take() (chunks [][]byte, closed bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	chunks, w.pending = w.pending, nil
	return chunks, w.closed
}

func (w *Writer) drop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if n := len(w.pending); n > 0 {
		w.logger.Debug("dropping queued writes", "chunks", n)
	}
	w.pending = nil
	w.closed = true
}

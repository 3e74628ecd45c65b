package vtgrid

import (
	"github.com/hnimtadd/vtgrid/terminal"
	"github.com/hnimtadd/vtgrid/terminal/parser"
)

// StreamHandler is the handler for the emulator's stream. It applies every
// action to the terminal and counts it. It is stateful and lives as long as
// the terminal; the stream calls it from the mutator goroutine only.
type StreamHandler struct {
	terminal *terminal.Terminal
	metrics  *Metrics

	// last are the terminal counters already published to metrics.
	last terminal.Stats
}

func newStreamHandler(term *terminal.Terminal, metrics *Metrics) *StreamHandler {
	return &StreamHandler{
		terminal: term,
		metrics:  metrics,
	}
}

// Handle implements stream.Handler.
func (s *StreamHandler) Handle(action parser.Action) {
	s.metrics.action(action.Type).Inc()
	s.terminal.Apply(action)
}

// publish moves the terminal's running counters into metrics.
func (s *StreamHandler) publish() {
	stats := s.terminal.Stats()
	if d := stats.UnknownSequences - s.last.UnknownSequences; d > 0 {
		s.metrics.UnknownSequences.Add(float64(d))
	}
	if d := stats.ScrolledOff - s.last.ScrolledOff; d > 0 {
		s.metrics.ScrollbackLines.Add(float64(d))
	}
	if d := stats.Bells - s.last.Bells; d > 0 {
		s.metrics.Bells.Add(float64(d))
	}
	s.last = stats
}

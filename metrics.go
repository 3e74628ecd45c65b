package vtgrid

import (
	"github.com/hnimtadd/vtgrid/terminal/parser"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "vtgrid"

// Metrics are shared by every session of a process. Register them once.
type Metrics struct {
	BytesRead        prometheus.Counter
	Actions          *prometheus.CounterVec
	UnknownSequences prometheus.Counter
	Panics           prometheus.Counter
	Frames           prometheus.Counter
	RenderRecords    prometheus.Counter
	Bells            prometheus.Counter
	ScrollbackLines  prometheus.Counter
	ActiveSessions   prometheus.Gauge

	// actions caches the Actions child per type; WithLabelValues on every
	// printed codepoint shows up in profiles.
	actions map[parser.ActionType]prometheus.Counter
}

// NewMetrics creates the collectors and registers them on reg. A nil reg
// leaves them unregistered, which tests and embedders without a registry
// rely on.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	m := &Metrics{
		BytesRead: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "pty_bytes_read_total",
			Help:      "Bytes read from the pty and fed to the parser.",
		}),
		Actions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "actions_applied_total",
			Help:      "Parser actions applied to the grid, by kind.",
		}, []string{"kind"}),
		UnknownSequences: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "unknown_sequences_total",
			Help:      "Sequences consumed without effect because they are not supported.",
		}),
		Panics: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "recovered_panics_total",
			Help:      "Panics recovered while processing pty output.",
		}),
		Frames: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "frames_total",
			Help:      "Frames taken from the grid and batched.",
		}),
		RenderRecords: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "render_records_total",
			Help:      "Quads emitted by the render batcher.",
		}),
		Bells: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "bells_total",
			Help:      "BEL controls executed, including rate limited ones.",
		}),
		ScrollbackLines: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "scrollback_lines_total",
			Help:      "Lines that scrolled off the top into history.",
		}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "active_sessions",
			Help:      "Sessions currently running.",
		}),
	}
	m.actions = make(map[parser.ActionType]prometheus.Counter, len(surfacedActions))
	for _, a := range surfacedActions {
		m.actions[a] = m.Actions.WithLabelValues(a.String())
	}
	return m
}

// surfacedActions are the action types the stream hands to its handler.
var surfacedActions = []parser.ActionType{
	parser.ActionPrint,
	parser.ActionExecute,
	parser.ActionESCDispatch,
	parser.ActionCSIDispatch,
	parser.ActionDCSHook,
	parser.ActionDCSPut,
	parser.ActionDCSUnhook,
	parser.ActionOSCDispatch,
}

func (m *Metrics) action(t parser.ActionType) prometheus.Counter {
	if c, ok := m.actions[t]; ok {
		return c
	}
	return m.Actions.WithLabelValues(t.String())
}

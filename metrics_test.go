package vtgrid

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Register(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.Bells.Inc()

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "vtgrid_bells_total")
	assert.Contains(t, names, "vtgrid_actions_applied_total")
	assert.Contains(t, names, "vtgrid_active_sessions")

	count, err := testutil.GatherAndCount(reg, "vtgrid_actions_applied_total")
	require.NoError(t, err)
	assert.Equal(t, len(surfacedActions), count)

	assert.Panics(t, func() { NewMetrics(reg) }, "collectors register once per registry")
}

func TestMetrics_Unregistered(t *testing.T) {
	a, b := NewMetrics(nil), NewMetrics(nil)
	a.Frames.Inc()
	assert.Equal(t, float64(1), testutil.ToFloat64(a.Frames))
	assert.Equal(t, float64(0), testutil.ToFloat64(b.Frames))
}

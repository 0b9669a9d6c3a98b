package metrics

import (
	"testing"

	"github.com/delaneyj/propcell/property"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gather(t *testing.T, reg *prometheus.Registry) map[string]*dto.Metric {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	out := map[string]*dto.Metric{}
	for _, mf := range families {
		require.Len(t, mf.GetMetric(), 1)
		out[mf.GetName()] = mf.GetMetric()[0]
	}
	return out
}

func TestCollector(t *testing.T) {
	t.Run("reports the last snapshot", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		rs := property.NewReactiveSystem()
		c, err := New(rs,
			WithRegistry(reg),
			WithNamespace("ui"),
			WithSubsystem("engine"),
			WithConstLabels(prometheus.Labels{"window": "main"}),
		)
		require.NoError(t, err)
		assert.Equal(t, 5, testutil.CollectAndCount(c))

		a := property.New(rs, 1)
		b := property.NewBinding(rs, func() int { return a.Get() + 1 })
		b.Get()

		m := gather(t, reg)
		assert.Equal(t, 0.0, m["ui_engine_evaluations_total"].GetCounter().GetValue())

		c.Observe()
		m = gather(t, reg)
		assert.Equal(t, 1.0, m["ui_engine_evaluations_total"].GetCounter().GetValue())
		assert.Equal(t, 2.0, m["ui_engine_cells_live"].GetGauge().GetValue())
		assert.Equal(t, 2.0, m["ui_engine_cells_allocated_total"].GetCounter().GetValue())
		assert.Equal(t, 0.0, m["ui_engine_animations_active"].GetGauge().GetValue())

		labels := m["ui_engine_cells_live"].GetLabel()
		require.Len(t, labels, 1)
		assert.Equal(t, "window", labels[0].GetName())
		assert.Equal(t, "main", labels[0].GetValue())
	})

	t.Run("active animations", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		rs := property.NewReactiveSystem()
		c, err := New(rs, WithRegistry(reg))
		require.NoError(t, err)

		driver := rs.AnimationDriver()
		tick := property.NewBinding(rs, driver.AnimationTick)
		tick.Get()
		c.Observe()

		m := gather(t, reg)
		assert.Equal(t, 1.0, m["propcell_animations_active"].GetGauge().GetValue())
	})

	t.Run("registering twice fails", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		rs := property.NewReactiveSystem()
		_, err := New(rs, WithRegistry(reg))
		require.NoError(t, err)
		_, err = New(rs, WithRegistry(reg))
		assert.Error(t, err)
	})

	t.Run("no registry", func(t *testing.T) {
		rs := property.NewReactiveSystem()
		c, err := New(rs, WithRegistry(nil))
		require.NoError(t, err)
		assert.NotNil(t, c)
	})
}

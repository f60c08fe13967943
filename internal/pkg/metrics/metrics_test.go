package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestSyncMetrics(t *testing.T) {
	t.Parallel()

	m := NewSyncMetrics(prometheus.NewRegistry())

	m.ObserveItem(true, 0.5)
	m.ObserveItem(false, 1)
	m.ObserveItem(true, 2)
	m.ObserveReplace(10, 12)
	m.ObserveSkipped(3)
	m.ChunkFailed()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ItemsTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ItemsTotal.WithLabelValues("failure")))
	assert.Equal(t, 10.0, testutil.ToFloat64(m.RowsDeleted))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.RowsWritten))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.CellsSkipped))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ChunkFailures))
}

func TestNilSyncMetricsIsNoop(t *testing.T) {
	t.Parallel()

	var m *SyncMetrics
	assert.NotPanics(t, func() {
		m.ObserveItem(true, 1)
		m.ObserveReplace(1, 1)
		m.ObserveSkipped(1)
		m.ChunkFailed()
		m.PageFetched()
		m.ObserveRun("Done", 1)
	})
}

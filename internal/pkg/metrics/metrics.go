// Package metrics holds the prometheus collectors of the sync pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// SyncMetrics groups the pipeline collectors. A nil *SyncMetrics is valid and records nothing.
type SyncMetrics struct {
	ItemsTotal       *prometheus.CounterVec
	RowsWritten      prometheus.Counter
	RowsDeleted      prometheus.Counter
	CellsSkipped     prometheus.Counter
	ChunkFailures    prometheus.Counter
	PeriodPages      prometheus.Counter
	ItemDuration     prometheus.Histogram
	RunsTotal        *prometheus.CounterVec
	LastRunTimestamp prometheus.Gauge
}

// NewSyncMetrics creates the collectors and registers them on reg when it is not nil.
func NewSyncMetrics(reg prometheus.Registerer) *SyncMetrics {
	m := &SyncMetrics{
		ItemsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "statdash_sync_items_total",
			Help: "Indicators processed, by outcome.",
		}, []string{"outcome"}),
		RowsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "statdash_rows_written_total",
			Help: "Data rows inserted into the store.",
		}),
		RowsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "statdash_rows_deleted_total",
			Help: "Stale data rows deleted from the store.",
		}),
		CellsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "statdash_cells_skipped_total",
			Help: "Present cells dropped because of an unrecognized sub-period label.",
		}),
		ChunkFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "statdash_chunk_failures_total",
			Help: "Data chunk requests that failed and were skipped.",
		}),
		PeriodPages: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "statdash_period_pages_total",
			Help: "Period list pages fetched from the provider.",
		}),
		ItemDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "statdash_sync_item_duration_seconds",
			Help:    "Time spent syncing one indicator.",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
		}),
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "statdash_sync_runs_total",
			Help: "Full sync runs, by final phase.",
		}, []string{"phase"}),
		LastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "statdash_sync_last_run_timestamp_seconds",
			Help: "Unix time of the last finished sync run.",
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.ItemsTotal, m.RowsWritten, m.RowsDeleted, m.CellsSkipped, m.ChunkFailures,
			m.PeriodPages, m.ItemDuration, m.RunsTotal, m.LastRunTimestamp,
		)
	}

	return m
}

func (m *SyncMetrics) ObserveItem(success bool, seconds float64) {
	if m == nil {
		return
	}
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	m.ItemsTotal.WithLabelValues(outcome).Inc()
	m.ItemDuration.Observe(seconds)
}

func (m *SyncMetrics) ObserveReplace(deleted, inserted int) {
	if m == nil {
		return
	}
	m.RowsDeleted.Add(float64(deleted))
	m.RowsWritten.Add(float64(inserted))
}

func (m *SyncMetrics) ObserveSkipped(n int) {
	if m == nil || n == 0 {
		return
	}
	m.CellsSkipped.Add(float64(n))
}

func (m *SyncMetrics) ChunkFailed() {
	if m == nil {
		return
	}
	m.ChunkFailures.Inc()
}

func (m *SyncMetrics) PageFetched() {
	if m == nil {
		return
	}
	m.PeriodPages.Inc()
}

func (m *SyncMetrics) ObserveRun(phase string, unixSeconds float64) {
	if m == nil {
		return
	}
	m.RunsTotal.WithLabelValues(phase).Inc()
	m.LastRunTimestamp.Set(unixSeconds)
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Sheet sync outcomes used as the result label.
const (
	SyncResultSuccess = "success"
	SyncResultFailed  = "failed"
	SyncResultSkipped = "skipped"
)

// SheetSyncMetrics records spreadsheet push outcomes.
type SheetSyncMetrics struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewSheetSyncMetrics registers the sync metrics on the provided registerer.
func NewSheetSyncMetrics(reg prometheus.Registerer) *SheetSyncMetrics {
	if reg == nil {
		return &SheetSyncMetrics{}
	}
	total := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sheet_sync_total",
		Help: "Spreadsheet push attempts by result.",
	}, []string{"result", "trigger"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sheet_sync_duration_seconds",
		Help:    "Duration of spreadsheet append calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"result"})
	reg.MustRegister(total, duration)
	return &SheetSyncMetrics{total: total, duration: duration}
}

// Observe counts one push attempt. trigger is "submit" or "resync".
func (m *SheetSyncMetrics) Observe(result, trigger string, elapsed time.Duration) {
	if m == nil || m.total == nil {
		return
	}
	result = normalizeLabel(result)
	m.total.WithLabelValues(result, normalizeLabel(trigger)).Inc()
	if result != SyncResultSkipped {
		m.duration.WithLabelValues(result).Observe(elapsed.Seconds())
	}
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}

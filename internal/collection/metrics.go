package collection

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts gateway operations per collection.
type Metrics struct {
	ops      *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the gateway metrics and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "backoffice",
			Subsystem: "gateway",
			Name:      "operations_total",
			Help:      "Remote collection operations by collection, operation, and result.",
		}, []string{"collection", "op", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "backoffice",
			Subsystem: "gateway",
			Name:      "operation_duration_seconds",
			Help:      "Latency of remote collection operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"collection", "op"}),
	}
	if reg != nil {
		reg.MustRegister(m.ops, m.duration)
	}
	return m
}

// Operations returns the operation counter for tests and exporters.
func (m *Metrics) Operations() *prometheus.CounterVec {
	return m.ops
}

func (m *Metrics) observe(collection, op string, start time.Time, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.ops.WithLabelValues(collection, op, result).Inc()
	m.duration.WithLabelValues(collection, op).Observe(time.Since(start).Seconds())
}

package application

import (
	"errors"
	"time"

	"github.com/bnema/dumdum-cli/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts reads, writes and spawns by action and outcome.
type Metrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dumdum",
			Subsystem: "process",
			Name:      "calls_total",
			Help:      "Process client calls by kind, action and outcome.",
		}, []string{"kind", "action", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dumdum",
			Subsystem: "process",
			Name:      "call_duration_seconds",
			Help:      "End-to-end latency of process client calls.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"kind"}),
	}

	if reg != nil {
		reg.MustRegister(m.calls, m.duration)
	}

	return m
}

func (m *Metrics) observe(kind string, action string, started time.Time, err error) {
	if m == nil {
		return
	}

	m.calls.WithLabelValues(kind, action, outcomeLabel(err)).Inc()
	m.duration.WithLabelValues(kind).Observe(time.Since(started).Seconds())
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrWalletNotConnected):
		return "not_connected"
	case errors.Is(err, domain.ErrSigningRejected):
		return "rejected_by_user"
	case errors.Is(err, domain.ErrRemoteUnavailable):
		return "unavailable"
	case errors.Is(err, domain.ErrRemoteRejected):
		return "rejected_by_process"
	case errors.Is(err, domain.ErrMalformedPayload):
		return "malformed"
	default:
		return "error"
	}
}

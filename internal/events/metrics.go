package events

import (
	"context"

	"github.com/SscSPs/movement_tracker/internal/core/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsSink counts transitions per event type.
type MetricsSink struct {
	transitions *prometheus.CounterVec
}

// NewMetricsSink creates movement_transitions_total and registers it on reg.
func NewMetricsSink(reg prometheus.Registerer) *MetricsSink {
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "movement_transitions_total",
		Help: "Committed movement lifecycle transitions by event.",
	}, []string{"event"})
	reg.MustRegister(transitions)
	return &MetricsSink{transitions: transitions}
}

func (s *MetricsSink) Publish(_ context.Context, event domain.MovementEvent) error {
	s.transitions.WithLabelValues(string(event.Type)).Inc()
	return nil
}

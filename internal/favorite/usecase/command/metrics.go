package command

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts favorite state changes
type Metrics struct {
	created *prometheus.CounterVec
	removed *prometheus.CounterVec
}

// NewMetrics registers the favorite counters
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		created: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "favorites_api",
				Name:      "favorites_created_total",
				Help:      "Number of favorites created",
			},
			[]string{"target_type"},
		),
		removed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "favorites_api",
				Name:      "favorites_removed_total",
				Help:      "Number of favorites removed",
			},
			[]string{"target_type"},
		),
	}
	reg.MustRegister(m.created, m.removed)
	return m
}

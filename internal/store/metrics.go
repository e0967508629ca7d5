package store

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts store activity. A nil *Metrics records nothing.
type Metrics struct {
	mutations       *prometheus.CounterVec
	persistFailures *prometheus.CounterVec
	corruptRestores *prometheus.CounterVec
}

// NewMetrics registers the store counters with reg.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_mutations_total",
			Help:      "Committed store mutations by store and operation.",
		}, []string{"store", "operation"}),
		persistFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_persist_failures_total",
			Help:      "Storage writes that failed and left the store unchanged.",
		}, []string{"store"}),
		corruptRestores: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_corrupt_restores_total",
			Help:      "Persisted states discarded on restore because they could not be used.",
		}, []string{"store"}),
	}
	reg.MustRegister(m.mutations, m.persistFailures, m.corruptRestores)
	return m
}

func (m *Metrics) mutated(store, op string) {
	if m != nil {
		m.mutations.WithLabelValues(store, op).Inc()
	}
}

func (m *Metrics) persistFailed(store string) {
	if m != nil {
		m.persistFailures.WithLabelValues(store).Inc()
	}
}

func (m *Metrics) corrupt(store string) {
	if m != nil {
		m.corruptRestores.WithLabelValues(store).Inc()
	}
}

package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	backendRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "banket_admin",
			Name:      "backend_requests_total",
			Help:      "Backend API requests by endpoint and outcome.",
		},
		[]string{"endpoint", "outcome"},
	)

	mutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "banket_admin",
			Name:      "mutations_total",
			Help:      "Mutation requests by entity and operation.",
		},
		[]string{"entity", "op"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(backendRequests, mutations)
	})
}

// IncBackend increments the request counter for an endpoint label.
func IncBackend(endpoint, outcome string) {
	backendRequests.WithLabelValues(endpoint, outcome).Inc()
}

// IncMutation increments the mutation counter.
func IncMutation(entity, op string) {
	mutations.WithLabelValues(entity, op).Inc()
}

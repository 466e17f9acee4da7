// Package metrics exposes Prometheus counters for the signing and
// certification pipeline, served over HTTP the way the teacher service
// exposes its own /health and /metrics endpoints from main.go.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry groups the counters one validator node emits while
// accumulating authority signatures and certifying transactions.
type Registry struct {
	registry *prometheus.Registry

	SignaturesAccepted  prometheus.Counter
	SignaturesRejected  *prometheus.CounterVec
	CertificatesBuilt   prometheus.Counter
	ConsensusMessagesIn *prometheus.CounterVec
}

// NewRegistry builds a fresh, unshared Prometheus registry and registers
// this node's counters on it.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Registry{
		registry: reg,
		SignaturesAccepted: factory.NewCounter(prometheus.CounterOpts{
			Name: "objectchain_signatures_accepted_total",
			Help: "Authority signatures accepted into a signature aggregator.",
		}),
		SignaturesRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "objectchain_signatures_rejected_total",
			Help: "Authority signatures rejected by a signature aggregator, by reason.",
		}, []string{"reason"}),
		CertificatesBuilt: factory.NewCounter(prometheus.CounterOpts{
			Name: "objectchain_certificates_built_total",
			Help: "Certified transactions produced once quorum stake was reached.",
		}),
		ConsensusMessagesIn: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "objectchain_consensus_messages_total",
			Help: "Consensus transactions submitted, by kind.",
		}, []string{"kind"}),
	}
}

// Handler serves the registered metrics in the Prometheus exposition
// format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

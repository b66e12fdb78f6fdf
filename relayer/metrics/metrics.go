// Package metrics exposes relayer counters on a private prometheus registry.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "raffled"

// Metrics groups the relayer collectors.
type Metrics struct {
	registry *prometheus.Registry

	RelayedMessages *prometheus.CounterVec
	RelayFailures   *prometheus.CounterVec
	VRFFulfillments *prometheus.CounterVec
	OutboxPending   *prometheus.GaugeVec
	ChainHeight     *prometheus.GaugeVec
}

// New creates the collectors and registers them, together with the Go
// runtime collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RelayedMessages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "relayed_messages_total",
			Help:      "Cross-chain messages delivered, by source selector and opcode.",
		}, []string{"source", "opcode"}),
		RelayFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "relay_failures_total",
			Help:      "Failed delivery attempts, by source selector.",
		}, []string{"source"}),
		VRFFulfillments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "vrf_fulfillments_total",
			Help:      "Randomness requests fulfilled, by callback result.",
		}, []string{"result"}),
		OutboxPending: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "outbox_pending",
			Help:      "Messages read from an outbox in the last poll that were not yet delivered.",
		}, []string{"source"}),
		ChainHeight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "chain_height",
			Help:      "Latest committed block height, by chain selector.",
		}, []string{"chain"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RelayedMessages,
		m.RelayFailures,
		m.VRFFulfillments,
		m.OutboxPending,
		m.ChainHeight,
	)
	return m
}

// Registry returns the registry holding the relayer collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Selector formats a chain selector as a label value.
func Selector(selector uint64) string {
	return strconv.FormatUint(selector, 10)
}

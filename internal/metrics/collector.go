package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dantte-lp/goradius/internal/radius"
)

const (
	namespace = "goradius"
	subsystem = "server"
)

// Label names for RADIUS metrics.
const (
	labelCode   = "code"
	labelReason = "reason"
)

// Collector holds all RADIUS server Prometheus metrics and implements
// radserver.Metrics.
type Collector struct {
	// PacketsReceived counts decoded requests per packet type.
	PacketsReceived *prometheus.CounterVec

	// PacketsDropped counts datagrams dropped before or after decode,
	// labeled by reason (unknown_client, decode_failed, ...).
	PacketsDropped *prometheus.CounterVec

	// PacketsSent counts replies transmitted per packet type.
	PacketsSent *prometheus.CounterVec

	// AuthFailures counts Access-Reject outcomes from a configured
	// authentication path, not transport or decode errors.
	AuthFailures prometheus.Counter
}

// NewCollector creates a Collector with all RADIUS metrics registered
// against reg. If reg is nil, prometheus.DefaultRegisterer is used.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := newMetrics()

	reg.MustRegister(
		c.PacketsReceived,
		c.PacketsDropped,
		c.PacketsSent,
		c.AuthFailures,
	)

	return c
}

// newMetrics creates all Prometheus metric vectors without registering them.
func newMetrics() *Collector {
	return &Collector{
		PacketsReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "packets_received_total",
			Help:      "Total RADIUS requests decoded successfully, by packet type.",
		}, []string{labelCode}),

		PacketsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "packets_dropped_total",
			Help:      "Total datagrams dropped before a reply was sent, by reason.",
		}, []string{labelReason}),

		PacketsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "packets_sent_total",
			Help:      "Total RADIUS replies transmitted, by packet type.",
		}, []string{labelCode}),

		AuthFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "auth_failures_total",
			Help:      "Total Access-Reject outcomes from a configured authentication path.",
		}),
	}
}

// PacketReceived implements radserver.Metrics.
func (c *Collector) PacketReceived(code radius.Code) {
	c.PacketsReceived.WithLabelValues(code.String()).Inc()
}

// PacketDropped implements radserver.Metrics.
func (c *Collector) PacketDropped(reason string) {
	c.PacketsDropped.WithLabelValues(reason).Inc()
}

// PacketSent implements radserver.Metrics.
func (c *Collector) PacketSent(code radius.Code) {
	c.PacketsSent.WithLabelValues(code.String()).Inc()
}

// AuthFailure implements radserver.Metrics.
func (c *Collector) AuthFailure() {
	c.AuthFailures.Inc()
}

package server

import "github.com/prometheus/client_golang/prometheus"

type metrics struct {
	connectedPeers prometheus.Gauge
	framesReceived *prometheus.CounterVec
	framesSent     *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		connectedPeers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "checkmate",
			Name:      "connected_peers",
			Help:      "Number of currently connected TCP clients.",
		}),
		framesReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "checkmate",
			Name:      "frames_received_total",
			Help:      "Frames received from clients, by tag.",
		}, []string{"tag"}),
		framesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "checkmate",
			Name:      "frames_sent_total",
			Help:      "Frames sent to clients, by tag.",
		}, []string{"tag"}),
	}
	// A second Server in the same process reuses the collectors already on
	// the default registry instead of panicking on duplicate registration.
	register := func(c prometheus.Collector) prometheus.Collector {
		if err := prometheus.Register(c); err != nil {
			are, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				panic(err)
			}
			return are.ExistingCollector
		}
		return c
	}
	m.connectedPeers = register(m.connectedPeers).(prometheus.Gauge)
	m.framesReceived = register(m.framesReceived).(*prometheus.CounterVec)
	m.framesSent = register(m.framesSent).(*prometheus.CounterVec)
	return m
}

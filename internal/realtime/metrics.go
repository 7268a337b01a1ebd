package realtime

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "taskboard"
	subsystem = "realtime"
)

var (
	sessionsConnected = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "sessions_connected",
		Help:      "Number of currently connected WebSocket sessions",
	})

	broadcastsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "broadcasts_total",
		Help:      "Number of events fanned out to connected sessions",
	}, []string{"event"})

	droppedSessionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "dropped_sessions_total",
		Help:      "Number of sessions disconnected because their send queue was full",
	})

	inboundEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "inbound_events_total",
		Help:      "Number of frames received from clients by event and outcome",
	}, []string{"event", "outcome"})
)

// RegisterMetrics registers the gateway's collectors with reg.
func RegisterMetrics(reg prometheus.Registerer) error {
	metrics := []prometheus.Collector{
		sessionsConnected,
		broadcastsTotal,
		droppedSessionsTotal,
		inboundEventsTotal,
	}
	for _, metric := range metrics {
		if err := reg.Register(metric); err != nil {
			return fmt.Errorf("failed to register metric: %w", err)
		}
	}
	return nil
}

func observeInbound(event string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	inboundEventsTotal.WithLabelValues(event, outcome).Inc()
}

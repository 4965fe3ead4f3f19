package webhook

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "webhook_events_total",
		Help: "Webhook deliveries by event type and outcome",
	}, []string{"type", "outcome"})
	unknownEvents = promauto.NewCounter(prometheus.CounterOpts{
		Name: "webhook_unknown_events_total",
		Help: "Authenticated deliveries with no registered handler",
	})
	handlerDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "webhook_handler_duration_seconds",
		Help:    "Time spent inside event handlers",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
	})
)

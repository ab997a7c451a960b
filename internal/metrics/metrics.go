package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Payments
	PaymentsInitiated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_initiated_total",
			Help: "Payment initiations by result",
		},
		[]string{"result"}, // pending|failed
	)
	PaymentsVerified = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_verified_total",
			Help: "Payment verifications by resulting status",
		},
		[]string{"status"}, // completed|failed
	)

	// Gateway
	GatewayDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_request_duration_seconds",
			Help:    "Latency of payment gateway calls.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op", "outcome"},
	)

	// Notifications
	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Notification jobs by stage and result",
		},
		[]string{"stage", "result"}, // enqueue|deliver, ok|error
	)

	// Worker queue
	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)

	initOnce sync.Once
)

// Handler serves /metrics.
var Handler = promhttp.Handler

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(PaymentsInitiated)
		prometheus.MustRegister(PaymentsVerified)
		prometheus.MustRegister(GatewayDuration)
		prometheus.MustRegister(NotificationsTotal)
		prometheus.MustRegister(WorkerQueueDepth)
	})
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// NotificationsCreated counts in-app notification records by category.
	NotificationsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tandem_notifications_created_total",
			Help: "Total number of in-app notifications written",
		},
		[]string{"category"},
	)

	// PushMessages counts outbound push messages by delivery outcome (ok|error).
	PushMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tandem_push_messages_total",
			Help: "Total number of push messages submitted to the provider",
		},
		[]string{"result"},
	)

	// PushTokensPruned counts device tokens removed after delivery failures.
	PushTokensPruned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tandem_push_tokens_pruned_total",
			Help: "Device tokens deleted after the provider reported them invalid",
		},
	)

	// PairRedemptions counts pairing-code redemption attempts by outcome.
	PairRedemptions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tandem_pair_redemptions_total",
			Help: "Pairing code redemption attempts",
		},
		[]string{"result"},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tandem_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

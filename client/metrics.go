package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kissanbandi_client",
			Name:      "requests_total",
			Help:      "HTTP requests sent to the storefront backend, by method and status code.",
		},
		[]string{"method", "code"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "kissanbandi_client",
			Name:      "request_duration_seconds",
			Help:      "Round-trip latency of backend requests.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	credentialsClearedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "kissanbandi_client",
			Name:      "credentials_cleared_total",
			Help:      "Times stored credentials were cleared after a 401.",
		},
	)
)

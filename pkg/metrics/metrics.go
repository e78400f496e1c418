package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks inbound request latency per route
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "idrx_gate",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method, route and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	// ProviderRequests counts outbound provider calls per endpoint and outcome
	ProviderRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "idrx_gate",
		Name:      "provider_requests_total",
		Help:      "Outbound IDRX provider calls by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})

	// OnboardingCompleted counts successful provider registrations
	OnboardingCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "idrx_gate",
		Name:      "onboarding_completed_total",
		Help:      "Users successfully registered with the provider.",
	})
)

package httpserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// solveDuration tracks how long building a session view takes (solve included)
	solveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bee_view_duration_seconds",
		Help:    "Time to solve and project a session view",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12), // 0.1ms to ~400ms
	})

	// actionsTotal counts session mutations by action
	actionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bee_actions_total",
		Help: "Session actions by kind",
	}, []string{"action"})

	// providerFailures counts failed puzzle fetches and corpus refreshes
	providerFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bee_provider_failures_total",
		Help: "Failed external provider calls",
	}, []string{"provider"})

	// sessionsActive reports sessions held in memory
	sessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bee_sessions",
		Help: "Puzzle sessions held in memory",
	})
)

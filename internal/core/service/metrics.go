package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// interactionsTotal counts dispatched interactions by command and outcome
	interactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "badgebot_interactions_total",
		Help: "Total interactions dispatched by command and outcome",
	}, []string{"command", "outcome"})

	dispatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "badgebot_dispatch_duration_seconds",
		Help:    "Time from receiving an interaction to its reply being sent",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~2.5s
	}, []string{"command"})

	sessionState = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "badgebot_session_state",
		Help: "Current session state (0 disconnected, 1 authenticating, 2 ready)",
	})

	publishedCommands = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "badgebot_published_commands",
		Help: "Number of commands registered with the platform at startup",
	})
)

const (
	outcomeReplied  = "replied"
	outcomeFallback = "fallback"
	outcomeFailed   = "failed"
)

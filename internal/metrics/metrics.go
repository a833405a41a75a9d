package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "findtheai"

// Lookup sources.
const (
	SourceCache = "cache"
	SourceStore = "store"
	SourceLLM   = "llm"
	SourceMiss  = "miss"
	SourceError = "error"
)

var (
	// HTTPRequests counts served requests by route pattern and status code.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests served, by route and status code.",
	}, []string{"route", "code"})

	// HTTPDuration observes request latency by route pattern.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	// GameTransitions counts round engine calls by event and outcome.
	GameTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "game_transitions_total",
		Help:      "Round engine transitions, by event and outcome.",
	}, []string{"event", "outcome"})

	// DailyLookups counts daily set reads by where they were answered.
	DailyLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "daily_set_lookups_total",
		Help:      "Daily question set lookups, by source.",
	}, []string{"source"})

	// ParaphraseLookups counts paraphrase requests by where they were answered.
	ParaphraseLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "paraphrase_lookups_total",
		Help:      "Paraphrase lookups, by source.",
	}, []string{"source"})

	// DailySetReady is 1 while today's question set is published.
	DailySetReady = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "daily_set_ready",
		Help:      "Whether today's question set is published (1) or missing (0).",
	})
)

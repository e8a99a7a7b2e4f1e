package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "debtpath_requests_total",
			Help: "Total API requests by endpoint and status code",
		},
		[]string{"endpoint", "code"},
	)

	SimulationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "debtpath_simulation_seconds",
			Help:    "Time spent computing a response, excluding cache hits",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
		},
		[]string{"endpoint"},
	)

	CacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "debtpath_cache_hits_total",
			Help: "Responses served from the result cache",
		},
		[]string{"endpoint"},
	)
)

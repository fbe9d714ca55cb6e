// Package metrics registers the Prometheus collectors served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	Toggles = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "feedthread_toggles_total",
		Help: "Interest set toggles by set and resulting state.",
	}, []string{"set", "result"})

	Thumbs = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "feedthread_thumbs_total",
		Help: "Thumbs-up attempts by outcome.",
	}, []string{"result"})

	Comments = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "feedthread_comments_total",
		Help: "Thread nodes written by kind.",
	}, []string{"kind"})

	Requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "feedthread_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"route", "code"})

	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "feedthread_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	CacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "feedthread_cache_lookups_total",
		Help: "Shared page cache lookups by result.",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(Toggles, Thumbs, Comments, Requests, RequestDuration, CacheLookups)
}

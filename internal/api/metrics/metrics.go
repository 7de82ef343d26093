// Package metrics defines and registers all custom Prometheus metrics for
// the tracking engine. It is the single source of truth for metric names,
// labels, and help strings. Registration happens at import time via
// promauto against the default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tracking"

// ScrapesTotal counts scrape-and-map pipeline outcomes.
// Labels:
//   - carrier: carrier name (e.g. "zim")
//   - result: "ok", "fetch_error", "adapt_error", or "panic"
var ScrapesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scrapes_total",
		Help:      "Total number of scrape-and-map pipeline runs, by carrier and result.",
	},
	[]string{"carrier", "result"},
)

// MappingDuration measures adapter plus engine time per request.
var MappingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "mapping_duration_seconds",
		Help:      "Duration of adapt-and-assemble per tracking request.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"carrier"},
)

// CacheLookupsTotal counts document cache decisions.
// Label:
//   - result: "hit" or "miss"
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of document cache lookups, by result.",
	},
	[]string{"result"},
)

// RefreshJobsTotal counts background cache-refresh jobs.
// Label:
//   - result: "ok", "error", or "dropped" (queue full)
var RefreshJobsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "refresh_jobs_total",
		Help:      "Total number of background refresh jobs processed, by result.",
	},
	[]string{"result"},
)

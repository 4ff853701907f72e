// Package metrics holds the prometheus collectors shared by the finder and
// the binder. Collectors are registered on the default registry at init so
// promhttp.Handler exposes them without extra wiring.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ovlink"

var (
	FinderSearches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "finder",
			Name:      "searches_total",
			Help:      "Library searches by outcome (found, not_found)",
		},
		[]string{"result"},
	)

	FinderProbes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "finder",
			Name:      "probes_total",
			Help:      "Directories probed, labelled by candidate source",
		},
		[]string{"source"},
	)

	BinderLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "binder",
			Name:      "loads_total",
			Help:      "Bind attempts by outcome",
		},
		[]string{"result"},
	)

	BinderUnloads = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "binder",
			Name:      "unloads_total",
			Help:      "Library handles released",
		},
	)

	BindDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "binder",
			Name:      "bind_duration_seconds",
			Help:      "Time spent locating, loading and resolving a library",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		},
	)
)

func init() {
	prometheus.MustRegister(FinderSearches, FinderProbes, BinderLoads, BinderUnloads, BindDuration)
}

// ObserveSearch records the outcome of one Find call.
func ObserveSearch(found bool) {
	if found {
		FinderSearches.WithLabelValues("found").Inc()
		return
	}
	FinderSearches.WithLabelValues("not_found").Inc()
}

// ObserveProbe counts a probed directory.
func ObserveProbe(source string) {
	if source == "" {
		source = "unspecified"
	}
	FinderProbes.WithLabelValues(source).Inc()
}

// ObserveBind records a finished bind attempt. result is one of ok,
// not_found, load_failed, symbol_missing, skipped.
func ObserveBind(result string, took time.Duration) {
	BinderLoads.WithLabelValues(result).Inc()
	BindDuration.Observe(took.Seconds())
}

// ObserveUnload counts a released handle.
func ObserveUnload() { BinderUnloads.Inc() }

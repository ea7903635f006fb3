/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package catalog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	lookupCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strfmt_catalog_lookups_total",
			Help: "Total number of catalog message lookups",
		},
		[]string{"catalog"},
	)

	missCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strfmt_catalog_misses_total",
			Help: "Total number of lookups for messages not in the catalog",
		},
		[]string{"catalog"},
	)

	failureCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strfmt_catalog_format_failures_total",
			Help: "Total number of catalog messages that failed to format",
		},
		[]string{"catalog"},
	)
)

// counters are the metrics of one catalog, bound to its name.
type counters struct {
	lookups  prometheus.Counter
	misses   prometheus.Counter
	failures prometheus.Counter
}

func newCounters(name string) counters {
	labels := prometheus.Labels{"catalog": name}
	return counters{
		lookups:  lookupCounter.With(labels),
		misses:   missCounter.With(labels),
		failures: failureCounter.With(labels),
	}
}

// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package metrics holds the Prometheus collectors of the dashboard sync agent.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "mission_control"

var (
	SectionFetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "section_fetch_total",
			Help:      "Section fetches by resulting data source (live, fallback, error)",
		},
		[]string{"section", "source"},
	)

	SectionFetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "section_fetch_duration_seconds",
			Help:      "Time spent resolving a section, fallback delay included",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"section"},
	)

	CacheRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "Query cache lookups by result (hit, miss, stale)",
		},
		[]string{"result"},
	)

	CacheInvalidationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_invalidations_total",
			Help:      "Cache keys marked stale",
		},
		[]string{"key"},
	)

	RealtimeState = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "realtime_state",
			Help:      "Current realtime channel state (0 disconnected, 1 connecting, 2 open, 3 closed, 4 failed)",
		},
	)

	RealtimeReconnectsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "realtime_reconnects_total",
			Help:      "Reconnect attempts of the realtime channel",
		},
	)

	DeltasAppliedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deltas_applied_total",
			Help:      "Realtime delta keys applied",
		},
		[]string{"key"},
	)

	DeltaParseErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "delta_parse_errors_total",
			Help:      "Realtime messages dropped because they were not valid JSON objects",
		},
	)

	MutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Dashboard mutations by action and outcome",
		},
		[]string{"action", "outcome"},
	)

	StoreUpdatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_updates_total",
			Help:      "Effective store mutations by slice",
		},
		[]string{"slice"},
	)
)

// Collectors returns every collector of the package for registration.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		SectionFetchTotal,
		SectionFetchDuration,
		CacheRequestsTotal,
		CacheInvalidationsTotal,
		RealtimeState,
		RealtimeReconnectsTotal,
		DeltasAppliedTotal,
		DeltaParseErrorsTotal,
		MutationsTotal,
		StoreUpdatesTotal,
	}
}

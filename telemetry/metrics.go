/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// PatchRuns counts playlist generation runs by patch slug and outcome
	// (ok, empty, error).
	PatchRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skald_patch_runs_total",
			Help: "Total playlist generation runs by patch and outcome",
		},
		[]string{"patch", "outcome"},
	)

	// PatchDuration tracks wall-clock time of a full generation run.
	PatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skald_patch_duration_seconds",
			Help:    "Duration of playlist generation runs",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"patch"},
	)

	// ElementDuration tracks time spent inside each pipeline element's Read.
	ElementDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skald_element_duration_seconds",
			Help:    "Duration of pipeline element reads",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"element"},
	)

	// RecordingsEmitted counts recordings placed on generated playlists.
	RecordingsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skald_recordings_emitted_total",
			Help: "Recordings emitted onto generated playlists",
		},
		[]string{"patch"},
	)

	// FetchRetries counts retried upstream HTTP requests.
	FetchRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skald_fetch_retries_total",
			Help: "Retried upstream HTTP requests",
		},
	)
)

// Handler exposes the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Package metrics holds the Prometheus collectors for the members service.
// They register with the default registry on import and are exposed on
// /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "members"

// LoginsTotal counts login attempts.
// Label result: "ok", "invalid_credentials", "error".
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts by result.",
	},
	[]string{"result"},
)

// RoleReconciliationsTotal counts role edits.
// Label outcome: "ok", "noop", "invalid", "partial_add", "partial_remove", "error".
var RoleReconciliationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_reconciliations_total",
		Help:      "Total number of role reconciliations by outcome.",
	},
	[]string{"outcome"},
)

// PhotoModerationTotal counts moderation actions.
// Labels action ("approve", "reject", "delete", "purge") and outcome.
var PhotoModerationTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "photo_moderation_total",
		Help:      "Total number of photo moderation actions by action and outcome.",
	},
	[]string{"action", "outcome"},
)

// BlobDeleteDuration measures blob store delete calls.
// Label result: "ok", "not_found", "error", "timeout".
var BlobDeleteDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "blob_delete_duration_seconds",
		Help:      "Duration of blob store delete calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// PendingPhotos tracks the size of the moderation queue. It is recounted
// after every change that can move a photo in or out of pending.
var PendingPhotos = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "pending_photos",
		Help:      "Number of photos awaiting moderation.",
	},
)

// ObserveBlobDelete records one blob delete call that started at start.
func ObserveBlobDelete(start time.Time, result string) {
	BlobDeleteDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
}

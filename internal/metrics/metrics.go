// Package metrics holds the Prometheus collectors for pipeline runs.
// They register with the default registry and are served at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// DocumentsMapped counts source documents that mapped cleanly, by kind.
	DocumentsMapped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fightgraphs",
			Name:      "documents_mapped_total",
			Help:      "Source documents mapped to relational rows.",
		},
		[]string{"kind"},
	)

	// DocumentsRejected counts documents dropped, by kind and reason.
	DocumentsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fightgraphs",
			Name:      "documents_rejected_total",
			Help:      "Source documents rejected by validation, id collision or a failed write.",
		},
		[]string{"kind", "reason"},
	)

	// RowsUpserted counts rows written, by document kind.
	RowsUpserted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fightgraphs",
			Name:      "rows_upserted_total",
			Help:      "Rows inserted or updated in Postgres.",
		},
		[]string{"kind"},
	)

	// RunDuration observes the wall time of each load stage.
	RunDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fightgraphs",
			Name:      "load_duration_seconds",
			Help:      "Duration of pipeline load stages.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 12),
		},
		[]string{"stage"},
	)
)

// Rejection reasons.
const (
	ReasonValidation = "validation"
	ReasonCollision  = "collision"
	ReasonWrite      = "write"
)

func init() {
	prometheus.MustRegister(DocumentsMapped, DocumentsRejected, RowsUpserted, RunDuration)
}

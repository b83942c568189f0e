// Package metrics exposes Prometheus instrumentation for datasources, relations and the API.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	namespace = "asetgraph"

	datasourceOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "datasource",
			Name:      "operations_total",
			Help:      "Total number of datasource operations by outcome",
		},
		[]string{"collection", "operation", "outcome"},
	)

	datasourceOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "datasource",
			Name:      "operation_duration_seconds",
			Help:      "Duration of datasource operations in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		},
		[]string{"collection", "operation"},
	)

	collectionsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "datasource",
			Name:      "collections_created_total",
			Help:      "Total number of collections created on first use",
		},
		[]string{"collection", "type"},
	)

	relationOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "relation",
			Name:      "operations_total",
			Help:      "Total number of relation assign/remove/check operations by outcome",
		},
		[]string{"relation", "operation", "outcome"},
	)

	graphqlRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "graphql",
			Name:      "requests_total",
			Help:      "Total number of GraphQL requests by outcome",
		},
		[]string{"outcome"},
	)

	eventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Total number of change events published",
		},
		[]string{"type"},
	)
)

// Outcome labels
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeError   = "error"
)

// Outcome maps a success flag to its label
func Outcome(ok bool) string {
	if ok {
		return OutcomeSuccess
	}
	return OutcomeFailure
}

func RecordDatasourceOperation(collection, operation, outcome string, duration time.Duration) {
	datasourceOperationsTotal.WithLabelValues(collection, operation, outcome).Inc()
	datasourceOperationDuration.WithLabelValues(collection, operation).Observe(duration.Seconds())
}

func RecordCollectionCreated(collection, collectionType string) {
	collectionsCreatedTotal.WithLabelValues(collection, collectionType).Inc()
}

func RecordRelationOperation(relation, operation, outcome string) {
	relationOperationsTotal.WithLabelValues(relation, operation, outcome).Inc()
}

func RecordGraphQLRequest(outcome string) {
	graphqlRequestsTotal.WithLabelValues(outcome).Inc()
}

func RecordEventPublished(eventType string) {
	eventsPublishedTotal.WithLabelValues(eventType).Inc()
}

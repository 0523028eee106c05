package metrics

import "github.com/prometheus/client_golang/prometheus"

// DatastoreMetrics contains Prometheus metrics for database operations
type DatastoreMetrics struct {
	registry *prometheus.Registry

	dbOperationsTotal      *prometheus.CounterVec
	dbOperationDuration    *prometheus.HistogramVec
	dbOperationErrorsTotal *prometheus.CounterVec
}

// NewDatastoreMetrics creates and registers datastore metrics
func NewDatastoreMetrics(registry *prometheus.Registry) (*DatastoreMetrics, error) {
	m := &DatastoreMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *DatastoreMetrics) initMetrics() {
	m.dbOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "datastore_operations_total",
			Help: "Total number of database operations",
		},
		[]string{"operation", "table", "status"}, // operation: query, create, update, delete
	)

	m.dbOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "datastore_operation_duration_seconds",
			Help:    "Time taken for database operations",
			Buckets: prometheus.ExponentialBuckets(BucketStart1ms, BucketFactor2, BucketCount12),
		},
		[]string{"operation", "table"},
	)

	m.dbOperationErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "datastore_operation_errors_total",
			Help: "Total number of failed database operations",
		},
		[]string{"operation", "table"},
	)
}

func (m *DatastoreMetrics) getCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.dbOperationsTotal,
		m.dbOperationDuration,
		m.dbOperationErrorsTotal,
	}
}

// Describe implements the Collector interface
func (m *DatastoreMetrics) Describe(ch chan<- *prometheus.Desc) {
	for _, collector := range m.getCollectors() {
		collector.Describe(ch)
	}
}

// Collect implements the Collector interface
func (m *DatastoreMetrics) Collect(ch chan<- prometheus.Metric) {
	for _, collector := range m.getCollectors() {
		collector.Collect(ch)
	}
}

// RecordOperation records a finished statement
func (m *DatastoreMetrics) RecordOperation(operation, table, status string, duration float64) {
	m.dbOperationsTotal.WithLabelValues(operation, table, status).Inc()
	m.dbOperationDuration.WithLabelValues(operation, table).Observe(duration)
	if status == StatusError {
		m.dbOperationErrorsTotal.WithLabelValues(operation, table).Inc()
	}
}

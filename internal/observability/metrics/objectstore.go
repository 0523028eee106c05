package metrics

import "github.com/prometheus/client_golang/prometheus"

// ObjectStoreMetrics contains Prometheus metrics for object store calls
type ObjectStoreMetrics struct {
	registry *prometheus.Registry

	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	bytesTotal        *prometheus.CounterVec
}

// NewObjectStoreMetrics creates and registers object store metrics
func NewObjectStoreMetrics(registry *prometheus.Registry) (*ObjectStoreMetrics, error) {
	m := &ObjectStoreMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *ObjectStoreMetrics) initMetrics() {
	m.operationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "objectstore_operations_total",
			Help: "Total number of object store operations",
		},
		[]string{"backend", "operation", "status"},
	)

	m.operationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "objectstore_operation_duration_seconds",
			Help:    "Time taken for object store operations",
			Buckets: prometheus.ExponentialBuckets(BucketStart1ms, BucketFactor2, BucketCount15),
		},
		[]string{"backend", "operation"},
	)

	m.bytesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "objectstore_bytes_total",
			Help: "Total bytes transferred to and from the object store",
		},
		[]string{"backend", "direction"}, // direction: upload, download
	)
}

func (m *ObjectStoreMetrics) getCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.operationsTotal,
		m.operationDuration,
		m.bytesTotal,
	}
}

// Describe implements the Collector interface
func (m *ObjectStoreMetrics) Describe(ch chan<- *prometheus.Desc) {
	for _, collector := range m.getCollectors() {
		collector.Describe(ch)
	}
}

// Collect implements the Collector interface
func (m *ObjectStoreMetrics) Collect(ch chan<- prometheus.Metric) {
	for _, collector := range m.getCollectors() {
		collector.Collect(ch)
	}
}

// RecordOperation records one store call
func (m *ObjectStoreMetrics) RecordOperation(backend, operation, status string, duration float64) {
	m.operationsTotal.WithLabelValues(backend, operation, status).Inc()
	m.operationDuration.WithLabelValues(backend, operation).Observe(duration)
}

// RecordBytes adds transferred payload bytes
func (m *ObjectStoreMetrics) RecordBytes(backend, direction string, n int) {
	m.bytesTotal.WithLabelValues(backend, direction).Add(float64(n))
}

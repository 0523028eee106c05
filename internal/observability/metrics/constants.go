// Package metrics defines the Prometheus metric families of the service.
package metrics

// Object store operation labels
const (
	OpExists   = "exists"
	OpUpload   = "upload"
	OpDownload = "download"
	OpDelete   = "delete"
)

// Status label values
const (
	StatusSuccess  = "success"
	StatusError    = "error"
	StatusNotFound = "not_found"
)

// Histogram bucket configuration
const (
	// BucketStart1ms with BucketFactor2 and BucketCount12 spans 1ms to ~2s
	BucketStart1ms = 0.001
	// BucketStart1KB with BucketFactor4 and BucketCount11 spans 1KB to 1GB
	BucketStart1KB = 1024.0

	BucketFactor2 = 2
	BucketFactor4 = 4
	BucketCount11 = 11
	BucketCount12 = 12
	BucketCount15 = 15
)

package objectstore

import (
	"context"
	"time"

	"github.com/tphakala/video-enrichment-api/internal/errors"
	"github.com/tphakala/video-enrichment-api/internal/observability/metrics"
)

// Instrumented records operation counts, latency and payload size for every call
type Instrumented struct {
	next    Store
	metrics *metrics.ObjectStoreMetrics
}

// NewInstrumented wraps next
func NewInstrumented(next Store, m *metrics.ObjectStoreMetrics) *Instrumented {
	return &Instrumented{next: next, metrics: m}
}

// Backend returns the wrapped backend name
func (s *Instrumented) Backend() string {
	return s.next.Backend()
}

func (s *Instrumented) record(op string, start time.Time, err error) {
	status := metrics.StatusSuccess
	switch {
	case errors.Is(err, ErrObjectNotFound):
		status = metrics.StatusNotFound
	case err != nil:
		status = metrics.StatusError
	}
	s.metrics.RecordOperation(s.next.Backend(), op, status, time.Since(start).Seconds())
}

func (s *Instrumented) Exists(ctx context.Context, p Path) bool {
	start := time.Now()
	ok := s.next.Exists(ctx, p)
	var err error
	if !ok {
		err = ErrObjectNotFound
	}
	s.record(metrics.OpExists, start, err)
	return ok
}

func (s *Instrumented) Upload(ctx context.Context, p Path, data []byte, contentType string) error {
	start := time.Now()
	err := s.next.Upload(ctx, p, data, contentType)
	s.record(metrics.OpUpload, start, err)
	if err == nil {
		s.metrics.RecordBytes(s.next.Backend(), metrics.OpUpload, len(data))
	}
	return err
}

func (s *Instrumented) Download(ctx context.Context, p Path) ([]byte, error) {
	start := time.Now()
	data, err := s.next.Download(ctx, p)
	s.record(metrics.OpDownload, start, err)
	if err == nil {
		s.metrics.RecordBytes(s.next.Backend(), metrics.OpDownload, len(data))
	}
	return data, err
}

func (s *Instrumented) Delete(ctx context.Context, p Path) error {
	start := time.Now()
	err := s.next.Delete(ctx, p)
	s.record(metrics.OpDelete, start, err)
	return err
}

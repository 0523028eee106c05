// Package objectstore stores video and image bytes in S3 or on a local
// filesystem behind a common Store interface.
package objectstore

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/tphakala/video-enrichment-api/internal/conf"
	"github.com/tphakala/video-enrichment-api/internal/errors"
	"github.com/tphakala/video-enrichment-api/internal/logger"
	"github.com/tphakala/video-enrichment-api/internal/observability/metrics"
)

// ErrObjectNotFound is returned by Download when the object does not exist
var ErrObjectNotFound = errors.NewStd("object not found")

// Store is the object storage contract used by the domain managers
type Store interface {
	// Exists reports whether the object is present. Backend failures read as false.
	Exists(ctx context.Context, p Path) bool
	Upload(ctx context.Context, p Path, data []byte, contentType string) error
	// Download returns ErrObjectNotFound for a missing object
	Download(ctx context.Context, p Path) ([]byte, error)
	// Delete removes the object; deleting a missing object is not an error
	Delete(ctx context.Context, p Path) error
	// Backend names the implementation for logs and metrics
	Backend() string
}

// New builds the store selected by settings, wrapped with metrics when m is set
func New(ctx context.Context, settings *conf.Settings, m *metrics.ObjectStoreMetrics, log logger.Logger) (Store, error) {
	var (
		store Store
		err   error
	)

	switch settings.Storage.Backend {
	case conf.StorageS3:
		store, err = NewS3Store(ctx, S3Config{
			Profile:      settings.S3.Profile,
			Region:       settings.S3.Region,
			Endpoint:     settings.S3.Endpoint,
			UsePathStyle: settings.S3.UsePathStyle,
		})
	case conf.StorageFilesystem:
		fs := afero.NewOsFs()
		if mkErr := fs.MkdirAll(settings.Storage.Root, 0o755); mkErr != nil {
			return nil, fmt.Errorf("create storage root: %w", mkErr)
		}
		store = NewFSStore(afero.NewBasePathFs(fs, settings.Storage.Root), conf.StorageFilesystem)
	case conf.StorageMemory:
		store = NewFSStore(afero.NewMemMapFs(), conf.StorageMemory)
	default:
		err = fmt.Errorf("unsupported storage backend %q", settings.Storage.Backend)
	}
	if err != nil {
		return nil, errors.New(err).
			Component("objectstore").
			Category(errors.CategoryConfiguration).
			Context("backend", settings.Storage.Backend).
			Build()
	}

	if log != nil {
		log.Info("object store ready", logger.String("backend", store.Backend()))
	}

	if m != nil {
		store = NewInstrumented(store, m)
	}
	return store, nil
}

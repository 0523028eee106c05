// Package domain holds the business managers behind the HTTP handlers. The
// managers check references, keep the object store and the catalog in step
// and translate repository sentinels into categorized errors.
package domain

import (
	"context"
	"io"

	"github.com/spf13/afero"
	"gorm.io/gorm"

	"github.com/tphakala/video-enrichment-api/internal/conf"
	"github.com/tphakala/video-enrichment-api/internal/datastore/repository"
	"github.com/tphakala/video-enrichment-api/internal/errors"
	"github.com/tphakala/video-enrichment-api/internal/logger"
	"github.com/tphakala/video-enrichment-api/internal/objectstore"
	"github.com/tphakala/video-enrichment-api/internal/videoprobe"
)

const component = "domain"

// Repositories bundles the table repositories used by the managers
type Repositories struct {
	Videos     repository.VideoRepository
	Taxonomies repository.TaxonomyRepository
	Entities   repository.EntityRepository
	Galleries  repository.GalleryRepository
	Segments   repository.SegmentDetectionRepository
	Detections repository.DetectionRepository
}

// NewRepositories builds the GORM repositories on db
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Videos:     repository.NewVideoRepository(db),
		Taxonomies: repository.NewTaxonomyRepository(db),
		Entities:   repository.NewEntityRepository(db),
		Galleries:  repository.NewGalleryRepository(db),
		Segments:   repository.NewSegmentDetectionRepository(db),
		Detections: repository.NewDetectionRepository(db),
	}
}

// Paths are the object store prefixes new uploads are written under
type Paths struct {
	Gallery objectstore.Path
	Video   objectstore.Path
}

// PathsFromSettings resolves the gallery and video prefixes
func PathsFromSettings(s *conf.S3Settings) Paths {
	return Paths{
		Gallery: objectstore.ParsePath(s.GalleryObjectPath()),
		Video:   objectstore.ParsePath(s.VideoObjectPath()),
	}
}

// Pinger reports database reachability
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps carries everything the managers need
type Deps struct {
	Name   string // service name reported by the healthcheck
	Repos  *Repositories
	Store  objectstore.Store
	Prober videoprobe.Prober
	DB     Pinger

	// Scratch holds uploaded videos while they are probed. The prober runs
	// external tools, so production uses afero.NewOsFs.
	Scratch    afero.Fs
	ScratchDir string

	Paths Paths
	Log   logger.Logger
}

// Managers groups the domain managers
type Managers struct {
	Videos     *VideoManager
	Taxonomies *TaxonomyManager
	Entities   *EntityManager
	Galleries  *GalleryManager
	Segments   *SegmentDetectionManager
	Detections *DetectionManager
	Health     *HealthManager
}

// New wires the managers
func New(d Deps) *Managers {
	if d.Scratch == nil {
		d.Scratch = afero.NewOsFs()
	}
	if d.Log == nil {
		d.Log = logger.NewSlogLogger(io.Discard, logger.LogLevelInfo, nil)
	}

	return &Managers{
		Videos: &VideoManager{
			videos:     d.Repos.Videos,
			segments:   d.Repos.Segments,
			store:      d.Store,
			prober:     d.Prober,
			scratch:    d.Scratch,
			scratchDir: d.ScratchDir,
			root:       d.Paths.Video,
			log:        d.Log,
		},
		Taxonomies: &TaxonomyManager{
			taxonomies: d.Repos.Taxonomies,
		},
		Entities: &EntityManager{
			entities:   d.Repos.Entities,
			taxonomies: d.Repos.Taxonomies,
			galleries:  d.Repos.Galleries,
			store:      d.Store,
			log:        d.Log,
		},
		Galleries: &GalleryManager{
			galleries: d.Repos.Galleries,
			entities:  d.Repos.Entities,
			store:     d.Store,
			root:      d.Paths.Gallery,
			log:       d.Log,
		},
		Segments: &SegmentDetectionManager{
			segments:   d.Repos.Segments,
			videos:     d.Repos.Videos,
			taxonomies: d.Repos.Taxonomies,
		},
		Detections: &DetectionManager{
			detections: d.Repos.Detections,
			videos:     d.Repos.Videos,
			segments:   d.Repos.Segments,
		},
		Health: &HealthManager{
			name: d.Name,
			db:   d.DB,
			log:  d.Log,
		},
	}
}

// Blob is object content with its MIME type
type Blob struct {
	Data        []byte
	ContentType string
}

// dbError categorizes a repository failure that has no domain meaning of
// its own. Errors that already carry a category pass through unchanged.
func dbError(err error, resource string) error {
	var ee *errors.EnhancedError
	switch {
	case errors.As(err, &ee):
		return err
	case errors.Is(err, repository.ErrDuplicateKey):
		return errors.Newf("%s already exists", resource).
			Component(component).
			Category(errors.CategoryConflict).
			Context("cause", err.Error()).
			Build()
	case errors.Is(err, repository.ErrReferenced):
		return errors.Newf("%s is referenced by other records", resource).
			Component(component).
			Category(errors.CategoryConflict).
			Context("cause", err.Error()).
			Build()
	default:
		return errors.New(err).
			Component(component).
			Category(errors.CategoryDatabase).
			Context("resource", resource).
			Build()
	}
}

func notFoundf(format string, args ...any) error {
	return errors.NotFound(component, format, args...)
}

// lookup converts notFound into a NotFound error with msg, and anything
// else into a database error.
func lookup(err, notFound error, resource, format string, args ...any) error {
	if errors.Is(err, notFound) {
		return notFoundf(format, args...)
	}
	return dbError(err, resource)
}

// download fetches an object, mapping a missing object to NotFound with
// missingMsg and any other store failure to an upstream failure.
func download(ctx context.Context, store objectstore.Store, p objectstore.Path, missingMsg string) ([]byte, error) {
	data, err := store.Download(ctx, p)
	switch {
	case errors.Is(err, objectstore.ErrObjectNotFound):
		return nil, notFoundf("%s", missingMsg)
	case err != nil:
		return nil, errors.Upstream(component, err, "Failed to download object from S3")
	case len(data) == 0:
		return nil, notFoundf("%s", missingMsg)
	}
	return data, nil
}

// removeObject deletes an object and logs instead of failing; the catalog
// row is removed regardless.
func removeObject(ctx context.Context, store objectstore.Store, log logger.Logger, p objectstore.Path) {
	if err := store.Delete(ctx, p); err != nil {
		log.Warn("failed to delete object",
			logger.String("path", p.String()),
			logger.Error(err))
	}
}

// Package repository provides repository interfaces and GORM implementations
// for the catalog tables.
package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/tphakala/video-enrichment-api/internal/errors"
)

// Sentinel errors for repository operations.
// Callers distinguish failure modes with errors.Is instead of inspecting
// GORM or driver errors.
var (
	// ErrVideoNotFound indicates the requested video does not exist.
	ErrVideoNotFound = errors.NewStd("video not found")

	// ErrTaxonomyNotFound indicates the requested taxonomy does not exist.
	ErrTaxonomyNotFound = errors.NewStd("taxonomy not found")

	// ErrEntityNotFound indicates the requested entity does not exist.
	ErrEntityNotFound = errors.NewStd("entity not found")

	// ErrGalleryNotFound indicates the requested media gallery does not exist.
	ErrGalleryNotFound = errors.NewStd("entity media gallery not found")

	// ErrSegmentDetectionNotFound indicates the requested segment detection does not exist.
	ErrSegmentDetectionNotFound = errors.NewStd("segment detection not found")

	// ErrDetectionNotFound indicates the requested detection does not exist.
	ErrDetectionNotFound = errors.NewStd("detection not found")

	// ErrDuplicateKey indicates a unique constraint violation.
	ErrDuplicateKey = errors.NewStd("duplicate key")

	// ErrReferenced indicates a row is still referenced by another table.
	ErrReferenced = errors.NewStd("row is referenced by other records")
)

// translate maps GORM errors to the package sentinels, keeping the
// original error in the chain.
func translate(err, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", ErrDuplicateKey, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %w", ErrReferenced, err)
	default:
		return err
	}
}

// deleteResult reports notFound when a delete touched no rows
func deleteResult(result *gorm.DB, notFound error) error {
	if result.Error != nil {
		return translate(result.Error, notFound)
	}
	if result.RowsAffected == 0 {
		return notFound
	}
	return nil
}

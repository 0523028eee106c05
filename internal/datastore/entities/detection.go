package entities

import (
	"gorm.io/gorm"

	"github.com/tphakala/video-enrichment-api/internal/errors"
	"github.com/tphakala/video-enrichment-api/internal/validation"
)

// Detection is a single-frame bounding box inside a segment detection.
// Coordinates are normalised to [0,1].
type Detection struct {
	ID                 int64   `gorm:"primaryKey" json:"id"`
	UUID               string  `gorm:"size:36;not null;uniqueIndex" json:"uuid"`
	VideoID            int64   `gorm:"not null;index" json:"video_id"`
	Frame              int64   `gorm:"not null" json:"frame"`
	SegmentDetectionID int64   `gorm:"not null;index" json:"segment_detection_id"`
	DetectionScore     float64 `json:"detection_score" validate:"gte=0,lte=1"`
	EntityScore        float64 `json:"entity_score" validate:"gte=0,lte=1"`
	BBoxXMin           float64 `gorm:"column:bbox_x_min" json:"bbox_x_min" validate:"gte=0,lte=1"`
	BBoxYMin           float64 `gorm:"column:bbox_y_min" json:"bbox_y_min" validate:"gte=0,lte=1"`
	BBoxXMax           float64 `gorm:"column:bbox_x_max" json:"bbox_x_max" validate:"gte=0,lte=1,gtfield=BBoxXMin"`
	BBoxYMax           float64 `gorm:"column:bbox_y_max" json:"bbox_y_max" validate:"gte=0,lte=1,gtfield=BBoxYMin"`
	Audit

	Video            *Video            `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	SegmentDetection *SegmentDetection `gorm:"foreignKey:SegmentDetectionID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
}

// TableName returns the table name for GORM.
func (Detection) TableName() string {
	return "detections"
}

// BeforeSave rejects bounding boxes outside the unit square or with
// non-positive extent.
func (d *Detection) BeforeSave(_ *gorm.DB) error {
	if err := validation.Default().Struct(d); err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryInvalidInput).
			Context("table", d.TableName()).
			Build()
	}
	return nil
}

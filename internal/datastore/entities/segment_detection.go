package entities

// SegmentDetection marks the frame range in which an entity appears in a video.
type SegmentDetection struct {
	ID         int64  `gorm:"primaryKey" json:"id"`
	UUID       string `gorm:"size:36;not null;uniqueIndex" json:"uuid"`
	VideoID    int64  `gorm:"not null;index;index:idx_segment_video_taxonomy,priority:1" json:"video_id"`
	StartFrame int64  `gorm:"not null" json:"start_frame"`
	EndFrame   int64  `gorm:"not null" json:"end_frame"`
	TaxonomyID int64  `gorm:"not null;index:idx_segment_video_taxonomy,priority:2" json:"taxonomy_id"`
	EntityID   int64  `gorm:"not null;index" json:"entity_id"`
	Audit

	Video    *Video    `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE" json:"-"`
	Taxonomy *Taxonomy `gorm:"foreignKey:TaxonomyID" json:"-"`
	Entity   *Entity   `gorm:"foreignKey:EntityID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName returns the table name for GORM.
func (SegmentDetection) TableName() string {
	return "segment_detections"
}

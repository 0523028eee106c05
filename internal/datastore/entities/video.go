package entities

// Video is an uploaded video file. Path is the full object path
// ("bucket/key") of the video in the object store.
type Video struct {
	ID        int64   `gorm:"primaryKey" json:"id"`
	UUID      string  `gorm:"size:36;not null;uniqueIndex" json:"uuid"`
	Code      string  `gorm:"size:255;not null;index" json:"code"`
	Path      string  `gorm:"size:1024;not null" json:"path"`
	Extension string  `gorm:"size:16" json:"extension"`
	Frames    int64   `json:"frames"`
	Length    int64   `json:"length"` // seconds, truncated
	FrameRate float64 `json:"frame_rate"`
	Audit
}

// TableName returns the table name for GORM.
func (Video) TableName() string {
	return "videos"
}

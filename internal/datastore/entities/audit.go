package entities

import "time"

// Audit holds the bookkeeping columns present on every table.
// created_by and updated_by are filled in by the datastore audit plugin.
type Audit struct {
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	CreatedBy string    `gorm:"size:100" json:"created_by"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	UpdatedBy string    `gorm:"size:100" json:"updated_by"`
}

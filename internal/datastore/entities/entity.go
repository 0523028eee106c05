package entities

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Entity is a recognisable subject, e.g. a team or a person, known under
// one or more aliases.
type Entity struct {
	ID         int64                       `gorm:"primaryKey" json:"id"`
	UUID       string                      `gorm:"size:36;not null;uniqueIndex" json:"uuid"`
	Alias      datatypes.JSONSlice[string] `json:"alias"`
	Enabled    bool                        `gorm:"not null;index" json:"enabled"`
	TaxonomyID int64                       `gorm:"not null;index" json:"taxonomy_id"`
	Audit
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Taxonomy *Taxonomy `gorm:"foreignKey:TaxonomyID" json:"-"`
}

// TableName returns the table name for GORM.
func (Entity) TableName() string {
	return "entities"
}

package entities

// Taxonomy is a label in a tree. TaxonomyID references the parent taxonomy.
type Taxonomy struct {
	ID         int64  `gorm:"primaryKey" json:"id"`
	UUID       string `gorm:"size:36;not null;uniqueIndex" json:"uuid"`
	Label      string `gorm:"size:255;not null" json:"label"`
	TaxonomyID *int64 `gorm:"index" json:"taxonomy_id"`
	Audit

	Parent *Taxonomy `gorm:"foreignKey:TaxonomyID" json:"-"`
}

// TableName returns the table name for GORM.
func (Taxonomy) TableName() string {
	return "taxonomies"
}

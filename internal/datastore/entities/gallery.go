package entities

import (
	"gorm.io/gorm"
)

// EntityMediaGallery is a reference image of an entity. The embedding vector
// is stored as JSON and never serialized to clients; HasEmbedding reports
// its presence.
type EntityMediaGallery struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	UUID         string    `gorm:"size:36;not null;uniqueIndex" json:"uuid"`
	EntityID     int64     `gorm:"not null;index" json:"entity_id"`
	Path         string    `gorm:"size:1024;not null" json:"path"`
	Embedding    []float32 `gorm:"serializer:json" json:"-"`
	Enabled      bool      `gorm:"not null;index" json:"enabled"`
	HasEmbedding bool      `gorm:"-" json:"has_embedding"`
	Audit
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Entity *Entity `gorm:"foreignKey:EntityID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName returns the table name for GORM.
func (EntityMediaGallery) TableName() string {
	return "entity_media_galleries"
}

// AfterFind derives HasEmbedding on every read. A stored empty vector
// still counts, only NULL means no embedding.
func (g *EntityMediaGallery) AfterFind(_ *gorm.DB) error {
	g.HasEmbedding = g.Embedding != nil
	return nil
}

// AfterSave keeps HasEmbedding in sync after writes.
func (g *EntityMediaGallery) AfterSave(_ *gorm.DB) error {
	g.HasEmbedding = g.Embedding != nil
	return nil
}

package models

import (
	"time"
)

type Artwork struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Title        string     `gorm:"not null" json:"title"`
	Description  string     `gorm:"size:1000" json:"description"`
	Dimensions   string     `json:"dimensions,omitempty"`
	Materials    string     `json:"materials,omitempty"`
	CreationDate *time.Time `gorm:"type:date" json:"creation_date,omitempty"`
	Price        *float64   `gorm:"type:numeric(10,2)" json:"price,omitempty"`
	IsAvailable  bool       `gorm:"not null;default:true" json:"is_available"`
	ImageURLs    []string   `gorm:"serializer:json;type:jsonb" json:"image_urls"`
	MainImageURL string     `json:"main_image_url"`
	DisplayOrder int        `gorm:"default:0" json:"display_order"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relations
	Categories []Category `gorm:"many2many:artwork_categories_mapping" json:"categories,omitempty"`
}

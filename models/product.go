package models

import (
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Product represents a catalog item. The slug is derived from the name and
// the main image always tracks the first entry of the image list; both are
// re-derived in BeforeSave so renames and image replacements stay in sync.
type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Reference   string    `gorm:"uniqueIndex;not null" json:"reference"`
	Price       float64   `gorm:"not null;check:price > 0" json:"price"`
	Category    string    `gorm:"not null;index" json:"category"`
	Stock       int       `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
	Images      []string  `gorm:"serializer:json;not null" json:"images"`
	MainImage   string    `gorm:"not null" json:"mainImage"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// BeforeSave derives the slug from the name and keeps the main image in sync
// with the first image. Runs on both create and full-field update.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	if p.Name != "" {
		p.Slug = slug.Make(p.Name)
	}
	if len(p.Images) > 0 {
		p.MainImage = p.Images[0]
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog entry. Records reference it by title only, never by
// foreign key.
type Product struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Title     string    `gorm:"column:title;not null"`
	ImageURL  *string   `gorm:"column:image_url"`
	Active    bool      `gorm:"column:active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

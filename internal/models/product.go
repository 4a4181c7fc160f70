package models

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a secondhand apparel listing.
// Price and Cost are stored in minor currency units (cents).
// DeletedAt makes deletions soft: the row stays in place, invisible to default reads.
type Product struct {
	ID          string         `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string         `json:"name" validate:"required,min=3,max=100"`
	Description string         `json:"description" validate:"omitempty,max=500"`
	Price       int64          `json:"price" validate:"required,gt=0"`
	Cost        int64          `json:"cost" validate:"gte=0"`
	Stock       int            `json:"stock" validate:"gte=0"`
	Category    string         `json:"category" validate:"omitempty,max=100"`
	Images      []string       `json:"images" gorm:"serializer:json"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

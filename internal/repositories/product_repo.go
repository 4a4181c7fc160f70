package repositories

import (
	"looped/internal/models"
)

// ProductListParams describes a public catalog listing: optional category
// filter, sort order, and 1-based pagination.
type ProductListParams struct {
	Category string
	Sort     string // "newest" (default), "price-low", "price-high"
	Page     int
	PageSize int
}

// ProductRepository defines the interface for product data access.
// Reads take a Visibility so administrative tooling can opt in to seeing
// soft-deleted rows; everything else gets the default filter.
type ProductRepository interface {
	List(params ProductListParams) ([]models.Product, int64, error)
	GetByID(id string, vis Visibility) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	SoftDelete(id string) (*models.Product, error)
	Count() (int64, error)
}

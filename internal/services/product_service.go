package services

import (
	"log"

	"looped/internal/models"
	"looped/internal/repositories"
)

// ProductPatch is a partial product update. Nil fields are left untouched.
type ProductPatch struct {
	Name        *string  `json:"name" validate:"omitempty,min=3,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Price       *int64   `json:"price" validate:"omitempty,gt=0"`
	Cost        *int64   `json:"cost" validate:"omitempty,gte=0"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	Category    *string  `json:"category" validate:"omitempty,max=100"`
	Images      []string `json:"images"`
}

// ProductService handles business logic related to products. Every mutation
// produces one audit entry under the log-and-continue policy.
type ProductService struct {
	repo  repositories.ProductRepository
	audit *AuditService
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, audit *AuditService) *ProductService {
	return &ProductService{
		repo:  repo,
		audit: audit,
	}
}

// ListProducts returns a catalog page and the total matching count. Deleted
// products are never included.
func (s *ProductService) ListProducts(params repositories.ProductListParams) ([]models.Product, int64, error) {
	return s.repo.List(params)
}

// GetProduct retrieves a single non-deleted product by its ID.
func (s *ProductService) GetProduct(id string) (*models.Product, error) {
	return s.repo.GetByID(id, repositories.ActiveOnly)
}

// CreateProduct creates a new product on behalf of actorID.
func (s *ProductService) CreateProduct(product *models.Product, actorID string) error {
	if err := s.repo.Create(product); err != nil {
		return err
	}
	if err := s.audit.Record(models.AuditActionCreate, models.AuditEntityProduct, product.ID, actorID); err != nil {
		log.Printf("Failed to record audit entry for product %s creation: %v", product.ID, err)
	}
	return nil
}

// UpdateProduct applies a partial update to an existing non-deleted product
// and returns the updated representation.
func (s *ProductService) UpdateProduct(id string, patch ProductPatch, actorID string) (*models.Product, error) {
	product, err := s.repo.GetByID(id, repositories.ActiveOnly)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.Cost != nil {
		product.Cost = *patch.Cost
	}
	if patch.Stock != nil {
		product.Stock = *patch.Stock
	}
	if patch.Category != nil {
		product.Category = *patch.Category
	}
	if patch.Images != nil {
		product.Images = patch.Images
	}

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	if err := s.audit.Record(models.AuditActionUpdate, models.AuditEntityProduct, product.ID, actorID); err != nil {
		log.Printf("Failed to record audit entry for product %s update: %v", product.ID, err)
	}
	return product, nil
}

// DeleteProduct soft-deletes a product and returns the now-deleted
// representation. The row stays in place with its deletion timestamp set.
func (s *ProductService) DeleteProduct(id string, actorID string) (*models.Product, error) {
	product, err := s.repo.SoftDelete(id)
	if err != nil {
		return nil, err
	}
	if err := s.audit.Record(models.AuditActionDelete, models.AuditEntityProduct, id, actorID); err != nil {
		log.Printf("Failed to record audit entry for product %s deletion: %v", id, err)
	}
	return product, nil
}

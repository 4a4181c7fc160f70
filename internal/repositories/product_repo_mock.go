package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"looped/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// List returns a page of non-deleted products and the total matching count.
func (r *MockProductRepository) List(params ProductListParams) ([]models.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if p.DeletedAt.Valid {
			continue
		}
		if params.Category != "" && p.Category != params.Category {
			continue
		}
		matched = append(matched, p)
	}

	switch params.Sort {
	case "price-low":
		sort.Slice(matched, func(i, j int) bool { return matched[i].Price < matched[j].Price })
	case "price-high":
		sort.Slice(matched, func(i, j int) bool { return matched[i].Price > matched[j].Price })
	default:
		sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	}

	total := int64(len(matched))
	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = 12
	}
	start := (page - 1) * pageSize
	if start >= len(matched) {
		return []models.Product{}, total, nil
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// GetByID returns a product by its ID, honoring the visibility rule.
func (r *MockProductRepository) GetByID(id string, vis Visibility) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok || (vis == ActiveOnly && product.DeletedAt.Valid) {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	return &product, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[product.ID]
	if !ok {
		return fmt.Errorf("product with ID %s: %w", product.ID, ErrNotFound)
	}
	r.products[product.ID] = *product
	return nil
}

// SoftDelete stamps the product's deletion time and returns the deleted copy.
func (r *MockProductRepository) SoftDelete(id string) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok || product.DeletedAt.Valid {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	product.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	r.products[id] = product
	return &product, nil
}

// Count returns the number of non-deleted products.
func (r *MockProductRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, p := range r.products {
		if !p.DeletedAt.Valid {
			count++
		}
	}
	return count, nil
}

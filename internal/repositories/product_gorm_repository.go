package repositories

import (
	"errors"
	"fmt"

	"looped/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// List retrieves a page of non-deleted products together with the total count.
// The count is computed under the exact same predicate as the returned page so
// the two can never disagree.
func (r *GORMProductRepository) List(params ProductListParams) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{})
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	switch params.Sort {
	case "price-low":
		query = query.Order("price asc")
	case "price-high":
		query = query.Order("price desc")
	default:
		query = query.Order("created_at desc")
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = 12
	}

	var products []models.Product
	if err := query.Offset((page - 1) * pageSize).Limit(pageSize).Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

// GetByID retrieves a single product by its ID. With ActiveOnly visibility a
// soft-deleted product is reported as not found.
func (r *GORMProductRepository) GetByID(id string, vis Visibility) (*models.Product, error) {
	var product models.Product
	if err := withVisibility(r.db, vis).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update updates an existing product in the database.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product) // Save will update all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s: %w", product.ID, ErrNotFound)
	}
	return nil
}

// SoftDelete marks a product deleted by setting its deletion timestamp and
// returns the now-deleted representation. The row is otherwise untouched.
func (r *GORMProductRepository) SoftDelete(id string) (*models.Product, error) {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	return r.GetByID(id, IncludeDeleted)
}

// Count returns the number of non-deleted products.
func (r *GORMProductRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

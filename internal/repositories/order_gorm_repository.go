package repositories

import (
	"errors"
	"fmt"

	"looped/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// withRelations loads the order's owner and line items. Products inside line
// items are loaded unscoped on purpose: a historical order must keep showing
// what was bought even after the product listing is soft-deleted. The
// deletion-visibility rule applies to the top-level order only.
func (r *GORMOrderRepository) withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Items").
		Preload("Items.Product", func(tx *gorm.DB) *gorm.DB { return tx.Unscoped() })
}

// Create persists an order together with its line items.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
	}
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetByID retrieves a single order with its relations.
func (r *GORMOrderRepository) GetByID(id string, vis Visibility) (*models.Order, error) {
	var order models.Order
	if err := r.withRelations(withVisibility(r.db, vis)).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// ListByUser returns the non-deleted orders owned by a user, newest first.
func (r *GORMOrderRepository) ListByUser(userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.withRelations(r.db).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// Page returns one page of non-deleted orders, newest first, with the total
// count computed under the same predicate.
func (r *GORMOrderRepository) Page(page, limit int) ([]models.Order, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 5
	}

	var total int64
	if err := r.db.Model(&models.Order{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []models.Order
	err := r.withRelations(r.db).
		Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to page orders: %w", err)
	}
	return orders, total, nil
}

// Latest returns the n most recent non-deleted orders.
func (r *GORMOrderRepository) Latest(n int) ([]models.Order, error) {
	var orders []models.Order
	err := r.withRelations(r.db).
		Order("created_at desc").
		Limit(n).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get latest orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus sets the status of an existing order.
func (r *GORMOrderRepository) UpdateStatus(id string, status models.OrderStatus) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update order status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

// Count returns the number of non-deleted orders.
func (r *GORMOrderRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Order{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

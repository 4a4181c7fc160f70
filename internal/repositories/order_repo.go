package repositories

import "looped/internal/models"

// OrderRepository defines the interface for order data access.
// Line items ride along with their order; they are never queried on their own.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string, vis Visibility) (*models.Order, error)
	ListByUser(userID string) ([]models.Order, error)
	Page(page, limit int) ([]models.Order, int64, error)
	Latest(n int) ([]models.Order, error)
	UpdateStatus(id string, status models.OrderStatus) error
	Count() (int64, error)
}

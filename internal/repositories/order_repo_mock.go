package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"looped/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders map[string]models.Order
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// Create adds a new order.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	r.orders[order.ID] = *order
	return nil
}

// GetByID returns an order by its ID, honoring the visibility rule.
func (r *MockOrderRepository) GetByID(id string, vis Visibility) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok || (vis == ActiveOnly && order.DeletedAt.Valid) {
		return nil, fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
	}
	return &order, nil
}

// ListByUser returns the non-deleted orders owned by a user, newest first.
func (r *MockOrderRepository) ListByUser(userID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]models.Order, 0)
	for _, o := range r.orders {
		if o.UserID == userID && !o.DeletedAt.Valid {
			orders = append(orders, o)
		}
	}
	sortNewestFirst(orders)
	return orders, nil
}

// Page returns one page of non-deleted orders, newest first, and the total.
func (r *MockOrderRepository) Page(page, limit int) ([]models.Order, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	active := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		if !o.DeletedAt.Valid {
			active = append(active, o)
		}
	}
	sortNewestFirst(active)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 5
	}
	total := int64(len(active))
	start := (page - 1) * limit
	if start >= len(active) {
		return []models.Order{}, total, nil
	}
	end := start + limit
	if end > len(active) {
		end = len(active)
	}
	return active[start:end], total, nil
}

// Latest returns the n most recent non-deleted orders.
func (r *MockOrderRepository) Latest(n int) ([]models.Order, error) {
	orders, _, err := r.Page(1, n)
	return orders, err
}

// UpdateStatus sets the status of an existing order.
func (r *MockOrderRepository) UpdateStatus(id string, status models.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok || order.DeletedAt.Valid {
		return fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}

// Count returns the number of non-deleted orders.
func (r *MockOrderRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, o := range r.orders {
		if !o.DeletedAt.Valid {
			count++
		}
	}
	return count, nil
}

func sortNewestFirst(orders []models.Order) {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

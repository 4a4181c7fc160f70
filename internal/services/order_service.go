package services

import (
	"encoding/json"
	"fmt"
	"log"

	"looped/internal/models"
	"looped/internal/repositories"
)

// OrderItemRequest is one requested line of a new order.
type OrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	audit       *AuditService
	mqClient    Publisher
}

// NewOrderService creates a new OrderService. mqClient may be nil.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, audit *AuditService, mqClient Publisher) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		audit:       audit,
		mqClient:    mqClient,
	}
}

// CreateOrder creates a pending order for userID from the requested items.
// Each item's subtotal snapshots the product price at order time; the order
// total is the sum of subtotals.
//
// The stock decrement is a plain read-modify-write with no compare-and-set:
// two concurrent checkouts of the same last unit can both pass the stock
// check. Known, currently-permitted race.
func (s *OrderService) CreateOrder(userID string, items []OrderItemRequest) (*models.Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("order must contain at least one item")
	}

	var total int64
	var orderItems []models.OrderItem
	var products []*models.Product

	for _, item := range items {
		product, err := s.productRepo.GetByID(item.ProductID, repositories.ActiveOnly)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", item.ProductID, err)
		}
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("quantity for product %s must be positive", product.Name)
		}
		if product.Stock < item.Quantity {
			return nil, fmt.Errorf("product %s (requested: %d, available: %d): %w",
				product.Name, item.Quantity, product.Stock, ErrInsufficientStock)
		}

		subtotal := product.Price * int64(item.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Subtotal:  subtotal,
		})
		total += subtotal
		products = append(products, product)
	}

	newOrder := &models.Order{
		UserID: userID,
		Items:  orderItems,
		Status: models.OrderStatusPending,
		Total:  total,
	}
	if err := s.orderRepo.Create(newOrder); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	// Decrement stock per line, after the order is saved.
	for i, item := range items {
		products[i].Stock -= item.Quantity
		if err := s.productRepo.Update(products[i]); err != nil {
			log.Printf("Warning: Failed to decrement stock for product %s on order %s: %v",
				item.ProductID, newOrder.ID, err)
		}
	}

	// Policy: log-and-continue. The order stands whether or not the trail
	// entry or the broker event make it out.
	if err := s.audit.Record(models.AuditActionCreate, models.AuditEntityOrder, newOrder.ID, userID); err != nil {
		log.Printf("Failed to record audit entry for order %s creation: %v", newOrder.ID, err)
	}

	if s.mqClient != nil {
		message := map[string]interface{}{
			"orderID": newOrder.ID,
			"userID":  newOrder.UserID,
			"status":  newOrder.Status,
			"total":   newOrder.Total,
		}
		body, err := json.Marshal(message)
		if err != nil {
			log.Printf("Failed to marshal order to JSON: %v", err)
		} else if err := s.mqClient.Publish("order", "order.created", body); err != nil {
			log.Printf("Warning: Failed to publish order created event for order %s: %v", newOrder.ID, err)
		}
	}

	return newOrder, nil
}

// GetOrder retrieves a single non-deleted order by its ID.
func (s *OrderService) GetOrder(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id, repositories.ActiveOnly)
}

// ListUserOrders returns the caller's own non-deleted orders, newest first.
func (s *OrderService) ListUserOrders(userID string) ([]models.Order, error) {
	return s.orderRepo.ListByUser(userID)
}

// PageOrders returns one page of non-deleted orders for the admin view,
// newest first, with the total computed under the same predicate.
func (s *OrderService) PageOrders(page, limit int) ([]models.Order, int64, error) {
	return s.orderRepo.Page(page, limit)
}

// UpdateOrderStatus moves an order to a new status within the closed status
// set and records the change on behalf of actorID.
func (s *OrderService) UpdateOrderStatus(id string, status models.OrderStatus, actorID string) error {
	if !models.ValidOrderStatus(status) {
		return fmt.Errorf("%q: %w", status, ErrInvalidStatus)
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}

	if err := s.audit.Record(models.AuditActionUpdate, models.AuditEntityOrder, id, actorID); err != nil {
		log.Printf("Failed to record audit entry for order %s status update: %v", id, err)
	}
	return nil
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderStatus is the closed set of order states.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
)

// ValidOrderStatus reports whether s is one of the known order states.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusCompleted:
		return true
	}
	return false
}

// OrderItem is a single line within an order. Subtotal is the product price at
// order time multiplied by quantity, in minor currency units. Items are owned
// exclusively by their order and are never queried on their own.
type OrderItem struct {
	ID        string   `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string   `json:"order_id" gorm:"type:varchar(36);index"`
	ProductID string   `json:"product_id" gorm:"type:varchar(36)"`
	Product   *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  int      `json:"quantity" validate:"required,gt=0"`
	Subtotal  int64    `json:"subtotal"`
}

// Order represents a buyer purchase. Total equals the sum of its items'
// subtotals at creation time.
type Order struct {
	ID        string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string         `json:"user_id" gorm:"type:varchar(36);index"`
	User      *User          `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Items     []OrderItem    `json:"items" gorm:"foreignKey:OrderID"`
	Status    OrderStatus    `json:"status" gorm:"type:varchar(20)"`
	Total     int64          `json:"total"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

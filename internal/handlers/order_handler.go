package handlers

import (
	"errors"
	"log"

	"looped/internal/middleware"
	"looped/internal/models"
	"looped/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders: the buyer-facing checkout
// and order history, and the admin order views.
type OrderHandler struct {
	service     *services.OrderService
	authService *services.AuthService
	validate    *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService, authService *services.AuthService) *OrderHandler {
	return &OrderHandler{
		service:     service,
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the buyer-facing order routes.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleListOwnOrders)
	orderRoutes.Post("/", h.HandleCreateOrder)
}

// RegisterAdminRoutes registers the administrative order routes.
func (h *OrderHandler) RegisterAdminRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandlePageOrders)
	orderRoutes.Patch("/:id/status", h.HandleUpdateOrderStatus)
}

// CreateOrderRequest represents the request body for checkout.
type CreateOrderRequest struct {
	Items []services.OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// HandleCreateOrder creates a pending order from the caller's items.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)
	if !session.Authenticated() {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create order request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": firstValidationError(err),
		})
	}

	order, err := h.service.CreateOrder(session.UserID, req.Items)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		case errors.Is(err, services.ErrInsufficientStock):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Not enough stock",
			})
		}
		log.Printf("Error creating order for user %s: %v", session.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create order",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleListOwnOrders returns the caller's own orders, newest first.
func (h *OrderHandler) HandleListOwnOrders(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)
	if !session.Authenticated() {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	orders, err := h.service.ListUserOrders(session.UserID)
	if err != nil {
		log.Printf("Error listing orders for user %s: %v", session.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not retrieve orders",
		})
	}
	return c.JSON(fiber.Map{"orders": orders})
}

// HandlePageOrders returns one page of all non-deleted orders with owner and
// line items (SUPERADMIN only).
func (h *OrderHandler) HandlePageOrders(c *fiber.Ctx) error {
	if _, err := requireSuperadmin(c, h.authService); err != nil {
		return err
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 5)

	orders, total, err := h.service.PageOrders(page, limit)
	if err != nil {
		log.Printf("Error paging orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not retrieve orders",
		})
	}
	return c.JSON(fiber.Map{
		"orders": orders,
		"total":  total,
	})
}

// UpdateOrderStatusRequest represents the request body for a status change.
type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}

// HandleUpdateOrderStatus moves an order to a new status (SUPERADMIN only).
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	session, err := requireSuperadmin(c, h.authService)
	if err != nil {
		return err
	}

	var req UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing order status request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Status is required",
		})
	}

	orderID := c.Params("id")
	if err := h.service.UpdateOrderStatus(orderID, req.Status, session.UserID); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Order not found",
			})
		case errors.Is(err, services.ErrInvalidStatus):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid order status",
			})
		}
		log.Printf("Error updating status for order %s: %v", orderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update order status",
		})
	}

	order, err := h.service.GetOrder(orderID)
	if err != nil {
		log.Printf("Error reloading order %s after status update: %v", orderID, err)
		return c.JSON(fiber.Map{"success": true})
	}
	return c.JSON(order)
}

package handlers

import (
	"log"

	"looped/internal/services"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler serves the admin dashboard snapshot.
type DashboardHandler struct {
	service     *services.DashboardService
	authService *services.AuthService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(service *services.DashboardService, authService *services.AuthService) *DashboardHandler {
	return &DashboardHandler{
		service:     service,
		authService: authService,
	}
}

// RegisterAdminRoutes registers the dashboard route.
func (h *DashboardHandler) RegisterAdminRoutes(router fiber.Router) {
	router.Get("/dashboard", h.HandleDashboard)
}

// HandleDashboard returns store-wide counts, the latest orders, and the most
// recent audit entries (SUPERADMIN only).
func (h *DashboardHandler) HandleDashboard(c *fiber.Ctx) error {
	if _, err := requireSuperadmin(c, h.authService); err != nil {
		return err
	}

	summary, err := h.service.Summary()
	if err != nil {
		log.Printf("Error building dashboard summary: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not build dashboard summary",
		})
	}
	return c.JSON(summary)
}

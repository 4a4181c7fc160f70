package handlers

import (
	"log"
	"time"

	"looped/internal/models"
	"looped/internal/repositories"
	"looped/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuditHandler handles HTTP requests for the admin audit trail view.
type AuditHandler struct {
	service     *services.AuditService
	authService *services.AuthService
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(service *services.AuditService, authService *services.AuthService) *AuditHandler {
	return &AuditHandler{
		service:     service,
		authService: authService,
	}
}

// RegisterAdminRoutes registers the audit trail routes.
func (h *AuditHandler) RegisterAdminRoutes(router fiber.Router) {
	router.Get("/audit-logs", h.HandlePageAuditLogs)
}

// HandlePageAuditLogs returns one filtered page of audit entries, newest
// first, together with the total under the same filter (SUPERADMIN only).
// Filters: action, entity, startDate, endDate; any subset, ANDed together.
func (h *AuditHandler) HandlePageAuditLogs(c *fiber.Ctx) error {
	if _, err := requireSuperadmin(c, h.authService); err != nil {
		return err
	}

	filter := repositories.AuditLogFilter{
		Action: models.AuditAction(c.Query("action")),
		Entity: models.AuditEntity(c.Query("entity")),
	}
	if start, ok := parseDateQuery(c.Query("startDate"), false); ok {
		filter.Start = &start
	}
	if end, ok := parseDateQuery(c.Query("endDate"), true); ok {
		filter.End = &end
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 5)

	logs, total, err := h.service.Page(filter, page, limit)
	if err != nil {
		log.Printf("Error paging audit logs: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not retrieve audit logs",
		})
	}
	return c.JSON(fiber.Map{
		"logs":  logs,
		"total": total,
	})
}

// parseDateQuery accepts either an RFC 3339 timestamp or a bare date. Both
// bounds are inclusive, so a bare end date covers the whole day.
func parseDateQuery(value string, endOfDay bool) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, false
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, true
}

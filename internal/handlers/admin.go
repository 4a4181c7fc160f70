package handlers

import (
	"errors"

	"looped/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders uncaught handler errors in the same JSON error shape
// the handlers produce themselves.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

// requireSuperadmin re-derives the caller's session from the Authorization
// header and rejects anything short of SUPERADMIN. The route gate already
// made the same decision; this second, independent check stays so that no
// admin operation is reachable through one layer alone.
func requireSuperadmin(c *fiber.Ctx, authService *services.AuthService) (services.Session, error) {
	session := authService.SessionFromHeader(c.Get("Authorization"))
	if !session.Authenticated() {
		return session, fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}
	if !session.IsSuperadmin() {
		return session, fiber.NewError(fiber.StatusForbidden, "Superadmin access required")
	}
	return session, nil
}

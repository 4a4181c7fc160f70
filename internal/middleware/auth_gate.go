package middleware

import (
	"strings"

	"looped/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RouteClass is the access class of a request path.
type RouteClass int

const (
	RoutePublic RouteClass = iota
	RouteAdmin             // administrative paths, SUPERADMIN only
	RouteOwnerOnly         // requires authentication, e.g. order history
	RouteAuthPages         // sign-in / sign-up
)

// SessionKey is the Locals key under which Gate stores the resolved session.
const SessionKey = "session"

// Classify maps a request path to its access class. Administrative paths and
// order-history paths are covered explicitly; everything else is public.
func Classify(path string) RouteClass {
	switch {
	case strings.HasPrefix(path, "/api/admin") || strings.HasPrefix(path, "/admin"):
		return RouteAdmin
	case strings.HasPrefix(path, "/api/orders") || strings.HasPrefix(path, "/orders"):
		return RouteOwnerOnly
	case strings.HasPrefix(path, "/sign-in") || strings.HasPrefix(path, "/sign-up"):
		return RouteAuthPages
	default:
		return RoutePublic
	}
}

// Gate is the route-level authorization check. It resolves the caller's
// session from the Authorization header and applies the decision table in
// order: anonymous callers are turned away from admin and owner-only routes,
// signed-in callers are sent away from the auth pages, and admin routes
// require the SUPERADMIN role. API paths get JSON statuses, page paths get
// redirects.
//
// Admin mutating handlers repeat the same decision internally from the same
// credential. Keep both layers: neither alone is sufficient on purpose.
func Gate(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		class := Classify(c.Path())
		session := authService.SessionFromHeader(c.Get("Authorization"))
		isAPI := strings.HasPrefix(c.Path(), "/api/")

		switch {
		case !session.Authenticated() && (class == RouteAdmin || class == RouteOwnerOnly):
			if isAPI {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Authentication required",
				})
			}
			return c.Redirect("/sign-in")

		case session.Authenticated() && class == RouteAuthPages:
			return c.Redirect("/")

		case class == RouteAdmin && !session.IsSuperadmin():
			if isAPI {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
					"error": "Superadmin access required",
				})
			}
			return c.Redirect("/")
		}

		c.Locals(SessionKey, session)
		return c.Next()
	}
}

// SessionFromCtx returns the session Gate stored on the request context, or
// Anonymous when the gate has not run.
func SessionFromCtx(c *fiber.Ctx) services.Session {
	if session, ok := c.Locals(SessionKey).(services.Session); ok {
		return session
	}
	return services.Anonymous
}

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"looped/internal/middleware"
	"looped/internal/models"
	"looped/internal/repositories"
	"looped/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		path string
		want middleware.RouteClass
	}{
		{"/api/admin/products", middleware.RouteAdmin},
		{"/api/admin/audit-logs", middleware.RouteAdmin},
		{"/admin", middleware.RouteAdmin},
		{"/admin/products/123", middleware.RouteAdmin},
		{"/api/orders", middleware.RouteOwnerOnly},
		{"/orders", middleware.RouteOwnerOnly},
		{"/sign-in", middleware.RouteAuthPages},
		{"/sign-up", middleware.RouteAuthPages},
		{"/", middleware.RoutePublic},
		{"/api/products", middleware.RoutePublic},
		{"/api/products/123", middleware.RoutePublic},
		{"/api/auth/register", middleware.RoutePublic},
		{"/health", middleware.RoutePublic},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, middleware.Classify(tc.path), "path %s", tc.path)
	}
}

// setupGateApp builds a Fiber app with the route gate in front of stub routes
// and returns tokens for a buyer and the superadmin.
func setupGateApp(t *testing.T) (*fiber.App, string, string) {
	t.Helper()

	userRepo := repositories.NewMockUserRepository()
	auditService := services.NewAuditService(repositories.NewMockAuditLogRepository(), nil)
	authService := services.NewAuthService(userRepo, auditService, "test-secret")

	for _, u := range []models.User{
		{ID: "admin-1", Email: "admin@looped.com", Name: "Admin User", Role: models.RoleSuperadmin},
		{ID: "buyer-1", Email: "buyer@looped.com", Name: "Sample Buyer", Role: models.RoleBuyer},
	} {
		hashed, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
		assert.NoError(t, err)
		u.Password = string(hashed)
		assert.NoError(t, userRepo.Create(&u))
	}

	app := fiber.New()
	app.Use(middleware.Gate(authService))
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }
	app.Get("/api/admin/products", ok)
	app.Post("/api/admin/products", ok)
	app.Get("/api/orders", ok)
	app.Get("/api/products", ok)
	app.Get("/sign-in", ok)
	app.Get("/orders", ok)

	adminToken, err := authService.LoginUser("admin@looped.com", "secret1")
	assert.NoError(t, err)
	buyerToken, err := authService.LoginUser("buyer@looped.com", "secret1")
	assert.NoError(t, err)
	return app, adminToken, buyerToken
}

func doGet(t *testing.T, app *fiber.App, method, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	return resp
}

func TestGate_AnonymousRejectedFromProtectedRoutes(t *testing.T) {
	app, _, _ := setupGateApp(t)

	// API paths answer with 401.
	resp := doGet(t, app, http.MethodGet, "/api/admin/products", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp = doGet(t, app, http.MethodGet, "/api/orders", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Page paths redirect to sign-in.
	resp = doGet(t, app, http.MethodGet, "/orders", "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/sign-in", resp.Header.Get("Location"))
}

func TestGate_BuyerRejectedFromAdminRoutes(t *testing.T) {
	app, _, buyerToken := setupGateApp(t)

	resp := doGet(t, app, http.MethodGet, "/api/admin/products", buyerToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = doGet(t, app, http.MethodPost, "/api/admin/products", buyerToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestGate_BuyerAllowedOnOwnerOnlyRoutes(t *testing.T) {
	app, _, buyerToken := setupGateApp(t)

	resp := doGet(t, app, http.MethodGet, "/api/orders", buyerToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGate_SuperadminAllowedOnAdminRoutes(t *testing.T) {
	app, adminToken, _ := setupGateApp(t)

	resp := doGet(t, app, http.MethodGet, "/api/admin/products", adminToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGate_AuthenticatedRedirectedAwayFromAuthPages(t *testing.T) {
	app, _, buyerToken := setupGateApp(t)

	resp := doGet(t, app, http.MethodGet, "/sign-in", buyerToken)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	// Anonymous visitors still reach the sign-in page.
	resp = doGet(t, app, http.MethodGet, "/sign-in", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGate_PublicRoutesOpenToEveryone(t *testing.T) {
	app, adminToken, buyerToken := setupGateApp(t)

	for _, token := range []string{"", buyerToken, adminToken} {
		resp := doGet(t, app, http.MethodGet, "/api/products", token)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
}

func TestGate_GarbageTokenIsAnonymous(t *testing.T) {
	app, _, _ := setupGateApp(t)

	resp := doGet(t, app, http.MethodGet, "/api/admin/products", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

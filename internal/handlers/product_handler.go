package handlers

import (
	"errors"
	"log"
	"math"

	"looped/internal/models"
	"looped/internal/repositories"
	"looped/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the catalog: public reads and the
// superadmin-only admin mutations.
type ProductHandler struct {
	service     *services.ProductService
	authService *services.AuthService
	validate    *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, authService *services.AuthService) *ProductHandler {
	return &ProductHandler{
		service:     service,
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterPublicRoutes registers the public catalog routes.
func (h *ProductHandler) RegisterPublicRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
}

// RegisterAdminRoutes registers the administrative product routes.
func (h *ProductHandler) RegisterAdminRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Patch("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleListProducts returns a catalog page. Soft-deleted products are never
// included.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	params := repositories.ProductListParams{
		Category: c.Query("category"),
		Sort:     c.Query("sort", "newest"),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("pageSize", 12),
	}

	products, total, err := h.service.ListProducts(params)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not retrieve products",
		})
	}

	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = 12
	}
	return c.JSON(fiber.Map{
		"products": products,
		"pagination": fiber.Map{
			"currentPage":   params.Page,
			"totalPages":    int(math.Ceil(float64(total) / float64(pageSize))),
			"totalProducts": total,
		},
	})
}

// HandleGetProductByID retrieves a single non-deleted product.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	productID := c.Params("id")
	product, err := h.service.GetProduct(productID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		}
		log.Printf("Error getting product by ID %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not retrieve product",
		})
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product (SUPERADMIN only).
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	session, err := requireSuperadmin(c, h.authService)
	if err != nil {
		return err
	}

	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing create product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	product.ID = ""

	if err := h.validate.Struct(product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": firstValidationError(err),
		})
	}

	if err := h.service.CreateProduct(&product, session.UserID); err != nil {
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create product",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct applies a partial update to a product (SUPERADMIN only).
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	session, err := requireSuperadmin(c, h.authService)
	if err != nil {
		return err
	}

	var patch services.ProductPatch
	if err := c.BodyParser(&patch); err != nil {
		log.Printf("Error parsing update product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.validate.Struct(patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": firstValidationError(err),
		})
	}

	productID := c.Params("id")
	product, err := h.service.UpdateProduct(productID, patch, session.UserID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		}
		log.Printf("Error updating product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update product",
		})
	}
	return c.JSON(product)
}

// HandleDeleteProduct soft-deletes a product and returns the deleted
// representation (SUPERADMIN only).
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	session, err := requireSuperadmin(c, h.authService)
	if err != nil {
		return err
	}

	productID := c.Params("id")
	product, err := h.service.DeleteProduct(productID, session.UserID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		}
		log.Printf("Error deleting product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete product",
		})
	}
	return c.JSON(product)
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/rogenecarl/inventory-pos/internal/middleware"
	"github.com/rogenecarl/inventory-pos/internal/model"
	"github.com/rogenecarl/inventory-pos/internal/tenant"
	"github.com/rogenecarl/inventory-pos/pkg/logger"
	"github.com/rogenecarl/inventory-pos/prometheus"
)

// CategoryRequest defines the structure for category creation/update requests
type CategoryRequest struct {
	Name string `json:"name"`
}

// CategoryStore provides scoped category persistence.
type CategoryStore interface {
	List(tenant.Context) ([]model.Category, error)
	Create(tenant.Context, string) (*model.Category, error)
	Update(tenant.Context, uint, string) (*model.Category, error)
	Delete(tenant.Context, uint) error
}

// CategoryHandler serves scoped category CRUD.
type CategoryHandler struct {
	categories CategoryStore
}

func NewCategoryHandler(s CategoryStore) *CategoryHandler {
	return &CategoryHandler{categories: s}
}

// ListCategories retrieves the store's categories
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordCategoryOperation("list")

	tc, ok := middleware.TenantFromEcho(c)
	if !ok {
		log.Error("Missing tenant context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	categories, err := h.categories.List(tc)
	if err != nil {
		return writeError(c, log, err)
	}

	log.Info("Categories retrieved", zap.Int("count", len(categories)))
	return c.JSON(http.StatusOK, categories)
}

// CreateCategory adds a new category to the store
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordCategoryOperation("create")

	tc, ok := middleware.TenantFromEcho(c)
	if !ok {
		log.Error("Missing tenant context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	category, err := h.categories.Create(tc, req.Name)
	if err != nil {
		return writeError(c, log, err)
	}

	log.Info("Category created",
		zap.Uint("category_id", category.ID),
		zap.String("name", category.Name))
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory replaces a category's name
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordCategoryOperation("update")

	tc, ok := middleware.TenantFromEcho(c)
	if !ok {
		log.Error("Missing tenant context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid category ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category ID"})
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	category, err := h.categories.Update(tc, uint(id), req.Name)
	if err != nil {
		return writeError(c, log, err)
	}

	log.Info("Category updated",
		zap.Uint("category_id", category.ID),
		zap.String("name", category.Name))
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory removes a category; products keep existing with a
// cleared category_id
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordCategoryOperation("delete")

	tc, ok := middleware.TenantFromEcho(c)
	if !ok {
		log.Error("Missing tenant context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid category ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category ID"})
	}

	if err := h.categories.Delete(tc, uint(id)); err != nil {
		return writeError(c, log, err)
	}

	log.Info("Category deleted", zap.Uint64("category_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Category deleted successfully"})
}

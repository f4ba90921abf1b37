package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/rogenecarl/inventory-pos/internal/catalog"
	"github.com/rogenecarl/inventory-pos/internal/middleware"
	"github.com/rogenecarl/inventory-pos/internal/model"
	"github.com/rogenecarl/inventory-pos/internal/tenant"
	"github.com/rogenecarl/inventory-pos/pkg/logger"
	"github.com/rogenecarl/inventory-pos/prometheus"
)

// ProductStore provides scoped product persistence.
type ProductStore interface {
	List(tenant.Context, catalog.ProductFilters) ([]model.Product, int64, error)
	Get(tenant.Context, uint) (*model.Product, error)
	Create(tenant.Context, catalog.ProductInput) (*model.Product, error)
	Update(tenant.Context, uint, catalog.ProductInput) (*model.Product, error)
	Delete(tenant.Context, uint) error
}

// StockAdjuster applies relative stock changes through the ledger.
type StockAdjuster interface {
	AdjustStock(tc tenant.Context, productID uint, delta int) (*model.Product, error)
}

// AdjustStockRequest carries the relative stock change. Negative values
// remove stock, positive values add it.
type AdjustStockRequest struct {
	Adjustment int `json:"adjustment"`
}

// ProductHandler serves scoped product CRUD and stock adjustment.
type ProductHandler struct {
	products ProductStore
	ledger   StockAdjuster
}

func NewProductHandler(s ProductStore, l StockAdjuster) *ProductHandler {
	return &ProductHandler{products: s, ledger: l}
}

// ListProducts retrieves one page of the store's products with optional
// search and category filters
func (h *ProductHandler) ListProducts(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordProductOperation("list")

	tc, ok := middleware.TenantFromEcho(c)
	if !ok {
		log.Error("Missing tenant context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	filters := catalog.ProductFilters{Search: c.QueryParam("search")}
	if raw := c.QueryParam("category"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			log.Warn("Invalid category filter", zap.String("value", raw), zap.Error(err))
		} else {
			categoryID := uint(id)
			filters.CategoryID = &categoryID
		}
	}
	if raw := c.QueryParam("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil {
			filters.Page = page
		}
	}

	products, total, err := h.products.List(tc, filters)
	if err != nil {
		return writeError(c, log, err)
	}

	log.Info("Products retrieved",
		zap.Int("count", len(products)),
		zap.Int64("total", total))
	return c.JSON(http.StatusOK, echo.Map{
		"data":     products,
		"total":    total,
		"page":     filters.Page,
		"per_page": catalog.PageSize,
	})
}

// GetProduct retrieves a single product by ID
func (h *ProductHandler) GetProduct(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordProductOperation("get")

	tc, ok := middleware.TenantFromEcho(c)
	if !ok {
		log.Error("Missing tenant context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid product ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product ID"})
	}

	product, err := h.products.Get(tc, uint(id))
	if err != nil {
		return writeError(c, log, err)
	}

	return c.JSON(http.StatusOK, product)
}

// CreateProduct adds a new product to the store's catalog
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordProductOperation("create")

	tc, ok := middleware.TenantFromEcho(c)
	if !ok {
		log.Error("Missing tenant context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req catalog.ProductInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	product, err := h.products.Create(tc, req)
	if err != nil {
		return writeError(c, log, err)
	}

	log.Info("Product created",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name))
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct replaces the writable fields of an existing product
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordProductOperation("update")

	tc, ok := middleware.TenantFromEcho(c)
	if !ok {
		log.Error("Missing tenant context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid product ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product ID"})
	}

	var req catalog.ProductInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	product, err := h.products.Update(tc, uint(id), req)
	if err != nil {
		return writeError(c, log, err)
	}

	log.Info("Product updated",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name))
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a product from the catalog
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordProductOperation("delete")

	tc, ok := middleware.TenantFromEcho(c)
	if !ok {
		log.Error("Missing tenant context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid product ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product ID"})
	}

	if err := h.products.Delete(tc, uint(id)); err != nil {
		return writeError(c, log, err)
	}

	log.Info("Product deleted", zap.Uint64("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted successfully"})
}

// AdjustStock applies a relative stock change to a product. The ledger
// rejects any adjustment that would drive stock below zero.
func (h *ProductHandler) AdjustStock(c echo.Context) error {
	log := logger.FromEcho(c)

	tc, ok := middleware.TenantFromEcho(c)
	if !ok {
		log.Error("Missing tenant context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid product ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product ID"})
	}

	var req AdjustStockRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	product, err := h.ledger.AdjustStock(tc, uint(id), req.Adjustment)
	if err != nil {
		prometheus.RecordStockAdjustment("rejected")
		return writeError(c, log, err)
	}

	prometheus.RecordStockAdjustment("applied")
	log.Info("Stock adjusted",
		zap.Uint("product_id", product.ID),
		zap.Int("adjustment", req.Adjustment),
		zap.Int("stock_quantity", product.StockQuantity))
	return c.JSON(http.StatusOK, product)
}

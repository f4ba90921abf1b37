package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/rogenecarl/inventory-pos/internal/middleware"
	"github.com/rogenecarl/inventory-pos/internal/model"
	"github.com/rogenecarl/inventory-pos/internal/sales"
	"github.com/rogenecarl/inventory-pos/internal/tenant"
	"github.com/rogenecarl/inventory-pos/pkg/logger"
	"github.com/rogenecarl/inventory-pos/prometheus"
)

const (
	defaultSalesLimit = 20
	maxSalesLimit     = 100
)

// SaleRecorder persists and lists POS transactions.
type SaleRecorder interface {
	Record(tenant.Context, sales.RecordInput) (*model.Sale, error)
	Recent(tenant.Context, int) ([]model.Sale, error)
}

// SaleHandler serves sale recording and listing.
type SaleHandler struct {
	sales SaleRecorder
}

func NewSaleHandler(s SaleRecorder) *SaleHandler {
	return &SaleHandler{sales: s}
}

// ListSales retrieves the store's most recent sales, newest first
func (h *SaleHandler) ListSales(c echo.Context) error {
	log := logger.FromEcho(c)

	tc, ok := middleware.TenantFromEcho(c)
	if !ok {
		log.Error("Missing tenant context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	limit := defaultSalesLimit
	if raw := c.QueryParam("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > maxSalesLimit {
		limit = maxSalesLimit
	}

	recent, err := h.sales.Recent(tc, limit)
	if err != nil {
		return writeError(c, log, err)
	}

	log.Info("Sales retrieved", zap.Int("count", len(recent)))
	return c.JSON(http.StatusOK, recent)
}

// RecordSale persists a completed sale with its line items and the
// matching stock decrements
func (h *SaleHandler) RecordSale(c echo.Context) error {
	log := logger.FromEcho(c)

	tc, ok := middleware.TenantFromEcho(c)
	if !ok {
		log.Error("Missing tenant context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req sales.RecordInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	sale, err := h.sales.Record(tc, req)
	if err != nil {
		return writeError(c, log, err)
	}

	prometheus.SalesRecordedCounter.Inc()
	log.Info("Sale recorded",
		zap.Uint("sale_id", sale.ID),
		zap.String("invoice_number", sale.InvoiceNumber),
		zap.String("total_amount", sale.TotalAmount.String()),
		zap.Int("items", len(sale.SaleItems)))
	return c.JSON(http.StatusCreated, sale)
}

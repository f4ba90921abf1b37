package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rogenecarl/inventory-pos/internal/middleware"
	"github.com/rogenecarl/inventory-pos/internal/reporting"
	"github.com/rogenecarl/inventory-pos/internal/tenant"
	"github.com/rogenecarl/inventory-pos/pkg/logger"
)

// DashboardSource aggregates per-store dashboard figures.
type DashboardSource interface {
	Summarize(tenant.Context) (*reporting.Summary, error)
}

// DashboardHandler serves the aggregated store summary.
type DashboardHandler struct {
	reports DashboardSource
}

func NewDashboardHandler(r DashboardSource) *DashboardHandler {
	return &DashboardHandler{reports: r}
}

// Dashboard retrieves today's totals, the low-stock list and the most
// recent sales for the acting user's store
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	log := logger.FromEcho(c)

	tc, ok := middleware.TenantFromEcho(c)
	if !ok {
		log.Error("Missing tenant context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	summary, err := h.reports.Summarize(tc)
	if err != nil {
		return writeError(c, log, err)
	}

	return c.JSON(http.StatusOK, summary)
}

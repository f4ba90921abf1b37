package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health reports service liveness
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// POSTerminal is a placeholder for the POS terminal view
func POSTerminal(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "POS terminal not implemented yet"})
}

// StoreSettings is a placeholder for the store settings view
func StoreSettings(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "Store settings not implemented yet"})
}

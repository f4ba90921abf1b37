package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/rogenecarl/inventory-pos/internal/apperr"
)

// writeError maps domain errors onto HTTP responses. Validation-level
// failures return field-scoped messages the way the original forms
// expect them; everything unrecognized is a 500.
func writeError(c echo.Context, log *zap.Logger, err error) error {
	var nf *apperr.NotFoundError
	var ia *apperr.InvalidAdjustmentError
	var ctr *apperr.CrossTenantReferenceError
	var ve *apperr.ValidationError

	switch {
	case errors.Is(err, apperr.ErrNoStoreContext):
		log.Warn("Operation without store context", zap.Error(err))
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no store associated with this account"})
	case errors.As(err, &nf):
		return c.JSON(http.StatusNotFound, echo.Map{"error": nf.Entity + " not found"})
	case errors.As(err, &ia):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"errors": map[string]string{"adjustment": "Stock cannot be negative."},
		})
	case errors.As(err, &ctr):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"errors": map[string]string{ctr.Field: "The selected " + ctr.Entity + " is invalid."},
		})
	case errors.As(err, &ve):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"errors": ve.Fields})
	default:
		log.Error("Unhandled error", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
}

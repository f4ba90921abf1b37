package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/rogenecarl/inventory-pos/internal/tenant"
	"github.com/rogenecarl/inventory-pos/pkg/jwtutil"
	"github.com/rogenecarl/inventory-pos/pkg/logger"
)

const tenantContextKey = "tenant_context"

// AuthMiddleware validates the JWT token and builds the tenant context
// the data layer requires. A valid token without a store is rejected
// here; the scope guard enforces the same rule again below the HTTP
// layer.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromEcho(c)

		// Get the Authorization header
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Warn("Missing Authorization header")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
		}

		// Check if it's a Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Warn("Invalid Authorization header format")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
		}

		// Validate the token
		claims, err := jwtutil.ValidateToken(parts[1])
		if err != nil {
			log.Error("Invalid JWT token", zap.Error(err))
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}

		if claims.StoreID == nil {
			log.Warn("JWT token does not contain store_id",
				zap.Uint("user_id", claims.UserID))
			return c.JSON(http.StatusForbidden, echo.Map{"error": "no store associated with this account"})
		}

		SetTenant(c, tenant.Context{
			UserID:  claims.UserID,
			StoreID: claims.StoreID,
			Role:    claims.Role,
		})
		log.Debug("Request authenticated with store context",
			zap.Uint("user_id", claims.UserID),
			zap.Uint("store_id", *claims.StoreID),
			zap.String("role", claims.Role))

		return next(c)
	}
}

// SetTenant stores the tenant context on the request.
func SetTenant(c echo.Context, tc tenant.Context) {
	c.Set(tenantContextKey, tc)
}

// TenantFromEcho retrieves the tenant context set by AuthMiddleware.
func TenantFromEcho(c echo.Context) (tenant.Context, bool) {
	tc, ok := c.Get(tenantContextKey).(tenant.Context)
	return tc, ok
}

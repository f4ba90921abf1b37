package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/rogenecarl/inventory-pos/internal/model"
	"github.com/rogenecarl/inventory-pos/internal/registry"
	"github.com/rogenecarl/inventory-pos/pkg/jwtutil"
	"github.com/rogenecarl/inventory-pos/pkg/logger"
	"github.com/rogenecarl/inventory-pos/prometheus"
)

// Registrar creates a store together with its owner user.
type Registrar interface {
	Register(registry.RegisterInput) (*model.User, error)
}

// RegisterHandler serves store signup.
type RegisterHandler struct {
	registry Registrar
}

func NewRegisterHandler(r Registrar) *RegisterHandler {
	return &RegisterHandler{registry: r}
}

// Register handles POST /register: store plus owner in one transaction,
// returning the new user and a token carrying the store context.
func (h *RegisterHandler) Register(c echo.Context) error {
	log := logger.FromEcho(c)

	var req registry.RegisterInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid registration request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	user, err := h.registry.Register(req)
	if err != nil {
		return writeError(c, log, err)
	}

	token, err := jwtutil.GenerateToken(user.Email, user.ID, user.StoreID, user.Store.Name, user.Role)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	prometheus.RegistrationsCounter.Inc()
	log.Info("Store registered",
		zap.Uint("user_id", user.ID),
		zap.Uint("store_id", *user.StoreID),
		zap.String("slug", user.Store.Slug))

	return c.JSON(http.StatusCreated, echo.Map{
		"user":  user,
		"token": token,
	})
}

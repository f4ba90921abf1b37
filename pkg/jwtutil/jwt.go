package jwtutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rogenecarl/inventory-pos/pkg/config"
)

var cfg *config.JWTConfig

// UserClaims represents the JWT claims for user authentication. StoreID
// carries the tenant context; a token without it cannot touch
// store-owned data.
type UserClaims struct {
	Email     string `json:"email"`
	UserID    uint   `json:"user_id"`
	StoreID   *uint  `json:"store_id,omitempty"`
	StoreName string `json:"store_name,omitempty"`
	Role      string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Initialize sets the JWT configuration
func Initialize(jwtConfig *config.JWTConfig) {
	cfg = jwtConfig
}

// GenerateToken creates a JWT token with user and store information
func GenerateToken(email string, userID uint, storeID *uint, storeName string, role string) (string, error) {
	if cfg == nil {
		return "", errors.New("JWT configuration not provided")
	}

	claims := UserClaims{
		Email:     email,
		UserID:    userID,
		StoreID:   storeID,
		StoreName: storeName,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(cfg.ExpirationHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.SigningKey))
}

// ValidateToken validates and parses the JWT token
func ValidateToken(tokenString string) (*UserClaims, error) {
	if cfg == nil {
		return nil, errors.New("JWT configuration not provided")
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&UserClaims{},
		func(token *jwt.Token) (interface{}, error) {
			// Validate the signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(cfg.SigningKey), nil
		},
	)
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

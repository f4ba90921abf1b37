package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Store is the tenant root. Every Category, Product and Sale belongs to
// exactly one store, and all scoped queries filter on store_id.
type Store struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	Name      string          `json:"name" gorm:"type:varchar(255);not null"`
	Slug      string          `json:"slug" gorm:"type:varchar(255);uniqueIndex;not null"`
	Address   string          `json:"address" gorm:"type:text"`
	Phone     string          `json:"phone" gorm:"type:varchar(50)"`
	Currency  string          `json:"currency" gorm:"type:varchar(3);not null;default:'USD'"`
	TaxRate   decimal.Decimal `json:"tax_rate" gorm:"type:decimal(5,2);not null;default:0"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents an item in a store's catalog. StockQuantity is only
// mutated through the inventory ledger, which keeps it non-negative.
type Product struct {
	ID                uint            `json:"id" gorm:"primaryKey"`
	StoreID           uint            `json:"store_id" gorm:"index;not null"`
	CategoryID        *uint           `json:"category_id" gorm:"index"`
	Category          *Category       `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Name              string          `json:"name" gorm:"type:varchar(255);not null"`
	SKU               *string         `json:"sku" gorm:"type:varchar(100)"`
	Barcode           *string         `json:"barcode" gorm:"type:varchar(100)"`
	CostPrice         decimal.Decimal `json:"cost_price" gorm:"type:decimal(10,2);not null;default:0"`
	SellingPrice      decimal.Decimal `json:"selling_price" gorm:"type:decimal(10,2);not null;default:0"`
	StockQuantity     int             `json:"stock_quantity" gorm:"not null;default:0"`
	LowStockThreshold int             `json:"low_stock_threshold" gorm:"not null;default:10"`
	IsActive          bool            `json:"is_active" gorm:"not null;default:true"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is a completed POS transaction. InvoiceNumber is unique per store
// in the form INV-YYYYMMDD-####. Money invariants:
// TotalAmount = Subtotal + TaxAmount, ChangeAmount = PaidAmount - TotalAmount >= 0.
type Sale struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	StoreID       uint            `json:"store_id" gorm:"not null;uniqueIndex:idx_sales_store_invoice"`
	UserID        uint            `json:"user_id" gorm:"index;not null"`
	InvoiceNumber string          `json:"invoice_number" gorm:"type:varchar(50);not null;uniqueIndex:idx_sales_store_invoice"`
	Subtotal      decimal.Decimal `json:"subtotal" gorm:"type:decimal(10,2);not null"`
	TaxAmount     decimal.Decimal `json:"tax_amount" gorm:"type:decimal(10,2);not null"`
	TotalAmount   decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	PaidAmount    decimal.Decimal `json:"paid_amount" gorm:"type:decimal(10,2);not null"`
	ChangeAmount  decimal.Decimal `json:"change_amount" gorm:"type:decimal(10,2);not null"`
	Status        string          `json:"status" gorm:"type:varchar(20);not null;default:'completed'"`
	SaleItems     []SaleItem      `json:"sale_items,omitempty" gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// SaleItem is a line on a sale. ProductName and UnitPrice are snapshots
// taken at sale time so the line survives product rename or deletion.
type SaleItem struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	SaleID      uint            `json:"sale_id" gorm:"index;not null"`
	ProductID   uint            `json:"product_id" gorm:"index;not null"`
	ProductName string          `json:"product_name" gorm:"type:varchar(255);not null"`
	Quantity    int             `json:"quantity" gorm:"not null"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	TotalPrice  decimal.Decimal `json:"total_price" gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Package inventory is the only sanctioned path for changing a
// product's stock quantity. Adjustments are expressed as a single
// conditional UPDATE so concurrent requests can neither lose updates
// nor drive the quantity negative.
package inventory

import (
	"errors"

	"gorm.io/gorm"

	"github.com/rogenecarl/inventory-pos/internal/apperr"
	"github.com/rogenecarl/inventory-pos/internal/model"
	"github.com/rogenecarl/inventory-pos/internal/tenant"
)

// Ledger mutates and classifies product stock within one store's scope.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// ApplyDelta performs the atomic stock mutation:
//
//	UPDATE products SET stock_quantity = stock_quantity + delta
//	WHERE id = ? AND store_id = ? AND stock_quantity + delta >= 0
//
// It reports the number of rows changed; zero means the product is
// missing, foreign, or the adjustment would go negative. Callers that
// need to distinguish those cases re-read the row afterwards. The sale
// recorder shares this to decrement stock inside its own transaction.
func ApplyDelta(tx *gorm.DB, storeID, productID uint, delta int) (int64, error) {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND store_id = ? AND stock_quantity + ? >= 0", productID, storeID, delta).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", delta))
	return res.RowsAffected, res.Error
}

// AdjustStock applies a positive (restock) or negative (shrinkage)
// delta to a product's stock and returns the updated product. A delta
// that would go below zero fails with InvalidAdjustmentError and leaves
// the stored value untouched. Zero is a no-op that still succeeds.
func (l *Ledger) AdjustStock(tc tenant.Context, productID uint, delta int) (*model.Product, error) {
	storeID, err := tc.RequireStore()
	if err != nil {
		return nil, err
	}

	affected, err := ApplyDelta(l.db, storeID, productID, delta)
	if err != nil {
		return nil, err
	}

	var product model.Product
	if err := l.db.Where("id = ? AND store_id = ?", productID, storeID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product", productID)
		}
		return nil, err
	}

	if affected == 0 && delta != 0 {
		return nil, &apperr.InvalidAdjustmentError{ProductID: productID, Delta: delta}
	}
	return &product, nil
}

// IsLowStock reports the low-stock condition: an active product whose
// quantity is at or below its threshold. The boundary is inclusive.
func IsLowStock(p model.Product) bool {
	return p.IsActive && p.StockQuantity <= p.LowStockThreshold
}

// ListLowStock returns active low-stock products ordered by name
// ascending, capped at limit.
func (l *Ledger) ListLowStock(tc tenant.Context, limit int) ([]model.Product, error) {
	scoped, err := tenant.Scoped(l.db.Model(&model.Product{}), tc)
	if err != nil {
		return nil, err
	}

	var products []model.Product
	err = scoped.
		Where("is_active = ?", true).
		Where("stock_quantity <= low_stock_threshold").
		Order("name asc").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// CountLowStock counts active low-stock products in the store.
func (l *Ledger) CountLowStock(tc tenant.Context) (int64, error) {
	scoped, err := tenant.Scoped(l.db.Model(&model.Product{}), tc)
	if err != nil {
		return 0, err
	}

	var count int64
	err = scoped.
		Where("is_active = ?", true).
		Where("stock_quantity <= low_stock_threshold").
		Count(&count).Error
	return count, err
}

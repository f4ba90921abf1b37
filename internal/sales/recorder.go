// Package sales persists POS transactions. A sale and its lines are
// written in one transaction together with the stock decrements, so a
// failed line leaves no partial mutation behind.
package sales

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rogenecarl/inventory-pos/internal/apperr"
	"github.com/rogenecarl/inventory-pos/internal/inventory"
	"github.com/rogenecarl/inventory-pos/internal/model"
	"github.com/rogenecarl/inventory-pos/internal/tenant"
)

var oneHundred = decimal.NewFromInt(100)

// Recorder writes sales within one store's scope.
type Recorder struct {
	db  *gorm.DB
	now func() time.Time
}

func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db, now: time.Now}
}

// ItemInput is one requested sale line.
type ItemInput struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// RecordInput is the payload for recording a sale.
type RecordInput struct {
	Items      []ItemInput     `json:"items"`
	PaidAmount decimal.Decimal `json:"paid_amount"`
}

func (in RecordInput) validate() error {
	fields := map[string]string{}
	if len(in.Items) == 0 {
		fields["items"] = "At least one item is required."
	}
	for i, item := range in.Items {
		if item.Quantity <= 0 {
			fields[fmt.Sprintf("items.%d.quantity", i)] = "Quantity must be at least 1."
		}
	}
	if in.PaidAmount.IsNegative() {
		fields["paid_amount"] = "Paid amount must be at least 0."
	}
	if len(fields) > 0 {
		return apperr.Validation(fields)
	}
	return nil
}

// Record persists the sale, its item snapshots and the stock decrements
// in a single transaction. Prices and names are copied from the product
// rows at sale time, tax comes from the store's tax rate, and the
// invoice number is derived per store and day.
func (r *Recorder) Record(tc tenant.Context, in RecordInput) (*model.Sale, error) {
	storeID, err := tc.RequireStore()
	if err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	var sale *model.Sale
	err = r.db.Transaction(func(tx *gorm.DB) error {
		var store model.Store
		if err := tx.First(&store, storeID).Error; err != nil {
			return err
		}

		items := make([]model.SaleItem, 0, len(in.Items))
		subtotal := decimal.Zero
		for _, line := range in.Items {
			var product model.Product
			err := tx.Where("id = ? AND store_id = ?", line.ProductID, storeID).First(&product).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFound("product", line.ProductID)
				}
				return err
			}

			affected, err := inventory.ApplyDelta(tx, storeID, line.ProductID, -line.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return &apperr.InvalidAdjustmentError{ProductID: line.ProductID, Delta: -line.Quantity}
			}

			lineTotal := product.SellingPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
			items = append(items, model.SaleItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    line.Quantity,
				UnitPrice:   product.SellingPrice,
				TotalPrice:  lineTotal,
			})
			subtotal = subtotal.Add(lineTotal)
		}

		tax := subtotal.Mul(store.TaxRate).Div(oneHundred).Round(2)
		total := subtotal.Add(tax)
		change := in.PaidAmount.Sub(total)
		if change.IsNegative() {
			return apperr.Validation(map[string]string{
				"paid_amount": "Paid amount must cover the total.",
			})
		}

		invoice, err := nextInvoiceNumber(tx, storeID, r.now())
		if err != nil {
			return err
		}

		sale = &model.Sale{
			StoreID:       storeID,
			UserID:        tc.UserID,
			InvoiceNumber: invoice,
			Subtotal:      subtotal.Round(2),
			TaxAmount:     tax,
			TotalAmount:   total.Round(2),
			PaidAmount:    in.PaidAmount.Round(2),
			ChangeAmount:  change.Round(2),
			Status:        "completed",
			SaleItems:     items,
		}
		return tx.Create(sale).Error
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// Recent returns the store's latest sales with their items, newest
// first, capped at limit.
func (r *Recorder) Recent(tc tenant.Context, limit int) ([]model.Sale, error) {
	scoped, err := tenant.Scoped(r.db, tc)
	if err != nil {
		return nil, err
	}

	var recent []model.Sale
	err = scoped.Preload("SaleItems").
		Order("created_at desc").
		Limit(limit).
		Find(&recent).Error
	if err != nil {
		return nil, err
	}
	return recent, nil
}

// FormatInvoiceNumber renders the per-store invoice identity for a
// given day and sequence, e.g. INV-20260830-0007.
func FormatInvoiceNumber(t time.Time, seq int) string {
	return fmt.Sprintf("INV-%s-%04d", t.Format("20060102"), seq)
}

// nextInvoiceNumber counts the store's sales for the current day inside
// the enclosing transaction and takes the next slot. The per-store
// unique index on invoice_number backs the count under concurrency.
func nextInvoiceNumber(tx *gorm.DB, storeID uint, now time.Time) (string, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var count int64
	err := tx.Model(&model.Sale{}).
		Where("store_id = ? AND created_at >= ?", storeID, dayStart).
		Count(&count).Error
	if err != nil {
		return "", err
	}
	return FormatInvoiceNumber(now, int(count)+1), nil
}

package sales

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rogenecarl/inventory-pos/internal/apperr"
	"github.com/rogenecarl/inventory-pos/internal/tenant"
)

func TestFormatInvoiceNumber(t *testing.T) {
	day := time.Date(2026, time.August, 30, 14, 5, 0, 0, time.UTC)

	assert.Equal(t, "INV-20260830-0001", FormatInvoiceNumber(day, 1))
	assert.Equal(t, "INV-20260830-0042", FormatInvoiceNumber(day, 42))
	assert.Equal(t, "INV-20260830-9999", FormatInvoiceNumber(day, 9999))
}

func TestRecordRequiresStoreContext(t *testing.T) {
	r := NewRecorder(nil)

	_, err := r.Record(tenant.Context{UserID: 1}, RecordInput{
		Items:      []ItemInput{{ProductID: 1, Quantity: 1}},
		PaidAmount: decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, apperr.ErrNoStoreContext)
}

func TestRecordValidation(t *testing.T) {
	// Validation runs before the transaction opens, so a nil DB is safe.
	r := NewRecorder(nil)
	storeID := uint(1)
	tc := tenant.Context{UserID: 1, StoreID: &storeID, Role: "owner"}

	testCases := []struct {
		name  string
		input RecordInput
		field string
	}{
		{
			name:  "no items",
			input: RecordInput{PaidAmount: decimal.NewFromInt(10)},
			field: "items",
		},
		{
			name: "zero quantity line",
			input: RecordInput{
				Items:      []ItemInput{{ProductID: 3, Quantity: 0}},
				PaidAmount: decimal.NewFromInt(10),
			},
			field: "items.0.quantity",
		},
		{
			name: "negative paid amount",
			input: RecordInput{
				Items:      []ItemInput{{ProductID: 3, Quantity: 1}},
				PaidAmount: decimal.NewFromInt(-1),
			},
			field: "paid_amount",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := r.Record(tc, testCase.input)

			var ve *apperr.ValidationError
			assert.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields, testCase.field)
		})
	}
}

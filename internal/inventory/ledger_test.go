package inventory

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rogenecarl/inventory-pos/internal/apperr"
	"github.com/rogenecarl/inventory-pos/internal/model"
	"github.com/rogenecarl/inventory-pos/internal/tenant"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Store{},
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Sale{},
		&model.SaleItem{},
	))
	return db
}

func TestIsLowStock(t *testing.T) {
	testCases := []struct {
		name      string
		stock     int
		threshold int
		active    bool
		want      bool
	}{
		{"below threshold", 5, 10, true, true},
		{"at threshold boundary", 10, 10, true, true},
		{"above threshold", 11, 10, true, false},
		{"inactive product with zero stock", 0, 10, false, false},
		{"zero stock zero threshold", 0, 0, true, true},
		{"well stocked", 100, 10, true, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := model.Product{
				StockQuantity:     tc.stock,
				LowStockThreshold: tc.threshold,
				IsActive:          tc.active,
			}
			assert.Equal(t, tc.want, IsLowStock(p))
		})
	}
}

func TestAdjustStock(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)

	storeID := uint(1)
	tc := tenant.Context{UserID: 1, StoreID: &storeID, Role: "owner"}

	product := &model.Product{
		StoreID:           storeID,
		Name:              "Cola",
		StockQuantity:     10,
		LowStockThreshold: 10,
		IsActive:          true,
	}
	require.NoError(t, db.Create(product).Error)

	t.Run("rejects a delta that would go negative and keeps the stored value", func(t *testing.T) {
		_, err := ledger.AdjustStock(tc, product.ID, -15)

		var ia *apperr.InvalidAdjustmentError
		require.ErrorAs(t, err, &ia)

		var reloaded model.Product
		require.NoError(t, db.First(&reloaded, product.ID).Error)
		assert.Equal(t, 10, reloaded.StockQuantity)
	})

	t.Run("round-trips a restock and the matching shrinkage", func(t *testing.T) {
		up, err := ledger.AdjustStock(tc, product.ID, 7)
		require.NoError(t, err)
		assert.Equal(t, 17, up.StockQuantity)

		down, err := ledger.AdjustStock(tc, product.ID, -7)
		require.NoError(t, err)
		assert.Equal(t, 10, down.StockQuantity)
	})

	t.Run("drains exactly to zero and reports low stock", func(t *testing.T) {
		drained, err := ledger.AdjustStock(tc, product.ID, -10)
		require.NoError(t, err)
		assert.Equal(t, 0, drained.StockQuantity)
		assert.True(t, IsLowStock(*drained))

		low, err := ledger.ListLowStock(tc, 5)
		require.NoError(t, err)
		require.Len(t, low, 1)
		assert.Equal(t, product.ID, low[0].ID)
	})

	t.Run("zero delta is a successful no-op", func(t *testing.T) {
		unchanged, err := ledger.AdjustStock(tc, product.ID, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, unchanged.StockQuantity)
	})

	t.Run("treats another store's product as absent", func(t *testing.T) {
		otherStore := uint(2)
		foreign := tenant.Context{UserID: 2, StoreID: &otherStore, Role: "owner"}

		_, err := ledger.AdjustStock(foreign, product.ID, 1)

		var nf *apperr.NotFoundError
		require.ErrorAs(t, err, &nf)

		var reloaded model.Product
		require.NoError(t, db.First(&reloaded, product.ID).Error)
		assert.Equal(t, 0, reloaded.StockQuantity)
	})
}

func TestAdjustStockRequiresStoreContext(t *testing.T) {
	ledger := NewLedger(nil)

	_, err := ledger.AdjustStock(tenant.Context{UserID: 1}, 1, 5)
	assert.ErrorIs(t, err, apperr.ErrNoStoreContext)
}

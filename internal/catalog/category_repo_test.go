package catalog

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

func TestCategoryDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)

	storeID := uint(1)
	tc := tenant.Context{UserID: 1, StoreID: &storeID, Role: "owner"}

	category := &model.Category{StoreID: storeID, Name: "Drinks"}
	require.NoError(t, db.Create(category).Error)
	foreignCategory := &model.Category{StoreID: 2, Name: "Drinks"}
	require.NoError(t, db.Create(foreignCategory).Error)

	product := &model.Product{StoreID: storeID, CategoryID: &category.ID, Name: "Cola", IsActive: true}
	require.NoError(t, db.Create(product).Error)
	foreignProduct := &model.Product{StoreID: 2, CategoryID: &foreignCategory.ID, Name: "Cola", IsActive: true}
	require.NoError(t, db.Create(foreignProduct).Error)

	t.Run("treats another store's category as absent", func(t *testing.T) {
		err := repo.Delete(tc, foreignCategory.ID)

		var nf *apperr.NotFoundError
		require.ErrorAs(t, err, &nf)
	})

	t.Run("nullifies references on the store's products", func(t *testing.T) {
		require.NoError(t, repo.Delete(tc, category.ID))

		var reloaded model.Product
		require.NoError(t, db.First(&reloaded, product.ID).Error)
		assert.Nil(t, reloaded.CategoryID)

		// The other store's product keeps its category.
		var untouched model.Product
		require.NoError(t, db.First(&untouched, foreignProduct.ID).Error)
		require.NotNil(t, untouched.CategoryID)
		assert.Equal(t, foreignCategory.ID, *untouched.CategoryID)
	})

	t.Run("deleting the same category twice reports absence", func(t *testing.T) {
		err := repo.Delete(tc, category.ID)

		var nf *apperr.NotFoundError
		require.ErrorAs(t, err, &nf)
	})
}

// Package catalog implements store-scoped CRUD over categories and
// products. Every method takes an explicit tenant.Context; the store
// predicate is attached through tenant.Scoped so no query can escape
// its tenant.
package catalog

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/rogenecarl/inventory-pos/internal/apperr"
	"github.com/rogenecarl/inventory-pos/internal/model"
	"github.com/rogenecarl/inventory-pos/internal/tenant"
)

// CategoryRepository provides scoped category CRUD.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// List returns the store's categories ordered by name ascending.
func (r *CategoryRepository) List(tc tenant.Context) ([]model.Category, error) {
	scoped, err := tenant.Scoped(r.db, tc)
	if err != nil {
		return nil, err
	}

	var categories []model.Category
	if err := scoped.Order("name asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Get returns one category, treating foreign rows as absent.
func (r *CategoryRepository) Get(tc tenant.Context, id uint) (*model.Category, error) {
	scoped, err := tenant.Scoped(r.db, tc)
	if err != nil {
		return nil, err
	}

	var category model.Category
	if err := scoped.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("category", id)
		}
		return nil, err
	}
	return &category, nil
}

// Create stamps the acting user's store on the new category. Name
// uniqueness is deliberately not enforced.
func (r *CategoryRepository) Create(tc tenant.Context, name string) (*model.Category, error) {
	storeID, err := tc.RequireStore()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Validation(map[string]string{"name": "Category name is required."})
	}

	category := &model.Category{StoreID: storeID, Name: name}
	if err := r.db.Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// Update replaces the category name. StoreID is immutable.
func (r *CategoryRepository) Update(tc tenant.Context, id uint, name string) (*model.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Validation(map[string]string{"name": "Category name is required."})
	}

	category, err := r.Get(tc, id)
	if err != nil {
		return nil, err
	}

	category.Name = name
	if err := r.db.Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// Delete physically removes the category and nullifies category_id on
// the store's products in the same transaction, so no product is left
// referencing a deleted row. References are cleared before the row is
// removed so the foreign key never sees a dangling state.
func (r *CategoryRepository) Delete(tc tenant.Context, id uint) error {
	storeID, err := tc.RequireStore()
	if err != nil {
		return err
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Product{}).
			Where("category_id = ? AND store_id = ?", id, storeID).
			Update("category_id", nil).Error
		if err != nil {
			return err
		}

		res := tx.Where("id = ? AND store_id = ?", id, storeID).Delete(&model.Category{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("category", id)
		}
		return nil
	})
}

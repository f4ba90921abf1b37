package catalog

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rogenecarl/inventory-pos/internal/apperr"
	"github.com/rogenecarl/inventory-pos/internal/model"
	"github.com/rogenecarl/inventory-pos/internal/tenant"
)

// PageSize is the fixed product listing page size.
const PageSize = 15

// ProductInput carries the writable product fields for create/update.
type ProductInput struct {
	CategoryID        *uint           `json:"category_id"`
	Name              string          `json:"name"`
	SKU               *string         `json:"sku"`
	Barcode           *string         `json:"barcode"`
	CostPrice         decimal.Decimal `json:"cost_price"`
	SellingPrice      decimal.Decimal `json:"selling_price"`
	StockQuantity     int             `json:"stock_quantity"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	IsActive          bool            `json:"is_active"`
}

func (in ProductInput) validate() error {
	fields := map[string]string{}
	if in.Name == "" {
		fields["name"] = "Product name is required."
	}
	if in.CostPrice.IsNegative() {
		fields["cost_price"] = "Cost price must be at least 0."
	}
	if in.SellingPrice.IsNegative() {
		fields["selling_price"] = "Selling price must be at least 0."
	}
	if in.StockQuantity < 0 {
		fields["stock_quantity"] = "Stock quantity must be at least 0."
	}
	if in.LowStockThreshold < 0 {
		fields["low_stock_threshold"] = "Low stock threshold must be at least 0."
	}
	if len(fields) > 0 {
		return apperr.Validation(fields)
	}
	return nil
}

// ProductFilters narrows product listings. Search matches name, sku or
// barcode by case-insensitive substring.
type ProductFilters struct {
	Search     string
	CategoryID *uint
	Page       int
}

// ProductRepository provides scoped product CRUD.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// List returns one page of the store's products ordered by name
// ascending, plus the total row count for the filter.
func (r *ProductRepository) List(tc tenant.Context, filters ProductFilters) ([]model.Product, int64, error) {
	scoped, err := tenant.Scoped(r.db.Model(&model.Product{}), tc)
	if err != nil {
		return nil, 0, err
	}

	if filters.Search != "" {
		term := "%" + filters.Search + "%"
		scoped = scoped.Where("name ILIKE ? OR sku ILIKE ? OR barcode ILIKE ?", term, term, term)
	}
	if filters.CategoryID != nil {
		scoped = scoped.Where("category_id = ?", *filters.CategoryID)
	}

	var total int64
	if err := scoped.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filters.Page
	if page < 1 {
		page = 1
	}

	var products []model.Product
	err = scoped.Preload("Category").
		Order("name asc").
		Offset((page - 1) * PageSize).
		Limit(PageSize).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Get returns one product, treating foreign rows as absent.
func (r *ProductRepository) Get(tc tenant.Context, id uint) (*model.Product, error) {
	scoped, err := tenant.Scoped(r.db, tc)
	if err != nil {
		return nil, err
	}

	var product model.Product
	if err := scoped.Preload("Category").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product", id)
		}
		return nil, err
	}
	return &product, nil
}

// Create validates the input, verifies any category reference stays
// inside the tenant, stamps the store and persists the product.
func (r *ProductRepository) Create(tc tenant.Context, in ProductInput) (*model.Product, error) {
	storeID, err := tc.RequireStore()
	if err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := r.checkCategory(storeID, in.CategoryID); err != nil {
		return nil, err
	}

	product := &model.Product{
		StoreID:           storeID,
		CategoryID:        in.CategoryID,
		Name:              in.Name,
		SKU:               in.SKU,
		Barcode:           in.Barcode,
		CostPrice:         in.CostPrice,
		SellingPrice:      in.SellingPrice,
		StockQuantity:     in.StockQuantity,
		LowStockThreshold: in.LowStockThreshold,
		IsActive:          in.IsActive,
	}
	if err := r.db.Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Update replaces the writable fields of an existing product. StoreID
// is immutable; stock changes here follow the same validation as
// create, while relative adjustments go through the inventory ledger.
func (r *ProductRepository) Update(tc tenant.Context, id uint, in ProductInput) (*model.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	product, err := r.Get(tc, id)
	if err != nil {
		return nil, err
	}
	if err := r.checkCategory(product.StoreID, in.CategoryID); err != nil {
		return nil, err
	}

	product.CategoryID = in.CategoryID
	product.Category = nil
	product.Name = in.Name
	product.SKU = in.SKU
	product.Barcode = in.Barcode
	product.CostPrice = in.CostPrice
	product.SellingPrice = in.SellingPrice
	product.StockQuantity = in.StockQuantity
	product.LowStockThreshold = in.LowStockThreshold
	product.IsActive = in.IsActive

	if err := r.db.Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Delete physically removes the product.
func (r *ProductRepository) Delete(tc tenant.Context, id uint) error {
	storeID, err := tc.RequireStore()
	if err != nil {
		return err
	}

	res := r.db.Where("id = ? AND store_id = ?", id, storeID).Delete(&model.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("product", id)
	}
	return nil
}

// checkCategory rejects a category_id owned by another store. The FK
// constraint cannot express the tenant match, so it is enforced here.
func (r *ProductRepository) checkCategory(storeID uint, categoryID *uint) error {
	if categoryID == nil {
		return nil
	}

	var count int64
	err := r.db.Model(&model.Category{}).
		Where("id = ? AND store_id = ?", *categoryID, storeID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return &apperr.CrossTenantReferenceError{Field: "category_id", Entity: "category", ID: *categoryID}
	}
	return nil
}

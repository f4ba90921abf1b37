// Package reporting derives the dashboard figures from the same scoped
// data the catalog and ledger operate on.
package reporting

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rogenecarl/inventory-pos/internal/inventory"
	"github.com/rogenecarl/inventory-pos/internal/model"
	"github.com/rogenecarl/inventory-pos/internal/tenant"
)

const (
	lowStockLimit    = 5
	recentSalesLimit = 5
)

// Reporter aggregates per-store dashboard figures.
type Reporter struct {
	db     *gorm.DB
	ledger *inventory.Ledger
	now    func() time.Time
}

func NewReporter(db *gorm.DB, ledger *inventory.Ledger) *Reporter {
	return &Reporter{db: db, ledger: ledger, now: time.Now}
}

// LowStockEntry is the dashboard's low-stock row.
type LowStockEntry struct {
	ID                uint   `json:"id"`
	Name              string `json:"name"`
	StockQuantity     int    `json:"stock_quantity"`
	LowStockThreshold int    `json:"low_stock_threshold"`
}

// RecentSale is the dashboard's recent-sale row.
type RecentSale struct {
	ID            uint            `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	ItemsCount    int             `json:"items_count"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Summary is the aggregated dashboard payload.
type Summary struct {
	TodaySales        decimal.Decimal `json:"today_sales"`
	TodayTransactions int64           `json:"today_transactions"`
	TotalProducts     int64           `json:"total_products"`
	LowStockCount     int64           `json:"low_stock_count"`
	LowStockProducts  []LowStockEntry `json:"low_stock_products"`
	RecentSales       []RecentSale    `json:"recent_sales"`
}

// Summarize computes today's revenue and transaction count, the active
// product count, the low-stock list and the latest sales for the acting
// user's store.
func (r *Reporter) Summarize(tc tenant.Context) (*Summary, error) {
	storeID, err := tc.RequireStore()
	if err != nil {
		return nil, err
	}

	now := r.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	summary := &Summary{TodaySales: decimal.Zero}

	var todaySales *string
	err = r.db.Model(&model.Sale{}).
		Where("store_id = ? AND created_at >= ?", storeID, dayStart).
		Select("SUM(total_amount)").
		Row().Scan(&todaySales)
	if err != nil {
		return nil, err
	}
	if todaySales != nil {
		sum, err := decimal.NewFromString(*todaySales)
		if err != nil {
			return nil, err
		}
		summary.TodaySales = sum
	}

	err = r.db.Model(&model.Sale{}).
		Where("store_id = ? AND created_at >= ?", storeID, dayStart).
		Count(&summary.TodayTransactions).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Model(&model.Product{}).
		Where("store_id = ? AND is_active = ?", storeID, true).
		Count(&summary.TotalProducts).Error
	if err != nil {
		return nil, err
	}

	if summary.LowStockCount, err = r.ledger.CountLowStock(tc); err != nil {
		return nil, err
	}

	lowStock, err := r.ledger.ListLowStock(tc, lowStockLimit)
	if err != nil {
		return nil, err
	}
	summary.LowStockProducts = make([]LowStockEntry, 0, len(lowStock))
	for _, p := range lowStock {
		summary.LowStockProducts = append(summary.LowStockProducts, LowStockEntry{
			ID:                p.ID,
			Name:              p.Name,
			StockQuantity:     p.StockQuantity,
			LowStockThreshold: p.LowStockThreshold,
		})
	}

	var recent []model.Sale
	err = r.db.Preload("SaleItems").
		Where("store_id = ?", storeID).
		Order("created_at desc").
		Limit(recentSalesLimit).
		Find(&recent).Error
	if err != nil {
		return nil, err
	}
	summary.RecentSales = make([]RecentSale, 0, len(recent))
	for _, s := range recent {
		summary.RecentSales = append(summary.RecentSales, RecentSale{
			ID:            s.ID,
			InvoiceNumber: s.InvoiceNumber,
			TotalAmount:   s.TotalAmount,
			ItemsCount:    len(s.SaleItems),
			CreatedAt:     s.CreatedAt,
		})
	}

	return summary, nil
}

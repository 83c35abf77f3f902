package handler

import (
	"net/http"
	"testing"

	"inventory-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLowStockReport(t *testing.T) {
	db := setupTestDB(t)

	category := model.Category{Name: "Disposables"}
	require.NoError(t, db.Create(&category).Error)
	supplier := model.Supplier{Name: "DentSupply Co"}
	require.NoError(t, db.Create(&supplier).Error)

	createTestItem(t, map[string]interface{}{
		"item_name":           "Gauze",
		"unit":                "box",
		"quantity_in_stock":   5,
		"minimum_stock_level": 10,
		"reorder_quantity":    20,
		"category_id":         category.ID,
		"supplier_id":         supplier.ID,
	})
	createTestItem(t, map[string]interface{}{
		"item_name":           "Gloves",
		"unit":                "box",
		"quantity_in_stock":   50,
		"minimum_stock_level": 20,
	})

	c, rec := newContext(t, http.MethodGet, "/api/reports/low-stock", nil)
	require.NoError(t, LowStockReport(c))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report []model.LowStockItem
	decode(t, rec, &report)
	require.Len(t, report, 1)

	row := report[0]
	assert.Equal(t, "Gauze", row.ItemName)
	assert.Equal(t, 5, row.QuantityInStock)
	assert.Equal(t, 10, row.MinimumStockLevel)
	assert.Equal(t, 20, row.ReorderQuantity)
	require.NotNil(t, row.CategoryName)
	assert.Equal(t, "Disposables", *row.CategoryName)
	require.NotNil(t, row.SupplierName)
	assert.Equal(t, "DentSupply Co", *row.SupplierName)
	assert.Nil(t, row.BrandName)
	assert.Nil(t, row.StorageLocation)
}

func TestLowStockReportDanglingReference(t *testing.T) {
	db := setupTestDB(t)

	category := model.Category{Name: "Disposables"}
	require.NoError(t, db.Create(&category).Error)

	createTestItem(t, map[string]interface{}{
		"item_name":           "Gauze",
		"unit":                "box",
		"quantity_in_stock":   0,
		"minimum_stock_level": 10,
		"category_id":         category.ID,
	})

	require.NoError(t, db.Delete(&model.Category{}, "id = ?", category.ID).Error)

	c, rec := newContext(t, http.MethodGet, "/api/reports/low-stock", nil)
	require.NoError(t, LowStockReport(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var report []model.LowStockItem
	decode(t, rec, &report)
	require.Len(t, report, 1)

	// The dangling category resolves to no name, not an error
	assert.Nil(t, report[0].CategoryName)
}

func TestDashboardStats(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Create(&model.Category{Name: "Disposables"}).Error)
	require.NoError(t, db.Create(&model.Supplier{Name: "DentSupply Co"}).Error)

	createTestItem(t, map[string]interface{}{
		"item_name":           "Gauze",
		"unit":                "box",
		"quantity_in_stock":   5,
		"minimum_stock_level": 10,
	})
	createTestItem(t, map[string]interface{}{
		"item_name":           "Gloves",
		"unit":                "box",
		"quantity_in_stock":   50,
		"minimum_stock_level": 20,
	})

	for i := 0; i < 7; i++ {
		tx := model.StockTransaction{TransactionType: model.TransactionIn, Quantity: i + 1}
		require.NoError(t, db.Create(&tx).Error)
	}

	c, rec := newContext(t, http.MethodGet, "/api/dashboard/stats", nil)
	require.NoError(t, DashboardStatsHandler(c))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var stats DashboardStats
	decode(t, rec, &stats)
	assert.Equal(t, int64(2), stats.TotalItems)
	assert.Equal(t, 1, stats.LowStockItems)
	assert.Equal(t, int64(1), stats.Categories)
	assert.Equal(t, int64(1), stats.Suppliers)
	assert.Len(t, stats.RecentTransactions, 5)
}

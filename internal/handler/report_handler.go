package handler

import (
	"net/http"
	"time"

	"inventory-service/internal/model"
	"inventory-service/internal/stock"
	"inventory-service/pkg/database"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// DashboardStats is the payload for the dashboard overview
type DashboardStats struct {
	TotalItems         int64                    `json:"total_items"`
	LowStockItems      int                      `json:"low_stock_items"`
	Categories         int64                    `json:"categories"`
	Suppliers          int64                    `json:"suppliers"`
	RecentTransactions []model.StockTransaction `json:"recent_transactions"`
}

// lowStockProjection builds the denormalized report row for an item whose
// associations have been preloaded. Unset or dangling references project
// to nil names.
func lowStockProjection(item model.Item) model.LowStockItem {
	row := model.LowStockItem{
		ID:                item.ID,
		ItemName:          item.ItemName,
		QuantityInStock:   item.QuantityInStock,
		MinimumStockLevel: item.MinimumStockLevel,
		ReorderQuantity:   item.ReorderQuantity,
		ExpiryDate:        item.ExpiryDate,
	}
	if item.Category != nil {
		row.CategoryName = &item.Category.Name
	}
	if item.Brand != nil {
		row.BrandName = &item.Brand.Name
	}
	if item.Supplier != nil {
		row.SupplierName = &item.Supplier.Name
	}
	if item.StorageLocation != nil {
		row.StorageLocation = &item.StorageLocation.Name
	}
	return row
}

// LowStockReport returns every item currently at or below its minimum stock
// level as a denormalized projection. The report is recomputed from the item
// table on each request; it is never stored.
func LowStockReport(c echo.Context) error {
	log := logger.FromContext(c)

	var items []model.Item
	defer prometheus.TrackDBOperation("select_low_stock")(time.Now())
	result := itemQuery().Find(&items)
	if result.Error != nil {
		log.Error("Failed to load items for low-stock report", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": result.Error.Error(),
		})
	}

	low := stock.Filter{Stock: stock.ModeLow}.Apply(items)
	report := make([]model.LowStockItem, 0, len(low))
	for _, item := range low {
		report = append(report, lowStockProjection(item))
	}

	prometheus.UpdateLowStockCount(float64(len(report)))
	log.Info("Low-stock report generated",
		zap.Int("total_items", len(items)),
		zap.Int("low_stock_items", len(report)))
	return c.JSON(http.StatusOK, report)
}

// DashboardStatsHandler returns the counters and recent activity shown on
// the dashboard.
func DashboardStatsHandler(c echo.Context) error {
	log := logger.FromContext(c)
	db := database.GetDB()

	var items []model.Item
	defer prometheus.TrackDBOperation("select_dashboard")(time.Now())
	if result := db.Find(&items); result.Error != nil {
		log.Error("Failed to load items for dashboard", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": result.Error.Error(),
		})
	}

	lowStock := 0
	for _, item := range items {
		if stock.ClassifyItem(item) == stock.StatusLow {
			lowStock++
		}
	}

	var categories, suppliers int64
	if result := db.Model(&model.Category{}).Count(&categories); result.Error != nil {
		log.Error("Failed to count categories", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": result.Error.Error(),
		})
	}
	if result := db.Model(&model.Supplier{}).Count(&suppliers); result.Error != nil {
		log.Error("Failed to count suppliers", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": result.Error.Error(),
		})
	}

	var recent []model.StockTransaction
	if result := db.Order("transaction_date DESC").Limit(5).Find(&recent); result.Error != nil {
		log.Error("Failed to load recent transactions", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": result.Error.Error(),
		})
	}

	prometheus.UpdateLowStockCount(float64(lowStock))

	stats := DashboardStats{
		TotalItems:         int64(len(items)),
		LowStockItems:      lowStock,
		Categories:         categories,
		Suppliers:          suppliers,
		RecentTransactions: recent,
	}

	return c.JSON(http.StatusOK, stats)
}

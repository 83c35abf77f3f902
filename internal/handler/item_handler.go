package handler

import (
	"errors"
	"net/http"
	"time"

	"inventory-service/internal/model"
	"inventory-service/internal/stock"
	"inventory-service/pkg/database"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// ItemRequest defines the structure for item creation requests. Foreign keys
// and dates arrive as strings from the form; empty strings mean "no value"
// and are normalized to NULL before they reach the store.
type ItemRequest struct {
	ItemName          string  `json:"item_name"`
	CategoryID        *string `json:"category_id"`
	BrandID           *string `json:"brand_id"`
	TypeDescription   *string `json:"type_description"`
	QuantityInStock   int     `json:"quantity_in_stock"`
	Unit              string  `json:"unit"`
	MinimumStockLevel int     `json:"minimum_stock_level"`
	ReorderQuantity   int     `json:"reorder_quantity"`
	SupplierID        *string `json:"supplier_id"`
	StorageLocationID *string `json:"storage_location_id"`
	PurchaseDate      *string `json:"purchase_date"`
	ExpiryDate        *string `json:"expiry_date"`
	Notes             *string `json:"notes"`
}

// ItemUpdateRequest carries a partial update; only non-nil fields are
// written. A present-but-empty foreign key or date clears the column.
type ItemUpdateRequest struct {
	ItemName          *string `json:"item_name"`
	CategoryID        *string `json:"category_id"`
	BrandID           *string `json:"brand_id"`
	TypeDescription   *string `json:"type_description"`
	QuantityInStock   *int    `json:"quantity_in_stock"`
	Unit              *string `json:"unit"`
	MinimumStockLevel *int    `json:"minimum_stock_level"`
	ReorderQuantity   *int    `json:"reorder_quantity"`
	SupplierID        *string `json:"supplier_id"`
	StorageLocationID *string `json:"storage_location_id"`
	PurchaseDate      *string `json:"purchase_date"`
	ExpiryDate        *string `json:"expiry_date"`
	Notes             *string `json:"notes"`
}

// normalizeRef maps an absent or empty-string foreign key to nil. An empty
// string is not a valid identifier and must not be persisted as one.
func normalizeRef(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// parseDate maps an absent or empty-string date to nil and parses the rest
// as YYYY-MM-DD.
func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func itemQuery() *gorm.DB {
	return database.GetDB().
		Preload("Category").
		Preload("Brand").
		Preload("Supplier").
		Preload("StorageLocation")
}

// ListItems retrieves all items with their associations preloaded. With no
// query parameters it returns every row in storage order; the optional q,
// category_id, storage_location_id and stock parameters narrow the fetched
// collection in memory.
func ListItems(c echo.Context) error {
	log := logger.FromContext(c)

	var items []model.Item
	defer prometheus.TrackDBOperation("select_items")(time.Now())
	result := itemQuery().Find(&items)
	if result.Error != nil {
		log.Error("Failed to list items", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": result.Error.Error(),
		})
	}

	filter := stock.Filter{
		Query:      c.QueryParam("q"),
		CategoryID: c.QueryParam("category_id"),
		LocationID: c.QueryParam("storage_location_id"),
		Stock:      stock.ParseMode(c.QueryParam("stock")),
	}
	if !filter.IsZero() {
		items = filter.Apply(items)
		log.Info("Items filtered",
			zap.String("query", filter.Query),
			zap.String("category_id", filter.CategoryID),
			zap.String("storage_location_id", filter.LocationID),
			zap.String("stock", string(filter.Stock)),
			zap.Int("count", len(items)))
	}

	log.Info("Items retrieved", zap.Int("count", len(items)))
	return c.JSON(http.StatusOK, items)
}

// GetItem retrieves a single item by ID with its associations preloaded
func GetItem(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var item model.Item
	result := itemQuery().Where("id = ?", id).First(&item)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn("Item not found", zap.String("item_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "item not found",
			})
		}
		log.Error("Failed to get item", zap.String("item_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": result.Error.Error(),
		})
	}

	return c.JSON(http.StatusOK, item)
}

// CreateItem adds a new inventory item
func CreateItem(c echo.Context) error {
	log := logger.FromContext(c)

	var req ItemRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid request data",
		})
	}

	purchaseDate, err := parseDate(req.PurchaseDate)
	if err != nil {
		log.Warn("Invalid purchase_date", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "purchase_date must be YYYY-MM-DD",
		})
	}
	expiryDate, err := parseDate(req.ExpiryDate)
	if err != nil {
		log.Warn("Invalid expiry_date", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "expiry_date must be YYYY-MM-DD",
		})
	}

	item := model.Item{
		ItemName:          req.ItemName,
		CategoryID:        normalizeRef(req.CategoryID),
		BrandID:           normalizeRef(req.BrandID),
		TypeDescription:   req.TypeDescription,
		QuantityInStock:   req.QuantityInStock,
		Unit:              req.Unit,
		MinimumStockLevel: req.MinimumStockLevel,
		ReorderQuantity:   req.ReorderQuantity,
		SupplierID:        normalizeRef(req.SupplierID),
		StorageLocationID: normalizeRef(req.StorageLocationID),
		PurchaseDate:      purchaseDate,
		ExpiryDate:        expiryDate,
		Notes:             req.Notes,
	}

	defer prometheus.TrackDBOperation("insert_item")(time.Now())
	result := database.GetDB().Create(&item)
	if result.Error != nil {
		log.Error("Failed to create item", zap.String("item_name", req.ItemName), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": result.Error.Error(),
		})
	}

	prometheus.RecordEntityOperation("item", "create")
	prometheus.UpdateItemStock(item.ID, item.ItemName, float64(item.QuantityInStock))
	log.Info("Item created",
		zap.String("item_id", item.ID),
		zap.String("item_name", item.ItemName),
		zap.Int("quantity_in_stock", item.QuantityInStock))
	return c.JSON(http.StatusCreated, item)
}

// UpdateItem overwrites the provided fields of an existing item. Absent
// fields are left untouched; empty-string foreign keys and dates clear
// their columns.
func UpdateItem(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req ItemUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("item_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid request data",
		})
	}

	var item model.Item
	result := database.GetDB().Where("id = ?", id).First(&item)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn("Item not found for update", zap.String("item_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "item not found",
			})
		}
		log.Error("Failed to load item", zap.String("item_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": result.Error.Error(),
		})
	}

	updates := map[string]interface{}{}
	if req.ItemName != nil {
		updates["item_name"] = *req.ItemName
	}
	if req.CategoryID != nil {
		updates["category_id"] = normalizeRef(req.CategoryID)
	}
	if req.BrandID != nil {
		updates["brand_id"] = normalizeRef(req.BrandID)
	}
	if req.TypeDescription != nil {
		updates["type_description"] = req.TypeDescription
	}
	if req.QuantityInStock != nil {
		updates["quantity_in_stock"] = *req.QuantityInStock
	}
	if req.Unit != nil {
		updates["unit"] = *req.Unit
	}
	if req.MinimumStockLevel != nil {
		updates["minimum_stock_level"] = *req.MinimumStockLevel
	}
	if req.ReorderQuantity != nil {
		updates["reorder_quantity"] = *req.ReorderQuantity
	}
	if req.SupplierID != nil {
		updates["supplier_id"] = normalizeRef(req.SupplierID)
	}
	if req.StorageLocationID != nil {
		updates["storage_location_id"] = normalizeRef(req.StorageLocationID)
	}
	if req.PurchaseDate != nil {
		purchaseDate, err := parseDate(req.PurchaseDate)
		if err != nil {
			log.Warn("Invalid purchase_date", zap.String("item_id", id), zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "purchase_date must be YYYY-MM-DD",
			})
		}
		updates["purchase_date"] = purchaseDate
	}
	if req.ExpiryDate != nil {
		expiryDate, err := parseDate(req.ExpiryDate)
		if err != nil {
			log.Warn("Invalid expiry_date", zap.String("item_id", id), zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "expiry_date must be YYYY-MM-DD",
			})
		}
		updates["expiry_date"] = expiryDate
	}
	if req.Notes != nil {
		updates["notes"] = req.Notes
	}

	if len(updates) > 0 {
		defer prometheus.TrackDBOperation("update_item")(time.Now())
		result = database.GetDB().Model(&item).Updates(updates)
		if result.Error != nil {
			log.Error("Failed to update item", zap.String("item_id", id), zap.Error(result.Error))
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": result.Error.Error(),
			})
		}
		// Re-read with associations so the response matches GetItem
		itemQuery().Where("id = ?", id).First(&item)
	}

	prometheus.RecordEntityOperation("item", "update")
	prometheus.UpdateItemStock(item.ID, item.ItemName, float64(item.QuantityInStock))
	log.Info("Item updated",
		zap.String("item_id", id),
		zap.String("item_name", item.ItemName),
		zap.Int("quantity_in_stock", item.QuantityInStock))
	return c.JSON(http.StatusOK, item)
}

// DeleteItem removes an item unconditionally
func DeleteItem(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	defer prometheus.TrackDBOperation("delete_item")(time.Now())
	result := database.GetDB().Delete(&model.Item{}, "id = ?", id)
	if result.Error != nil {
		log.Error("Failed to delete item", zap.String("item_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": result.Error.Error(),
		})
	}

	if result.RowsAffected == 0 {
		log.Warn("Item not found for deletion", zap.String("item_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "item not found",
		})
	}

	prometheus.RecordEntityOperation("item", "delete")
	log.Info("Item deleted", zap.String("item_id", id))
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

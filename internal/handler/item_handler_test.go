package handler

import (
	"net/http"
	"testing"

	"inventory-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestItem(t *testing.T, payload map[string]interface{}) model.Item {
	t.Helper()

	c, rec := newContext(t, http.MethodPost, "/api/items", payload)
	require.NoError(t, CreateItem(c))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var item model.Item
	decode(t, rec, &item)
	return item
}

func TestCreateItemNormalizesEmptyStrings(t *testing.T) {
	setupTestDB(t)

	item := createTestItem(t, map[string]interface{}{
		"item_name":           "Gauze",
		"unit":                "box",
		"quantity_in_stock":   5,
		"minimum_stock_level": 10,
		"category_id":         "",
		"brand_id":            "",
		"supplier_id":         "",
		"storage_location_id": "",
		"purchase_date":       "",
		"expiry_date":         "",
	})

	assert.NotEmpty(t, item.ID)
	assert.Nil(t, item.CategoryID)
	assert.Nil(t, item.BrandID)
	assert.Nil(t, item.SupplierID)
	assert.Nil(t, item.StorageLocationID)
	assert.Nil(t, item.PurchaseDate)
	assert.Nil(t, item.ExpiryDate)
}

func TestCreateItemRejectsBadDate(t *testing.T) {
	setupTestDB(t)

	c, rec := newContext(t, http.MethodPost, "/api/items", map[string]interface{}{
		"item_name":   "Gauze",
		"unit":        "box",
		"expiry_date": "not-a-date",
	})
	require.NoError(t, CreateItem(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestItemRoundTrip(t *testing.T) {
	setupTestDB(t)

	created := createTestItem(t, map[string]interface{}{
		"item_name":           "Composite Resin",
		"unit":                "syringe",
		"quantity_in_stock":   8,
		"minimum_stock_level": 3,
		"reorder_quantity":    6,
		"type_description":    "A2 shade",
		"expiry_date":         "2027-06-30",
	})

	c, rec := newContext(t, http.MethodGet, "/api/items/"+created.ID, nil)
	c.SetParamNames("id")
	c.SetParamValues(created.ID)
	require.NoError(t, GetItem(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got model.Item
	decode(t, rec, &got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Composite Resin", got.ItemName)
	assert.Equal(t, "syringe", got.Unit)
	assert.Equal(t, 8, got.QuantityInStock)
	assert.Equal(t, 3, got.MinimumStockLevel)
	assert.Equal(t, 6, got.ReorderQuantity)
	require.NotNil(t, got.TypeDescription)
	assert.Equal(t, "A2 shade", *got.TypeDescription)
	require.NotNil(t, got.ExpiryDate)
	assert.Equal(t, "2027-06-30", got.ExpiryDate.Format("2006-01-02"))
}

func TestUpdateItemPartial(t *testing.T) {
	setupTestDB(t)

	created := createTestItem(t, map[string]interface{}{
		"item_name":           "Gloves",
		"unit":                "box",
		"quantity_in_stock":   50,
		"minimum_stock_level": 20,
	})

	// Only quantity is sent; every other field must survive untouched
	c, rec := newContext(t, http.MethodPut, "/api/items/"+created.ID, map[string]interface{}{
		"quantity_in_stock": 18,
	})
	c.SetParamNames("id")
	c.SetParamValues(created.ID)
	require.NoError(t, UpdateItem(c))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got model.Item
	decode(t, rec, &got)
	assert.Equal(t, 18, got.QuantityInStock)
	assert.Equal(t, "Gloves", got.ItemName)
	assert.Equal(t, "box", got.Unit)
	assert.Equal(t, 20, got.MinimumStockLevel)
}

func TestUpdateItemClearsForeignKey(t *testing.T) {
	db := setupTestDB(t)

	category := model.Category{Name: "Disposables"}
	require.NoError(t, db.Create(&category).Error)

	created := createTestItem(t, map[string]interface{}{
		"item_name":   "Gauze",
		"unit":        "box",
		"category_id": category.ID,
	})
	require.NotNil(t, created.CategoryID)

	// A present-but-empty foreign key clears the column
	c, rec := newContext(t, http.MethodPut, "/api/items/"+created.ID, map[string]interface{}{
		"category_id": "",
	})
	c.SetParamNames("id")
	c.SetParamValues(created.ID)
	require.NoError(t, UpdateItem(c))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got model.Item
	decode(t, rec, &got)
	assert.Nil(t, got.CategoryID)
}

func TestUpdateItemNotFound(t *testing.T) {
	setupTestDB(t)

	c, rec := newContext(t, http.MethodPut, "/api/items/missing", map[string]interface{}{
		"item_name": "Ghost",
	})
	c.SetParamNames("id")
	c.SetParamValues("missing")
	require.NoError(t, UpdateItem(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Nothing was silently created
	c, rec = newContext(t, http.MethodGet, "/api/items", nil)
	require.NoError(t, ListItems(c))
	var items []model.Item
	decode(t, rec, &items)
	assert.Empty(t, items)
}

func TestDeleteItem(t *testing.T) {
	setupTestDB(t)

	created := createTestItem(t, map[string]interface{}{
		"item_name": "Gauze",
		"unit":      "box",
	})

	c, rec := newContext(t, http.MethodDelete, "/api/items/"+created.ID, nil)
	c.SetParamNames("id")
	c.SetParamValues(created.ID)
	require.NoError(t, DeleteItem(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	decode(t, rec, &resp)
	assert.Equal(t, true, resp["success"])

	c, rec = newContext(t, http.MethodDelete, "/api/items/"+created.ID, nil)
	c.SetParamNames("id")
	c.SetParamValues(created.ID)
	require.NoError(t, DeleteItem(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListItemsStockFilter(t *testing.T) {
	setupTestDB(t)

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

	list := func(target string) []model.Item {
		c, rec := newContext(t, http.MethodGet, target, nil)
		require.NoError(t, ListItems(c))
		require.Equal(t, http.StatusOK, rec.Code)
		var items []model.Item
		decode(t, rec, &items)
		return items
	}

	low := list("/api/items?stock=low")
	require.Len(t, low, 1)
	assert.Equal(t, "Gauze", low[0].ItemName)

	in := list("/api/items?stock=in")
	require.Len(t, in, 1)
	assert.Equal(t, "Gloves", in[0].ItemName)

	all := list("/api/items?stock=all")
	require.Len(t, all, 2)
	assert.Equal(t, "Gauze", all[0].ItemName)
	assert.Equal(t, "Gloves", all[1].ItemName)

	unfiltered := list("/api/items")
	assert.Len(t, unfiltered, 2)
}

func TestListItemsCategoryFilter(t *testing.T) {
	db := setupTestDB(t)

	category := model.Category{Name: "Disposables"}
	require.NoError(t, db.Create(&category).Error)

	createTestItem(t, map[string]interface{}{
		"item_name":   "Gauze",
		"unit":        "box",
		"category_id": category.ID,
	})
	createTestItem(t, map[string]interface{}{
		"item_name": "Composite Resin",
		"unit":      "syringe",
	})

	c, rec := newContext(t, http.MethodGet, "/api/items?category_id="+category.ID, nil)
	require.NoError(t, ListItems(c))
	var items []model.Item
	decode(t, rec, &items)
	require.Len(t, items, 1)
	assert.Equal(t, "Gauze", items[0].ItemName)
}

func TestDeleteCategoryLeavesDanglingReference(t *testing.T) {
	db := setupTestDB(t)

	category := model.Category{Name: "Disposables"}
	require.NoError(t, db.Create(&category).Error)

	created := createTestItem(t, map[string]interface{}{
		"item_name":   "Gauze",
		"unit":        "box",
		"category_id": category.ID,
	})

	// Deleting the category succeeds even though an item references it
	c, rec := newContext(t, http.MethodDelete, "/api/categories/"+category.ID, nil)
	c.SetParamNames("id")
	c.SetParamValues(category.ID)
	require.NoError(t, DeleteCategory(c))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// The item still reads fine; the association is simply unresolved
	c, rec = newContext(t, http.MethodGet, "/api/items/"+created.ID, nil)
	c.SetParamNames("id")
	c.SetParamValues(created.ID)
	require.NoError(t, GetItem(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got model.Item
	decode(t, rec, &got)
	require.NotNil(t, got.CategoryID)
	assert.Equal(t, category.ID, *got.CategoryID)
	assert.Nil(t, got.Category)
}

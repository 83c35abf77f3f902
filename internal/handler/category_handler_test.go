package handler

import (
	"net/http"
	"testing"

	"inventory-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCRUD(t *testing.T) {
	setupTestDB(t)

	// Create
	c, rec := newContext(t, http.MethodPost, "/api/categories", map[string]interface{}{
		"name":        "Restorative",
		"description": "Fillings and bonding",
	})
	require.NoError(t, CreateCategory(c))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created model.Category
	decode(t, rec, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Restorative", created.Name)
	require.NotNil(t, created.Description)
	assert.Equal(t, "Fillings and bonding", *created.Description)

	// Round trip
	c, rec = newContext(t, http.MethodGet, "/api/categories/"+created.ID, nil)
	c.SetParamNames("id")
	c.SetParamValues(created.ID)
	require.NoError(t, GetCategory(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got model.Category
	decode(t, rec, &got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Name, got.Name)

	// Partial update: name only, description untouched
	c, rec = newContext(t, http.MethodPut, "/api/categories/"+created.ID, map[string]interface{}{
		"name": "Restorative Materials",
	})
	c.SetParamNames("id")
	c.SetParamValues(created.ID)
	require.NoError(t, UpdateCategory(c))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated model.Category
	decode(t, rec, &updated)
	assert.Equal(t, "Restorative Materials", updated.Name)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "Fillings and bonding", *updated.Description)

	// List
	c, rec = newContext(t, http.MethodGet, "/api/categories", nil)
	require.NoError(t, ListCategories(c))
	var categories []model.Category
	decode(t, rec, &categories)
	assert.Len(t, categories, 1)

	// Delete
	c, rec = newContext(t, http.MethodDelete, "/api/categories/"+created.ID, nil)
	c.SetParamNames("id")
	c.SetParamValues(created.ID)
	require.NoError(t, DeleteCategory(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	decode(t, rec, &resp)
	assert.Equal(t, true, resp["success"])
}

func TestGetCategoryNotFound(t *testing.T) {
	setupTestDB(t)

	c, rec := newContext(t, http.MethodGet, "/api/categories/missing", nil)
	c.SetParamNames("id")
	c.SetParamValues("missing")
	require.NoError(t, GetCategory(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateCategoryNotFound(t *testing.T) {
	setupTestDB(t)

	c, rec := newContext(t, http.MethodPut, "/api/categories/missing", map[string]interface{}{
		"name": "Ghost",
	})
	c.SetParamNames("id")
	c.SetParamValues("missing")
	require.NoError(t, UpdateCategory(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

package handler

import (
	"net/http"
	"testing"

	"inventory-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTransactionDefaultsDate(t *testing.T) {
	setupTestDB(t)

	c, rec := newContext(t, http.MethodPost, "/api/transactions", map[string]interface{}{
		"transaction_type": model.TransactionOut,
		"quantity":         3,
		"item_id":          "",
	})
	require.NoError(t, CreateTransaction(c))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var tx model.StockTransaction
	decode(t, rec, &tx)
	assert.NotEmpty(t, tx.ID)
	assert.Equal(t, model.TransactionOut, tx.TransactionType)
	assert.Equal(t, 3, tx.Quantity)
	assert.False(t, tx.TransactionDate.IsZero())
	// Empty item reference is stored as no value
	assert.Nil(t, tx.ItemID)
}

func TestTransactionRoundTrip(t *testing.T) {
	setupTestDB(t)

	c, rec := newContext(t, http.MethodPost, "/api/transactions", map[string]interface{}{
		"transaction_type": model.TransactionAdjustment,
		"quantity":         -2,
		"notes":            "cycle count correction",
	})
	require.NoError(t, CreateTransaction(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.StockTransaction
	decode(t, rec, &created)

	c, rec = newContext(t, http.MethodGet, "/api/transactions/"+created.ID, nil)
	c.SetParamNames("id")
	c.SetParamValues(created.ID)
	require.NoError(t, GetTransaction(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got model.StockTransaction
	decode(t, rec, &got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, -2, got.Quantity)
	require.NotNil(t, got.Notes)
	assert.Equal(t, "cycle count correction", *got.Notes)
}

func TestUserCRUD(t *testing.T) {
	setupTestDB(t)

	c, rec := newContext(t, http.MethodPost, "/api/users", map[string]interface{}{
		"name": "Dr. Tan",
		"role": model.RoleAdmin,
	})
	require.NoError(t, CreateUser(c))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var user model.User
	decode(t, rec, &user)
	assert.Equal(t, "Dr. Tan", user.Name)
	assert.Equal(t, model.RoleAdmin, user.Role)

	c, rec = newContext(t, http.MethodPut, "/api/users/"+user.ID, map[string]interface{}{
		"role": model.RoleViewer,
	})
	c.SetParamNames("id")
	c.SetParamValues(user.ID)
	require.NoError(t, UpdateUser(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.User
	decode(t, rec, &updated)
	assert.Equal(t, "Dr. Tan", updated.Name)
	assert.Equal(t, model.RoleViewer, updated.Role)
}

package handler

import (
	"errors"
	"net/http"
	"time"

	"inventory-service/internal/model"
	"inventory-service/pkg/database"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TransactionRequest defines the structure for stock-transaction creation
// requests. TransactionDate is RFC 3339; when absent the record is stamped
// with the current time.
type TransactionRequest struct {
	ItemID          *string    `json:"item_id"`
	TransactionType string     `json:"transaction_type"`
	Quantity        int        `json:"quantity"`
	TransactionDate *time.Time `json:"transaction_date"`
	UserID          *string    `json:"user_id"`
	Notes           *string    `json:"notes"`
}

// TransactionUpdateRequest carries a partial update; only non-nil fields are written
type TransactionUpdateRequest struct {
	TransactionType *string    `json:"transaction_type"`
	Quantity        *int       `json:"quantity"`
	TransactionDate *time.Time `json:"transaction_date"`
	Notes           *string    `json:"notes"`
}

// ListTransactions retrieves all stock transactions, most recent first
func ListTransactions(c echo.Context) error {
	log := logger.FromContext(c)

	var transactions []model.StockTransaction
	defer prometheus.TrackDBOperation("select_transactions")(time.Now())
	result := database.GetDB().Order("transaction_date DESC").Find(&transactions)
	if result.Error != nil {
		log.Error("Failed to list transactions", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": result.Error.Error(),
		})
	}

	return c.JSON(http.StatusOK, transactions)
}

// GetTransaction retrieves a single stock transaction by ID
func GetTransaction(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var transaction model.StockTransaction
	result := database.GetDB().Where("id = ?", id).First(&transaction)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn("Transaction not found", zap.String("transaction_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "transaction not found",
			})
		}
		log.Error("Failed to get transaction", zap.String("transaction_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": result.Error.Error(),
		})
	}

	return c.JSON(http.StatusOK, transaction)
}

// CreateTransaction appends a stock movement record
func CreateTransaction(c echo.Context) error {
	log := logger.FromContext(c)

	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid request data",
		})
	}

	transaction := model.StockTransaction{
		ItemID:          normalizeRef(req.ItemID),
		TransactionType: req.TransactionType,
		Quantity:        req.Quantity,
		UserID:          normalizeRef(req.UserID),
		Notes:           req.Notes,
	}
	if req.TransactionDate != nil {
		transaction.TransactionDate = *req.TransactionDate
	}

	defer prometheus.TrackDBOperation("insert_transaction")(time.Now())
	result := database.GetDB().Create(&transaction)
	if result.Error != nil {
		log.Error("Failed to create transaction",
			zap.String("transaction_type", req.TransactionType),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": result.Error.Error(),
		})
	}

	prometheus.RecordEntityOperation("transaction", "create")
	log.Info("Transaction created",
		zap.String("transaction_id", transaction.ID),
		zap.String("transaction_type", transaction.TransactionType),
		zap.Int("quantity", transaction.Quantity))
	return c.JSON(http.StatusCreated, transaction)
}

// UpdateTransaction overwrites the provided fields of an existing transaction
func UpdateTransaction(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req TransactionUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("transaction_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid request data",
		})
	}

	var transaction model.StockTransaction
	result := database.GetDB().Where("id = ?", id).First(&transaction)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn("Transaction not found for update", zap.String("transaction_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "transaction not found",
			})
		}
		log.Error("Failed to load transaction", zap.String("transaction_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": result.Error.Error(),
		})
	}

	updates := map[string]interface{}{}
	if req.TransactionType != nil {
		updates["transaction_type"] = *req.TransactionType
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if req.TransactionDate != nil {
		updates["transaction_date"] = *req.TransactionDate
	}
	if req.Notes != nil {
		updates["notes"] = req.Notes
	}

	if len(updates) > 0 {
		defer prometheus.TrackDBOperation("update_transaction")(time.Now())
		result = database.GetDB().Model(&transaction).Updates(updates)
		if result.Error != nil {
			log.Error("Failed to update transaction", zap.String("transaction_id", id), zap.Error(result.Error))
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": result.Error.Error(),
			})
		}
		database.GetDB().Where("id = ?", id).First(&transaction)
	}

	prometheus.RecordEntityOperation("transaction", "update")
	log.Info("Transaction updated", zap.String("transaction_id", id))
	return c.JSON(http.StatusOK, transaction)
}

// DeleteTransaction removes a transaction record unconditionally
func DeleteTransaction(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	defer prometheus.TrackDBOperation("delete_transaction")(time.Now())
	result := database.GetDB().Delete(&model.StockTransaction{}, "id = ?", id)
	if result.Error != nil {
		log.Error("Failed to delete transaction", zap.String("transaction_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": result.Error.Error(),
		})
	}

	if result.RowsAffected == 0 {
		log.Warn("Transaction not found for deletion", zap.String("transaction_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "transaction not found",
		})
	}

	prometheus.RecordEntityOperation("transaction", "delete")
	log.Info("Transaction deleted", zap.String("transaction_id", id))
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

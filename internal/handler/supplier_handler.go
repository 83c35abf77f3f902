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

// SupplierRequest defines the structure for supplier creation requests
type SupplierRequest struct {
	Name          string  `json:"name"`
	ContactPerson *string `json:"contact_person"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
}

// SupplierUpdateRequest carries a partial update; only non-nil fields are written
type SupplierUpdateRequest struct {
	Name          *string `json:"name"`
	ContactPerson *string `json:"contact_person"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
}

// ListSuppliers retrieves all suppliers in storage order
func ListSuppliers(c echo.Context) error {
	log := logger.FromContext(c)

	var suppliers []model.Supplier
	defer prometheus.TrackDBOperation("select_suppliers")(time.Now())
	result := database.GetDB().Find(&suppliers)
	if result.Error != nil {
		log.Error("Failed to list suppliers", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": result.Error.Error(),
		})
	}

	return c.JSON(http.StatusOK, suppliers)
}

// GetSupplier retrieves a single supplier by ID
func GetSupplier(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var supplier model.Supplier
	result := database.GetDB().Where("id = ?", id).First(&supplier)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn("Supplier not found", zap.String("supplier_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "supplier not found",
			})
		}
		log.Error("Failed to get supplier", zap.String("supplier_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": result.Error.Error(),
		})
	}

	return c.JSON(http.StatusOK, supplier)
}

// CreateSupplier adds a new supplier
func CreateSupplier(c echo.Context) error {
	log := logger.FromContext(c)

	var req SupplierRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid request data",
		})
	}

	supplier := model.Supplier{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
	}

	defer prometheus.TrackDBOperation("insert_supplier")(time.Now())
	result := database.GetDB().Create(&supplier)
	if result.Error != nil {
		log.Error("Failed to create supplier", zap.String("name", req.Name), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": result.Error.Error(),
		})
	}

	prometheus.RecordEntityOperation("supplier", "create")
	log.Info("Supplier created", zap.String("supplier_id", supplier.ID), zap.String("name", supplier.Name))
	return c.JSON(http.StatusCreated, supplier)
}

// UpdateSupplier overwrites the provided fields of an existing supplier
func UpdateSupplier(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req SupplierUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("supplier_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid request data",
		})
	}

	var supplier model.Supplier
	result := database.GetDB().Where("id = ?", id).First(&supplier)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn("Supplier not found for update", zap.String("supplier_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "supplier not found",
			})
		}
		log.Error("Failed to load supplier", zap.String("supplier_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": result.Error.Error(),
		})
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.ContactPerson != nil {
		updates["contact_person"] = req.ContactPerson
	}
	if req.Email != nil {
		updates["email"] = req.Email
	}
	if req.Phone != nil {
		updates["phone"] = req.Phone
	}
	if req.Address != nil {
		updates["address"] = req.Address
	}

	if len(updates) > 0 {
		defer prometheus.TrackDBOperation("update_supplier")(time.Now())
		result = database.GetDB().Model(&supplier).Updates(updates)
		if result.Error != nil {
			log.Error("Failed to update supplier", zap.String("supplier_id", id), zap.Error(result.Error))
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": result.Error.Error(),
			})
		}
		database.GetDB().Where("id = ?", id).First(&supplier)
	}

	prometheus.RecordEntityOperation("supplier", "update")
	log.Info("Supplier updated", zap.String("supplier_id", id), zap.String("name", supplier.Name))
	return c.JSON(http.StatusOK, supplier)
}

// DeleteSupplier removes a supplier unconditionally
func DeleteSupplier(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	defer prometheus.TrackDBOperation("delete_supplier")(time.Now())
	result := database.GetDB().Delete(&model.Supplier{}, "id = ?", id)
	if result.Error != nil {
		log.Error("Failed to delete supplier", zap.String("supplier_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": result.Error.Error(),
		})
	}

	if result.RowsAffected == 0 {
		log.Warn("Supplier not found for deletion", zap.String("supplier_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "supplier not found",
		})
	}

	prometheus.RecordEntityOperation("supplier", "delete")
	log.Info("Supplier deleted", zap.String("supplier_id", id))
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

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

// StorageLocationRequest defines the structure for storage-location creation requests
type StorageLocationRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// StorageLocationUpdateRequest carries a partial update; only non-nil fields are written
type StorageLocationUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// ListStorageLocations retrieves all storage locations in storage order
func ListStorageLocations(c echo.Context) error {
	log := logger.FromContext(c)

	var locations []model.StorageLocation
	defer prometheus.TrackDBOperation("select_storage_locations")(time.Now())
	result := database.GetDB().Find(&locations)
	if result.Error != nil {
		log.Error("Failed to list storage locations", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": result.Error.Error(),
		})
	}

	return c.JSON(http.StatusOK, locations)
}

// GetStorageLocation retrieves a single storage location by ID
func GetStorageLocation(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var location model.StorageLocation
	result := database.GetDB().Where("id = ?", id).First(&location)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn("Storage location not found", zap.String("storage_location_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "storage location not found",
			})
		}
		log.Error("Failed to get storage location", zap.String("storage_location_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": result.Error.Error(),
		})
	}

	return c.JSON(http.StatusOK, location)
}

// CreateStorageLocation adds a new storage location
func CreateStorageLocation(c echo.Context) error {
	log := logger.FromContext(c)

	var req StorageLocationRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid request data",
		})
	}

	location := model.StorageLocation{
		Name:        req.Name,
		Description: req.Description,
	}

	defer prometheus.TrackDBOperation("insert_storage_location")(time.Now())
	result := database.GetDB().Create(&location)
	if result.Error != nil {
		log.Error("Failed to create storage location", zap.String("name", req.Name), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": result.Error.Error(),
		})
	}

	prometheus.RecordEntityOperation("storage_location", "create")
	log.Info("Storage location created",
		zap.String("storage_location_id", location.ID),
		zap.String("name", location.Name))
	return c.JSON(http.StatusCreated, location)
}

// UpdateStorageLocation overwrites the provided fields of an existing storage location
func UpdateStorageLocation(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req StorageLocationUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("storage_location_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid request data",
		})
	}

	var location model.StorageLocation
	result := database.GetDB().Where("id = ?", id).First(&location)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn("Storage location not found for update", zap.String("storage_location_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "storage location not found",
			})
		}
		log.Error("Failed to load storage location", zap.String("storage_location_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": result.Error.Error(),
		})
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = req.Description
	}

	if len(updates) > 0 {
		defer prometheus.TrackDBOperation("update_storage_location")(time.Now())
		result = database.GetDB().Model(&location).Updates(updates)
		if result.Error != nil {
			log.Error("Failed to update storage location", zap.String("storage_location_id", id), zap.Error(result.Error))
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": result.Error.Error(),
			})
		}
		database.GetDB().Where("id = ?", id).First(&location)
	}

	prometheus.RecordEntityOperation("storage_location", "update")
	log.Info("Storage location updated", zap.String("storage_location_id", id), zap.String("name", location.Name))
	return c.JSON(http.StatusOK, location)
}

// DeleteStorageLocation removes a storage location unconditionally
func DeleteStorageLocation(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	defer prometheus.TrackDBOperation("delete_storage_location")(time.Now())
	result := database.GetDB().Delete(&model.StorageLocation{}, "id = ?", id)
	if result.Error != nil {
		log.Error("Failed to delete storage location", zap.String("storage_location_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": result.Error.Error(),
		})
	}

	if result.RowsAffected == 0 {
		log.Warn("Storage location not found for deletion", zap.String("storage_location_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "storage location not found",
		})
	}

	prometheus.RecordEntityOperation("storage_location", "delete")
	log.Info("Storage location deleted", zap.String("storage_location_id", id))
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

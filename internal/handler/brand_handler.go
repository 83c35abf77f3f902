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

// BrandRequest defines the structure for brand creation requests
type BrandRequest struct {
	Name string `json:"name"`
}

// BrandUpdateRequest carries a partial update; only non-nil fields are written
type BrandUpdateRequest struct {
	Name *string `json:"name"`
}

// ListBrands retrieves all brands in storage order
func ListBrands(c echo.Context) error {
	log := logger.FromContext(c)

	var brands []model.Brand
	defer prometheus.TrackDBOperation("select_brands")(time.Now())
	result := database.GetDB().Find(&brands)
	if result.Error != nil {
		log.Error("Failed to list brands", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": result.Error.Error(),
		})
	}

	return c.JSON(http.StatusOK, brands)
}

// GetBrand retrieves a single brand by ID
func GetBrand(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var brand model.Brand
	result := database.GetDB().Where("id = ?", id).First(&brand)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn("Brand not found", zap.String("brand_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "brand not found",
			})
		}
		log.Error("Failed to get brand", zap.String("brand_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": result.Error.Error(),
		})
	}

	return c.JSON(http.StatusOK, brand)
}

// CreateBrand adds a new brand
func CreateBrand(c echo.Context) error {
	log := logger.FromContext(c)

	var req BrandRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid request data",
		})
	}

	brand := model.Brand{Name: req.Name}

	defer prometheus.TrackDBOperation("insert_brand")(time.Now())
	result := database.GetDB().Create(&brand)
	if result.Error != nil {
		log.Error("Failed to create brand", zap.String("name", req.Name), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": result.Error.Error(),
		})
	}

	prometheus.RecordEntityOperation("brand", "create")
	log.Info("Brand created", zap.String("brand_id", brand.ID), zap.String("name", brand.Name))
	return c.JSON(http.StatusCreated, brand)
}

// UpdateBrand overwrites the provided fields of an existing brand
func UpdateBrand(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req BrandUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("brand_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid request data",
		})
	}

	var brand model.Brand
	result := database.GetDB().Where("id = ?", id).First(&brand)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn("Brand not found for update", zap.String("brand_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "brand not found",
			})
		}
		log.Error("Failed to load brand", zap.String("brand_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": result.Error.Error(),
		})
	}

	if req.Name != nil {
		defer prometheus.TrackDBOperation("update_brand")(time.Now())
		result = database.GetDB().Model(&brand).Updates(map[string]interface{}{"name": *req.Name})
		if result.Error != nil {
			log.Error("Failed to update brand", zap.String("brand_id", id), zap.Error(result.Error))
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": result.Error.Error(),
			})
		}
		database.GetDB().Where("id = ?", id).First(&brand)
	}

	prometheus.RecordEntityOperation("brand", "update")
	log.Info("Brand updated", zap.String("brand_id", id), zap.String("name", brand.Name))
	return c.JSON(http.StatusOK, brand)
}

// DeleteBrand removes a brand unconditionally
func DeleteBrand(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	defer prometheus.TrackDBOperation("delete_brand")(time.Now())
	result := database.GetDB().Delete(&model.Brand{}, "id = ?", id)
	if result.Error != nil {
		log.Error("Failed to delete brand", zap.String("brand_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": result.Error.Error(),
		})
	}

	if result.RowsAffected == 0 {
		log.Warn("Brand not found for deletion", zap.String("brand_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "brand not found",
		})
	}

	prometheus.RecordEntityOperation("brand", "delete")
	log.Info("Brand deleted", zap.String("brand_id", id))
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

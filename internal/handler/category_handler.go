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

// CategoryRequest defines the structure for category creation requests
type CategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// CategoryUpdateRequest carries a partial update; only non-nil fields are written
type CategoryUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// ListCategories retrieves all categories in storage order
func ListCategories(c echo.Context) error {
	log := logger.FromContext(c)

	var categories []model.Category
	defer prometheus.TrackDBOperation("select_categories")(time.Now())
	result := database.GetDB().Find(&categories)
	if result.Error != nil {
		log.Error("Failed to list categories", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": result.Error.Error(),
		})
	}

	log.Info("Categories retrieved", zap.Int("count", len(categories)))
	return c.JSON(http.StatusOK, categories)
}

// GetCategory retrieves a single category by ID
func GetCategory(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var category model.Category
	result := database.GetDB().Where("id = ?", id).First(&category)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn("Category not found", zap.String("category_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "category not found",
			})
		}
		log.Error("Failed to get category", zap.String("category_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": result.Error.Error(),
		})
	}

	return c.JSON(http.StatusOK, category)
}

// CreateCategory adds a new category
func CreateCategory(c echo.Context) error {
	log := logger.FromContext(c)

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid request data",
		})
	}

	category := model.Category{
		Name:        req.Name,
		Description: req.Description,
	}

	defer prometheus.TrackDBOperation("insert_category")(time.Now())
	result := database.GetDB().Create(&category)
	if result.Error != nil {
		log.Error("Failed to create category", zap.String("name", req.Name), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": result.Error.Error(),
		})
	}

	prometheus.RecordEntityOperation("category", "create")
	log.Info("Category created",
		zap.String("category_id", category.ID),
		zap.String("name", category.Name))
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory overwrites the provided fields of an existing category
func UpdateCategory(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req CategoryUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("category_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid request data",
		})
	}

	var category model.Category
	result := database.GetDB().Where("id = ?", id).First(&category)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn("Category not found for update", zap.String("category_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "category not found",
			})
		}
		log.Error("Failed to load category", zap.String("category_id", id), zap.Error(result.Error))
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
		defer prometheus.TrackDBOperation("update_category")(time.Now())
		result = database.GetDB().Model(&category).Updates(updates)
		if result.Error != nil {
			log.Error("Failed to update category", zap.String("category_id", id), zap.Error(result.Error))
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": result.Error.Error(),
			})
		}
		// Re-read so generated timestamps are returned
		database.GetDB().Where("id = ?", id).First(&category)
	}

	prometheus.RecordEntityOperation("category", "update")
	log.Info("Category updated", zap.String("category_id", id), zap.String("name", category.Name))
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory removes a category unconditionally. Items referencing it are
// left with a dangling foreign key.
func DeleteCategory(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	defer prometheus.TrackDBOperation("delete_category")(time.Now())
	result := database.GetDB().Delete(&model.Category{}, "id = ?", id)
	if result.Error != nil {
		log.Error("Failed to delete category", zap.String("category_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": result.Error.Error(),
		})
	}

	if result.RowsAffected == 0 {
		log.Warn("Category not found for deletion", zap.String("category_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "category not found",
		})
	}

	prometheus.RecordEntityOperation("category", "delete")
	log.Info("Category deleted", zap.String("category_id", id))
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

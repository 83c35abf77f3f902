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

// UserRequest defines the structure for user creation requests
type UserRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// UserUpdateRequest carries a partial update; only non-nil fields are written
type UserUpdateRequest struct {
	Name *string `json:"name"`
	Role *string `json:"role"`
}

// ListUsers retrieves all users in storage order
func ListUsers(c echo.Context) error {
	log := logger.FromContext(c)

	var users []model.User
	defer prometheus.TrackDBOperation("select_users")(time.Now())
	result := database.GetDB().Find(&users)
	if result.Error != nil {
		log.Error("Failed to list users", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": result.Error.Error(),
		})
	}

	return c.JSON(http.StatusOK, users)
}

// GetUser retrieves a single user by ID
func GetUser(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var user model.User
	result := database.GetDB().Where("id = ?", id).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn("User not found", zap.String("user_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "user not found",
			})
		}
		log.Error("Failed to get user", zap.String("user_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": result.Error.Error(),
		})
	}

	return c.JSON(http.StatusOK, user)
}

// CreateUser adds a new user
func CreateUser(c echo.Context) error {
	log := logger.FromContext(c)

	var req UserRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid request data",
		})
	}

	user := model.User{
		Name: req.Name,
		Role: req.Role,
	}

	defer prometheus.TrackDBOperation("insert_user")(time.Now())
	result := database.GetDB().Create(&user)
	if result.Error != nil {
		log.Error("Failed to create user", zap.String("name", req.Name), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": result.Error.Error(),
		})
	}

	prometheus.RecordEntityOperation("user", "create")
	log.Info("User created",
		zap.String("user_id", user.ID),
		zap.String("name", user.Name),
		zap.String("role", user.Role))
	return c.JSON(http.StatusCreated, user)
}

// UpdateUser overwrites the provided fields of an existing user
func UpdateUser(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req UserUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("user_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid request data",
		})
	}

	var user model.User
	result := database.GetDB().Where("id = ?", id).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn("User not found for update", zap.String("user_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "user not found",
			})
		}
		log.Error("Failed to load user", zap.String("user_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": result.Error.Error(),
		})
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}

	if len(updates) > 0 {
		defer prometheus.TrackDBOperation("update_user")(time.Now())
		result = database.GetDB().Model(&user).Updates(updates)
		if result.Error != nil {
			log.Error("Failed to update user", zap.String("user_id", id), zap.Error(result.Error))
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": result.Error.Error(),
			})
		}
		database.GetDB().Where("id = ?", id).First(&user)
	}

	prometheus.RecordEntityOperation("user", "update")
	log.Info("User updated", zap.String("user_id", id), zap.String("name", user.Name))
	return c.JSON(http.StatusOK, user)
}

// DeleteUser removes a user unconditionally
func DeleteUser(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	defer prometheus.TrackDBOperation("delete_user")(time.Now())
	result := database.GetDB().Delete(&model.User{}, "id = ?", id)
	if result.Error != nil {
		log.Error("Failed to delete user", zap.String("user_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": result.Error.Error(),
		})
	}

	if result.RowsAffected == 0 {
		log.Warn("User not found for deletion", zap.String("user_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "user not found",
		})
	}

	prometheus.RecordEntityOperation("user", "delete")
	log.Info("User deleted", zap.String("user_id", id))
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

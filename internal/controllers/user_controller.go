package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/gin-pizza-orders/internal/models"
	"github.com/franciscosanchezn/gin-pizza-orders/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserController handles HTTP requests related to users
type UserController interface {
	GetAllUsers(ctx *gin.Context)
	GetUser(ctx *gin.Context)
	CreateUser(ctx *gin.Context)
	UpdateUser(ctx *gin.Context)
	DeleteUser(ctx *gin.Context)
	GetOrderHistory(ctx *gin.Context)
	GetOpenOrders(ctx *gin.Context)
}

// UserRequest is the payload for creating or updating a user
type UserRequest struct {
	Username string `json:"username" binding:"required"`
}

type userController struct {
	service services.UserService
}

// NewUserController creates a new instance of UserController
func NewUserController(service services.UserService) UserController {
	return &userController{service: service}
}

func userLocation(id uuid.UUID) string {
	return "/api/v1/users/" + id.String()
}

// GetAllUsers godoc
// @Summary Get all users
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Router /api/v1/users [get]
func (c *userController) GetAllUsers(ctx *gin.Context) {
	users, err := c.service.GetAllUsers()
	if err != nil {
		mapServiceError(ctx, err, nil)
		return
	}
	ctx.JSON(http.StatusOK, users)
}

// GetUser godoc
// @Summary Get user by ID
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} models.APIError
// @Router /api/v1/users/{id} [get]
func (c *userController) GetUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	user, err := c.service.GetUserByID(id)
	if err != nil {
		mapServiceError(ctx, err, nil)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// CreateUser godoc
// @Summary Create a new user
// @Tags users
// @Accept json
// @Produce json
// @Param user body UserRequest true "User payload"
// @Success 201 {object} models.User
// @Failure 303 "Redirect to the existing user"
// @Router /api/v1/users [post]
func (c *userController) CreateUser(ctx *gin.Context) {
	var req UserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
		return
	}

	user, err := c.service.CreateUser(models.User{Username: req.Username})
	if err != nil {
		mapServiceError(ctx, err, userLocation)
		return
	}
	ctx.JSON(http.StatusCreated, user)
}

// UpdateUser godoc
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param user body UserRequest true "User payload"
// @Success 201 {object} models.User
// @Success 204
// @Failure 404 {object} models.APIError
// @Router /api/v1/users/{id} [put]
func (c *userController) UpdateUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req UserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
		return
	}

	user, created, err := c.service.UpdateUser(id, models.User{Username: req.Username})
	if err != nil {
		mapServiceError(ctx, err, userLocation)
		return
	}
	if created {
		ctx.JSON(http.StatusCreated, user)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags users
// @Param id path string true "User ID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Router /api/v1/users/{id} [delete]
func (c *userController) DeleteUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.service.DeleteUser(id); err != nil {
		mapServiceError(ctx, err, nil)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// GetOrderHistory godoc
// @Summary Get a user's completed orders
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} models.Order
// @Failure 404 {object} models.APIError
// @Router /api/v1/users/{id}/order-history [get]
func (c *userController) GetOrderHistory(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if _, err := c.service.GetUserByID(id); err != nil {
		mapServiceError(ctx, err, nil)
		return
	}
	orders, err := c.service.OrderHistory(id)
	if err != nil {
		mapServiceError(ctx, err, nil)
		return
	}
	ctx.JSON(http.StatusOK, orders)
}

// GetOpenOrders godoc
// @Summary Get a user's not yet completed orders
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} models.Order
// @Failure 404 {object} models.APIError
// @Router /api/v1/users/{id}/open-orders [get]
func (c *userController) GetOpenOrders(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if _, err := c.service.GetUserByID(id); err != nil {
		mapServiceError(ctx, err, nil)
		return
	}
	orders, err := c.service.OpenOrders(id)
	if err != nil {
		mapServiceError(ctx, err, nil)
		return
	}
	ctx.JSON(http.StatusOK, orders)
}

package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/gin-pizza-orders/internal/models"
	"github.com/franciscosanchezn/gin-pizza-orders/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ToppingController handles HTTP requests related to toppings
type ToppingController interface {
	GetAllToppings(ctx *gin.Context)
	GetTopping(ctx *gin.Context)
	CreateTopping(ctx *gin.Context)
	UpdateTopping(ctx *gin.Context)
	DeleteTopping(ctx *gin.Context)
}

// ToppingRequest is the payload for creating or updating a topping
type ToppingRequest struct {
	Name        string          `json:"name" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Description string          `json:"description"`
	Stock       int             `json:"stock" binding:"gte=0"`
}

type toppingController struct {
	service services.ToppingService
}

// NewToppingController creates a new instance of ToppingController
func NewToppingController(service services.ToppingService) ToppingController {
	return &toppingController{service: service}
}

func toppingLocation(id uuid.UUID) string {
	return "/api/v1/toppings/" + id.String()
}

// GetAllToppings godoc
// @Summary Get all toppings
// @Tags toppings
// @Produce json
// @Success 200 {array} models.Topping
// @Router /api/v1/toppings [get]
func (c *toppingController) GetAllToppings(ctx *gin.Context) {
	toppings, err := c.service.GetAllToppings()
	if err != nil {
		mapServiceError(ctx, err, nil)
		return
	}
	ctx.JSON(http.StatusOK, toppings)
}

// GetTopping godoc
// @Summary Get topping by ID
// @Tags toppings
// @Produce json
// @Param id path string true "Topping ID"
// @Success 200 {object} models.Topping
// @Failure 404 {object} models.APIError
// @Router /api/v1/toppings/{id} [get]
func (c *toppingController) GetTopping(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	topping, err := c.service.GetToppingByID(id)
	if err != nil {
		mapServiceError(ctx, err, nil)
		return
	}
	ctx.JSON(http.StatusOK, topping)
}

// CreateTopping godoc
// @Summary Create a new topping
// @Tags toppings
// @Accept json
// @Produce json
// @Param topping body ToppingRequest true "Topping payload"
// @Success 201 {object} models.Topping
// @Failure 303 "Redirect to the existing topping"
// @Router /api/v1/toppings [post]
func (c *toppingController) CreateTopping(ctx *gin.Context) {
	var req ToppingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
		return
	}

	topping, err := c.service.CreateTopping(models.Topping{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Stock:       req.Stock,
	})
	if err != nil {
		mapServiceError(ctx, err, toppingLocation)
		return
	}
	ctx.JSON(http.StatusCreated, topping)
}

// UpdateTopping godoc
// @Summary Update a topping
// @Tags toppings
// @Accept json
// @Produce json
// @Param id path string true "Topping ID"
// @Param topping body ToppingRequest true "Topping payload"
// @Success 201 {object} models.Topping
// @Success 204
// @Failure 404 {object} models.APIError
// @Router /api/v1/toppings/{id} [put]
func (c *toppingController) UpdateTopping(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req ToppingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
		return
	}

	topping, created, err := c.service.UpdateTopping(id, models.Topping{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Stock:       req.Stock,
	})
	if err != nil {
		mapServiceError(ctx, err, toppingLocation)
		return
	}
	if created {
		ctx.JSON(http.StatusCreated, topping)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// DeleteTopping godoc
// @Summary Delete a topping
// @Tags toppings
// @Param id path string true "Topping ID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Router /api/v1/toppings/{id} [delete]
func (c *toppingController) DeleteTopping(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.service.DeleteTopping(id); err != nil {
		mapServiceError(ctx, err, nil)
		return
	}
	ctx.Status(http.StatusNoContent)
}

package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/gin-pizza-orders/internal/models"
	"github.com/franciscosanchezn/gin-pizza-orders/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BeverageController handles HTTP requests related to beverages
type BeverageController interface {
	GetAllBeverages(ctx *gin.Context)
	GetBeverage(ctx *gin.Context)
	CreateBeverage(ctx *gin.Context)
	UpdateBeverage(ctx *gin.Context)
	DeleteBeverage(ctx *gin.Context)
}

// BeverageRequest is the payload for creating or updating a beverage
type BeverageRequest struct {
	Name        string          `json:"name" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Description string          `json:"description"`
	Stock       int             `json:"stock" binding:"gte=0"`
}

type beverageController struct {
	service services.BeverageService
}

// NewBeverageController creates a new instance of BeverageController
func NewBeverageController(service services.BeverageService) BeverageController {
	return &beverageController{service: service}
}

func beverageLocation(id uuid.UUID) string {
	return "/api/v1/beverages/" + id.String()
}

// GetAllBeverages godoc
// @Summary Get all beverages
// @Tags beverages
// @Produce json
// @Success 200 {array} models.Beverage
// @Router /api/v1/beverages [get]
func (c *beverageController) GetAllBeverages(ctx *gin.Context) {
	beverages, err := c.service.GetAllBeverages()
	if err != nil {
		mapServiceError(ctx, err, nil)
		return
	}
	ctx.JSON(http.StatusOK, beverages)
}

// GetBeverage godoc
// @Summary Get beverage by ID
// @Tags beverages
// @Produce json
// @Param id path string true "Beverage ID"
// @Success 200 {object} models.Beverage
// @Failure 404 {object} models.APIError
// @Router /api/v1/beverages/{id} [get]
func (c *beverageController) GetBeverage(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	beverage, err := c.service.GetBeverageByID(id)
	if err != nil {
		mapServiceError(ctx, err, nil)
		return
	}
	ctx.JSON(http.StatusOK, beverage)
}

// CreateBeverage godoc
// @Summary Create a new beverage
// @Tags beverages
// @Accept json
// @Produce json
// @Param beverage body BeverageRequest true "Beverage payload"
// @Success 201 {object} models.Beverage
// @Failure 303 "Redirect to the existing beverage"
// @Router /api/v1/beverages [post]
func (c *beverageController) CreateBeverage(ctx *gin.Context) {
	var req BeverageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
		return
	}

	beverage, err := c.service.CreateBeverage(models.Beverage{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Stock:       req.Stock,
	})
	if err != nil {
		mapServiceError(ctx, err, beverageLocation)
		return
	}
	ctx.JSON(http.StatusCreated, beverage)
}

// UpdateBeverage godoc
// @Summary Update a beverage
// @Tags beverages
// @Accept json
// @Produce json
// @Param id path string true "Beverage ID"
// @Param beverage body BeverageRequest true "Beverage payload"
// @Success 201 {object} models.Beverage
// @Success 204
// @Failure 404 {object} models.APIError
// @Router /api/v1/beverages/{id} [put]
func (c *beverageController) UpdateBeverage(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req BeverageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
		return
	}

	beverage, created, err := c.service.UpdateBeverage(id, models.Beverage{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Stock:       req.Stock,
	})
	if err != nil {
		mapServiceError(ctx, err, beverageLocation)
		return
	}
	if created {
		ctx.JSON(http.StatusCreated, beverage)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// DeleteBeverage godoc
// @Summary Delete a beverage
// @Tags beverages
// @Param id path string true "Beverage ID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Router /api/v1/beverages/{id} [delete]
func (c *beverageController) DeleteBeverage(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.service.DeleteBeverage(id); err != nil {
		mapServiceError(ctx, err, nil)
		return
	}
	ctx.Status(http.StatusNoContent)
}

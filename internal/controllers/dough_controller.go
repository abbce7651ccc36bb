package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/gin-pizza-orders/internal/models"
	"github.com/franciscosanchezn/gin-pizza-orders/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DoughController handles HTTP requests related to doughs
type DoughController interface {
	GetAllDoughs(ctx *gin.Context)
	GetDough(ctx *gin.Context)
	CreateDough(ctx *gin.Context)
	UpdateDough(ctx *gin.Context)
	DeleteDough(ctx *gin.Context)
}

// DoughRequest is the payload for creating or updating a dough
type DoughRequest struct {
	Name        string          `json:"name" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Description string          `json:"description"`
	Stock       int             `json:"stock" binding:"gte=0"`
}

type doughController struct {
	service services.DoughService
}

// NewDoughController creates a new instance of DoughController
func NewDoughController(service services.DoughService) DoughController {
	return &doughController{service: service}
}

func doughLocation(id uuid.UUID) string {
	return "/api/v1/doughs/" + id.String()
}

// GetAllDoughs godoc
// @Summary Get all doughs
// @Tags doughs
// @Produce json
// @Success 200 {array} models.Dough
// @Router /api/v1/doughs [get]
func (c *doughController) GetAllDoughs(ctx *gin.Context) {
	doughs, err := c.service.GetAllDoughs()
	if err != nil {
		mapServiceError(ctx, err, nil)
		return
	}
	ctx.JSON(http.StatusOK, doughs)
}

// GetDough godoc
// @Summary Get dough by ID
// @Tags doughs
// @Produce json
// @Param id path string true "Dough ID"
// @Success 200 {object} models.Dough
// @Failure 404 {object} models.APIError
// @Router /api/v1/doughs/{id} [get]
func (c *doughController) GetDough(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	dough, err := c.service.GetDoughByID(id)
	if err != nil {
		mapServiceError(ctx, err, nil)
		return
	}
	ctx.JSON(http.StatusOK, dough)
}

// CreateDough godoc
// @Summary Create a new dough
// @Description Creates a dough; an existing dough with the same name is answered with a redirect to it
// @Tags doughs
// @Accept json
// @Produce json
// @Param dough body DoughRequest true "Dough payload"
// @Success 201 {object} models.Dough
// @Failure 303 "Redirect to the existing dough"
// @Router /api/v1/doughs [post]
func (c *doughController) CreateDough(ctx *gin.Context) {
	var req DoughRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
		return
	}

	dough, err := c.service.CreateDough(models.Dough{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Stock:       req.Stock,
	})
	if err != nil {
		mapServiceError(ctx, err, doughLocation)
		return
	}
	ctx.JSON(http.StatusCreated, dough)
}

// UpdateDough godoc
// @Summary Update a dough
// @Description Same name updates in place (204); a renamed dough is re-created under a new id (201); a name collision redirects (303)
// @Tags doughs
// @Accept json
// @Produce json
// @Param id path string true "Dough ID"
// @Param dough body DoughRequest true "Dough payload"
// @Success 201 {object} models.Dough
// @Success 204
// @Failure 404 {object} models.APIError
// @Router /api/v1/doughs/{id} [put]
func (c *doughController) UpdateDough(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req DoughRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
		return
	}

	dough, created, err := c.service.UpdateDough(id, models.Dough{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Stock:       req.Stock,
	})
	if err != nil {
		mapServiceError(ctx, err, doughLocation)
		return
	}
	if created {
		ctx.JSON(http.StatusCreated, dough)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// DeleteDough godoc
// @Summary Delete a dough
// @Tags doughs
// @Param id path string true "Dough ID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Router /api/v1/doughs/{id} [delete]
func (c *doughController) DeleteDough(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.service.DeleteDough(id); err != nil {
		mapServiceError(ctx, err, nil)
		return
	}
	ctx.Status(http.StatusNoContent)
}

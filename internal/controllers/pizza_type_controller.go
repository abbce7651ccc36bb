package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/gin-pizza-orders/internal/models"
	"github.com/franciscosanchezn/gin-pizza-orders/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PizzaTypeController handles HTTP requests related to pizza types
type PizzaTypeController interface {
	GetAllPizzaTypes(ctx *gin.Context)
	GetPizzaType(ctx *gin.Context)
	CreatePizzaType(ctx *gin.Context)
	UpdatePizzaType(ctx *gin.Context)
	DeletePizzaType(ctx *gin.Context)
	GetPizzaTypeToppings(ctx *gin.Context)
	AddPizzaTypeTopping(ctx *gin.Context)
	GetPizzaTypeDough(ctx *gin.Context)
}

// PizzaTypeRequest is the payload for creating or updating a pizza type
type PizzaTypeRequest struct {
	Name        string          `json:"name" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Description string          `json:"description"`
	DoughID     uuid.UUID       `json:"dough_id" binding:"required"`
}

// ToppingQuantityRequest is the payload for binding a topping to a pizza type
type ToppingQuantityRequest struct {
	ToppingID uuid.UUID `json:"topping_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required"`
}

type pizzaTypeController struct {
	service services.PizzaTypeService
}

// NewPizzaTypeController creates a new instance of PizzaTypeController
func NewPizzaTypeController(service services.PizzaTypeService) PizzaTypeController {
	return &pizzaTypeController{service: service}
}

func pizzaTypeLocation(id uuid.UUID) string {
	return "/api/v1/pizza-types/" + id.String()
}

func pizzaTypeToppingsLocation(id uuid.UUID) string {
	return "/api/v1/pizza-types/" + id.String() + "/toppings"
}

// GetAllPizzaTypes godoc
// @Summary Get all pizza types
// @Tags pizza-types
// @Produce json
// @Success 200 {array} models.PizzaType
// @Router /api/v1/pizza-types [get]
func (c *pizzaTypeController) GetAllPizzaTypes(ctx *gin.Context) {
	pizzaTypes, err := c.service.GetAllPizzaTypes()
	if err != nil {
		mapServiceError(ctx, err, nil)
		return
	}
	ctx.JSON(http.StatusOK, pizzaTypes)
}

// GetPizzaType godoc
// @Summary Get pizza type by ID
// @Tags pizza-types
// @Produce json
// @Param id path string true "Pizza type ID"
// @Success 200 {object} models.PizzaType
// @Failure 404 {object} models.APIError
// @Router /api/v1/pizza-types/{id} [get]
func (c *pizzaTypeController) GetPizzaType(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	pizzaType, err := c.service.GetPizzaTypeByID(id)
	if err != nil {
		mapServiceError(ctx, err, nil)
		return
	}
	ctx.JSON(http.StatusOK, pizzaType)
}

// CreatePizzaType godoc
// @Summary Create a new pizza type
// @Description Creates a pizza type for an existing dough; a duplicate name redirects to the existing pizza type
// @Tags pizza-types
// @Accept json
// @Produce json
// @Param pizza_type body PizzaTypeRequest true "Pizza type payload"
// @Success 201 {object} models.PizzaType
// @Failure 303 "Redirect to the existing pizza type"
// @Failure 404 {object} models.APIError
// @Router /api/v1/pizza-types [post]
func (c *pizzaTypeController) CreatePizzaType(ctx *gin.Context) {
	var req PizzaTypeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
		return
	}

	pizzaType, err := c.service.CreatePizzaType(models.PizzaType{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		DoughID:     req.DoughID,
	})
	if err != nil {
		mapServiceError(ctx, err, pizzaTypeLocation)
		return
	}
	ctx.JSON(http.StatusCreated, pizzaType)
}

// UpdatePizzaType godoc
// @Summary Update a pizza type
// @Tags pizza-types
// @Accept json
// @Produce json
// @Param id path string true "Pizza type ID"
// @Param pizza_type body PizzaTypeRequest true "Pizza type payload"
// @Success 201 {object} models.PizzaType
// @Success 204
// @Failure 404 {object} models.APIError
// @Router /api/v1/pizza-types/{id} [put]
func (c *pizzaTypeController) UpdatePizzaType(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req PizzaTypeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
		return
	}

	pizzaType, created, err := c.service.UpdatePizzaType(id, models.PizzaType{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		DoughID:     req.DoughID,
	})
	if err != nil {
		mapServiceError(ctx, err, pizzaTypeLocation)
		return
	}
	if created {
		ctx.JSON(http.StatusCreated, pizzaType)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// DeletePizzaType godoc
// @Summary Delete a pizza type
// @Tags pizza-types
// @Param id path string true "Pizza type ID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Router /api/v1/pizza-types/{id} [delete]
func (c *pizzaTypeController) DeletePizzaType(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.service.DeletePizzaType(id); err != nil {
		mapServiceError(ctx, err, nil)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// GetPizzaTypeToppings godoc
// @Summary Get the topping quantities of a pizza type
// @Description Returns the raw topping quantities, or the listing joined with topping fields when join=true
// @Tags pizza-types
// @Produce json
// @Param id path string true "Pizza type ID"
// @Param join query bool false "Join with topping catalog fields"
// @Success 200 {array} models.JoinedToppingQuantity
// @Failure 404 {object} models.APIError
// @Router /api/v1/pizza-types/{id}/toppings [get]
func (c *pizzaTypeController) GetPizzaTypeToppings(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if ctx.Query("join") == "true" {
		toppings, err := c.service.JoinedToppingsOfPizzaType(id)
		if err != nil {
			mapServiceError(ctx, err, nil)
			return
		}
		ctx.JSON(http.StatusOK, toppings)
		return
	}

	toppings, err := c.service.ToppingsOfPizzaType(id)
	if err != nil {
		mapServiceError(ctx, err, nil)
		return
	}
	ctx.JSON(http.StatusOK, toppings)
}

// AddPizzaTypeTopping godoc
// @Summary Add a topping quantity to a pizza type
// @Tags pizza-types
// @Accept json
// @Produce json
// @Param id path string true "Pizza type ID"
// @Param topping body ToppingQuantityRequest true "Topping quantity payload"
// @Success 201 {object} models.PizzaTypeToppingQuantity
// @Failure 303 "Redirect to the pizza type's toppings"
// @Failure 404 {object} models.APIError
// @Router /api/v1/pizza-types/{id}/toppings [post]
func (c *pizzaTypeController) AddPizzaTypeTopping(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req ToppingQuantityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
		return
	}

	toppingQuantity, err := c.service.AddToppingQuantity(id, req.ToppingID, req.Quantity)
	if err != nil {
		mapServiceError(ctx, err, pizzaTypeToppingsLocation)
		return
	}
	ctx.JSON(http.StatusCreated, toppingQuantity)
}

// GetPizzaTypeDough godoc
// @Summary Get the dough of a pizza type
// @Tags pizza-types
// @Produce json
// @Param id path string true "Pizza type ID"
// @Success 200 {object} models.Dough
// @Failure 404 {object} models.APIError
// @Router /api/v1/pizza-types/{id}/dough [get]
func (c *pizzaTypeController) GetPizzaTypeDough(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	dough, err := c.service.DoughOfPizzaType(id)
	if err != nil {
		mapServiceError(ctx, err, nil)
		return
	}
	ctx.JSON(http.StatusOK, dough)
}

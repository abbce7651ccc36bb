package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/gin-pizza-orders/internal/models"
	"github.com/franciscosanchezn/gin-pizza-orders/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderController handles HTTP requests related to orders, their pizzas and
// their beverage lines
type OrderController interface {
	GetOrders(ctx *gin.Context)
	GetOrder(ctx *gin.Context)
	CreateOrder(ctx *gin.Context)
	DeleteOrder(ctx *gin.Context)
	SetOrderStatus(ctx *gin.Context)
	GetOrderUser(ctx *gin.Context)
	GetOrderPrice(ctx *gin.Context)

	AddPizza(ctx *gin.Context)
	GetPizzas(ctx *gin.Context)
	RemovePizza(ctx *gin.Context)

	AddBeverage(ctx *gin.Context)
	GetBeverages(ctx *gin.Context)
	UpdateBeverage(ctx *gin.Context)
	RemoveBeverage(ctx *gin.Context)
}

// AddressRequest is the delivery address payload embedded in order creation
type AddressRequest struct {
	Street      string `json:"street" binding:"required"`
	PostCode    string `json:"post_code" binding:"required"`
	HouseNumber int    `json:"house_number" binding:"required"`
	Country     string `json:"country" binding:"required"`
	Town        string `json:"town" binding:"required"`
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
}

// OrderRequest is the payload for creating an order
type OrderRequest struct {
	UserID  uuid.UUID      `json:"user_id" binding:"required"`
	Address AddressRequest `json:"address" binding:"required"`
}

// OrderStatusRequest is the payload for updating an order's status
type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PizzaRequest is the payload for adding a pizza to an order
type PizzaRequest struct {
	PizzaTypeID uuid.UUID `json:"pizza_type_id" binding:"required"`
}

// BeverageLineRequest is the payload for adding or updating a beverage line
type BeverageLineRequest struct {
	BeverageID uuid.UUID `json:"beverage_id" binding:"required"`
	Quantity   int       `json:"quantity" binding:"required"`
}

// OrderPriceResponse carries the total price of an order
type OrderPriceResponse struct {
	Price decimal.Decimal `json:"price"`
}

type orderController struct {
	service services.OrderService
}

// NewOrderController creates a new instance of OrderController
func NewOrderController(service services.OrderService) OrderController {
	return &orderController{service: service}
}

func orderBeveragesLocation(orderID uuid.UUID) string {
	return "/api/v1/orders/" + orderID.String() + "/beverages"
}

// GetOrders godoc
// @Summary Get orders, optionally filtered by status
// @Description Without filters all orders are returned; repeated status parameters select the union of matching orders
// @Tags orders
// @Produce json
// @Param status query []string false "Order status filter" collectionFormat(multi)
// @Success 200 {array} models.Order
// @Failure 422 {object} models.APIError
// @Router /api/v1/orders [get]
func (c *orderController) GetOrders(ctx *gin.Context) {
	tokens := ctx.QueryArray("status")
	statuses := make([]models.OrderStatus, 0, len(tokens))
	for _, token := range tokens {
		status, ok := models.ParseOrderStatus(token)
		if !ok {
			ctx.JSON(http.StatusUnprocessableEntity,
				models.NewAPIError(models.ErrOrderInvalidStatus, "Invalid order status: "+token))
			return
		}
		statuses = append(statuses, status)
	}

	orders, err := c.service.GetOrdersByStatuses(statuses)
	if err != nil {
		mapServiceError(ctx, err, nil)
		return
	}
	ctx.JSON(http.StatusOK, orders)
}

// GetOrder godoc
// @Summary Get order by ID
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} models.Order
// @Failure 404 {object} models.APIError
// @Router /api/v1/orders/{id} [get]
func (c *orderController) GetOrder(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	order, err := c.service.GetOrderByID(id)
	if err != nil {
		mapServiceError(ctx, err, nil)
		return
	}
	ctx.JSON(http.StatusOK, order)
}

// CreateOrder godoc
// @Summary Create a new order
// @Description Creates an empty TRANSMITTED order; with copy_order_id the template order's items are replayed against current stock, all-or-nothing
// @Tags orders
// @Accept json
// @Produce json
// @Param order body OrderRequest true "Order payload"
// @Param copy_order_id query string false "Template order to copy items from"
// @Success 201 {object} models.Order
// @Failure 404 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Router /api/v1/orders [post]
func (c *orderController) CreateOrder(ctx *gin.Context) {
	var req OrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
		return
	}

	var copyFrom *uuid.UUID
	if raw := ctx.Query("copy_order_id"); raw != "" {
		templateID, err := uuid.Parse(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid copy_order_id format"))
			return
		}
		copyFrom = &templateID
	}

	order, err := c.service.CreateOrder(services.CreateOrderInput{
		UserID: req.UserID,
		Address: models.Address{
			Street:      req.Address.Street,
			PostCode:    req.Address.PostCode,
			HouseNumber: req.Address.HouseNumber,
			Country:     req.Address.Country,
			Town:        req.Address.Town,
			FirstName:   req.Address.FirstName,
			LastName:    req.Address.LastName,
		},
	}, copyFrom)
	if err != nil {
		mapServiceError(ctx, err, nil)
		return
	}
	ctx.JSON(http.StatusCreated, order)
}

// DeleteOrder godoc
// @Summary Delete an order
// @Description Restores the stock of every pizza and beverage line before deleting the order
// @Tags orders
// @Param id path string true "Order ID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Router /api/v1/orders/{id} [delete]
func (c *orderController) DeleteOrder(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.service.DeleteOrder(id); err != nil {
		mapServiceError(ctx, err, nil)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// SetOrderStatus godoc
// @Summary Update the status of an order
// @Tags orders
// @Accept json
// @Param id path string true "Order ID"
// @Param status body OrderStatusRequest true "New status"
// @Success 204
// @Failure 404 {object} models.APIError
// @Failure 422 {object} models.APIError
// @Router /api/v1/orders/{id}/status [put]
func (c *orderController) SetOrderStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req OrderStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
		return
	}

	status, valid := models.ParseOrderStatus(req.Status)
	if !valid {
		ctx.JSON(http.StatusUnprocessableEntity,
			models.NewAPIError(models.ErrOrderInvalidStatus, "Invalid order status: "+req.Status))
		return
	}

	if err := c.service.SetOrderStatus(id, status); err != nil {
		mapServiceError(ctx, err, nil)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// GetOrderUser godoc
// @Summary Get the user of an order
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} models.User
// @Failure 404 {object} models.APIError
// @Router /api/v1/orders/{id}/user [get]
func (c *orderController) GetOrderUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	user, err := c.service.UserOfOrder(id)
	if err != nil {
		mapServiceError(ctx, err, nil)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// GetOrderPrice godoc
// @Summary Get the total price of an order
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} OrderPriceResponse
// @Failure 404 {object} models.APIError
// @Router /api/v1/orders/{id}/price [get]
func (c *orderController) GetOrderPrice(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	price, err := c.service.PriceOfOrder(id)
	if err != nil {
		mapServiceError(ctx, err, nil)
		return
	}
	ctx.JSON(http.StatusOK, OrderPriceResponse{Price: price})
}

// AddPizza godoc
// @Summary Add a pizza to an order
// @Description Consumes the pizza type's dough and topping stock; insufficient stock answers 409
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param pizza body PizzaRequest true "Pizza payload"
// @Success 201 {object} models.Pizza
// @Failure 404 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Router /api/v1/orders/{id}/pizzas [post]
func (c *orderController) AddPizza(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req PizzaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
		return
	}

	pizza, err := c.service.AddPizza(id, req.PizzaTypeID)
	if err != nil {
		mapServiceError(ctx, err, nil)
		return
	}
	ctx.JSON(http.StatusCreated, pizza)
}

// GetPizzas godoc
// @Summary Get the pizzas of an order joined with their pizza type
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {array} models.JoinedPizza
// @Failure 404 {object} models.APIError
// @Router /api/v1/orders/{id}/pizzas [get]
func (c *orderController) GetPizzas(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	pizzas, err := c.service.PizzasOfOrder(id)
	if err != nil {
		mapServiceError(ctx, err, nil)
		return
	}
	ctx.JSON(http.StatusOK, pizzas)
}

// RemovePizza godoc
// @Summary Remove a pizza from an order
// @Description Restores the pizza type's ingredient stock; a pizza belonging to another order is 404
// @Tags orders
// @Param id path string true "Order ID"
// @Param pizzaId path string true "Pizza ID"
// @Success 200
// @Failure 404 {object} models.APIError
// @Router /api/v1/orders/{id}/pizzas/{pizzaId} [delete]
func (c *orderController) RemovePizza(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	pizzaID, ok := parseIDParam(ctx, "pizzaId")
	if !ok {
		return
	}
	if err := c.service.RemovePizza(id, pizzaID); err != nil {
		mapServiceError(ctx, err, nil)
		return
	}
	ctx.Status(http.StatusOK)
}

// AddBeverage godoc
// @Summary Add a beverage line to an order
// @Description An existing line for the same beverage answers with a redirect to the order's beverages
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param beverage body BeverageLineRequest true "Beverage line payload"
// @Success 201 {object} models.OrderBeverageQuantity
// @Failure 303 "Redirect to the order's beverages"
// @Failure 404 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Failure 422 {object} models.APIError
// @Router /api/v1/orders/{id}/beverages [post]
func (c *orderController) AddBeverage(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req BeverageLineRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
		return
	}

	line, err := c.service.AddBeverage(id, req.BeverageID, req.Quantity)
	if err != nil {
		mapServiceError(ctx, err, orderBeveragesLocation)
		return
	}
	ctx.JSON(http.StatusCreated, line)
}

// GetBeverages godoc
// @Summary Get the beverage lines of an order
// @Description Returns the raw lines, or the listing joined with beverage fields when join=true
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Param join query bool false "Join with beverage catalog fields"
// @Success 200 {array} models.JoinedBeverageQuantity
// @Failure 404 {object} models.APIError
// @Router /api/v1/orders/{id}/beverages [get]
func (c *orderController) GetBeverages(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if ctx.Query("join") == "true" {
		lines, err := c.service.JoinedBeveragesOfOrder(id)
		if err != nil {
			mapServiceError(ctx, err, nil)
			return
		}
		ctx.JSON(http.StatusOK, lines)
		return
	}

	lines, err := c.service.BeveragesOfOrder(id)
	if err != nil {
		mapServiceError(ctx, err, nil)
		return
	}
	ctx.JSON(http.StatusOK, lines)
}

// UpdateBeverage godoc
// @Summary Update a beverage line's quantity
// @Description Moves the quantity difference through the stock ledger; on 409 the line is unchanged
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param beverageId path string true "Beverage ID"
// @Param line body BeverageLineRequest true "Beverage line payload"
// @Success 200 {object} models.OrderBeverageQuantity
// @Failure 404 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Failure 422 {object} models.APIError
// @Router /api/v1/orders/{id}/beverages/{beverageId} [put]
func (c *orderController) UpdateBeverage(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	beverageID, ok := parseIDParam(ctx, "beverageId")
	if !ok {
		return
	}
	var req BeverageLineRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
		return
	}

	line, err := c.service.UpdateBeverage(id, beverageID, req.Quantity)
	if err != nil {
		mapServiceError(ctx, err, nil)
		return
	}
	ctx.JSON(http.StatusOK, line)
}

// RemoveBeverage godoc
// @Summary Remove a beverage line from an order
// @Description Restores the line's full quantity to stock
// @Tags orders
// @Param id path string true "Order ID"
// @Param beverageId path string true "Beverage ID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Router /api/v1/orders/{id}/beverages/{beverageId} [delete]
func (c *orderController) RemoveBeverage(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	beverageID, ok := parseIDParam(ctx, "beverageId")
	if !ok {
		return
	}
	if err := c.service.RemoveBeverage(id, beverageID); err != nil {
		mapServiceError(ctx, err, nil)
		return
	}
	ctx.Status(http.StatusNoContent)
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus is a free-form progression label on an order. Any status may
// be set at any time; only unknown tokens are rejected at the boundary.
type OrderStatus string

const (
	StatusTransmitted OrderStatus = "TRANSMITTED"
	StatusPreparing   OrderStatus = "PREPARING"
	StatusInDelivery  OrderStatus = "IN_DELIVERY"
	StatusDelivered   OrderStatus = "DELIVERED"
	StatusCompleted   OrderStatus = "COMPLETED"
)

// ParseOrderStatus maps a status token to an OrderStatus.
// The bool result is false for unknown tokens.
func ParseOrderStatus(token string) (OrderStatus, bool) {
	switch OrderStatus(token) {
	case StatusTransmitted, StatusPreparing, StatusInDelivery, StatusDelivered, StatusCompleted:
		return OrderStatus(token), true
	}
	return "", false
}

// Order owns its pizzas, beverage lines and address. Every line that exists
// corresponds to stock that was decremented at add-time and is restored at
// remove-time or order-delete-time.
type Order struct {
	ID        uuid.UUID               `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID               `gorm:"type:uuid;not null" json:"user_id"`
	User      User                    `json:"-"`
	AddressID uuid.UUID               `gorm:"type:uuid;not null" json:"address_id"`
	Address   Address                 `json:"address"`
	Status    OrderStatus             `gorm:"not null" json:"order_status"`
	Pizzas    []Pizza                 `gorm:"constraint:OnDelete:CASCADE" json:"pizzas,omitempty"`
	Beverages []OrderBeverageQuantity `gorm:"constraint:OnDelete:CASCADE" json:"beverages,omitempty"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// Pizza is one produced instance of a pizza type inside an order. Price and
// ingredients are looked up through the pizza type, never duplicated here.
type Pizza struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null" json:"order_id"`
	PizzaTypeID uuid.UUID `gorm:"type:uuid;not null" json:"pizza_type_id"`
	PizzaType   PizzaType `json:"-"`
}

func (p *Pizza) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// JoinedPizza is the read model for an order's pizza list joined with the
// pizza type's catalog fields.
type JoinedPizza struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	DoughID     uuid.UUID       `json:"dough_id"`
}

// OrderBeverageQuantity is an order's line for one beverage. Identity is the
// (order, beverage) pair; quantity is always at least one.
type OrderBeverageQuantity struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"order_id,omitempty"`
	BeverageID uuid.UUID `gorm:"type:uuid;primaryKey" json:"beverage_id"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	Beverage   Beverage  `json:"-"`
}

// JoinedBeverageQuantity is the read model for an order's beverage lines
// joined with the beverage's catalog fields.
type JoinedBeverageQuantity struct {
	BeverageID  uuid.UUID       `json:"beverage_id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
}

package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PizzaType is a menu entry: one dough plus a list of topping quantities
type PizzaType struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string          `gorm:"uniqueIndex;not null" json:"name"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Description string          `json:"description"`
	DoughID     uuid.UUID       `gorm:"type:uuid;not null" json:"dough_id"`
	Dough       Dough           `json:"-"`
	Toppings    []PizzaTypeToppingQuantity `gorm:"constraint:OnDelete:CASCADE" json:"toppings,omitempty"`
}

func (p *PizzaType) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PizzaTypeToppingQuantity binds a topping to a pizza type with the
// amount consumed per pizza.
type PizzaTypeToppingQuantity struct {
	PizzaTypeID uuid.UUID `gorm:"type:uuid;primaryKey" json:"pizza_type_id,omitempty"`
	ToppingID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"topping_id"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	Topping     Topping   `json:"-"`
}

// JoinedToppingQuantity is the read model for a pizza type's topping list
// joined with the topping's catalog fields.
type JoinedToppingQuantity struct {
	ToppingID   uuid.UUID       `json:"topping_id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// StockResource names the kind of stocked entity a movement applies to
type StockResource string

const (
	StockResourceDough    StockResource = "dough"
	StockResourceTopping  StockResource = "topping"
	StockResourceBeverage StockResource = "beverage"
)

// StockMovement is one row of the append-only stock journal. Every stock
// change writes exactly one movement per touched resource, so the current
// counters can be audited against the sum of movements.
type StockMovement struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	Resource   StockResource `gorm:"not null;index:idx_stock_movements_resource" json:"resource"`
	ResourceID uuid.UUID     `gorm:"type:uuid;not null;index:idx_stock_movements_resource" json:"resource_id"`
	OrderID    *uuid.UUID    `gorm:"type:uuid;index" json:"order_id,omitempty"`
	Delta      int           `gorm:"not null" json:"delta"`
	CreatedAt  time.Time     `json:"created_at"`
}

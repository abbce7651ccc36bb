package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Address is the delivery address owned by an order
type Address struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Street      string    `gorm:"not null" json:"street"`
	PostCode    string    `gorm:"not null" json:"post_code"`
	HouseNumber int       `gorm:"not null" json:"house_number"`
	Country     string    `gorm:"not null" json:"country"`
	Town        string    `gorm:"not null" json:"town"`
	FirstName   string    `gorm:"not null" json:"first_name"`
	LastName    string    `gorm:"not null" json:"last_name"`
}

func (a *Address) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

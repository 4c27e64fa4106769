package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Car struct {
	Id         string    `json:"id" gorm:"primaryKey"`
	CustomerId string    `json:"customer_id" gorm:"not null;index"`
	Customer   *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerId;references:Id"`
	Brand      string    `json:"brand" gorm:"not null"`
	Model      string    `json:"model" gorm:"not null"`
	Plate      string    `json:"plate,omitempty"`
	Year       int       `json:"year,omitempty"`
	Color      string    `json:"color" gorm:"not null"`

	Notes []Note `json:"notes,omitempty" gorm:"foreignKey:CarId"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (car *Car) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	car.Id = uuid.NewString()
	return
}

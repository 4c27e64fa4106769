package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	Id    string `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"not null"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`

	Cars  []Car  `json:"cars,omitempty" gorm:"foreignKey:CustomerId"`
	Notes []Note `json:"notes,omitempty" gorm:"foreignKey:CustomerId"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (customer *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	customer.Id = uuid.NewString()
	return
}

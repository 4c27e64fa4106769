package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Part is a catalog entry. Price is the current unit price; notes keep
// their own priced snapshots, so changing it never rewrites history.
type Part struct {
	Id    string  `json:"id" gorm:"primaryKey"`
	Name  string  `json:"name" gorm:"not null"`
	Model string  `json:"model" gorm:"not null"`
	Price float64 `json:"price" gorm:"type:numeric(12,2)"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (part *Part) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	part.Id = uuid.NewString()
	return
}

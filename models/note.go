package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NoteStatus string

const (
	NoteStatusOpen      NoteStatus = "OPEN"
	NoteStatusPaid      NoteStatus = "PAID"
	NoteStatusCancelled NoteStatus = "CANCELLED"
)

// NoteStatuses lists every valid status, in dashboard display order.
var NoteStatuses = []NoteStatus{NoteStatusOpen, NoteStatusPaid, NoteStatusCancelled}

func (s NoteStatus) Valid() bool {
	switch s {
	case NoteStatusOpen, NoteStatusPaid, NoteStatusCancelled:
		return true
	}
	return false
}

// Note is a service order (invoice) for one customer/car pair.
// PartsPrice and TotalPrice are derived from the line items and labor
// price; they are always recomputed server-side.
type Note struct {
	Id         string    `json:"id" gorm:"primaryKey"`
	CustomerId string    `json:"customer_id" gorm:"not null;index"`
	Customer   *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerId;references:Id"`
	CarId      string    `json:"car_id" gorm:"not null;index"`
	Car        *Car      `json:"car,omitempty" gorm:"foreignKey:CarId;references:Id"`

	LaborPrice float64    `json:"labor_price" gorm:"type:numeric(12,2)"`
	PartsPrice float64    `json:"parts_price" gorm:"type:numeric(12,2)"`
	TotalPrice float64    `json:"total_price" gorm:"type:numeric(12,2)"`
	Status     NoteStatus `json:"status" gorm:"type:VARCHAR(20);not null;default:OPEN"`

	Parts []PartInNote `json:"parts" gorm:"foreignKey:NoteId"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (note *Note) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	note.Id = uuid.NewString()
	return
}

// PartInNote is one parts-usage line on a note. Price is the line
// subtotal as priced at submission time, not the part's live price.
type PartInNote struct {
	Id       string  `json:"id" gorm:"primaryKey"`
	NoteId   string  `json:"note_id" gorm:"not null;index"`
	PartId   string  `json:"part_id" gorm:"not null;index"`
	Part     *Part   `json:"part,omitempty" gorm:"foreignKey:PartId;references:Id;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
	Quantity int     `json:"quantity" gorm:"not null"`
	Price    float64 `json:"price" gorm:"type:numeric(12,2)"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (item *PartInNote) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	item.Id = uuid.NewString()
	return
}

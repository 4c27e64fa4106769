package services

import (
	"errors"
	"fmt"
	"time"

	"auto-control-backend/models"
	"auto-control-backend/utils"

	"gorm.io/gorm"
)

// NoteService owns the note lifecycle: creation with embedded line
// items, server-side price derivation, replace-all item updates, and
// cascading deletes. Every mutation is one transaction, so a failure
// partway never leaves a note with a mixture of old and new items.
type NoteService struct {
	db *gorm.DB
}

func NewNoteService(db *gorm.DB) *NoteService {
	return &NoteService{db: db}
}

// NoteItemInput is one line entry as accepted on create/update. Price
// is the line subtotal as priced at submission time.
type NoteItemInput struct {
	PartId   string  `json:"part_id" validate:"required"`
	Quantity int     `json:"quantity" validate:"required,min=1"`
	Price    float64 `json:"price" validate:"min=0"`
}

// NoteInput carries the caller-supplied fields for create and update.
// Derived prices are never accepted from the caller.
type NoteInput struct {
	CustomerId string            `json:"customer_id" validate:"required"`
	CarId      string            `json:"car_id" validate:"required"`
	LaborPrice float64           `json:"labor_price" validate:"min=0"`
	Status     models.NoteStatus `json:"status" validate:"required"`
	Parts      []NoteItemInput   `json:"parts" validate:"omitempty,dive"`
}

type NoteListParams struct {
	Page           int
	ItemsPerPage   int
	CustomerId     string
	CarId          string
	Status         models.NoteStatus
	DateRangeFrom  time.Time
	DateRangeTo    time.Time
	OrderBy        string
	OrderDirection string
}

type NotePage struct {
	Data       []models.Note `json:"data"`
	Pagination Pagination    `json:"pagination"`
}

var noteOrderColumns = map[string]string{
	"customerId": "customer_id",
	"carId":      "car_id",
	"laborPrice": "labor_price",
	"totalPrice": "total_price",
	"status":     "status",
	"createdAt":  "created_at",
	"updatedAt":  "updated_at",
}

func validateNoteInput(input NoteInput) error {
	if input.LaborPrice < 0 {
		return &ValidationError{Message: "labor price must not be negative"}
	}
	if !input.Status.Valid() {
		return &ValidationError{Message: fmt.Sprintf("invalid note status %q", input.Status)}
	}
	for i, item := range input.Parts {
		if item.Quantity < 1 {
			return &ValidationError{Message: fmt.Sprintf("invalid quantity at index %d", i)}
		}
		if item.Price < 0 {
			return &ValidationError{Message: fmt.Sprintf("invalid price at index %d", i)}
		}
	}
	return nil
}

// partsTotal derives the parts price from the submitted line items.
// Caller-supplied aggregates are ignored on purpose. Each line price is
// rounded exactly as it will be persisted, so the stored aggregate
// always equals the sum over the stored lines even for sub-cent input.
func partsTotal(items []NoteItemInput) float64 {
	var sum float64
	for _, item := range items {
		sum += utils.Round2(item.Price) * float64(item.Quantity)
	}
	return utils.Round2(sum)
}

func buildNoteItems(noteId string, items []NoteItemInput) []models.PartInNote {
	out := make([]models.PartInNote, 0, len(items))
	for _, item := range items {
		out = append(out, models.PartInNote{
			NoteId:   noteId,
			PartId:   item.PartId,
			Quantity: item.Quantity,
			Price:    utils.Round2(item.Price),
		})
	}
	return out
}

func (s *NoteService) Create(input NoteInput) (*models.Note, error) {
	if err := validateNoteInput(input); err != nil {
		return nil, err
	}

	partsPrice := partsTotal(input.Parts)
	note := models.Note{
		CustomerId: input.CustomerId,
		CarId:      input.CarId,
		LaborPrice: utils.Round2(input.LaborPrice),
		PartsPrice: partsPrice,
		TotalPrice: utils.Round2(input.LaborPrice + partsPrice),
		Status:     input.Status,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&note).Error; err != nil {
			return &StoreError{Op: "create note", Err: err}
		}
		items := buildNoteItems(note.Id, input.Parts)
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return &StoreError{Op: "create note items", Err: err}
			}
		}
		note.Parts = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// Update replaces the note wholesale: scalar fields overwritten, the
// whole item set deleted and recreated from the request. An empty item
// set means "this note now has zero line items", not "leave unchanged".
func (s *NoteService) Update(id string, input NoteInput) (*models.Note, error) {
	if err := validateNoteInput(input); err != nil {
		return nil, err
	}

	var note models.Note
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&note, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "note", Id: id}
			}
			return &StoreError{Op: "load note", Err: err}
		}

		if err := tx.Where("note_id = ?", id).Delete(&models.PartInNote{}).Error; err != nil {
			return &StoreError{Op: "clear note items", Err: err}
		}

		partsPrice := partsTotal(input.Parts)
		// Column map so zero values (laborPrice=0, emptied partsPrice)
		// are written; a struct update would skip them.
		updates := map[string]any{
			"customer_id": input.CustomerId,
			"car_id":      input.CarId,
			"labor_price": utils.Round2(input.LaborPrice),
			"parts_price": partsPrice,
			"total_price": utils.Round2(input.LaborPrice + partsPrice),
			"status":      input.Status,
		}
		if err := tx.Model(&note).Updates(updates).Error; err != nil {
			return &StoreError{Op: "update note", Err: err}
		}

		items := buildNoteItems(note.Id, input.Parts)
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return &StoreError{Op: "create note items", Err: err}
			}
		}
		note.Parts = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// Delete removes the note and all of its items in one transaction so
// no orphaned items survive an interruption between the two steps.
func (s *NoteService) Delete(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var note models.Note
		if err := tx.First(&note, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "note", Id: id}
			}
			return &StoreError{Op: "load note", Err: err}
		}
		if err := tx.Where("note_id = ?", id).Delete(&models.PartInNote{}).Error; err != nil {
			return &StoreError{Op: "delete note items", Err: err}
		}
		if err := tx.Delete(&note).Error; err != nil {
			return &StoreError{Op: "delete note", Err: err}
		}
		return nil
	})
}

func (s *NoteService) Get(id string) (*models.Note, error) {
	var note models.Note
	err := s.db.
		Preload("Customer").
		Preload("Car").
		Preload("Parts.Part").
		First(&note, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "note", Id: id}
		}
		return nil, &StoreError{Op: "load note", Err: err}
	}
	return &note, nil
}

// List returns one page of notes. All supplied filters are ANDed;
// DateRangeTo is inclusive through end of day (the bound is advanced to
// the start of the following day before comparison).
func (s *NoteService) List(params NoteListParams) (*NotePage, error) {
	page, itemsPerPage := normalizePaging(params.Page, params.ItemsPerPage)

	q := s.db.Model(&models.Note{})
	if params.CustomerId != "" {
		q = q.Where("customer_id = ?", params.CustomerId)
	}
	if params.CarId != "" {
		q = q.Where("car_id = ?", params.CarId)
	}
	if params.Status != "" {
		if !params.Status.Valid() {
			return nil, &ValidationError{Message: fmt.Sprintf("invalid note status %q", params.Status)}
		}
		q = q.Where("status = ?", params.Status)
	}
	if !params.DateRangeFrom.IsZero() {
		q = q.Where("created_at >= ?", params.DateRangeFrom)
	}
	if !params.DateRangeTo.IsZero() {
		q = q.Where("created_at <= ?", params.DateRangeTo.AddDate(0, 0, 1))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, &StoreError{Op: "count notes", Err: err}
	}

	var notes []models.Note
	err := q.
		Order(orderClause(noteOrderColumns, params.OrderBy, params.OrderDirection)).
		Offset((page - 1) * itemsPerPage).
		Limit(itemsPerPage).
		Preload("Customer").
		Preload("Car").
		Preload("Parts.Part").
		Find(&notes).Error
	if err != nil {
		return nil, &StoreError{Op: "list notes", Err: err}
	}

	return &NotePage{
		Data:       notes,
		Pagination: paginate(page, itemsPerPage, total),
	}, nil
}

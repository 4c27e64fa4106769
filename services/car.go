package services

import (
	"errors"
	"fmt"
	"strings"

	"auto-control-backend/models"

	"gorm.io/gorm"
)

// CarService owns car records and the delete guard that keeps a car
// alive while notes still reference it.
type CarService struct {
	db *gorm.DB
}

func NewCarService(db *gorm.DB) *CarService {
	return &CarService{db: db}
}

type CarInput struct {
	CustomerId string `json:"customer_id" validate:"required"`
	Brand      string `json:"brand" validate:"required"`
	Model      string `json:"model" validate:"required"`
	Plate      string `json:"plate"`
	Year       int    `json:"year" validate:"omitempty,min=1900"`
	Color      string `json:"color" validate:"required"`
}

type CarListParams struct {
	Page           int
	ItemsPerPage   int
	Brand          string
	CustomerId     string
	OrderBy        string
	OrderDirection string
}

type CarPage struct {
	Data       []models.Car `json:"data"`
	Pagination Pagination   `json:"pagination"`
}

var carOrderColumns = map[string]string{
	"brand":     "brand",
	"model":     "model",
	"year":      "year",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

func (s *CarService) Create(input CarInput) (*models.Car, error) {
	car := models.Car{
		CustomerId: input.CustomerId,
		Brand:      input.Brand,
		Model:      input.Model,
		Plate:      input.Plate,
		Year:       input.Year,
		Color:      input.Color,
	}
	if err := s.db.Create(&car).Error; err != nil {
		return nil, &StoreError{Op: "create car", Err: err}
	}
	return &car, nil
}

func (s *CarService) Update(id string, input CarInput) (*models.Car, error) {
	var car models.Car
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&car, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "car", Id: id}
			}
			return &StoreError{Op: "load car", Err: err}
		}
		updates := map[string]any{
			"customer_id": input.CustomerId,
			"brand":       input.Brand,
			"model":       input.Model,
			"plate":       input.Plate,
			"year":        input.Year,
			"color":       input.Color,
		}
		if err := tx.Model(&car).Updates(updates).Error; err != nil {
			return &StoreError{Op: "update car", Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &car, nil
}

func (s *CarService) Get(id string) (*models.Car, error) {
	var car models.Car
	err := s.db.
		Preload("Customer").
		Preload("Notes").
		First(&car, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "car", Id: id}
		}
		return nil, &StoreError{Op: "load car", Err: err}
	}
	return &car, nil
}

func (s *CarService) List(params CarListParams) (*CarPage, error) {
	page, itemsPerPage := normalizePaging(params.Page, params.ItemsPerPage)

	q := s.db.Model(&models.Car{})
	if params.Brand != "" {
		q = q.Where("LOWER(brand) LIKE ?", "%"+strings.ToLower(params.Brand)+"%")
	}
	if params.CustomerId != "" {
		q = q.Where("customer_id = ?", params.CustomerId)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, &StoreError{Op: "count cars", Err: err}
	}

	var cars []models.Car
	err := q.
		Order(orderClause(carOrderColumns, params.OrderBy, params.OrderDirection)).
		Offset((page - 1) * itemsPerPage).
		Limit(itemsPerPage).
		Preload("Customer").
		Find(&cars).Error
	if err != nil {
		return nil, &StoreError{Op: "list cars", Err: err}
	}

	return &CarPage{
		Data:       cars,
		Pagination: paginate(page, itemsPerPage, total),
	}, nil
}

// Delete refuses while notes still reference the car. Check and delete
// share one transaction, same as the customer guard.
func (s *CarService) Delete(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var car models.Car
		if err := tx.First(&car, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "car", Id: id}
			}
			return &StoreError{Op: "load car", Err: err}
		}

		var notesCount int64
		if err := tx.Model(&models.Note{}).Where("car_id = ?", id).Count(&notesCount).Error; err != nil {
			return &StoreError{Op: "count car notes", Err: err}
		}
		if notesCount > 0 {
			return &ConflictError{Message: carDeleteRefusal(car, notesCount)}
		}

		if err := tx.Delete(&car).Error; err != nil {
			return &StoreError{Op: "delete car", Err: err}
		}
		return nil
	})
}

func carDeleteRefusal(car models.Car, notesCount int64) string {
	return fmt.Sprintf("Não é possível excluir %s %s. O carro possui %d nota%s cadastrada%s.",
		car.Brand, car.Model, notesCount, plural(notesCount), plural(notesCount))
}

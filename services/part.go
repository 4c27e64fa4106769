package services

import (
	"errors"

	"auto-control-backend/models"
	"auto-control-backend/utils"

	"gorm.io/gorm"
)

// CRUD over the parts catalog. The catalog is small, so List is
// unpaginated.
type PartService struct {
	db *gorm.DB
}

func NewPartService(db *gorm.DB) *PartService {
	return &PartService{db: db}
}

type PartInput struct {
	Name  string  `json:"name" validate:"required"`
	Model string  `json:"model" validate:"required"`
	Price float64 `json:"price" validate:"min=0"`
}

func (s *PartService) Create(input PartInput) (*models.Part, error) {
	part := models.Part{
		Name:  input.Name,
		Model: input.Model,
		Price: utils.Round2(input.Price),
	}
	if err := s.db.Create(&part).Error; err != nil {
		return nil, &StoreError{Op: "create part", Err: err}
	}
	return &part, nil
}

func (s *PartService) Update(id string, input PartInput) (*models.Part, error) {
	var part models.Part
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&part, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "part", Id: id}
			}
			return &StoreError{Op: "load part", Err: err}
		}
		updates := map[string]any{
			"name":  input.Name,
			"model": input.Model,
			"price": utils.Round2(input.Price),
		}
		if err := tx.Model(&part).Updates(updates).Error; err != nil {
			return &StoreError{Op: "update part", Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &part, nil
}

func (s *PartService) Get(id string) (*models.Part, error) {
	var part models.Part
	if err := s.db.First(&part, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "part", Id: id}
		}
		return nil, &StoreError{Op: "load part", Err: err}
	}
	return &part, nil
}

func (s *PartService) List() ([]models.Part, error) {
	var parts []models.Part
	if err := s.db.Order("name asc").Find(&parts).Error; err != nil {
		return nil, &StoreError{Op: "list parts", Err: err}
	}
	return parts, nil
}

func (s *PartService) Delete(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var part models.Part
		if err := tx.First(&part, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "part", Id: id}
			}
			return &StoreError{Op: "load part", Err: err}
		}
		if err := tx.Delete(&part).Error; err != nil {
			return &StoreError{Op: "delete part", Err: err}
		}
		return nil
	})
}
